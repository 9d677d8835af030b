package models

import (
	"gorm.io/gorm"
)

// Member is the membership catalog record. Fund operations only ever
// reference members by ID; profile management lives elsewhere.
type Member struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null"`
	Password     string `gorm:"not null"`
	Name         string `gorm:"not null"`
	Role         string `gorm:"default:'member'"`
	Status       string `gorm:"default:'active'"`
	TokenVersion int    `gorm:"default:1"`
}
