package models

import "github.com/golang-jwt/jwt/v5"

// Application permissions
const (
	// Member permissions
	PermissionWalletRead       = "wallet:read"
	PermissionWithdrawalCreate = "withdrawal:create"

	// Reviewer permissions
	PermissionFundReview = "fund:review"
	PermissionFundCreate = "fund:create"
	PermissionReadAdmin  = "admin:read"
)

type MemberClaims struct {
	jwt.RegisteredClaims
	MemberID     uint     `json:"member_id"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
	TokenVersion int      `json:"token_version"`
}

// HasPermission checks if the claims include a specific permission
func (c *MemberClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case "admin":
		return []string{
			PermissionWalletRead,
			PermissionWithdrawalCreate,
			PermissionFundReview,
			PermissionFundCreate,
			PermissionReadAdmin,
		}
	default:
		return []string{
			PermissionWalletRead,
			PermissionWithdrawalCreate,
		}
	}
}
