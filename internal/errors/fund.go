package errors

var (
	ErrInvalidInput = &DomainError{
		Code:    "INVALID_INPUT",
		Message: "invalid input",
	}
	ErrMemberNotFound = &DomainError{
		Code:    "MEMBER_NOT_FOUND",
		Message: "member not found",
	}
	ErrInsufficientFunds = &DomainError{
		Code:    "INSUFFICIENT_FUNDS",
		Message: "insufficient wallet balance",
	}
	ErrInvalidState = &DomainError{
		Code:    "INVALID_STATE",
		Message: "request has already been decided",
	}
	ErrWalletNotFound = &DomainError{
		Code:    "WALLET_NOT_FOUND",
		Message: "wallet not found",
	}
	ErrDepositNotFound = &DomainError{
		Code:    "DEPOSIT_NOT_FOUND",
		Message: "deposit not found",
	}
	ErrWithdrawalNotFound = &DomainError{
		Code:    "WITHDRAWAL_NOT_FOUND",
		Message: "withdrawal not found",
	}
	// ErrDataInconsistency marks a state that the engine's invariants make
	// structurally impossible. It signals a bug, not a user error, and is
	// logged at alarm severity.
	ErrDataInconsistency = &DomainError{
		Code:    "DATA_INCONSISTENCY",
		Message: "internal data inconsistency",
	}
)
