package investments

import "errors"

var (
	ErrInvalidAmount        = errors.New("amount must be a positive number with at most 2 decimals")
	ErrExceedsRemaining     = errors.New("amount exceeds remaining funding")
	ErrCycleFullyFunded     = errors.New("cycle is fully funded")
	ErrInvestorNotEligible  = errors.New("account is not an active investor")
	ErrCycleNotCompleted    = errors.New("cycle is not completed")
	ErrInvalidProjectedSale = errors.New("projected sale price must be positive")
)
