package cycles

import "errors"

var (
	ErrCycleNotFound       = errors.New("cycle not found")
	ErrInvalidTransition   = errors.New("cycle status does not allow this action")
	ErrCycleNotActive      = errors.New("cycle is not active")
	ErrBreederNotEligible  = errors.New("breeder account is not an active breeder")
	ErrNotOwner            = errors.New("cycle belongs to another breeder")
	ErrInvalidAnimalType   = errors.New("animal type is required")
	ErrInvalidWeights      = errors.New("weights must be positive and target above initial")
	ErrInvalidFundingGoal  = errors.New("funding goal must be a positive amount with at most 2 decimals")
	ErrInvalidHeads        = errors.New("total heads must be at least 1")
	ErrInvalidDuration     = errors.New("expected duration must be at least 1 day")
	ErrInvalidSalePrice    = errors.New("final sale price must be a positive amount with at most 2 decimals")
	ErrFoodDetailsRequired = errors.New("food details are required")
	ErrInvalidLogWeight    = errors.New("log weight must be positive")
)

// IsValidation reports whether err is an input validation failure.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrInvalidAnimalType,
		ErrInvalidWeights,
		ErrInvalidFundingGoal,
		ErrInvalidHeads,
		ErrInvalidDuration,
		ErrInvalidSalePrice,
		ErrFoodDetailsRequired,
		ErrInvalidLogWeight,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
