package domain

import "errors"

var (
	// ErrFoodNotFound is returned when a food record cannot be resolved upstream
	ErrFoodNotFound = errors.New("food not found in composition database")

	// ErrLogItemNotFound is returned when a log item id is not in the user's log
	ErrLogItemNotFound = errors.New("log item not found")

	// ErrCustomFoodNotFound is returned when a custom food id does not exist
	ErrCustomFoodNotFound = errors.New("custom food not found")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrLookupFailure is returned when the food composition API request fails
	ErrLookupFailure = errors.New("food composition API request failed")

	// ErrConflictingSource is returned when both an external and a custom food
	// reference are supplied for the same item or favorite mark
	ErrConflictingSource = errors.New("external and custom food references are mutually exclusive")

	// ErrStoreUnavailable is returned when the persistence store cannot be reached
	ErrStoreUnavailable = errors.New("persistence store unavailable")
)
