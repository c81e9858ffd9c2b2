package binpack

import "errors"

var (
	// ErrInvalidCapacity is returned when the bin capacity is not a positive integer.
	ErrInvalidCapacity = errors.New("bin capacity must be a positive integer")
	// ErrInvalidItemSize is returned when an item size is zero or negative.
	ErrInvalidItemSize = errors.New("item sizes must be positive integers")
	// ErrItemTooLarge is returned when an item exceeds the bin capacity and can never be packed.
	ErrItemTooLarge = errors.New("item size exceeds bin capacity")
	// ErrInvalidMinItemSize is returned when the minimum item size is out of range
	// or larger than the smallest item actually present.
	ErrInvalidMinItemSize = errors.New("minimum item size must be positive and no larger than the smallest item")
	// ErrNilInstance is returned when a heuristic is invoked without a problem instance.
	ErrNilInstance = errors.New("problem instance must not be nil")
)
