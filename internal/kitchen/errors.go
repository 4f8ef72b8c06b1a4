package kitchen

import "errors"

var (
	// ErrNotFound is returned by Pickup for ids the system is not tracking.
	ErrNotFound = errors.New("order not found")

	// ErrExpired is returned by Pickup when the order was found but had
	// spoiled; the order is discarded as a side effect.
	ErrExpired = errors.New("order expired")

	// ErrDuplicateOrder is returned by Place when the id is already stored.
	ErrDuplicateOrder = errors.New("order already exists")

	// ErrInvalidOrder is returned by Place for malformed parameters.
	ErrInvalidOrder = errors.New("invalid order")
)
