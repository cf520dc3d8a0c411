package book

import "errors"

var (
	// ErrDuplicateOrderID rejects any id that was ever accepted,
	// including ids of orders that have since filled or cancelled.
	ErrDuplicateOrderID = errors.New("duplicate order id")

	// ErrOrderNotFound is returned when cancelling an id with no
	// resting order behind it.
	ErrOrderNotFound = errors.New("order not found")
)
