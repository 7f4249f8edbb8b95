package domain

import "errors"

// Error taxonomy for core operations. All of these are recoverable: the
// caller reports them to the user and the process keeps running.
var (
	// ErrInvalidInput flags malformed or out-of-range user-supplied values
	// (name, price, cost, stock, quantity).
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound flags a reference to an unknown product id.
	ErrNotFound = errors.New("not found")

	// ErrEmptyOrder flags a sale completion attempted with no order lines.
	ErrEmptyOrder = errors.New("order is empty")
)
