package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrFetchFailed covers any failure to read a page from the plant catalog.
	ErrFetchFailed = errors.New("catalog fetch failed")
	// ErrCorruptSnapshot marks a stored cart that could not be decoded.
	ErrCorruptSnapshot = errors.New("corrupt cart snapshot")
	// ErrEmptyCart is returned when checking out a cart with no items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrCheckoutInProgress is returned when a checkout is already running for the cart.
	ErrCheckoutInProgress = errors.New("checkout already in progress")
)
