// Package apperr defines the error kinds the POS core reports. Callers match
// them with errors.Is; wrapping adds detail without losing the kind.
package apperr

import "errors"

var (
	// ErrInvalidPricingInput rejects negative prices, non-positive quantities
	// and VAT percentages outside [0,100].
	ErrInvalidPricingInput = errors.New("invalid pricing input")

	// ErrOutOfStock rejects adding a tracked item with no available stock.
	ErrOutOfStock = errors.New("item out of stock")

	// ErrInsufficientStock rejects a quantity exceeding available stock,
	// either in the cart or at movement-insertion time.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrEmptyCart rejects checkout of an empty cart.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrUnauthenticated rejects operations without a cashier identity.
	ErrUnauthenticated = errors.New("cashier identity required")

	// ErrPartialCommit signals that the order header was persisted but a later
	// commit step failed; the operator must reconcile, the cart is preserved.
	ErrPartialCommit = errors.New("order partially committed")

	// ErrStorageUnavailable signals the record store timed out or refused the
	// connection, as opposed to rejecting the data.
	ErrStorageUnavailable = errors.New("storage unavailable")

	ErrNotFound = errors.New("not found")

	// ErrConflict signals a state conflict, e.g. opening a second cash
	// session for the same cashier.
	ErrConflict = errors.New("conflict")
)
