package dto

import (
	"time"

	"github.com/mkadlec/salonpos/internal/cart"
	"github.com/mkadlec/salonpos/internal/model"
)

// CheckoutInput carries a cart snapshot into the commit workflow. The cart
// itself stays untouched; the caller clears it only after a successful
// commit.
type CheckoutInput struct {
	CashierID     string
	CustomerID    *string
	PaymentMethod model.PaymentMethod
	Notes         string
	Lines         []cart.Line
}

// CheckoutResult returns everything the till needs after a commit, so the
// caller never issues a follow-up read to stay consistent.
type CheckoutResult struct {
	Order       *model.Order       `json:"order"`
	Projections []*model.Inventory `json:"projections"`
}

type OrderFilters struct {
	CashierID  string
	CustomerID string
	Status     string
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int
	PageSize   int
}
