package dto

import "github.com/mkadlec/salonpos/internal/model"

// AdjustStockInput is a manual ledger write from the stock management screen
// or the external adjustment feed. Quantity carries the operator's sign for
// adjustments; in/out are normalized by the kind's convention.
type AdjustStockInput struct {
	ItemID        string
	Kind          model.MovementKind // in, out or adjustment
	Quantity      int
	Notes         string
	ReferenceID   string
	ReferenceType string
	ActorID       string
}

// OrderMovementInput is a sale or return applied by the order workflow.
// Quantity is the positive line quantity; the ledger applies the sign.
type OrderMovementInput struct {
	ItemID      string
	Quantity    int
	OrderNumber string
	ActorID     string
}
