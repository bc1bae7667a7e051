package model

import (
	"fmt"
	"time"
)

// Inventory is the per-item stock projection derived from the movement log.
// It is only ever written alongside a movement insert, in the same
// transaction, and must stay reproducible by refolding the log.
type Inventory struct {
	ID                string    `db:"id" json:"id"`
	ItemID            string    `db:"item_id" json:"item_id"`
	Quantity          int       `db:"quantity" json:"quantity"`
	ReservedQuantity  int       `db:"reserved_quantity" json:"reserved_quantity"`
	AvailableQuantity int       `db:"available_quantity" json:"available_quantity"` // generated column
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

type MovementKind string

const (
	MovementIn         MovementKind = "in"
	MovementOut        MovementKind = "out"
	MovementAdjustment MovementKind = "adjustment"
	MovementSale       MovementKind = "sale"
	MovementReturn     MovementKind = "return"
)

// SignQuantity applies the ledger's sign convention: in/return store positive
// deltas, out/sale store negative ones, adjustment keeps the caller's sign.
// The stored sign is the single source of truth for direction.
func (k MovementKind) SignQuantity(quantity int) (int, error) {
	if quantity == 0 {
		return 0, fmt.Errorf("movement quantity must be non-zero")
	}
	abs := quantity
	if abs < 0 {
		abs = -abs
	}
	switch k {
	case MovementIn, MovementReturn:
		return abs, nil
	case MovementOut, MovementSale:
		return -abs, nil
	case MovementAdjustment:
		return quantity, nil
	default:
		return 0, fmt.Errorf("unknown movement kind %q", k)
	}
}

// StockMovement is one append-only ledger entry. Rows are never updated or
// deleted.
type StockMovement struct {
	ID             string       `db:"id" json:"id"`
	ItemID         string       `db:"item_id" json:"item_id"`
	Kind           MovementKind `db:"kind" json:"kind"`
	Quantity       int          `db:"quantity" json:"quantity"` // signed delta
	QuantityBefore int          `db:"quantity_before" json:"quantity_before"`
	QuantityAfter  int          `db:"quantity_after" json:"quantity_after"`
	ReferenceType  *string      `db:"reference_type" json:"reference_type"` // "adjustment", "order", "external"
	ReferenceID    *string      `db:"reference_id" json:"reference_id"`
	Notes          *string      `db:"notes" json:"notes"`
	ActorID        *string      `db:"actor_id" json:"actor_id"`
	CreatedAt      time.Time    `db:"created_at" json:"created_at"`
}
