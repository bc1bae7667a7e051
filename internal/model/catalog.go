package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ItemKind string

const (
	ItemKindService ItemKind = "service"
	ItemKindProduct ItemKind = "product"
)

func (k ItemKind) Valid() bool {
	return k == ItemKindService || k == ItemKindProduct
}

type VATRate struct {
	ID        string          `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	Rate      decimal.Decimal `db:"rate" json:"rate"` // percentage, 0-100
	IsActive  bool            `db:"is_active" json:"is_active"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// SellableItem is a service or retail product offered at the till. Price and
// VAT are configuration-time values; the cart snapshots them at add-time, so
// edits here never touch an in-progress cart or a completed order.
type SellableItem struct {
	BaseModel
	Name            string           `db:"name" json:"name"`
	Description     *string          `db:"description" json:"description"`
	Kind            ItemKind         `db:"kind" json:"kind"`
	Price           decimal.Decimal  `db:"price" json:"price"`
	PurchasePrice   *decimal.Decimal `db:"purchase_price" json:"purchase_price"`
	DurationMinutes *int             `db:"duration_minutes" json:"duration_minutes"` // services only
	VATRateID       string           `db:"vat_rate_id" json:"vat_rate_id"`
	TrackInventory  bool             `db:"track_inventory" json:"track_inventory"`
	MinStock        int              `db:"min_stock" json:"min_stock"`
	IsActive        bool             `db:"is_active" json:"is_active"`
}

// SellableItemView is the composed read model served to the till: the item
// joined with its VAT percentage and, for tracked items, the inventory
// projection. Assembled by the catalog repository, never written.
type SellableItemView struct {
	SellableItem
	VATRateName    string          `db:"vat_rate_name" json:"vat_rate_name"`
	VATPercentage  decimal.Decimal `db:"vat_percentage" json:"vat_percentage"`
	CurrentStock   int             `db:"current_stock" json:"current_stock"`
	ReservedStock  int             `db:"reserved_stock" json:"reserved_stock"`
	AvailableStock int             `db:"available_stock" json:"available_stock"`
}
