// Package cart holds one till's in-progress sale. A cart has a single writer
// (the active cashier session); the only I/O it performs is the read-only
// stock-availability check on add and quantity change.
package cart

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mkadlec/salonpos/internal/apperr"
	"github.com/mkadlec/salonpos/internal/model"
	"github.com/mkadlec/salonpos/internal/pricing"
)

// StockChecker reports available stock for tracked items.
type StockChecker interface {
	AvailableStock(ctx context.Context, itemID string) (int, error)
}

// Line is one cart entry. Price and VAT are snapshotted from the item's
// configuration at add-time and never re-read.
type Line struct {
	ItemID         string          `json:"item_id"`
	ItemName       string          `json:"item_name"`
	Kind           model.ItemKind  `json:"kind"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	VATPercentage  decimal.Decimal `json:"vat_percentage"`
	Quantity       int             `json:"quantity"`
	TrackInventory bool            `json:"track_inventory"`
	pricing.LineTotals
}

type Cart struct {
	cashierID  string
	customerID *string
	lines      []*Line
	index      map[string]*Line
	stock      StockChecker
}

func New(cashierID string, stock StockChecker) *Cart {
	return &Cart{
		cashierID: cashierID,
		index:     map[string]*Line{},
		stock:     stock,
	}
}

func (c *Cart) CashierID() string   { return c.cashierID }
func (c *Cart) CustomerID() *string { return c.customerID }
func (c *Cart) IsEmpty() bool       { return len(c.lines) == 0 }

func (c *Cart) SetCustomer(customerID string) {
	if customerID == "" {
		c.customerID = nil
		return
	}
	c.customerID = &customerID
}

// AddItem inserts the item at quantity 1, or bumps the existing line by one.
// Tracked items with nothing available are refused before a line is created.
func (c *Cart) AddItem(ctx context.Context, item *model.SellableItemView) error {
	if line, ok := c.index[item.ID]; ok {
		return c.SetQuantity(ctx, item.ID, line.Quantity+1)
	}

	if item.TrackInventory {
		available, err := c.stock.AvailableStock(ctx, item.ID)
		if err != nil {
			return err
		}
		if available <= 0 {
			return fmt.Errorf("%w: %s", apperr.ErrOutOfStock, item.Name)
		}
	}

	totals, err := pricing.ComputeLine(item.Price, 1, item.VATPercentage)
	if err != nil {
		return err
	}

	line := &Line{
		ItemID:         item.ID,
		ItemName:       item.Name,
		Kind:           item.Kind,
		UnitPrice:      item.Price,
		VATPercentage:  item.VATPercentage,
		Quantity:       1,
		TrackInventory: item.TrackInventory,
		LineTotals:     totals,
	}
	c.lines = append(c.lines, line)
	c.index[item.ID] = line
	return nil
}

// SetQuantity recomputes the line at the new quantity; zero or less removes
// it. Raising a tracked line above available stock is rejected, never
// clamped, so the cashier sees the shortage instead of a silently smaller
// sale.
func (c *Cart) SetQuantity(ctx context.Context, itemID string, quantity int) error {
	line, ok := c.index[itemID]
	if !ok {
		return nil
	}

	if quantity <= 0 {
		c.RemoveItem(itemID)
		return nil
	}

	if line.TrackInventory {
		available, err := c.stock.AvailableStock(ctx, itemID)
		if err != nil {
			return err
		}
		if quantity > available {
			return fmt.Errorf("%w: %s has %d available, %d requested",
				apperr.ErrInsufficientStock, line.ItemName, available, quantity)
		}
	}

	totals, err := pricing.ComputeLine(line.UnitPrice, quantity, line.VATPercentage)
	if err != nil {
		return err
	}
	line.Quantity = quantity
	line.LineTotals = totals
	return nil
}

// RemoveItem is a no-op when the item is not in the cart.
func (c *Cart) RemoveItem(itemID string) {
	if _, ok := c.index[itemID]; !ok {
		return
	}
	delete(c.index, itemID)
	for i, line := range c.lines {
		if line.ItemID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			break
		}
	}
}

// Clear drops all lines and the customer association.
func (c *Cart) Clear() {
	c.lines = nil
	c.index = map[string]*Line{}
	c.customerID = nil
}

func (c *Cart) Totals() pricing.LineTotals {
	lines := make([]pricing.LineTotals, len(c.lines))
	for i, line := range c.lines {
		lines[i] = line.LineTotals
	}
	return pricing.ComputeOrderTotals(lines)
}

// Snapshot returns a copy of the lines in insertion order; the commit
// workflow persists from the snapshot so later cart edits can't race it.
func (c *Cart) Snapshot() []Line {
	out := make([]Line, len(c.lines))
	for i, line := range c.lines {
		out[i] = *line
	}
	return out
}
