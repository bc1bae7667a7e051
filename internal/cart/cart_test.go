package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkadlec/salonpos/internal/apperr"
	"github.com/mkadlec/salonpos/internal/model"
)

type fakeStock map[string]int

func (f fakeStock) AvailableStock(_ context.Context, itemID string) (int, error) {
	return f[itemID], nil
}

func view(id, name string, price string, vat string, tracked bool) *model.SellableItemView {
	p, _ := decimal.NewFromString(price)
	v, _ := decimal.NewFromString(vat)
	return &model.SellableItemView{
		SellableItem: model.SellableItem{
			BaseModel:      model.BaseModel{ID: id},
			Name:           name,
			Kind:           model.ItemKindProduct,
			Price:          p,
			TrackInventory: tracked,
		},
		VATPercentage: v,
	}
}

func TestAddItemSnapshotsPriceAndVAT(t *testing.T) {
	ctx := context.Background()
	c := New("cashier-1", fakeStock{})

	item := view("itm-1", "Massage oil", "500", "21", false)
	require.NoError(t, c.AddItem(ctx, item))

	// a later price change on the catalog item must not reach the line
	item.Price = decimal.NewFromInt(999)

	snap := c.Snapshot()
	require.Len(t, snap, 1)
	assert.True(t, snap[0].UnitPrice.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, 1, snap[0].Quantity)
	assert.True(t, snap[0].Total.Equal(decimal.NewFromInt(605)))
}

func TestAddTwiceEqualsSetQuantityTwo(t *testing.T) {
	ctx := context.Background()
	item := view("itm-1", "Massage oil", "500", "21", false)

	a := New("cashier-1", fakeStock{})
	require.NoError(t, a.AddItem(ctx, item))
	require.NoError(t, a.AddItem(ctx, item))

	b := New("cashier-1", fakeStock{})
	require.NoError(t, b.AddItem(ctx, item))
	require.NoError(t, b.SetQuantity(ctx, "itm-1", 2))

	assert.Equal(t, a.Snapshot(), b.Snapshot())
	assert.True(t, a.Totals().Total.Equal(b.Totals().Total))
}

func TestAddOutOfStockItemLeavesCartUnchanged(t *testing.T) {
	ctx := context.Background()
	c := New("cashier-1", fakeStock{"itm-1": 0})

	err := c.AddItem(ctx, view("itm-1", "Hot stones", "250", "21", true))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrOutOfStock))
	assert.True(t, c.IsEmpty())
}

func TestSetQuantityRejectsOverAvailable(t *testing.T) {
	ctx := context.Background()
	c := New("cashier-1", fakeStock{"itm-1": 3})

	require.NoError(t, c.AddItem(ctx, view("itm-1", "Hot stones", "250", "21", true)))

	err := c.SetQuantity(ctx, "itm-1", 4)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrInsufficientStock))

	// prior state is preserved
	snap := c.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, 1, snap[0].Quantity)

	require.NoError(t, c.SetQuantity(ctx, "itm-1", 3))
	assert.Equal(t, 3, c.Snapshot()[0].Quantity)
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	ctx := context.Background()
	c := New("cashier-1", fakeStock{})

	require.NoError(t, c.AddItem(ctx, view("itm-1", "Massage oil", "500", "21", false)))
	require.NoError(t, c.SetQuantity(ctx, "itm-1", 0))
	assert.True(t, c.IsEmpty())
}

func TestRemoveAbsentItemIsNoOp(t *testing.T) {
	c := New("cashier-1", fakeStock{})
	c.RemoveItem("ghost")
	assert.True(t, c.IsEmpty())

	// setting quantity on an absent line is a no-op too, not an error
	require.NoError(t, c.SetQuantity(context.Background(), "ghost", 5))
}

func TestTotalsSumComponentsAcrossLines(t *testing.T) {
	ctx := context.Background()
	c := New("cashier-1", fakeStock{})

	require.NoError(t, c.AddItem(ctx, view("itm-1", "Massage 60min", "890", "21", false)))
	require.NoError(t, c.AddItem(ctx, view("itm-2", "Tea", "33.33", "15", false)))
	require.NoError(t, c.SetQuantity(ctx, "itm-1", 2))

	totals := c.Totals()
	snap := c.Snapshot()
	sumSubtotal := snap[0].Subtotal.Add(snap[1].Subtotal)
	sumVAT := snap[0].VATAmount.Add(snap[1].VATAmount)
	assert.True(t, totals.Subtotal.Equal(sumSubtotal))
	assert.True(t, totals.VATAmount.Equal(sumVAT))
	assert.True(t, totals.Total.Equal(sumSubtotal.Add(sumVAT)))
}

func TestClearDropsLinesAndCustomer(t *testing.T) {
	ctx := context.Background()
	c := New("cashier-1", fakeStock{})
	c.SetCustomer("cust-9")

	require.NoError(t, c.AddItem(ctx, view("itm-1", "Massage oil", "500", "21", false)))
	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Nil(t, c.CustomerID())
	assert.True(t, c.Totals().Total.IsZero())
}
