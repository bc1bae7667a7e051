package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkadlec/salonpos/internal/apperr"
	"github.com/mkadlec/salonpos/internal/cart"
	"github.com/mkadlec/salonpos/internal/model"
	"github.com/mkadlec/salonpos/internal/order/dto"
	stockdto "github.com/mkadlec/salonpos/internal/stock/dto"
	"github.com/mkadlec/salonpos/pkg/logger"
)

type fakeRepo struct {
	orders      []*model.Order
	items       []model.OrderItem
	failOrder   error
	failItems   error
	itemsCalled bool
}

func (r *fakeRepo) InsertOrder(_ context.Context, o *model.Order) error {
	if r.failOrder != nil {
		return r.failOrder
	}
	r.orders = append(r.orders, o)
	return nil
}

func (r *fakeRepo) InsertOrderItems(_ context.Context, items []model.OrderItem) error {
	r.itemsCalled = true
	if r.failItems != nil {
		return r.failItems
	}
	r.items = append(r.items, items...)
	return nil
}

func (r *fakeRepo) FindByID(context.Context, string) (*model.Order, error)   { return nil, nil }
func (r *fakeRepo) FindItems(context.Context, string) ([]model.OrderItem, error) {
	return nil, nil
}
func (r *fakeRepo) FindAll(context.Context, *dto.OrderFilters) ([]model.Order, int, error) {
	return nil, 0, nil
}

type fakeStockUC struct {
	available map[string]int
	sales     []*stockdto.OrderMovementInput
	failSale  error
}

func (f *fakeStockUC) Projection(_ context.Context, itemID string) (*model.Inventory, error) {
	qty := f.available[itemID]
	return &model.Inventory{ItemID: itemID, Quantity: qty, AvailableQuantity: qty}, nil
}

func (f *fakeStockUC) AvailableStock(_ context.Context, itemID string) (int, error) {
	return f.available[itemID], nil
}

func (f *fakeStockUC) Adjust(context.Context, *stockdto.AdjustStockInput) (*model.Inventory, error) {
	return nil, errors.New("not used")
}

func (f *fakeStockUC) ApplySale(_ context.Context, input *stockdto.OrderMovementInput) (*model.Inventory, error) {
	if f.failSale != nil {
		return nil, f.failSale
	}
	f.available[input.ItemID] -= input.Quantity
	f.sales = append(f.sales, input)
	qty := f.available[input.ItemID]
	return &model.Inventory{ItemID: input.ItemID, Quantity: qty, AvailableQuantity: qty}, nil
}

func (f *fakeStockUC) ApplyReturn(context.Context, *stockdto.OrderMovementInput) (*model.Inventory, error) {
	return nil, errors.New("not used")
}

func (f *fakeStockUC) SetReserved(context.Context, string, int) (*model.Inventory, error) {
	return nil, errors.New("not used")
}

func (f *fakeStockUC) Movements(context.Context, *stockdto.MovementFilters) ([]model.StockMovement, int, error) {
	return nil, 0, nil
}

func (f *fakeStockUC) Rebuild(context.Context, string) (*model.Inventory, error) {
	return nil, errors.New("not used")
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func line(itemID, name, price, vat string, qty int, tracked bool) cart.Line {
	return cart.Line{
		ItemID:         itemID,
		ItemName:       name,
		Kind:           model.ItemKindProduct,
		UnitPrice:      dec(price),
		VATPercentage:  dec(vat),
		Quantity:       qty,
		TrackInventory: tracked,
	}
}

func checkoutInput(lines ...cart.Line) *dto.CheckoutInput {
	return &dto.CheckoutInput{
		CashierID:     "cashier-1",
		PaymentMethod: model.PaymentCash,
		Lines:         lines,
	}
}

func TestCheckoutValidation(t *testing.T) {
	uc := NewOrderUseCase(&fakeRepo{}, &fakeStockUC{available: map[string]int{}}, nil, logger.NewNop())

	_, err := uc.Checkout(context.Background(), &dto.CheckoutInput{
		CashierID:     "cashier-1",
		PaymentMethod: model.PaymentCash,
	})
	assert.True(t, errors.Is(err, apperr.ErrEmptyCart))

	_, err = uc.Checkout(context.Background(), &dto.CheckoutInput{
		PaymentMethod: model.PaymentCash,
		Lines:         []cart.Line{line("itm-1", "Oil", "500", "21", 1, false)},
	})
	assert.True(t, errors.Is(err, apperr.ErrUnauthenticated))

	_, err = uc.Checkout(context.Background(), &dto.CheckoutInput{
		CashierID:     "cashier-1",
		PaymentMethod: "cheque",
		Lines:         []cart.Line{line("itm-1", "Oil", "500", "21", 1, false)},
	})
	assert.Error(t, err)
}

func TestCheckoutPersistsOrderItemsAndStock(t *testing.T) {
	repo := &fakeRepo{}
	stockUC := &fakeStockUC{available: map[string]int{"itm-2": 5}}
	uc := NewOrderUseCase(repo, stockUC, nil, logger.NewNop())

	result, err := uc.Checkout(context.Background(), checkoutInput(
		line("itm-1", "Massage 60min", "500", "21", 2, false),
		line("itm-2", "Massage oil", "250", "21", 1, true),
	))
	require.NoError(t, err)

	ord := result.Order
	assert.Equal(t, model.OrderCompleted, ord.Status)
	assert.True(t, strings.Contains(ord.OrderNumber, "-"))
	require.Len(t, repo.orders, 1)
	require.Len(t, repo.items, 2)

	// totals independently recomputed equal the sum over items
	sumSubtotal := decimal.Zero
	sumVAT := decimal.Zero
	sumTotal := decimal.Zero
	for _, it := range repo.items {
		sumSubtotal = sumSubtotal.Add(it.Subtotal)
		sumVAT = sumVAT.Add(it.VATAmount)
		sumTotal = sumTotal.Add(it.Total)
	}
	assert.True(t, ord.Subtotal.Equal(sumSubtotal))
	assert.True(t, ord.VATAmount.Equal(sumVAT))
	assert.True(t, ord.Total.Equal(sumTotal))
	// 2x500 at 21% + 1x250 at 21% = 1210 + 302.5
	assert.True(t, ord.Total.Equal(dec("1512.5")))

	// only the tracked line produced a sale movement
	require.Len(t, stockUC.sales, 1)
	assert.Equal(t, "itm-2", stockUC.sales[0].ItemID)
	assert.Equal(t, 1, stockUC.sales[0].Quantity)
	assert.Equal(t, ord.OrderNumber, stockUC.sales[0].OrderNumber)

	// updated projection returned with the result, no second read needed
	require.Len(t, result.Projections, 1)
	assert.Equal(t, 4, result.Projections[0].AvailableQuantity)
}

func TestCheckoutFailureBeforeHeaderIsPlain(t *testing.T) {
	repo := &fakeRepo{failOrder: errors.New("unique violation")}
	uc := NewOrderUseCase(repo, &fakeStockUC{available: map[string]int{}}, nil, logger.NewNop())

	_, err := uc.Checkout(context.Background(), checkoutInput(line("itm-1", "Oil", "500", "21", 1, false)))
	require.Error(t, err)
	assert.False(t, errors.Is(err, apperr.ErrPartialCommit))
	assert.False(t, repo.itemsCalled)
}

func TestCheckoutItemsFailureIsPartialCommit(t *testing.T) {
	repo := &fakeRepo{failItems: errors.New("connection reset")}
	stockUC := &fakeStockUC{available: map[string]int{"itm-1": 5}}
	uc := NewOrderUseCase(repo, stockUC, nil, logger.NewNop())

	_, err := uc.Checkout(context.Background(), checkoutInput(line("itm-1", "Oil", "500", "21", 1, true)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrPartialCommit))
	// the stock step never ran
	assert.Empty(t, stockUC.sales)
}

func TestCheckoutStockFailureIsPartialCommit(t *testing.T) {
	repo := &fakeRepo{}
	stockUC := &fakeStockUC{
		available: map[string]int{"itm-1": 0},
		failSale:  apperr.ErrInsufficientStock,
	}
	uc := NewOrderUseCase(repo, stockUC, nil, logger.NewNop())

	_, err := uc.Checkout(context.Background(), checkoutInput(line("itm-1", "Oil", "500", "21", 1, true)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrPartialCommit))
	// header and items were persisted before movements failed
	assert.Len(t, repo.orders, 1)
	assert.Len(t, repo.items, 1)
}

func TestCheckoutStoreTimeoutIsStorageUnavailable(t *testing.T) {
	repo := &fakeRepo{failOrder: context.DeadlineExceeded}
	uc := NewOrderUseCase(repo, &fakeStockUC{available: map[string]int{}}, nil, logger.NewNop())

	_, err := uc.Checkout(context.Background(), checkoutInput(line("itm-1", "Oil", "500", "21", 1, false)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrStorageUnavailable))
}
