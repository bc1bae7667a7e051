package usecase

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkadlec/salonpos/internal/apperr"
	"github.com/mkadlec/salonpos/internal/model"
	"github.com/mkadlec/salonpos/internal/stock/dto"
	"github.com/mkadlec/salonpos/pkg/logger"
)

type fakeLocker struct{}

func (fakeLocker) AcquireLock(context.Context, string, string, time.Duration) (bool, error) {
	return true, nil
}
func (fakeLocker) ReleaseLock(context.Context, string, string) error { return nil }

// fakeRepo keeps projections and the movement log in memory with the same
// semantics as the postgres repository, including the sale guard.
type fakeRepo struct {
	projections map[string]*model.Inventory
	movements   []model.StockMovement
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{projections: map[string]*model.Inventory{}}
}

func (r *fakeRepo) GetByItem(_ context.Context, itemID string) (*model.Inventory, error) {
	inv, ok := r.projections[itemID]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeRepo) RestoreProjection(_ context.Context, inv *model.Inventory) error {
	cp := *inv
	cp.AvailableQuantity = cp.Quantity - cp.ReservedQuantity
	r.projections[inv.ItemID] = &cp
	return nil
}

func (r *fakeRepo) ListMovements(_ context.Context, f *dto.MovementFilters) ([]model.StockMovement, int, error) {
	var out []model.StockMovement
	for _, m := range r.movements {
		if f.ItemID != "" && m.ItemID != f.ItemID {
			continue
		}
		if f.Kind != "" && string(m.Kind) != f.Kind {
			continue
		}
		out = append(out, m)
	}
	return out, len(out), nil
}

func (r *fakeRepo) MovementsByItem(_ context.Context, itemID string) ([]model.StockMovement, error) {
	var out []model.StockMovement
	for _, m := range r.movements {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeRepo) AdjustWithMovement(_ context.Context, inv *model.Inventory, movement *model.StockMovement) error {
	cp := *inv
	cp.AvailableQuantity = cp.Quantity - cp.ReservedQuantity
	r.projections[inv.ItemID] = &cp
	r.movements = append(r.movements, *movement)
	return nil
}

func (r *fakeRepo) ApplyWithGuard(_ context.Context, movement *model.StockMovement) (*model.Inventory, error) {
	inv, ok := r.projections[movement.ItemID]
	if !ok || inv.Quantity+movement.Quantity-inv.ReservedQuantity < 0 {
		return nil, apperr.ErrInsufficientStock
	}
	movement.QuantityBefore = inv.Quantity
	inv.Quantity += movement.Quantity
	inv.AvailableQuantity = inv.Quantity - inv.ReservedQuantity
	inv.UpdatedAt = time.Now()
	movement.QuantityAfter = inv.Quantity
	movement.CreatedAt = inv.UpdatedAt
	r.movements = append(r.movements, *movement)
	cp := *inv
	return &cp, nil
}

func newUC(repo *fakeRepo) *stockUseCase {
	return NewStockUseCase(repo, fakeLocker{}, logger.NewNop()).(*stockUseCase)
}

func TestAdjustSignConvention(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	uc := newUC(repo)

	// "in" normalizes to a positive delta no matter the operator's sign
	inv, err := uc.Adjust(ctx, &dto.AdjustStockInput{ItemID: "itm-1", Kind: model.MovementIn, Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, inv.Quantity)

	// "out" normalizes to negative
	inv, err = uc.Adjust(ctx, &dto.AdjustStockInput{ItemID: "itm-1", Kind: model.MovementOut, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 7, inv.Quantity)

	// "adjustment" keeps the caller's sign literally
	inv, err = uc.Adjust(ctx, &dto.AdjustStockInput{ItemID: "itm-1", Kind: model.MovementAdjustment, Quantity: -4})
	require.NoError(t, err)
	assert.Equal(t, 3, inv.Quantity)

	// stored movement quantities carry the resolved signs
	kinds := []int{}
	for _, m := range repo.movements {
		kinds = append(kinds, m.Quantity)
	}
	assert.Equal(t, []int{10, -3, -4}, kinds)
}

func TestAdjustRejectsSaleKind(t *testing.T) {
	uc := newUC(newFakeRepo())
	_, err := uc.Adjust(context.Background(), &dto.AdjustStockInput{ItemID: "itm-1", Kind: model.MovementSale, Quantity: 1})
	require.Error(t, err)
}

func TestManualAdjustmentMayGoNegative(t *testing.T) {
	ctx := context.Background()
	uc := newUC(newFakeRepo())

	inv, err := uc.Adjust(ctx, &dto.AdjustStockInput{ItemID: "itm-1", Kind: model.MovementAdjustment, Quantity: -5})
	require.NoError(t, err)
	assert.Equal(t, -5, inv.Quantity)
	assert.Equal(t, -5, inv.AvailableQuantity)
}

func TestSaleGuardRefusesOverdraw(t *testing.T) {
	ctx := context.Background()
	uc := newUC(newFakeRepo())

	_, err := uc.Adjust(ctx, &dto.AdjustStockInput{ItemID: "itm-1", Kind: model.MovementIn, Quantity: 2})
	require.NoError(t, err)

	inv, err := uc.ApplySale(ctx, &dto.OrderMovementInput{ItemID: "itm-1", Quantity: 2, OrderNumber: "250307-123456"})
	require.NoError(t, err)
	assert.Equal(t, 0, inv.AvailableQuantity)

	// the next unit isn't there to sell
	_, err = uc.ApplySale(ctx, &dto.OrderMovementInput{ItemID: "itm-1", Quantity: 1, OrderNumber: "250307-123457"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrInsufficientStock))
}

func TestReturnRestoresStock(t *testing.T) {
	ctx := context.Background()
	uc := newUC(newFakeRepo())

	_, err := uc.Adjust(ctx, &dto.AdjustStockInput{ItemID: "itm-1", Kind: model.MovementIn, Quantity: 5})
	require.NoError(t, err)
	_, err = uc.ApplySale(ctx, &dto.OrderMovementInput{ItemID: "itm-1", Quantity: 5, OrderNumber: "250307-000001"})
	require.NoError(t, err)

	inv, err := uc.ApplyReturn(ctx, &dto.OrderMovementInput{ItemID: "itm-1", Quantity: 2, OrderNumber: "250307-000001"})
	require.NoError(t, err)
	assert.Equal(t, 2, inv.Quantity)
}

func TestProjectionDefaultsToZero(t *testing.T) {
	uc := newUC(newFakeRepo())
	inv, err := uc.Projection(context.Background(), "never-moved")
	require.NoError(t, err)
	assert.Equal(t, 0, inv.Quantity)
	assert.Equal(t, 0, inv.ReservedQuantity)
	assert.Equal(t, 0, inv.AvailableQuantity)
}

func TestRebuildMatchesIncrementalProjection(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	uc := newUC(repo)

	steps := []*dto.AdjustStockInput{
		{ItemID: "itm-1", Kind: model.MovementIn, Quantity: 10},
		{ItemID: "itm-1", Kind: model.MovementOut, Quantity: 3},
		{ItemID: "itm-1", Kind: model.MovementAdjustment, Quantity: -4},
	}
	for _, s := range steps {
		_, err := uc.Adjust(ctx, s)
		require.NoError(t, err)
	}
	_, err := uc.ApplySale(ctx, &dto.OrderMovementInput{ItemID: "itm-1", Quantity: 2, OrderNumber: "250307-000009"})
	require.NoError(t, err)

	incremental, err := uc.Projection(ctx, "itm-1")
	require.NoError(t, err)
	assert.Equal(t, 1, incremental.Quantity)

	rebuilt, err := uc.Rebuild(ctx, "itm-1")
	require.NoError(t, err)
	assert.Equal(t, incremental.Quantity, rebuilt.Quantity)
	assert.Equal(t, rebuilt.Quantity-rebuilt.ReservedQuantity, rebuilt.AvailableQuantity)
}

func TestFoldMovements(t *testing.T) {
	movements := []model.StockMovement{
		{Quantity: 10}, {Quantity: -3}, {Quantity: -4},
	}
	assert.Equal(t, 3, FoldMovements(movements))
	assert.Equal(t, 0, FoldMovements(nil))
}

func TestSetReservedShrinksAvailable(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	uc := newUC(repo)

	_, err := uc.Adjust(ctx, &dto.AdjustStockInput{ItemID: "itm-1", Kind: model.MovementIn, Quantity: 10})
	require.NoError(t, err)

	inv, err := uc.SetReserved(ctx, "itm-1", 8)
	require.NoError(t, err)
	assert.Equal(t, 10, inv.Quantity)
	assert.Equal(t, 8, inv.ReservedQuantity)
	assert.Equal(t, 2, inv.AvailableQuantity)

	// a sale beyond the unreserved remainder is refused
	_, err = uc.ApplySale(ctx, &dto.OrderMovementInput{ItemID: "itm-1", Quantity: 3, OrderNumber: "250307-000010"})
	assert.True(t, errors.Is(err, apperr.ErrInsufficientStock))

	_, err = uc.SetReserved(ctx, "itm-1", -1)
	assert.Error(t, err)
}
