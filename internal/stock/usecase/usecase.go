package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mkadlec/salonpos/internal/model"
	"github.com/mkadlec/salonpos/internal/stock"
	"github.com/mkadlec/salonpos/internal/stock/dto"
	"github.com/mkadlec/salonpos/pkg/logger"
)

const (
	lockTTL      = 5 * time.Second
	lockAttempts = 3
	lockBackoff  = 100 * time.Millisecond
)

type stockUseCase struct {
	repo   stock.Repository
	locker stock.Locker
	logger logger.ZapLogger
}

func NewStockUseCase(repo stock.Repository, locker stock.Locker, log logger.ZapLogger) stock.UseCase {
	return &stockUseCase{
		repo:   repo,
		locker: locker,
		logger: log,
	}
}

func (uc *stockUseCase) Projection(ctx context.Context, itemID string) (*model.Inventory, error) {
	inv, err := uc.repo.GetByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		// Items with no movements yet project to zero stock.
		return &model.Inventory{ItemID: itemID}, nil
	}
	return inv, nil
}

func (uc *stockUseCase) AvailableStock(ctx context.Context, itemID string) (int, error) {
	inv, err := uc.Projection(ctx, itemID)
	if err != nil {
		return 0, err
	}
	return inv.AvailableQuantity, nil
}

// Adjust records a manual in/out/adjustment movement. Manual writes may force
// the projection negative; only the sale path carries the non-negativity
// guard.
func (uc *stockUseCase) Adjust(ctx context.Context, input *dto.AdjustStockInput) (*model.Inventory, error) {
	switch input.Kind {
	case model.MovementIn, model.MovementOut, model.MovementAdjustment:
	default:
		return nil, fmt.Errorf("movement kind %q not allowed for manual adjustment", input.Kind)
	}

	delta, err := input.Kind.SignQuantity(input.Quantity)
	if err != nil {
		return nil, err
	}

	unlock, err := uc.lock(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	inv, err := uc.repo.GetByItem(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if inv == nil {
		inv = &model.Inventory{
			ID:     uuid.New().String(),
			ItemID: input.ItemID,
		}
	}

	before := inv.Quantity
	inv.Quantity += delta
	inv.AvailableQuantity = inv.Quantity - inv.ReservedQuantity
	inv.UpdatedAt = now

	movement := &model.StockMovement{
		ID:             uuid.New().String(),
		ItemID:         input.ItemID,
		Kind:           input.Kind,
		Quantity:       delta,
		QuantityBefore: before,
		QuantityAfter:  inv.Quantity,
		ReferenceType:  optional(orDefault(input.ReferenceType, "adjustment")),
		ReferenceID:    optional(input.ReferenceID),
		Notes:          optional(input.Notes),
		ActorID:        optional(input.ActorID),
		CreatedAt:      now,
	}

	if err := uc.repo.AdjustWithMovement(ctx, inv, movement); err != nil {
		return nil, err
	}

	uc.logger.Info("stock adjusted",
		zap.String("item_id", input.ItemID),
		zap.String("kind", string(input.Kind)),
		zap.Int("delta", delta),
		zap.Int("quantity", inv.Quantity),
	)
	return inv, nil
}

func (uc *stockUseCase) ApplySale(ctx context.Context, input *dto.OrderMovementInput) (*model.Inventory, error) {
	return uc.applyOrderMovement(ctx, model.MovementSale, input)
}

func (uc *stockUseCase) ApplyReturn(ctx context.Context, input *dto.OrderMovementInput) (*model.Inventory, error) {
	return uc.applyOrderMovement(ctx, model.MovementReturn, input)
}

func (uc *stockUseCase) applyOrderMovement(ctx context.Context, kind model.MovementKind, input *dto.OrderMovementInput) (*model.Inventory, error) {
	delta, err := kind.SignQuantity(input.Quantity)
	if err != nil {
		return nil, err
	}

	unlock, err := uc.lock(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	movement := &model.StockMovement{
		ID:            uuid.New().String(),
		ItemID:        input.ItemID,
		Kind:          kind,
		Quantity:      delta,
		ReferenceType: optional("order"),
		ReferenceID:   optional(input.OrderNumber),
		ActorID:       optional(input.ActorID),
	}

	inv, err := uc.repo.ApplyWithGuard(ctx, movement)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("order stock movement applied",
		zap.String("item_id", input.ItemID),
		zap.String("kind", string(kind)),
		zap.String("order_number", input.OrderNumber),
		zap.Int("delta", delta),
	)
	return inv, nil
}

// SetReserved overwrites the manual reservation level. Reservations are not
// ledger movements; they only shrink what the till may sell.
func (uc *stockUseCase) SetReserved(ctx context.Context, itemID string, reserved int) (*model.Inventory, error) {
	if reserved < 0 {
		return nil, fmt.Errorf("reserved quantity must not be negative")
	}

	unlock, err := uc.lock(ctx, itemID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	inv, err := uc.repo.GetByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		inv = &model.Inventory{
			ID:     uuid.New().String(),
			ItemID: itemID,
		}
	}

	inv.ReservedQuantity = reserved
	inv.AvailableQuantity = inv.Quantity - inv.ReservedQuantity
	inv.UpdatedAt = time.Now()

	if err := uc.repo.RestoreProjection(ctx, inv); err != nil {
		return nil, err
	}

	uc.logger.Info("reserved stock set",
		zap.String("item_id", itemID),
		zap.Int("reserved", reserved),
	)
	return inv, nil
}

func (uc *stockUseCase) Movements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error) {
	return uc.repo.ListMovements(ctx, filters)
}

// Rebuild refolds the full movement log into the projection and persists the
// result. The fold is the durability guarantee: the projection must always be
// reproducible from the log alone.
func (uc *stockUseCase) Rebuild(ctx context.Context, itemID string) (*model.Inventory, error) {
	unlock, err := uc.lock(ctx, itemID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	movements, err := uc.repo.MovementsByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	inv, err := uc.repo.GetByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		inv = &model.Inventory{
			ID:     uuid.New().String(),
			ItemID: itemID,
		}
	}

	inv.Quantity = FoldMovements(movements)
	inv.AvailableQuantity = inv.Quantity - inv.ReservedQuantity
	inv.UpdatedAt = time.Now()

	if err := uc.repo.RestoreProjection(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// FoldMovements replays signed deltas in creation order.
func FoldMovements(movements []model.StockMovement) int {
	total := 0
	for _, m := range movements {
		total += m.Quantity
	}
	return total
}

func (uc *stockUseCase) lock(ctx context.Context, itemID string) (func(), error) {
	lockKey := "lock:stock:" + itemID
	lockValue := uuid.New().String()

	acquired := false
	for i := 0; i < lockAttempts; i++ {
		ok, err := uc.locker.AcquireLock(ctx, lockKey, lockValue, lockTTL)
		if err != nil {
			uc.logger.Error("failed to acquire stock lock", zap.Error(err))
		}
		if ok {
			acquired = true
			break
		}
		time.Sleep(lockBackoff)
	}
	if !acquired {
		return nil, fmt.Errorf("stock ledger busy for item %s, try again", itemID)
	}

	return func() {
		if err := uc.locker.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			uc.logger.Warn("failed to release stock lock", zap.Error(err))
		}
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
