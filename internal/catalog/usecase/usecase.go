package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mkadlec/salonpos/internal/apperr"
	"github.com/mkadlec/salonpos/internal/catalog"
	"github.com/mkadlec/salonpos/internal/catalog/dto"
	"github.com/mkadlec/salonpos/internal/model"
	"github.com/mkadlec/salonpos/pkg/cache"
	"github.com/mkadlec/salonpos/pkg/logger"
)

const (
	activeListCacheKey = "catalog:active"
	activeListCacheTTL = 5 * time.Minute
)

var hundred = decimal.NewFromInt(100)

type catalogUseCase struct {
	repo   catalog.Repository
	cache  *cache.RedisClient
	logger logger.ZapLogger
}

func NewCatalogUseCase(repo catalog.Repository, cache *cache.RedisClient, log logger.ZapLogger) catalog.UseCase {
	return &catalogUseCase{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

func (uc *catalogUseCase) CreateItem(ctx context.Context, input *dto.CreateItemInput) (*model.SellableItem, error) {
	if err := uc.validateItemInput(ctx, input.Name, input.Kind, input.Price, input.VATRateID, input.MinStock); err != nil {
		return nil, err
	}

	now := time.Now()
	item := &model.SellableItem{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:           input.Name,
		Description:    optional(input.Description),
		Kind:           input.Kind,
		Price:          input.Price,
		PurchasePrice:  input.PurchasePrice,
		VATRateID:      input.VATRateID,
		TrackInventory: input.TrackInventory,
		MinStock:       input.MinStock,
		IsActive:       true,
	}
	if input.Kind == model.ItemKindService && input.DurationMinutes > 0 {
		d := input.DurationMinutes
		item.DurationMinutes = &d
	}
	if !input.TrackInventory {
		item.MinStock = 0
	}

	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	go uc.invalidateActiveCache(context.Background())
	return item, nil
}

func (uc *catalogUseCase) UpdateItem(ctx context.Context, input *dto.UpdateItemInput) (*model.SellableItem, error) {
	item, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: item %s", apperr.ErrNotFound, input.ID)
	}

	if err := uc.validateItemInput(ctx, input.Name, input.Kind, input.Price, input.VATRateID, input.MinStock); err != nil {
		return nil, err
	}

	item.Name = input.Name
	item.Description = optional(input.Description)
	item.Kind = input.Kind
	item.Price = input.Price
	item.PurchasePrice = input.PurchasePrice
	item.VATRateID = input.VATRateID
	item.TrackInventory = input.TrackInventory
	item.MinStock = input.MinStock
	item.IsActive = input.IsActive
	item.DurationMinutes = nil
	if input.Kind == model.ItemKindService && input.DurationMinutes > 0 {
		d := input.DurationMinutes
		item.DurationMinutes = &d
	}
	if !input.TrackInventory {
		item.MinStock = 0
	}
	item.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	go uc.invalidateActiveCache(context.Background())
	return item, nil
}

func (uc *catalogUseCase) validateItemInput(ctx context.Context, name string, kind model.ItemKind, price decimal.Decimal, vatRateID string, minStock int) error {
	if name == "" {
		return errors.New("item name is required")
	}
	if !kind.Valid() {
		return fmt.Errorf("unknown item kind %q", kind)
	}
	if price.IsNegative() {
		return fmt.Errorf("%w: price %s is negative", apperr.ErrInvalidPricingInput, price)
	}
	if minStock < 0 {
		return errors.New("min stock must not be negative")
	}

	rate, err := uc.repo.FindVATRateByID(ctx, vatRateID)
	if err != nil {
		return err
	}
	if rate == nil {
		return fmt.Errorf("%w: vat rate %s", apperr.ErrNotFound, vatRateID)
	}
	if !rate.IsActive {
		return fmt.Errorf("vat rate %s is inactive", rate.Name)
	}
	return nil
}

func (uc *catalogUseCase) GetItem(ctx context.Context, id string) (*model.SellableItem, error) {
	item, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: item %s", apperr.ErrNotFound, id)
	}
	return item, nil
}

func (uc *catalogUseCase) ListItems(ctx context.Context, filters *dto.ItemFilters) ([]model.SellableItem, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *catalogUseCase) DeactivateItem(ctx context.Context, id string) error {
	if err := uc.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	go uc.invalidateActiveCache(context.Background())
	return nil
}

// ListActive serves the till's item grid: every active item with its VAT
// percentage and stock projection, cached briefly in redis. Stock counts in
// the cached copy can lag a sale by up to the TTL; the checkout path never
// reads this cache.
func (uc *catalogUseCase) ListActive(ctx context.Context) ([]model.SellableItemView, error) {
	if uc.cache != nil {
		val, err := uc.cache.Client.Get(ctx, activeListCacheKey).Result()
		if err == nil {
			var views []model.SellableItemView
			if err := json.Unmarshal([]byte(val), &views); err == nil {
				return views, nil
			}
		}
	}

	views, err := uc.repo.ListActiveViews(ctx)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(views); err == nil {
			uc.cache.Client.Set(ctx, activeListCacheKey, data, activeListCacheTTL)
		}
	}
	return views, nil
}

func (uc *catalogUseCase) GetActiveView(ctx context.Context, id string) (*model.SellableItemView, error) {
	view, err := uc.repo.FindViewByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if view == nil || !view.IsActive {
		return nil, fmt.Errorf("%w: active item %s", apperr.ErrNotFound, id)
	}
	return view, nil
}

func (uc *catalogUseCase) ListLowStock(ctx context.Context, page, pageSize int) ([]model.SellableItemView, int, error) {
	return uc.repo.ListLowStock(ctx, page, pageSize)
}

func (uc *catalogUseCase) ListVATRates(ctx context.Context, activeOnly bool) ([]model.VATRate, error) {
	return uc.repo.ListVATRates(ctx, activeOnly)
}

func (uc *catalogUseCase) CreateVATRate(ctx context.Context, input *dto.CreateVATRateInput) (*model.VATRate, error) {
	if input.Name == "" {
		return nil, errors.New("vat rate name is required")
	}
	if input.Rate.IsNegative() || input.Rate.GreaterThan(hundred) {
		return nil, fmt.Errorf("%w: vat percentage %s outside [0,100]", apperr.ErrInvalidPricingInput, input.Rate)
	}

	rate := &model.VATRate{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Rate:      input.Rate,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.CreateVATRate(ctx, rate); err != nil {
		return nil, err
	}
	return rate, nil
}

func (uc *catalogUseCase) invalidateActiveCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Client.Del(ctx, activeListCacheKey).Err(); err != nil {
		uc.logger.Warn("failed to invalidate catalog cache", zap.Error(err))
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
