package usecase

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mkadlec/salonpos/internal/apperr"
	"github.com/mkadlec/salonpos/internal/model"
	"github.com/mkadlec/salonpos/internal/order"
	"github.com/mkadlec/salonpos/internal/order/dto"
	"github.com/mkadlec/salonpos/internal/pricing"
	"github.com/mkadlec/salonpos/internal/stock"
	stockdto "github.com/mkadlec/salonpos/internal/stock/dto"
	"github.com/mkadlec/salonpos/pkg/logger"
)

// EventPublisher emits the completed-order feed. Publishing is best-effort;
// a broker outage never fails a committed sale.
type EventPublisher interface {
	Publish(ctx context.Context, key, value []byte) error
}

type commitStep string

const (
	stepPersistOrder commitStep = "persist_order"
	stepPersistItems commitStep = "persist_items"
	stepApplyStock   commitStep = "apply_stock"
)

type orderUseCase struct {
	repo      order.Repository
	stockUC   stock.UseCase
	publisher EventPublisher
	logger    logger.ZapLogger
}

func NewOrderUseCase(repo order.Repository, stockUC stock.UseCase, publisher EventPublisher, log logger.ZapLogger) order.UseCase {
	return &orderUseCase{
		repo:      repo,
		stockUC:   stockUC,
		publisher: publisher,
		logger:    log,
	}
}

// Checkout commits a cart snapshot: validate, price the lines independently,
// persist the header, persist the items, then append one sale movement per
// tracked line. A failure after the header leaves reconcilable state behind
// and is reported as a partial commit; the caller keeps the cart for retry.
func (uc *orderUseCase) Checkout(ctx context.Context, input *dto.CheckoutInput) (*dto.CheckoutResult, error) {
	if input.CashierID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	if len(input.Lines) == 0 {
		return nil, apperr.ErrEmptyCart
	}
	if !input.PaymentMethod.Valid() {
		return nil, fmt.Errorf("unknown payment method %q", input.PaymentMethod)
	}

	// Re-derive every line from its frozen price/VAT/quantity instead of
	// copying the cart's display values.
	now := time.Now()
	orderID := uuid.New().String()
	items := make([]model.OrderItem, 0, len(input.Lines))
	lineTotals := make([]pricing.LineTotals, 0, len(input.Lines))
	for _, line := range input.Lines {
		totals, err := pricing.ComputeLine(line.UnitPrice, line.Quantity, line.VATPercentage)
		if err != nil {
			return nil, err
		}
		lineTotals = append(lineTotals, totals)
		items = append(items, model.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			ItemID:    line.ItemID,
			ItemName:  line.ItemName,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			VATRate:   line.VATPercentage,
			Subtotal:  totals.Subtotal,
			VATAmount: totals.VATAmount,
			Total:     totals.Total,
		})
	}
	totals := pricing.ComputeOrderTotals(lineTotals)

	ord := &model.Order{
		BaseModel: model.BaseModel{
			ID:        orderID,
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderNumber:   order.GenerateNumber(now),
		CustomerID:    input.CustomerID,
		CashierID:     input.CashierID,
		Subtotal:      totals.Subtotal,
		VATAmount:     totals.VATAmount,
		Total:         totals.Total,
		PaymentMethod: input.PaymentMethod,
		Status:        model.OrderCompleted,
		Notes:         optional(input.Notes),
	}

	if err := uc.repo.InsertOrder(ctx, ord); err != nil {
		// Nothing persisted yet, a plain failure the operator can retry.
		return nil, classifyStoreErr(err)
	}

	if err := uc.repo.InsertOrderItems(ctx, items); err != nil {
		return nil, uc.partial(ord, stepPersistItems, err)
	}

	projections := make([]*model.Inventory, 0, len(input.Lines))
	for _, line := range input.Lines {
		if !line.TrackInventory {
			continue
		}
		inv, err := uc.stockUC.ApplySale(ctx, &stockdto.OrderMovementInput{
			ItemID:      line.ItemID,
			Quantity:    line.Quantity,
			OrderNumber: ord.OrderNumber,
			ActorID:     input.CashierID,
		})
		if err != nil {
			return nil, uc.partial(ord, stepApplyStock, err)
		}
		projections = append(projections, inv)
	}

	ord.Items = items
	uc.logReceipt(ord)
	uc.publishCompleted(ord)

	return &dto.CheckoutResult{Order: ord, Projections: projections}, nil
}

// partial marks a commit that left the order header (and possibly items)
// behind without the rest of the unit. The operator must reconcile; the cart
// is preserved by the caller.
func (uc *orderUseCase) partial(ord *model.Order, step commitStep, err error) error {
	uc.logger.Error("order commit failed mid-sequence",
		zap.String("order_number", ord.OrderNumber),
		zap.String("step", string(step)),
		zap.Error(err),
	)
	return fmt.Errorf("%w: order %s failed at %s: %v", apperr.ErrPartialCommit, ord.OrderNumber, step, err)
}

func (uc *orderUseCase) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	ord, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, classifyStoreErr(err)
	}
	if ord == nil {
		return nil, fmt.Errorf("%w: order %s", apperr.ErrNotFound, id)
	}
	items, err := uc.repo.FindItems(ctx, id)
	if err != nil {
		return nil, classifyStoreErr(err)
	}
	ord.Items = items
	return ord, nil
}

func (uc *orderUseCase) ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error) {
	orders, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, classifyStoreErr(err)
	}
	return orders, count, nil
}

// logReceipt stands in for receipt printing, which is out of scope for this
// service.
func (uc *orderUseCase) logReceipt(ord *model.Order) {
	fields := []zap.Field{
		zap.String("order_number", ord.OrderNumber),
		zap.String("payment_method", string(ord.PaymentMethod)),
		zap.String("subtotal", ord.Subtotal.StringFixed(2)),
		zap.String("vat_amount", ord.VATAmount.StringFixed(2)),
		zap.String("total", ord.Total.StringFixed(2)),
		zap.Int("line_count", len(ord.Items)),
	}
	uc.logger.Info("receipt", fields...)
}

type orderCompletedEvent struct {
	EventID   string                `json:"event_id"`
	EventType string                `json:"event_type"`
	Payload   orderCompletedPayload `json:"payload"`
	Timestamp time.Time             `json:"timestamp"`
}

type orderCompletedPayload struct {
	ID          string          `json:"id"`
	OrderNumber string          `json:"order_number"`
	CashierID   string          `json:"cashier_id"`
	Total       decimal.Decimal `json:"total"`
	Items       []eventItem     `json:"items"`
}

type eventItem struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

func (uc *orderUseCase) publishCompleted(ord *model.Order) {
	if uc.publisher == nil {
		return
	}

	payload := orderCompletedPayload{
		ID:          ord.ID,
		OrderNumber: ord.OrderNumber,
		CashierID:   ord.CashierID,
		Total:       ord.Total,
	}
	for _, item := range ord.Items {
		payload.Items = append(payload.Items, eventItem{ItemID: item.ItemID, Quantity: item.Quantity})
	}

	event := orderCompletedEvent{
		EventID:   uuid.New().String(),
		EventType: "OrderCompleted",
		Payload:   payload,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		uc.logger.Error("failed to marshal order event", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := uc.publisher.Publish(ctx, []byte(ord.ID), data); err != nil {
		uc.logger.Warn("failed to publish order event",
			zap.String("order_number", ord.OrderNumber), zap.Error(err))
	}
}

// classifyStoreErr separates "the store is unreachable" from "the store
// rejected the data" so the till can tell the operator which it is.
func classifyStoreErr(err error) error {
	if err == nil {
		return nil
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", apperr.ErrStorageUnavailable, err)
	}
	return err
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
