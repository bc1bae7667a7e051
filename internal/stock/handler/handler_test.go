package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkadlec/salonpos/internal/model"
	"github.com/mkadlec/salonpos/internal/stock/dto"
	"github.com/mkadlec/salonpos/pkg/logger"
)

type fakeUseCase struct {
	returns []*dto.OrderMovementInput
}

func (f *fakeUseCase) Projection(_ context.Context, itemID string) (*model.Inventory, error) {
	return &model.Inventory{ItemID: itemID}, nil
}

func (f *fakeUseCase) AvailableStock(context.Context, string) (int, error) { return 0, nil }

func (f *fakeUseCase) Adjust(context.Context, *dto.AdjustStockInput) (*model.Inventory, error) {
	return nil, errors.New("not used")
}

func (f *fakeUseCase) ApplySale(context.Context, *dto.OrderMovementInput) (*model.Inventory, error) {
	return nil, errors.New("not used")
}

func (f *fakeUseCase) ApplyReturn(_ context.Context, input *dto.OrderMovementInput) (*model.Inventory, error) {
	f.returns = append(f.returns, input)
	return &model.Inventory{ItemID: input.ItemID, Quantity: input.Quantity, AvailableQuantity: input.Quantity}, nil
}

func (f *fakeUseCase) SetReserved(context.Context, string, int) (*model.Inventory, error) {
	return nil, errors.New("not used")
}

func (f *fakeUseCase) Movements(context.Context, *dto.MovementFilters) ([]model.StockMovement, int, error) {
	return nil, 0, nil
}

func (f *fakeUseCase) Rebuild(context.Context, string) (*model.Inventory, error) {
	return nil, errors.New("not used")
}

func TestReturnEndpointAppliesReturnMovement(t *testing.T) {
	uc := &fakeUseCase{}
	e := echo.New()
	NewStockHandler(uc, logger.NewNop()).RegisterRoutes(e.Group(""))

	body := `{"quantity": 2, "order_number": "250307-123000"}`
	req := httptest.NewRequest(http.MethodPost, "/stock/itm-1/return", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, uc.returns, 1)
	assert.Equal(t, "itm-1", uc.returns[0].ItemID)
	assert.Equal(t, 2, uc.returns[0].Quantity)
	assert.Equal(t, "250307-123000", uc.returns[0].OrderNumber)
}

func TestReturnEndpointRequiresOrderNumber(t *testing.T) {
	uc := &fakeUseCase{}
	e := echo.New()
	NewStockHandler(uc, logger.NewNop()).RegisterRoutes(e.Group(""))

	req := httptest.NewRequest(http.MethodPost, "/stock/itm-1/return", strings.NewReader(`{"quantity": 2}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, uc.returns)
}
