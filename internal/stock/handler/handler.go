package handler

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/mkadlec/salonpos/internal/auth"
	"github.com/mkadlec/salonpos/internal/model"
	"github.com/mkadlec/salonpos/internal/stock"
	"github.com/mkadlec/salonpos/internal/stock/dto"
	"github.com/mkadlec/salonpos/pkg/httpx"
	"github.com/mkadlec/salonpos/pkg/logger"
)

type StockHandler struct {
	uc     stock.UseCase
	logger logger.ZapLogger
}

func NewStockHandler(uc stock.UseCase, log logger.ZapLogger) *StockHandler {
	return &StockHandler{uc: uc, logger: log}
}

func (h *StockHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/stock/:itemId", h.getProjection)
	g.POST("/stock/:itemId/adjust", h.adjust)
	g.POST("/stock/:itemId/return", h.applyReturn)
	g.PUT("/stock/:itemId/reserved", h.setReserved)
	g.POST("/stock/:itemId/rebuild", h.rebuild)
	g.GET("/stock/movements", h.listMovements)
}

func (h *StockHandler) getProjection(c echo.Context) error {
	inv, err := h.uc.Projection(c.Request().Context(), c.Param("itemId"))
	if err != nil {
		return httpx.Error(c, err)
	}
	return httpx.OK(c, inv)
}

type adjustPayload struct {
	Kind     string `json:"kind"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

func (h *StockHandler) adjust(c echo.Context) error {
	ctx := c.Request().Context()

	var payload adjustPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.Fail(c, 400, "INVALID_REQUEST", "unable to parse adjustment")
	}

	input := &dto.AdjustStockInput{
		ItemID:   c.Param("itemId"),
		Kind:     model.MovementKind(strings.TrimSpace(payload.Kind)),
		Quantity: payload.Quantity,
		Notes:    strings.TrimSpace(payload.Notes),
		ActorID:  auth.GetCashierID(ctx),
	}

	inv, err := h.uc.Adjust(ctx, input)
	if err != nil {
		h.logger.Error("stock adjustment failed", zap.String("item_id", input.ItemID), zap.Error(err))
		return httpx.Error(c, err)
	}
	return httpx.OK(c, inv)
}

type returnPayload struct {
	Quantity    int    `json:"quantity"`
	OrderNumber string `json:"order_number"`
}

// applyReturn restocks a returned line through the ledger's return kind,
// referencing the order the goods came back from.
func (h *StockHandler) applyReturn(c echo.Context) error {
	ctx := c.Request().Context()

	var payload returnPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.Fail(c, 400, "INVALID_REQUEST", "unable to parse return")
	}
	if strings.TrimSpace(payload.OrderNumber) == "" {
		return httpx.Fail(c, 400, "INVALID_REQUEST", "order_number is required")
	}

	inv, err := h.uc.ApplyReturn(ctx, &dto.OrderMovementInput{
		ItemID:      c.Param("itemId"),
		Quantity:    payload.Quantity,
		OrderNumber: strings.TrimSpace(payload.OrderNumber),
		ActorID:     auth.GetCashierID(ctx),
	})
	if err != nil {
		h.logger.Error("stock return failed", zap.String("item_id", c.Param("itemId")), zap.Error(err))
		return httpx.Error(c, err)
	}
	return httpx.OK(c, inv)
}

type reservedPayload struct {
	Reserved int `json:"reserved"`
}

func (h *StockHandler) setReserved(c echo.Context) error {
	var payload reservedPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.Fail(c, 400, "INVALID_REQUEST", "unable to parse reservation")
	}

	inv, err := h.uc.SetReserved(c.Request().Context(), c.Param("itemId"), payload.Reserved)
	if err != nil {
		return httpx.Error(c, err)
	}
	return httpx.OK(c, inv)
}

func (h *StockHandler) rebuild(c echo.Context) error {
	inv, err := h.uc.Rebuild(c.Request().Context(), c.Param("itemId"))
	if err != nil {
		return httpx.Error(c, err)
	}
	return httpx.OK(c, inv)
}

func (h *StockHandler) listMovements(c echo.Context) error {
	page := cast.ToInt(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize := cast.ToInt(c.QueryParam("page_size"))
	if pageSize < 1 || pageSize > 500 {
		pageSize = 20
	}

	filters := &dto.MovementFilters{
		ItemID:   c.QueryParam("item_id"),
		Kind:     c.QueryParam("kind"),
		Page:     page,
		PageSize: pageSize,
	}

	movements, total, err := h.uc.Movements(c.Request().Context(), filters)
	if err != nil {
		return httpx.Error(c, err)
	}
	return httpx.Paged(c, movements, total, page, pageSize)
}
