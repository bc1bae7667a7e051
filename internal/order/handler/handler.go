package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/mkadlec/salonpos/internal/order"
	"github.com/mkadlec/salonpos/internal/order/dto"
	"github.com/mkadlec/salonpos/pkg/httpx"
	"github.com/mkadlec/salonpos/pkg/logger"
)

// OrderHandler exposes the read side of the order store. Commits go
// through the till endpoints, not here.
type OrderHandler struct {
	uc     order.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: log}
}

func (h *OrderHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/orders", h.list)
	g.GET("/orders/:id", h.get)
}

func (h *OrderHandler) get(c echo.Context) error {
	ord, err := h.uc.GetOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpx.Error(c, err)
	}
	return httpx.OK(c, ord)
}

func (h *OrderHandler) list(c echo.Context) error {
	page := cast.ToInt(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize := cast.ToInt(c.QueryParam("page_size"))
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}

	filters := &dto.OrderFilters{
		CashierID:  c.QueryParam("cashier_id"),
		CustomerID: c.QueryParam("customer_id"),
		Status:     c.QueryParam("status"),
		Page:       page,
		PageSize:   pageSize,
	}
	if v := c.QueryParam("start_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return httpx.Fail(c, 400, "INVALID_REQUEST", "start_date must be RFC3339")
		}
		filters.StartDate = &t
	}
	if v := c.QueryParam("end_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return httpx.Fail(c, 400, "INVALID_REQUEST", "end_date must be RFC3339")
		}
		filters.EndDate = &t
	}

	orders, total, err := h.uc.ListOrders(c.Request().Context(), filters)
	if err != nil {
		return httpx.Error(c, err)
	}
	return httpx.Paged(c, orders, total, page, pageSize)
}
