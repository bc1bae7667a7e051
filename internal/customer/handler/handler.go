package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/mkadlec/salonpos/internal/customer"
	"github.com/mkadlec/salonpos/internal/customer/dto"
	"github.com/mkadlec/salonpos/pkg/httpx"
	"github.com/mkadlec/salonpos/pkg/logger"
)

type CustomerHandler struct {
	uc     customer.UseCase
	logger logger.ZapLogger
}

func NewCustomerHandler(uc customer.UseCase, log logger.ZapLogger) *CustomerHandler {
	return &CustomerHandler{uc: uc, logger: log}
}

func (h *CustomerHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/customers", h.list)
	g.POST("/customers", h.create)
	g.GET("/customers/:id", h.get)
	g.PUT("/customers/:id", h.update)
	g.DELETE("/customers/:id", h.delete)
}

func (h *CustomerHandler) create(c echo.Context) error {
	var input dto.CustomerInput
	if err := c.Bind(&input); err != nil {
		return httpx.Fail(c, 400, "INVALID_REQUEST", "unable to parse customer")
	}

	cust, err := h.uc.Create(c.Request().Context(), &input)
	if err != nil {
		return httpx.Error(c, err)
	}
	return httpx.Created(c, cust)
}

func (h *CustomerHandler) update(c echo.Context) error {
	var input dto.CustomerInput
	if err := c.Bind(&input); err != nil {
		return httpx.Fail(c, 400, "INVALID_REQUEST", "unable to parse customer")
	}

	cust, err := h.uc.Update(c.Request().Context(), c.Param("id"), &input)
	if err != nil {
		return httpx.Error(c, err)
	}
	return httpx.OK(c, cust)
}

func (h *CustomerHandler) get(c echo.Context) error {
	cust, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpx.Error(c, err)
	}
	return httpx.OK(c, cust)
}

func (h *CustomerHandler) list(c echo.Context) error {
	page := cast.ToInt(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize := cast.ToInt(c.QueryParam("page_size"))
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}

	filters := &dto.CustomerFilters{
		SearchQuery: c.QueryParam("q"),
		Page:        page,
		PageSize:    pageSize,
	}
	customers, total, err := h.uc.List(c.Request().Context(), filters)
	if err != nil {
		return httpx.Error(c, err)
	}
	return httpx.Paged(c, customers, total, page, pageSize)
}

func (h *CustomerHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return httpx.Error(c, err)
	}
	return httpx.OK(c, nil)
}
