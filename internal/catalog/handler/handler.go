package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/mkadlec/salonpos/internal/catalog"
	"github.com/mkadlec/salonpos/internal/catalog/dto"
	"github.com/mkadlec/salonpos/pkg/httpx"
	"github.com/mkadlec/salonpos/pkg/logger"
)

type CatalogHandler struct {
	uc     catalog.UseCase
	logger logger.ZapLogger
}

func NewCatalogHandler(uc catalog.UseCase, log logger.ZapLogger) *CatalogHandler {
	return &CatalogHandler{uc: uc, logger: log}
}

func (h *CatalogHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/items", h.listItems)
	g.GET("/items/active", h.listActive)
	g.GET("/items/low-stock", h.listLowStock)
	g.GET("/items/:id", h.getItem)
	g.POST("/items", h.createItem)
	g.PUT("/items/:id", h.updateItem)
	g.DELETE("/items/:id", h.deactivateItem)

	g.GET("/vat-rates", h.listVATRates)
	g.POST("/vat-rates", h.createVATRate)
}

func (h *CatalogHandler) listItems(c echo.Context) error {
	page := cast.ToInt(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize := cast.ToInt(c.QueryParam("page_size"))
	if pageSize < 1 || pageSize > 500 {
		pageSize = 20
	}

	filters := &dto.ItemFilters{
		Kind:        c.QueryParam("kind"),
		SearchQuery: strings.TrimSpace(c.QueryParam("q")),
		Page:        page,
		PageSize:    pageSize,
	}
	if v := c.QueryParam("is_active"); v != "" {
		active := cast.ToBool(v)
		filters.IsActive = &active
	}

	items, total, err := h.uc.ListItems(c.Request().Context(), filters)
	if err != nil {
		return httpx.Error(c, err)
	}
	return httpx.Paged(c, items, total, page, pageSize)
}

func (h *CatalogHandler) listActive(c echo.Context) error {
	views, err := h.uc.ListActive(c.Request().Context())
	if err != nil {
		return httpx.Error(c, err)
	}
	return httpx.OK(c, views)
}

func (h *CatalogHandler) listLowStock(c echo.Context) error {
	page := cast.ToInt(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize := cast.ToInt(c.QueryParam("page_size"))
	if pageSize < 1 || pageSize > 500 {
		pageSize = 20
	}

	views, total, err := h.uc.ListLowStock(c.Request().Context(), page, pageSize)
	if err != nil {
		return httpx.Error(c, err)
	}
	return httpx.Paged(c, views, total, page, pageSize)
}

func (h *CatalogHandler) getItem(c echo.Context) error {
	item, err := h.uc.GetItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpx.Error(c, err)
	}
	return httpx.OK(c, item)
}

func (h *CatalogHandler) createItem(c echo.Context) error {
	var input dto.CreateItemInput
	if err := c.Bind(&input); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "unable to parse item")
	}
	input.Name = strings.TrimSpace(input.Name)

	item, err := h.uc.CreateItem(c.Request().Context(), &input)
	if err != nil {
		return httpx.Error(c, err)
	}
	return httpx.Created(c, item)
}

func (h *CatalogHandler) updateItem(c echo.Context) error {
	var input dto.UpdateItemInput
	if err := c.Bind(&input); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "unable to parse item")
	}
	input.ID = c.Param("id")
	input.Name = strings.TrimSpace(input.Name)

	item, err := h.uc.UpdateItem(c.Request().Context(), &input)
	if err != nil {
		return httpx.Error(c, err)
	}
	return httpx.OK(c, item)
}

func (h *CatalogHandler) deactivateItem(c echo.Context) error {
	if err := h.uc.DeactivateItem(c.Request().Context(), c.Param("id")); err != nil {
		return httpx.Error(c, err)
	}
	return httpx.OK(c, nil)
}

func (h *CatalogHandler) listVATRates(c echo.Context) error {
	activeOnly := cast.ToBool(c.QueryParam("active_only"))
	rates, err := h.uc.ListVATRates(c.Request().Context(), activeOnly)
	if err != nil {
		return httpx.Error(c, err)
	}
	return httpx.OK(c, rates)
}

func (h *CatalogHandler) createVATRate(c echo.Context) error {
	var input dto.CreateVATRateInput
	if err := c.Bind(&input); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "unable to parse vat rate")
	}
	input.Name = strings.TrimSpace(input.Name)

	rate, err := h.uc.CreateVATRate(c.Request().Context(), &input)
	if err != nil {
		return httpx.Error(c, err)
	}
	return httpx.Created(c, rate)
}
