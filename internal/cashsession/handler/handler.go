package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/mkadlec/salonpos/internal/auth"
	"github.com/mkadlec/salonpos/internal/cashsession"
	"github.com/mkadlec/salonpos/internal/cashsession/dto"
	"github.com/mkadlec/salonpos/pkg/httpx"
	"github.com/mkadlec/salonpos/pkg/logger"
)

type CashSessionHandler struct {
	uc     cashsession.UseCase
	logger logger.ZapLogger
}

func NewCashSessionHandler(uc cashsession.UseCase, log logger.ZapLogger) *CashSessionHandler {
	return &CashSessionHandler{uc: uc, logger: log}
}

func (h *CashSessionHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/cash-sessions", h.list)
	g.POST("/cash-sessions", h.open)
	g.GET("/cash-sessions/current", h.current)
	g.GET("/cash-sessions/:id", h.get)
	g.POST("/cash-sessions/:id/close", h.close)
	g.POST("/cash-sessions/:id/movements", h.recordMovement)
}

func (h *CashSessionHandler) open(c echo.Context) error {
	ctx := c.Request().Context()

	var input dto.OpenSessionInput
	if err := c.Bind(&input); err != nil {
		return httpx.Fail(c, 400, "INVALID_REQUEST", "unable to parse session")
	}
	input.CashierID = auth.GetCashierID(ctx)

	session, err := h.uc.Open(ctx, &input)
	if err != nil {
		return httpx.Error(c, err)
	}
	return httpx.Created(c, session)
}

func (h *CashSessionHandler) close(c echo.Context) error {
	ctx := c.Request().Context()

	var input dto.CloseSessionInput
	if err := c.Bind(&input); err != nil {
		return httpx.Fail(c, 400, "INVALID_REQUEST", "unable to parse close request")
	}
	input.SessionID = c.Param("id")
	input.CashierID = auth.GetCashierID(ctx)

	session, err := h.uc.Close(ctx, &input)
	if err != nil {
		return httpx.Error(c, err)
	}
	return httpx.OK(c, session)
}

func (h *CashSessionHandler) recordMovement(c echo.Context) error {
	ctx := c.Request().Context()

	var input dto.RecordMovementInput
	if err := c.Bind(&input); err != nil {
		return httpx.Fail(c, 400, "INVALID_REQUEST", "unable to parse movement")
	}
	input.SessionID = c.Param("id")
	input.CashierID = auth.GetCashierID(ctx)

	movement, err := h.uc.RecordMovement(ctx, &input)
	if err != nil {
		return httpx.Error(c, err)
	}
	return httpx.Created(c, movement)
}

func (h *CashSessionHandler) get(c echo.Context) error {
	detail, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpx.Error(c, err)
	}
	return httpx.OK(c, detail)
}

func (h *CashSessionHandler) current(c echo.Context) error {
	ctx := c.Request().Context()
	session, err := h.uc.Current(ctx, auth.GetCashierID(ctx))
	if err != nil {
		return httpx.Error(c, err)
	}
	return httpx.OK(c, session)
}

func (h *CashSessionHandler) list(c echo.Context) error {
	page := cast.ToInt(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize := cast.ToInt(c.QueryParam("page_size"))
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}

	sessions, total, err := h.uc.List(c.Request().Context(), c.QueryParam("cashier_id"), page, pageSize)
	if err != nil {
		return httpx.Error(c, err)
	}
	return httpx.Paged(c, sessions, total, page, pageSize)
}
