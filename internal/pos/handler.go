package pos

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/mkadlec/salonpos/internal/apperr"
	"github.com/mkadlec/salonpos/internal/auth"
	"github.com/mkadlec/salonpos/internal/cart"
	"github.com/mkadlec/salonpos/internal/cashsession"
	"github.com/mkadlec/salonpos/internal/catalog"
	"github.com/mkadlec/salonpos/internal/model"
	"github.com/mkadlec/salonpos/internal/order"
	orderdto "github.com/mkadlec/salonpos/internal/order/dto"
	"github.com/mkadlec/salonpos/internal/pricing"
	"github.com/mkadlec/salonpos/pkg/httpx"
	"github.com/mkadlec/salonpos/pkg/logger"
)

type Handler struct {
	registry  *Registry
	catalogUC catalog.UseCase
	orderUC   order.UseCase
	sessionUC cashsession.UseCase
	logger    logger.ZapLogger
}

func NewHandler(registry *Registry, catalogUC catalog.UseCase, orderUC order.UseCase, sessionUC cashsession.UseCase, log logger.ZapLogger) *Handler {
	return &Handler{
		registry:  registry,
		catalogUC: catalogUC,
		orderUC:   orderUC,
		sessionUC: sessionUC,
		logger:    log,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/pos/cart", h.getCart)
	g.DELETE("/pos/cart", h.clearCart)
	g.POST("/pos/cart/items", h.addItem)
	g.PUT("/pos/cart/items/:itemId", h.setQuantity)
	g.DELETE("/pos/cart/items/:itemId", h.removeItem)
	g.POST("/pos/cart/customer", h.setCustomer)
	g.POST("/pos/checkout", h.checkout)
}

// cartView is the till's rendering of its cart after every mutation, so the
// client never recomputes money locally.
type cartView struct {
	CashierID  string             `json:"cashier_id"`
	CustomerID *string            `json:"customer_id"`
	Lines      []cart.Line        `json:"lines"`
	Totals     pricing.LineTotals `json:"totals"`
}

func view(c *cart.Cart) cartView {
	return cartView{
		CashierID:  c.CashierID(),
		CustomerID: c.CustomerID(),
		Lines:      c.Snapshot(),
		Totals:     c.Totals(),
	}
}

func (h *Handler) cartFor(c echo.Context) (*cart.Cart, error) {
	cashierID := auth.GetCashierID(c.Request().Context())
	if cashierID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	return h.registry.Get(cashierID), nil
}

func (h *Handler) getCart(c echo.Context) error {
	crt, err := h.cartFor(c)
	if err != nil {
		return httpx.Error(c, err)
	}
	return httpx.OK(c, view(crt))
}

func (h *Handler) clearCart(c echo.Context) error {
	crt, err := h.cartFor(c)
	if err != nil {
		return httpx.Error(c, err)
	}
	crt.Clear()
	return httpx.OK(c, view(crt))
}

type addItemPayload struct {
	ItemID string `json:"item_id"`
}

func (h *Handler) addItem(c echo.Context) error {
	ctx := c.Request().Context()

	crt, err := h.cartFor(c)
	if err != nil {
		return httpx.Error(c, err)
	}

	var payload addItemPayload
	if err := c.Bind(&payload); err != nil || payload.ItemID == "" {
		return httpx.Fail(c, 400, "INVALID_REQUEST", "item_id is required")
	}

	item, err := h.catalogUC.GetActiveView(ctx, payload.ItemID)
	if err != nil {
		return httpx.Error(c, err)
	}
	if err := crt.AddItem(ctx, item); err != nil {
		return httpx.Error(c, err)
	}
	return httpx.OK(c, view(crt))
}

type quantityPayload struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) setQuantity(c echo.Context) error {
	ctx := c.Request().Context()

	crt, err := h.cartFor(c)
	if err != nil {
		return httpx.Error(c, err)
	}

	var payload quantityPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.Fail(c, 400, "INVALID_REQUEST", "unable to parse quantity")
	}

	if err := crt.SetQuantity(ctx, c.Param("itemId"), payload.Quantity); err != nil {
		return httpx.Error(c, err)
	}
	return httpx.OK(c, view(crt))
}

func (h *Handler) removeItem(c echo.Context) error {
	crt, err := h.cartFor(c)
	if err != nil {
		return httpx.Error(c, err)
	}
	crt.RemoveItem(c.Param("itemId"))
	return httpx.OK(c, view(crt))
}

type customerPayload struct {
	CustomerID string `json:"customer_id"`
}

func (h *Handler) setCustomer(c echo.Context) error {
	crt, err := h.cartFor(c)
	if err != nil {
		return httpx.Error(c, err)
	}

	var payload customerPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.Fail(c, 400, "INVALID_REQUEST", "unable to parse customer")
	}
	crt.SetCustomer(strings.TrimSpace(payload.CustomerID))
	return httpx.OK(c, view(crt))
}

type checkoutPayload struct {
	PaymentMethod string `json:"payment_method"`
	Notes         string `json:"notes"`
}

// checkout commits the cart. The cart is cleared only after the workflow
// succeeds; on any failure, partial commits included, the lines stay on the
// till for retry.
func (h *Handler) checkout(c echo.Context) error {
	ctx := c.Request().Context()

	crt, err := h.cartFor(c)
	if err != nil {
		return httpx.Error(c, err)
	}

	var payload checkoutPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.Fail(c, 400, "INVALID_REQUEST", "unable to parse checkout")
	}

	input := &orderdto.CheckoutInput{
		CashierID:     crt.CashierID(),
		CustomerID:    crt.CustomerID(),
		PaymentMethod: model.PaymentMethod(payload.PaymentMethod),
		Notes:         strings.TrimSpace(payload.Notes),
		Lines:         crt.Snapshot(),
	}

	result, err := h.orderUC.Checkout(ctx, input)
	if err != nil {
		return httpx.Error(c, err)
	}

	if err := h.sessionUC.RecordSale(ctx, crt.CashierID(), result.Order); err != nil {
		h.logger.Warn("failed to book cash sale against drawer",
			zap.String("order_number", result.Order.OrderNumber), zap.Error(err))
	}

	crt.Clear()
	return httpx.Created(c, result)
}
