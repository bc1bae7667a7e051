package auth

import (
	"context"

	"github.com/labstack/echo/v4"
)

// Cashier identity arrives from the upstream identity provider as trusted
// headers; this service never issues or validates credentials itself.
const (
	HeaderCashierID   = "X-Cashier-Id"
	HeaderCashierRole = "X-Cashier-Role"
)

type ctxKey string

const (
	cashierIDKey   ctxKey = "cashier_id"
	cashierRoleKey ctxKey = "cashier_role"
)

// Middleware copies the identity headers into the request context so
// usecases depend on context values, not on the transport.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			if id := c.Request().Header.Get(HeaderCashierID); id != "" {
				ctx = context.WithValue(ctx, cashierIDKey, id)
			}
			if role := c.Request().Header.Get(HeaderCashierRole); role != "" {
				ctx = context.WithValue(ctx, cashierRoleKey, role)
			}
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func GetCashierID(ctx context.Context) string {
	if val, ok := ctx.Value(cashierIDKey).(string); ok {
		return val
	}
	return ""
}

func GetCashierRole(ctx context.Context) string {
	if val, ok := ctx.Value(cashierRoleKey).(string); ok {
		return val
	}
	return ""
}
