package httpx

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkadlec/salonpos/internal/apperr"
)

type Response struct {
	Code string      `json:"code"`
	Msg  string      `json:"msg,omitempty"`
	Data interface{} `json:"data,omitempty"`
}

type PagedData struct {
	Items    interface{} `json:"items"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{Code: "OK", Data: data})
}

func Created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, Response{Code: "OK", Data: data})
}

func Paged(c echo.Context, items interface{}, total, page, pageSize int) error {
	return c.JSON(http.StatusOK, Response{
		Code: "OK",
		Data: PagedData{Items: items, Total: total, Page: page, PageSize: pageSize},
	})
}

func Fail(c echo.Context, status int, code, msg string) error {
	return c.JSON(status, Response{Code: code, Msg: msg})
}

// Error maps the core's error kinds onto HTTP statuses so handlers don't each
// repeat the table.
func Error(c echo.Context, err error) error {
	switch {
	case errors.Is(err, apperr.ErrInvalidPricingInput):
		return Fail(c, http.StatusBadRequest, "INVALID_PRICING_INPUT", err.Error())
	case errors.Is(err, apperr.ErrOutOfStock):
		return Fail(c, http.StatusConflict, "OUT_OF_STOCK", err.Error())
	case errors.Is(err, apperr.ErrInsufficientStock):
		return Fail(c, http.StatusConflict, "INSUFFICIENT_STOCK", err.Error())
	case errors.Is(err, apperr.ErrEmptyCart):
		return Fail(c, http.StatusBadRequest, "EMPTY_CART", err.Error())
	case errors.Is(err, apperr.ErrUnauthenticated):
		return Fail(c, http.StatusUnauthorized, "UNAUTHENTICATED", err.Error())
	case errors.Is(err, apperr.ErrPartialCommit):
		return Fail(c, http.StatusInternalServerError, "PARTIAL_COMMIT", err.Error())
	case errors.Is(err, apperr.ErrStorageUnavailable):
		return Fail(c, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		return Fail(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, apperr.ErrConflict):
		return Fail(c, http.StatusConflict, "CONFLICT", err.Error())
	default:
		return Fail(c, http.StatusInternalServerError, "INTERNAL", err.Error())
	}
}
