package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/swadishta/internal/cart"
	"github.com/MikeMC777/swadishta/internal/httpx"
	"github.com/MikeMC777/swadishta/internal/menu"
	"github.com/MikeMC777/swadishta/internal/order"
	"github.com/MikeMC777/swadishta/internal/validate"
)

// respondErr maps domain errors onto status codes. Anything unknown is a
// store failure: the caller may simply retry.
func respondErr(c *gin.Context, err error) {
	var verrs validate.Errors
	switch {
	case errors.As(err, &verrs):
		httpx.FailValidation(c, http.StatusBadRequest, verrs)
	case errors.Is(err, order.ErrEmptyCart):
		httpx.Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, order.ErrInvalidTransition):
		httpx.Fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, menu.ErrNotFound),
		errors.Is(err, order.ErrNotFound),
		errors.Is(err, cart.ErrSessionNotFound):
		httpx.Fail(c, http.StatusNotFound, err.Error())
	default:
		_ = c.Error(err)
		httpx.Fail(c, http.StatusInternalServerError, "storage unavailable, please retry")
	}
}
