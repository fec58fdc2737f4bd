package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/swadishta/internal/cart"
	"github.com/MikeMC777/swadishta/internal/httpx"
	"github.com/MikeMC777/swadishta/internal/menu"
	"github.com/MikeMC777/swadishta/internal/order"
	"github.com/MikeMC777/swadishta/internal/validate"
)

const maxLineQuantity = 99

// submitOrderHandler godoc
// @Summary      Place an order from an explicit item list
// @Description  Prices come from the catalog, never from the request
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      order.SubmitOrderRequest  true  "Order"
// @Success      201   {object}  order.Order
// @Failure      400   {object}  httpx.HTTPError
// @Failure      500   {object}  httpx.HTTPError
// @Router       /orders [post]
func submitOrderHandler(engine *order.Engine, repo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.SubmitOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.FailBind(c, err)
			return
		}

		var (
			ledger cart.Ledger
			errs   validate.Errors
		)
		for i, it := range req.Items {
			entry, err := repo.GetByID(c.Request.Context(), it.MenuItemID)
			if errors.Is(err, menu.ErrNotFound) {
				errs.Add(fmt.Sprintf("items[%d].menu_item_id", i), "unknown menu item")
				continue
			}
			if err != nil {
				respondErr(c, err)
				return
			}
			ledger.Add(*entry)
			for n := 1; n < it.Quantity; n++ {
				ledger.Increment(entry.ID)
			}
		}
		// repeated ids merge into one line
		for _, l := range ledger.Lines() {
			if l.Quantity > maxLineQuantity {
				errs.Add("items", fmt.Sprintf("%s: quantity must not exceed %d", l.Name, maxLineQuantity))
			}
		}
		if len(errs) > 0 {
			respondErr(c, errs)
			return
		}

		o, err := engine.Submit(c.Request.Context(), req.Customer, ledger.Lines())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, o)
	}
}

// getOrderHandler godoc
// @Summary  Get an order
// @Tags     orders
// @Produce  json
// @Param    id   path      string  true  "Order ID"
// @Success  200  {object}  order.Order
// @Failure  404  {object}  httpx.HTTPError
// @Router   /orders/{id} [get]
func getOrderHandler(engine *order.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := engine.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// receiptHandler godoc
// @Summary  Printable receipt of an order
// @Tags     orders
// @Produce  json
// @Param    id   path      string  true  "Order ID"
// @Success  200  {object}  order.Receipt
// @Failure  404  {object}  httpx.HTTPError
// @Router   /orders/{id}/receipt [get]
func receiptHandler(engine *order.Engine, loc *time.Location) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := engine.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, order.NewReceipt(o, loc))
	}
}

// receiptQRHandler godoc
// @Summary      QR code of an order receipt
// @Description  PNG encoding {orderId,total,date}
// @Tags         orders
// @Produce      png
// @Param        id   path  string  true  "Order ID"
// @Success      200  {file}  binary
// @Failure      404  {object}  httpx.HTTPError
// @Router       /orders/{id}/receipt/qr [get]
func receiptQRHandler(engine *order.Engine, size int) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := engine.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		png, err := order.QRCode(o, size)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.Data(http.StatusOK, "image/png", png)
	}
}

// completeOrderHandler godoc
// @Summary      Mark an order completed
// @Description  Completing an already completed order changes nothing and sets alreadyCompleted
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  order.CompleteResponse
// @Failure      404  {object}  httpx.HTTPError
// @Failure      500  {object}  httpx.HTTPError
// @Router       /admin/orders/{id}/complete [put]
func completeOrderHandler(engine *order.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		tr, err := engine.Complete(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, order.CompleteResponse{Order: tr.Order, AlreadyCompleted: tr.AlreadyCompleted})
	}
}
