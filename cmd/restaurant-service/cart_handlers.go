package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/swadishta/internal/cart"
	"github.com/MikeMC777/swadishta/internal/httpx"
	"github.com/MikeMC777/swadishta/internal/menu"
	"github.com/MikeMC777/swadishta/internal/money"
	"github.com/MikeMC777/swadishta/internal/order"
)

// CartLineView one line of a cart as shown to the diner.
// swagger:model CartLineView
type CartLineView struct {
	cart.Line
	Subtotal decimal.Decimal `json:"subtotal" swaggertype:"string" example:"200.00"`
}

// CartResponse a cart and its derived totals.
// swagger:model CartResponse
type CartResponse struct {
	ID             string          `json:"id"`
	Lines          []CartLineView  `json:"lines"`
	TotalItems     int             `json:"totalItems"     example:"3"`
	TotalAmount    decimal.Decimal `json:"totalAmount"    swaggertype:"string" example:"250.00"`
	TotalFormatted string          `json:"totalFormatted" example:"₹250.00"`
}

// AddCartItemRequest payload for adding one of a menu item.
// swagger:model AddCartItemRequest
type AddCartItemRequest struct {
	MenuItemID string `json:"menu_item_id" binding:"required" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
}

func newCartResponse(id string, l *cart.Ledger) CartResponse {
	lines := l.Lines()
	views := make([]CartLineView, len(lines))
	for i, ln := range lines {
		views[i] = CartLineView{Line: ln, Subtotal: ln.Subtotal()}
	}
	total := l.TotalAmount()
	return CartResponse{
		ID:             id,
		Lines:          views,
		TotalItems:     l.TotalItems(),
		TotalAmount:    total,
		TotalFormatted: money.Format(total),
	}
}

// openCartHandler godoc
// @Summary  Open an empty cart
// @Tags     carts
// @Produce  json
// @Success  201  {object}  CartResponse
// @Router   /carts [post]
func openCartHandler(carts *cart.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := carts.Open()
		c.JSON(http.StatusCreated, newCartResponse(id, &cart.Ledger{}))
	}
}

// getCartHandler godoc
// @Summary  Get a cart
// @Tags     carts
// @Produce  json
// @Param    id   path      string  true  "Cart ID"
// @Success  200  {object}  CartResponse
// @Failure  404  {object}  httpx.HTTPError
// @Router   /carts/{id} [get]
func getCartHandler(carts *cart.Sessions) gin.HandlerFunc {
	return cartMutationHandler(carts, func(*cart.Ledger, string) {})
}

// addCartItemHandler godoc
// @Summary      Add a menu item to a cart
// @Description  Adds a new line with quantity 1 or bumps the existing line
// @Tags         carts
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Cart ID"
// @Param        body  body      AddCartItemRequest  true  "Menu item"
// @Success      200   {object}  CartResponse
// @Failure      400   {object}  httpx.HTTPError
// @Failure      404   {object}  httpx.HTTPError
// @Router       /carts/{id}/items [post]
func addCartItemHandler(carts *cart.Sessions, repo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.FailBind(c, err)
			return
		}
		it, err := repo.GetByID(c.Request.Context(), req.MenuItemID)
		if err != nil {
			respondErr(c, err)
			return
		}

		id := c.Param("id")
		var resp CartResponse
		err = carts.With(id, func(l *cart.Ledger) error {
			l.Add(*it)
			resp = newCartResponse(id, l)
			return nil
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// cartMutationHandler applies fn to the line named by :itemId. Unknown item
// ids leave the cart as it was.
func cartMutationHandler(carts *cart.Sessions, fn func(l *cart.Ledger, itemID string)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var resp CartResponse
		err := carts.With(id, func(l *cart.Ledger) error {
			fn(l, c.Param("itemId"))
			resp = newCartResponse(id, l)
			return nil
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// incrementCartItemHandler godoc
// @Summary  Increment a cart line
// @Tags     carts
// @Produce  json
// @Param    id      path      string  true  "Cart ID"
// @Param    itemId  path      string  true  "Menu item ID"
// @Success  200     {object}  CartResponse
// @Failure  404     {object}  httpx.HTTPError
// @Router   /carts/{id}/items/{itemId}/increment [post]
func incrementCartItemHandler(carts *cart.Sessions) gin.HandlerFunc {
	return cartMutationHandler(carts, (*cart.Ledger).Increment)
}

// decrementCartItemHandler godoc
// @Summary      Decrement a cart line
// @Description  A line at quantity 1 is removed
// @Tags         carts
// @Produce      json
// @Param        id      path      string  true  "Cart ID"
// @Param        itemId  path      string  true  "Menu item ID"
// @Success      200     {object}  CartResponse
// @Failure      404     {object}  httpx.HTTPError
// @Router       /carts/{id}/items/{itemId}/decrement [post]
func decrementCartItemHandler(carts *cart.Sessions) gin.HandlerFunc {
	return cartMutationHandler(carts, (*cart.Ledger).Decrement)
}

// removeCartItemHandler godoc
// @Summary  Remove a cart line
// @Tags     carts
// @Produce  json
// @Param    id      path      string  true  "Cart ID"
// @Param    itemId  path      string  true  "Menu item ID"
// @Success  200     {object}  CartResponse
// @Failure  404     {object}  httpx.HTTPError
// @Router   /carts/{id}/items/{itemId} [delete]
func removeCartItemHandler(carts *cart.Sessions) gin.HandlerFunc {
	return cartMutationHandler(carts, (*cart.Ledger).Remove)
}

// discardCartHandler godoc
// @Summary  Discard a cart
// @Tags     carts
// @Param    id  path  string  true  "Cart ID"
// @Success  204
// @Failure  404  {object}  httpx.HTTPError
// @Router   /carts/{id} [delete]
func discardCartHandler(carts *cart.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := carts.Discard(c.Param("id")); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// checkoutHandler godoc
// @Summary      Submit the cart as an order
// @Description  The cart is cleared only when the order was stored
// @Tags         carts
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Cart ID"
// @Param        body  body      order.CheckoutRequest true  "Customer details"
// @Success      201   {object}  order.Order
// @Failure      400   {object}  httpx.HTTPError
// @Failure      404   {object}  httpx.HTTPError
// @Failure      500   {object}  httpx.HTTPError
// @Router       /carts/{id}/checkout [post]
func checkoutHandler(carts *cart.Sessions, engine *order.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.FailBind(c, err)
			return
		}

		var placed *order.Order
		err := carts.With(c.Param("id"), func(l *cart.Ledger) error {
			o, err := engine.Submit(c.Request.Context(), req.Customer, l.Lines())
			if err != nil {
				return err
			}
			l.Clear()
			placed = o
			return nil
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, placed)
	}
}
