package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/MikeMC777/swadishta/internal/cart"
	"github.com/MikeMC777/swadishta/internal/httpx"
	"github.com/MikeMC777/swadishta/internal/menu"
	"github.com/MikeMC777/swadishta/internal/order"
)

type deps struct {
	log    *zap.Logger
	menu   menu.Repository
	carts  *cart.Sessions
	engine *order.Engine
	loc    *time.Location
	qrSize int
	now    func() time.Time
}

func newRouter(d deps) *gin.Engine {
	httpx.UseJSONFieldNames()
	r := gin.New()
	r.Use(httpx.RequestID(), httpx.Logger(d.log), httpx.Recovery(d.log))

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/menu", listMenuHandler(d.menu))
	r.GET("/menu/:id", getMenuItemHandler(d.menu))
	r.POST("/menu", createMenuItemHandler(d.menu))
	r.PUT("/menu/:id", updateMenuItemHandler(d.menu))
	r.DELETE("/menu/:id", deleteMenuItemHandler(d.menu))

	r.POST("/carts", openCartHandler(d.carts))
	r.GET("/carts/:id", getCartHandler(d.carts))
	r.DELETE("/carts/:id", discardCartHandler(d.carts))
	r.POST("/carts/:id/items", addCartItemHandler(d.carts, d.menu))
	r.POST("/carts/:id/items/:itemId/increment", incrementCartItemHandler(d.carts))
	r.POST("/carts/:id/items/:itemId/decrement", decrementCartItemHandler(d.carts))
	r.DELETE("/carts/:id/items/:itemId", removeCartItemHandler(d.carts))
	r.POST("/carts/:id/checkout", checkoutHandler(d.carts, d.engine))

	r.POST("/orders", submitOrderHandler(d.engine, d.menu))
	r.GET("/orders/:id", getOrderHandler(d.engine))
	r.GET("/orders/:id/receipt", receiptHandler(d.engine, d.loc))
	r.GET("/orders/:id/receipt/qr", receiptQRHandler(d.engine, d.qrSize))

	admin := r.Group("/admin")
	admin.GET("/orders", listOrdersHandler(d.engine))
	admin.GET("/orders/live", liveOrdersHandler(d.engine))
	admin.GET("/orders/history", historyHandler(d.engine, d.loc))
	admin.PUT("/orders/:id/complete", completeOrderHandler(d.engine))
	admin.GET("/analysis", analysisHandler(d.engine, d.loc, d.now))

	return r
}
