package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/swadishta/internal/httpx"
	"github.com/MikeMC777/swadishta/internal/money"
	"github.com/MikeMC777/swadishta/internal/order"
	"github.com/MikeMC777/swadishta/internal/report"
)

// HistoryResponse completed orders, optionally for one day.
// swagger:model HistoryResponse
type HistoryResponse struct {
	Date  string        `json:"date,omitempty" example:"2024-03-01"`
	Items []order.Order `json:"items"`
}

// AnalysisResponse sales figures with display strings.
// swagger:model AnalysisResponse
type AnalysisResponse struct {
	report.Analysis
	TotalRevenueFormatted string `json:"totalRevenueFormatted" example:"₹12,340.00"`
	TodayRevenueFormatted string `json:"todayRevenueFormatted" example:"₹1,250.00"`
	Day                   string `json:"day"                   example:"2024-03-01"`
}

// listOrdersHandler godoc
// @Summary  All orders, newest first
// @Tags     admin
// @Produce  json
// @Success  200  {object}  order.ListResponse
// @Failure  500  {object}  httpx.HTTPError
// @Router   /admin/orders [get]
func listOrdersHandler(engine *order.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := engine.List(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, order.ListResponse{Items: orders})
	}
}

// liveOrdersHandler godoc
// @Summary  Pending orders
// @Tags     admin
// @Produce  json
// @Success  200  {object}  order.ListResponse
// @Failure  500  {object}  httpx.HTTPError
// @Router   /admin/orders/live [get]
func liveOrdersHandler(engine *order.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := engine.List(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, order.ListResponse{Items: report.LiveOrders(orders)})
	}
}

// historyHandler godoc
// @Summary  Completed orders, newest first
// @Tags     admin
// @Produce  json
// @Param    date  query     string  false  "Calendar day, YYYY-MM-DD"
// @Success  200   {object}  HistoryResponse
// @Failure  400   {object}  httpx.HTTPError
// @Failure  500   {object}  httpx.HTTPError
// @Router   /admin/orders/history [get]
func historyHandler(engine *order.Engine, loc *time.Location) gin.HandlerFunc {
	return func(c *gin.Context) {
		var day *report.Day
		if raw := c.Query("date"); raw != "" {
			d, err := report.ParseDay(raw)
			if err != nil {
				httpx.Fail(c, http.StatusBadRequest, err.Error())
				return
			}
			day = &d
		}

		orders, err := engine.List(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		resp := HistoryResponse{Items: report.History(orders, day, loc)}
		if day != nil {
			resp.Date = day.String()
		}
		c.JSON(http.StatusOK, resp)
	}
}

// analysisHandler godoc
// @Summary  Sales analysis over completed orders
// @Tags     admin
// @Produce  json
// @Success  200  {object}  AnalysisResponse
// @Failure  500  {object}  httpx.HTTPError
// @Router   /admin/analysis [get]
func analysisHandler(engine *order.Engine, loc *time.Location, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := engine.List(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		t := now()
		a := report.Analyze(orders, t, loc)
		c.JSON(http.StatusOK, AnalysisResponse{
			Analysis:              a,
			TotalRevenueFormatted: money.Format(a.TotalRevenue),
			TodayRevenueFormatted: money.Format(a.TodayRevenue),
			Day:                   report.DayOf(t, loc).String(),
		})
	}
}
