package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/swadishta/internal/httpx"
	"github.com/MikeMC777/swadishta/internal/menu"
)

// listMenuHandler godoc
// @Summary      List menu items
// @Description  Whole catalog, newest first
// @Tags         menu
// @Produce      json
// @Success      200  {object}  menu.ListResponse
// @Failure      500  {object}  httpx.HTTPError
// @Router       /menu [get]
func listMenuHandler(repo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := repo.List(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, menu.ListResponse{Items: items})
	}
}

// getMenuItemHandler godoc
// @Summary  Get a menu item
// @Tags     menu
// @Produce  json
// @Param    id   path      string  true  "Menu item ID"
// @Success  200  {object}  menu.Item
// @Failure  404  {object}  httpx.HTTPError
// @Router   /menu/{id} [get]
func getMenuItemHandler(repo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		it, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, it)
	}
}

// createMenuItemHandler godoc
// @Summary  Create a menu item
// @Tags     menu
// @Accept   json
// @Produce  json
// @Param    body  body      menu.CreateItemRequest  true  "Menu item"
// @Success  201   {object}  menu.Item
// @Failure  400   {object}  httpx.HTTPError
// @Failure  500   {object}  httpx.HTTPError
// @Router   /menu [post]
func createMenuItemHandler(repo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req menu.CreateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid json")
			return
		}
		it, err := req.Build()
		if err != nil {
			respondErr(c, err)
			return
		}
		if err := repo.Create(c.Request.Context(), it); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, it)
	}
}

// updateMenuItemHandler godoc
// @Summary      Update a menu item
// @Description  Only the fields present in the body change
// @Tags         menu
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "Menu item ID"
// @Param        body  body      menu.UpdateItemRequest  true  "Fields to change"
// @Success      200   {object}  menu.Item
// @Failure      400   {object}  httpx.HTTPError
// @Failure      404   {object}  httpx.HTTPError
// @Router       /menu/{id} [put]
func updateMenuItemHandler(repo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req menu.UpdateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid json")
			return
		}
		if err := req.Validate(); err != nil {
			respondErr(c, err)
			return
		}
		it, err := repo.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, it)
	}
}

// deleteMenuItemHandler godoc
// @Summary  Delete a menu item
// @Tags     menu
// @Param    id  path  string  true  "Menu item ID"
// @Success  204
// @Failure  404  {object}  httpx.HTTPError
// @Router   /menu/{id} [delete]
func deleteMenuItemHandler(repo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
