package handlers

import (
	"errors"
	"net/http"

	"golang-restaurant-explorer/internal/middleware"
	"golang-restaurant-explorer/internal/models"
	"golang-restaurant-explorer/internal/services"

	"github.com/gin-gonic/gin"
)

// ViewHandler exposes the session's restaurant view as JSON
type ViewHandler struct {
	viewService *services.ViewService
}

func NewViewHandler(viewService *services.ViewService) *ViewHandler {
	return &ViewHandler{
		viewService: viewService,
	}
}

// RegisterRoutes registers the routes for the session view
func (h *ViewHandler) RegisterRoutes(router *gin.RouterGroup) {
	view := router.Group("/view")
	{
		// Current view
		view.GET("", h.GetView)
		// Filters
		view.PUT("/filters", h.UpdateFilters)
		view.POST("/open-now/toggle", h.ToggleOpenNow)
		view.POST("/clear", h.ClearFilters)
		// Pagination
		view.POST("/load-more", h.LoadMore)
		// Detail overlay
		view.POST("/detail/:id", h.OpenDetail)
		view.DELETE("/detail", h.CloseDetail)
	}
}

// GetView godoc
// @Summary Get the current view
// @Description Visible restaurants, filters and pagination of the session
// @Tags view
// @Produce json
// @Success 200 {object} services.ViewModel
// @Router /view [get]
func (h *ViewHandler) GetView(c *gin.Context) {
	c.JSON(http.StatusOK, h.viewService.View(c.Request.Context(), middleware.SessionID(c)))
}

// UpdateFilters godoc
// @Summary Update filters
// @Description Change open-now, price tier or category. Omitted fields are left unchanged.
// @Tags view
// @Accept json
// @Produce json
// @Param filters body services.FilterUpdate true "Filter changes"
// @Success 200 {object} services.ViewModel
// @Failure 400 {object} ErrorResponse
// @Router /view/filters [put]
func (h *ViewHandler) UpdateFilters(c *gin.Context) {
	var req services.FilterUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	vm, err := h.viewService.UpdateFilters(c.Request.Context(), middleware.SessionID(c), req)
	if err != nil {
		if errors.Is(err, models.ErrUnknownPriceTier) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Invalid price filter",
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to update filters",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, vm)
}

// ToggleOpenNow godoc
// @Summary Toggle the open-now filter
// @Tags view
// @Produce json
// @Success 200 {object} services.ViewModel
// @Router /view/open-now/toggle [post]
func (h *ViewHandler) ToggleOpenNow(c *gin.Context) {
	c.JSON(http.StatusOK, h.viewService.ToggleOpenNow(c.Request.Context(), middleware.SessionID(c)))
}

// ClearFilters godoc
// @Summary Clear all filters
// @Description Resets filters; the pagination cursor is kept
// @Tags view
// @Produce json
// @Success 200 {object} services.ViewModel
// @Router /view/clear [post]
func (h *ViewHandler) ClearFilters(c *gin.Context) {
	c.JSON(http.StatusOK, h.viewService.ClearFilters(c.Request.Context(), middleware.SessionID(c)))
}

// LoadMore godoc
// @Summary Reveal more restaurants
// @Tags view
// @Produce json
// @Success 200 {object} services.ViewModel
// @Router /view/load-more [post]
func (h *ViewHandler) LoadMore(c *gin.Context) {
	c.JSON(http.StatusOK, h.viewService.LoadMore(c.Request.Context(), middleware.SessionID(c)))
}

// OpenDetail godoc
// @Summary Open the detail overlay
// @Description Fetches the restaurant detail and shows it in the session's overlay
// @Tags view
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {object} services.ViewModel
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /view/detail/{id} [post]
func (h *ViewHandler) OpenDetail(c *gin.Context) {
	vm, err := h.viewService.OpenDetail(c.Request.Context(), middleware.SessionID(c), c.Param("id"))
	if err != nil {
		c.JSON(upstreamStatus(err), ErrorResponse{
			Error:   "Failed to fetch restaurant detail",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, vm)
}

// CloseDetail godoc
// @Summary Close the detail overlay
// @Tags view
// @Produce json
// @Success 200 {object} services.ViewModel
// @Router /view/detail [delete]
func (h *ViewHandler) CloseDetail(c *gin.Context) {
	c.JSON(http.StatusOK, h.viewService.CloseDetail(c.Request.Context(), middleware.SessionID(c)))
}
