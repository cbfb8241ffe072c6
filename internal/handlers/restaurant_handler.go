package handlers

import (
	"net/http"

	"golang-restaurant-explorer/internal/middleware"
	"golang-restaurant-explorer/internal/services"

	"github.com/gin-gonic/gin"
)

type RestaurantHandler struct {
	restaurantService *services.RestaurantService
	viewService       *services.ViewService
}

func NewRestaurantHandler(restaurantService *services.RestaurantService, viewService *services.ViewService) *RestaurantHandler {
	return &RestaurantHandler{
		restaurantService: restaurantService,
		viewService:       viewService,
	}
}

// GetRestaurantByID godoc
// @Summary Get restaurant detail
// @Description Fetch a restaurant's detail from the restaurant API. Never cached.
// @Tags restaurants
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {object} models.RestaurantDetail
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /restaurants/{id} [get]
func (h *RestaurantHandler) GetRestaurantByID(c *gin.Context) {
	id := c.Param("id")

	detail, err := h.restaurantService.FetchDetail(c.Request.Context(), id)
	if err != nil {
		c.JSON(upstreamStatus(err), ErrorResponse{
			Error:   "Failed to fetch restaurant",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// GetCities godoc
// @Summary Get city options
// @Description Cities offered by the category selector of the current session's view
// @Tags restaurants
// @Produce json
// @Success 200 {object} CitiesResponse
// @Router /cities [get]
func (h *RestaurantHandler) GetCities(c *gin.Context) {
	vm := h.viewService.View(c.Request.Context(), middleware.SessionID(c))
	c.JSON(http.StatusOK, CitiesResponse{Cities: vm.Cities})
}

// RegisterRoutes registers all restaurant routes
func (h *RestaurantHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/restaurants/:id", h.GetRestaurantByID)
	router.GET("/cities", h.GetCities)
}
