package handlers

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"golang-restaurant-explorer/internal/middleware"
	"golang-restaurant-explorer/internal/models"
	"golang-restaurant-explorer/internal/services"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const pageTemplate = "index.tmpl"

// PageHandler serves the server-rendered restaurant page and its form actions
type PageHandler struct {
	viewService *services.ViewService
}

func NewPageHandler(viewService *services.ViewService) *PageHandler {
	return &PageHandler{
		viewService: viewService,
	}
}

type pageData struct {
	*services.ViewModel
	PriceTiers []models.PriceTier
}

// Templates parses the embedded page templates. Pictures are linked from
// imageBaseURL at the given size.
func Templates(imageBaseURL, pictureSize string) (*template.Template, error) {
	funcs := template.FuncMap{
		"stars": models.Stars,
		"picture": func(pictureID string) string {
			return models.PictureURL(imageBaseURL, pictureSize, pictureID)
		},
		"largePicture": func(pictureID string) string {
			return models.PictureURL(imageBaseURL, models.PictureLarge, pictureID)
		},
	}
	return template.New(pageTemplate).Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
}

// RegisterRoutes registers the page and its form actions on the root router
func (h *PageHandler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/", h.Index)
	router.POST("/view/filters", h.SubmitFilters)
	router.POST("/view/load-more", h.LoadMore)
	router.POST("/view/clear", h.ClearFilters)
	router.POST("/view/detail/close", h.CloseDetail)
}

// Index renders the view. ?detail=<id> opens the overlay with a fresh fetch.
func (h *PageHandler) Index(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := middleware.SessionID(c)

	var vm *services.ViewModel
	if id := c.Query("detail"); id != "" {
		opened, err := h.viewService.OpenDetail(ctx, sessionID, id)
		if err != nil {
			log.WithError(err).WithFields(log.Fields{
				"session_id":    sessionID,
				"restaurant_id": id,
			}).Warn("[page] Detail overlay not shown")
		}
		vm = opened
	}
	if vm == nil {
		vm = h.viewService.View(ctx, sessionID)
	}

	c.HTML(http.StatusOK, pageTemplate, pageData{
		ViewModel:  vm,
		PriceTiers: models.PriceTiers,
	})
}

// SubmitFilters applies the filter form. An unchecked checkbox is absent from the form.
func (h *PageHandler) SubmitFilters(c *gin.Context) {
	openNow := c.PostForm("open_now") != ""
	price := c.PostForm("price")
	category := c.PostForm("category")

	_, err := h.viewService.UpdateFilters(c.Request.Context(), middleware.SessionID(c), services.FilterUpdate{
		OpenNow:  &openNow,
		Price:    &price,
		Category: &category,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, models.ErrUnknownPriceTier) {
			status = http.StatusBadRequest
		}
		c.String(status, err.Error())
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (h *PageHandler) LoadMore(c *gin.Context) {
	h.viewService.LoadMore(c.Request.Context(), middleware.SessionID(c))
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *PageHandler) ClearFilters(c *gin.Context) {
	h.viewService.ClearFilters(c.Request.Context(), middleware.SessionID(c))
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *PageHandler) CloseDetail(c *gin.Context) {
	h.viewService.CloseDetail(c.Request.Context(), middleware.SessionID(c))
	c.Redirect(http.StatusSeeOther, "/")
}
