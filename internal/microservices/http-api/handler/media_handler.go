package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vibelink/internal/microservices/http-api/dto"
	"vibelink/internal/microservices/http-api/middleware"
	"vibelink/internal/microservices/http-api/service"
)

type MediaHandler struct {
	mediaService service.MediaService
}

func NewMediaHandler(mediaService service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// RegisterRoutes registers catalog routes. public carries optional auth, protected requires it.
func (h *MediaHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/media", h.List)
	public.GET("/media/:id", h.Get)
	protected.POST("/media", h.Create)
	protected.PATCH("/media/:id", h.Update)
}

// List GET /api/media
func (h *MediaHandler) List(c *gin.Context) {
	var q dto.MediaListQuery
	if !bindQuery(c, &q) {
		return
	}
	page, err := h.mediaService.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get GET /api/media/:id. userRating is filled only for signed-in callers.
func (h *MediaHandler) Get(c *gin.Context) {
	detail, err := h.mediaService.Get(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Create POST /api/media
func (h *MediaHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.CreateMediaRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.mediaService.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update PATCH /api/media/:id
func (h *MediaHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.UpdateMediaRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.mediaService.Update(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}
