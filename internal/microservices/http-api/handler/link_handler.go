package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vibelink/internal/microservices/http-api/dto"
	"vibelink/internal/microservices/http-api/service"
)

type LinkHandler struct {
	linkService service.LinkService
}

func NewLinkHandler(linkService service.LinkService) *LinkHandler {
	return &LinkHandler{linkService: linkService}
}

func (h *LinkHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/media/:id/links", h.ListForMedia)
	protected.POST("/links", h.Create)
}

// Create POST /api/links
func (h *LinkHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.CreateLinkRequest
	if !bindJSON(c, &req) {
		return
	}
	link, err := h.linkService.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

// ListForMedia GET /api/media/:id/links
func (h *LinkHandler) ListForMedia(c *gin.Context) {
	links, err := h.linkService.ListForMedia(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, links)
}
