package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vibelink/internal/microservices/http-api/dto"
	"vibelink/internal/microservices/http-api/service"
)

// CatalogHandler serves the tag and creator vocabularies media items are described with.
type CatalogHandler struct {
	tagService     service.TagService
	creatorService service.CreatorService
}

func NewCatalogHandler(tagService service.TagService, creatorService service.CreatorService) *CatalogHandler {
	return &CatalogHandler{tagService: tagService, creatorService: creatorService}
}

func (h *CatalogHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/tags", h.ListTags)
	protected.POST("/tags", h.CreateTag)
	public.GET("/creators", h.ListCreators)
	protected.POST("/creators", h.CreateCreator)
}

// ListTags GET /api/tags?query&kind
func (h *CatalogHandler) ListTags(c *gin.Context) {
	var q dto.TagQuery
	if !bindQuery(c, &q) {
		return
	}
	tags, err := h.tagService.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

// CreateTag POST /api/tags
func (h *CatalogHandler) CreateTag(c *gin.Context) {
	var req dto.CreateTagRequest
	if !bindJSON(c, &req) {
		return
	}
	tag, err := h.tagService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

// ListCreators GET /api/creators?query&limit
func (h *CatalogHandler) ListCreators(c *gin.Context) {
	var q dto.CreatorQuery
	if !bindQuery(c, &q) {
		return
	}
	creators, err := h.creatorService.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, creators)
}

// CreateCreator POST /api/creators
func (h *CatalogHandler) CreateCreator(c *gin.Context) {
	var req dto.CreateCreatorRequest
	if !bindJSON(c, &req) {
		return
	}
	creator, err := h.creatorService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, creator)
}
