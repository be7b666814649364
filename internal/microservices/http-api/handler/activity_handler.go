package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vibelink/internal/microservices/http-api/dto"
	"vibelink/internal/microservices/http-api/service"
)

type ActivityHandler struct {
	activityService service.ActivityService
}

func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func (h *ActivityHandler) RegisterRoutes(public *gin.RouterGroup) {
	public.GET("/activity", h.List)
}

// List GET /api/activity?userId&kind&page&limit
func (h *ActivityHandler) List(c *gin.Context) {
	var q dto.ActivityQuery
	if !bindQuery(c, &q) {
		return
	}
	page, err := h.activityService.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
