package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vibelink/internal/microservices/http-api/service"
)

type RecommendationHandler struct {
	recommendationService service.RecommendationService
}

func NewRecommendationHandler(recommendationService service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

func (h *RecommendationHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/media/:id/recommendations", h.ForItem)
	protected.GET("/users/me/recommendations", h.ForMe)
}

// ForItem GET /api/media/:id/recommendations
func (h *RecommendationHandler) ForItem(c *gin.Context) {
	recs, err := h.recommendationService.RecommendForItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

// ForMe GET /api/users/me/recommendations
func (h *RecommendationHandler) ForMe(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	recs, err := h.recommendationService.RecommendForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}
