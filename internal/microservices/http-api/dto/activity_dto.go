package dto

import (
	"time"

	"vibelink/internal/microservices/http-api/models"
)

// ActivityQuery is bound from GET /api/activity query parameters.
type ActivityQuery struct {
	PageQuery
	UserID string              `form:"userId" binding:"omitempty,max=64"`
	Kind   models.ActivityKind `form:"kind" binding:"omitempty,enum"`
}

type ActivityResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"userId"`
	Kind      models.ActivityKind `json:"kind"`
	RefID     string              `json:"refId"`
	Metadata  map[string]any      `json:"metadata"`
	CreatedAt time.Time           `json:"createdAt"`
	User      *UserSummary        `json:"user,omitempty"`
}

func FromModelsToActivityResponses(items []models.Activity) []ActivityResponse {
	out := make([]ActivityResponse, 0, len(items))
	for i := range items {
		a := &items[i]
		out = append(out, ActivityResponse{
			ID:        a.ID,
			UserID:    a.UserID,
			Kind:      a.Kind,
			RefID:     a.RefID,
			Metadata:  a.Metadata,
			CreatedAt: a.CreatedAt,
			User:      FromModelToUserSummary(a.User),
		})
	}
	return out
}
