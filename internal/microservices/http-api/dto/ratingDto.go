package dto

import (
	"time"

	"vibelink/internal/microservices/http-api/models"
)

// UpsertRatingRequest for creating or overwriting the caller's rating
type UpsertRatingRequest struct {
	Score      *int    `json:"score" binding:"required,min=1,max=10"`
	ReviewText *string `json:"reviewText" binding:"omitempty,max=2000"`
}

// RatingResponse for returning rating information
type RatingResponse struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	MediaItemID string       `json:"mediaItemId"`
	Score       int          `json:"score"`
	ReviewText  *string      `json:"reviewText"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	User        *UserSummary `json:"user,omitempty"`
}

// FromModelToRatingResponse converts a Rating model to RatingResponse DTO
func FromModelToRatingResponse(rating *models.Rating) RatingResponse {
	return RatingResponse{
		ID:          rating.ID,
		UserID:      rating.UserID,
		MediaItemID: rating.MediaItemID,
		Score:       rating.Score,
		ReviewText:  rating.ReviewText,
		CreatedAt:   rating.CreatedAt,
		UpdatedAt:   rating.UpdatedAt,
		User:        FromModelToUserSummary(rating.User),
	}
}

func FromModelsToRatingResponses(ratings []models.Rating) []RatingResponse {
	out := make([]RatingResponse, 0, len(ratings))
	for i := range ratings {
		out = append(out, FromModelToRatingResponse(&ratings[i]))
	}
	return out
}
