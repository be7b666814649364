package dto

import "vibelink/internal/microservices/http-api/models"

type CreateTagRequest struct {
	Name string          `json:"name" binding:"required,min=1,max=50"`
	Kind *models.TagKind `json:"kind" binding:"omitempty,enum"`
}

type TagQuery struct {
	Query string         `form:"query" binding:"omitempty,max=100"`
	Kind  models.TagKind `form:"kind" binding:"omitempty,enum"`
}

type TagResponse struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Kind *models.TagKind `json:"kind"`
}

func FromModelToTagResponse(t *models.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name, Kind: t.Kind}
}

func FromModelsToTagResponses(tags []models.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for i := range tags {
		out = append(out, FromModelToTagResponse(&tags[i]))
	}
	return out
}
