package dto

import "vibelink/internal/microservices/http-api/models"

type CreateCreatorRequest struct {
	Name    string   `json:"name" binding:"required,min=1,max=200"`
	Aliases []string `json:"aliases" binding:"omitempty,max=20,dive,min=1,max=200"`
	Bio     *string  `json:"bio" binding:"omitempty,max=5000"`
}

type CreatorQuery struct {
	Query string `form:"query" binding:"omitempty,max=100"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type CreatorResponse struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
	Bio     *string  `json:"bio"`
}

func FromModelToCreatorResponse(c *models.Creator) CreatorResponse {
	aliases := []string(c.Aliases)
	if aliases == nil {
		aliases = []string{}
	}
	return CreatorResponse{ID: c.ID, Name: c.Name, Aliases: aliases, Bio: c.Bio}
}

func FromModelsToCreatorResponses(creators []models.Creator) []CreatorResponse {
	out := make([]CreatorResponse, 0, len(creators))
	for i := range creators {
		out = append(out, FromModelToCreatorResponse(&creators[i]))
	}
	return out
}
