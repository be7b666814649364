package dto

import (
	"time"

	"vibelink/internal/microservices/http-api/models"
)

// DefaultLinkStrength applies when a link is created without a strength.
const DefaultLinkStrength = 0.5

// CreateLinkRequest used for POST /api/links. Strength is a pointer so 0 is a valid value.
type CreateLinkRequest struct {
	FromMediaID string          `json:"fromMediaId" binding:"required"`
	ToMediaID   string          `json:"toMediaId" binding:"required"`
	LinkType    models.LinkType `json:"linkType" binding:"required,enum"`
	Strength    *float64        `json:"strength" binding:"omitempty,min=0,max=1"`
	Note        *string         `json:"note" binding:"omitempty,max=500"`
}

func (d CreateLinkRequest) StrengthOrDefault() float64 {
	if d.Strength == nil {
		return DefaultLinkStrength
	}
	return *d.Strength
}

// MediaSummary is the short form of a media item embedded in links.
type MediaSummary struct {
	ID       string           `json:"id"`
	Type     models.MediaType `json:"type"`
	Title    string           `json:"title"`
	Year     *int             `json:"year"`
	CoverURL *string          `json:"coverUrl"`
}

func FromModelToMediaSummary(m *models.MediaItem) *MediaSummary {
	if m == nil {
		return nil
	}
	return &MediaSummary{ID: m.ID, Type: m.Type, Title: m.Title, Year: m.Year, CoverURL: m.CoverURL}
}

// LinkResponse DTO for responses
type LinkResponse struct {
	ID          string          `json:"id"`
	FromMediaID string          `json:"fromMediaId"`
	ToMediaID   string          `json:"toMediaId"`
	UserID      string          `json:"userId"`
	LinkType    models.LinkType `json:"linkType"`
	Strength    float64         `json:"strength"`
	Note        *string         `json:"note"`
	CreatedAt   time.Time       `json:"createdAt"`
	FromMedia   *MediaSummary   `json:"fromMedia,omitempty"`
	ToMedia     *MediaSummary   `json:"toMedia,omitempty"`
	User        *UserSummary    `json:"user,omitempty"`
}

func FromModelToLinkResponse(l *models.Link) LinkResponse {
	return LinkResponse{
		ID:          l.ID,
		FromMediaID: l.FromMediaID,
		ToMediaID:   l.ToMediaID,
		UserID:      l.UserID,
		LinkType:    l.LinkType,
		Strength:    l.Strength,
		Note:        l.Note,
		CreatedAt:   l.CreatedAt,
		FromMedia:   FromModelToMediaSummary(l.FromMedia),
		ToMedia:     FromModelToMediaSummary(l.ToMedia),
		User:        FromModelToUserSummary(l.User),
	}
}

func FromModelsToLinkResponses(links []models.Link) []LinkResponse {
	out := make([]LinkResponse, 0, len(links))
	for i := range links {
		out = append(out, FromModelToLinkResponse(&links[i]))
	}
	return out
}
