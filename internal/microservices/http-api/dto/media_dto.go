package dto

import (
	"time"

	"vibelink/internal/microservices/http-api/models"
)

// CreatorCreditInput attaches an existing creator to a new media item.
type CreatorCreditInput struct {
	CreatorID string             `json:"creatorId" binding:"required"`
	Role      models.CreatorRole `json:"role" binding:"required,enum"`
}

// CreateMediaRequest used for POST /api/media
type CreateMediaRequest struct {
	Type        models.MediaType     `json:"type" binding:"required,enum"`
	Title       string               `json:"title" binding:"required,min=1,max=300"`
	Subtitle    *string              `json:"subtitle" binding:"omitempty,max=300"`
	Description *string              `json:"description" binding:"omitempty,max=10000"`
	Year        *int                 `json:"year" binding:"omitempty,min=1000,max=9999"`
	CoverURL    *string              `json:"coverUrl" binding:"omitempty,url"`
	ExternalIDs map[string]string    `json:"externalIds" binding:"omitempty,dive,keys,min=1,max=64,endkeys,max=256"`
	Creators    []CreatorCreditInput `json:"creators" binding:"omitempty,max=50,dive"`
	TagIDs      []string             `json:"tagIds" binding:"omitempty,max=50,dive,required"`
}

// UpdateMediaRequest used for PATCH /api/media/:id (partial updates allowed)
type UpdateMediaRequest struct {
	Type        *models.MediaType `json:"type" binding:"omitempty,enum"`
	Title       *string           `json:"title" binding:"omitempty,min=1,max=300"`
	Subtitle    *string           `json:"subtitle" binding:"omitempty,max=300"`
	Description *string           `json:"description" binding:"omitempty,max=10000"`
	Year        *int              `json:"year" binding:"omitempty,min=1000,max=9999"`
	CoverURL    *string           `json:"coverUrl" binding:"omitempty,url"`
	ExternalIDs map[string]string `json:"externalIds" binding:"omitempty,dive,keys,min=1,max=64,endkeys,max=256"`
}

// IsEmpty reports whether the request changes nothing.
func (d UpdateMediaRequest) IsEmpty() bool {
	return d.Type == nil && d.Title == nil && d.Subtitle == nil && d.Description == nil &&
		d.Year == nil && d.CoverURL == nil && d.ExternalIDs == nil
}

// ApplyTo copies the set fields onto m and returns the names of the changed fields.
func (d UpdateMediaRequest) ApplyTo(m *models.MediaItem) []string {
	var changed []string
	if d.Type != nil {
		m.Type = *d.Type
		changed = append(changed, "type")
	}
	if d.Title != nil {
		m.Title = *d.Title
		changed = append(changed, "title")
	}
	if d.Subtitle != nil {
		m.Subtitle = d.Subtitle
		changed = append(changed, "subtitle")
	}
	if d.Description != nil {
		m.Description = d.Description
		changed = append(changed, "description")
	}
	if d.Year != nil {
		m.Year = d.Year
		changed = append(changed, "year")
	}
	if d.CoverURL != nil {
		m.CoverURL = d.CoverURL
		changed = append(changed, "coverUrl")
	}
	if d.ExternalIDs != nil {
		m.ExternalIDs = externalIDs(d.ExternalIDs)
		changed = append(changed, "externalIds")
	}
	return changed
}

// MediaListQuery is bound from GET /api/media query parameters.
type MediaListQuery struct {
	PageQuery
	Query   string           `form:"query" binding:"omitempty,max=200"`
	Type    models.MediaType `form:"type" binding:"omitempty,enum"`
	Tag     string           `form:"tag" binding:"omitempty,max=100"`
	Creator string           `form:"creator" binding:"omitempty,max=200"`
	Sort    string           `form:"sort" binding:"omitempty,oneof=recent title rating popular"`
}

// CreatorCredit is a creator as credited on one media item.
type CreatorCredit struct {
	ID   string             `json:"id"`
	Name string             `json:"name"`
	Role models.CreatorRole `json:"role"`
}

// MediaItemResponse DTO for responses
type MediaItemResponse struct {
	ID          string            `json:"id"`
	Type        models.MediaType  `json:"type"`
	Title       string            `json:"title"`
	Subtitle    *string           `json:"subtitle"`
	Description *string           `json:"description"`
	Year        *int              `json:"year"`
	CoverURL    *string           `json:"coverUrl"`
	ExternalIDs map[string]string `json:"externalIds"`
	Creators    []CreatorCredit   `json:"creators"`
	Tags        []TagResponse     `json:"tags"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// MediaDetailResponse for GET /api/media/:id
type MediaDetailResponse struct {
	MediaItemResponse
	RecentRatings []RatingResponse `json:"recentRatings"`
	AverageRating *float64         `json:"averageRating"`
	RatingsCount  int64            `json:"ratingsCount"`
	UserRating    *int             `json:"userRating"`
}

func (d CreateMediaRequest) ToModel() *models.MediaItem {
	m := &models.MediaItem{
		Type:        d.Type,
		Title:       d.Title,
		Subtitle:    d.Subtitle,
		Description: d.Description,
		Year:        d.Year,
		CoverURL:    d.CoverURL,
		ExternalIDs: externalIDs(d.ExternalIDs),
	}
	seenCredit := make(map[CreatorCreditInput]bool)
	for _, c := range d.Creators {
		if seenCredit[c] {
			continue
		}
		seenCredit[c] = true
		m.Creators = append(m.Creators, models.MediaItemCreator{CreatorID: c.CreatorID, Role: c.Role})
	}
	seenTag := make(map[string]bool)
	for _, id := range d.TagIDs {
		if seenTag[id] {
			continue
		}
		seenTag[id] = true
		m.Tags = append(m.Tags, models.MediaItemTag{TagID: id})
	}
	return m
}

// FromModelToMediaItemResponse expects creators and tags preloaded with their targets.
func FromModelToMediaItemResponse(m *models.MediaItem) MediaItemResponse {
	resp := MediaItemResponse{
		ID:          m.ID,
		Type:        m.Type,
		Title:       m.Title,
		Subtitle:    m.Subtitle,
		Description: m.Description,
		Year:        m.Year,
		CoverURL:    m.CoverURL,
		ExternalIDs: m.ExternalIDs.Data(),
		Creators:    make([]CreatorCredit, 0, len(m.Creators)),
		Tags:        make([]TagResponse, 0, len(m.Tags)),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if resp.ExternalIDs == nil {
		resp.ExternalIDs = map[string]string{}
	}
	for _, c := range m.Creators {
		if c.Creator == nil {
			continue
		}
		resp.Creators = append(resp.Creators, CreatorCredit{ID: c.Creator.ID, Name: c.Creator.Name, Role: c.Role})
	}
	for _, t := range m.Tags {
		if t.Tag == nil {
			continue
		}
		resp.Tags = append(resp.Tags, FromModelToTagResponse(t.Tag))
	}
	return resp
}

func FromModelsToMediaItemResponses(items []models.MediaItem) []MediaItemResponse {
	out := make([]MediaItemResponse, 0, len(items))
	for i := range items {
		out = append(out, FromModelToMediaItemResponse(&items[i]))
	}
	return out
}
