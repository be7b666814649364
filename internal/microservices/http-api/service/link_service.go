package service

import (
	"context"

	"gorm.io/datatypes"

	"vibelink/internal/apperr"
	"vibelink/internal/cache"
	"vibelink/internal/logger"
	"vibelink/internal/metrics"
	"vibelink/internal/microservices/http-api/dto"
	"vibelink/internal/microservices/http-api/models"
	"vibelink/internal/microservices/http-api/repository"
)

type LinkService interface {
	Create(ctx context.Context, userID string, req dto.CreateLinkRequest) (*dto.LinkResponse, error)
	ListForMedia(ctx context.Context, mediaItemID string) ([]dto.LinkResponse, error)
}

type linkService struct {
	linkRepo  repository.LinkRepository
	mediaRepo repository.MediaRepository
	cache     RecommendationCache
	log       *logger.Logger
}

func NewLinkService(
	linkRepo repository.LinkRepository,
	mediaRepo repository.MediaRepository,
	recCache RecommendationCache,
	log *logger.Logger,
) LinkService {
	return &linkService{
		linkRepo:  linkRepo,
		mediaRepo: mediaRepo,
		cache:     orNoopCache(recCache),
		log:       log.With("service", "LinkService"),
	}
}

// Create records a directed edge between two existing items. Self-links,
// duplicates and reverse edges are accepted.
func (s *linkService) Create(ctx context.Context, userID string, req dto.CreateLinkRequest) (*dto.LinkResponse, error) {
	if err := dto.Check(req); err != nil {
		return nil, err
	}

	for _, id := range []string{req.FromMediaID, req.ToMediaID} {
		exists, err := s.mediaRepo.Exists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperr.NotFound("media item not found")
		}
	}

	strength := req.StrengthOrDefault()
	link := &models.Link{
		FromMediaID: req.FromMediaID,
		ToMediaID:   req.ToMediaID,
		UserID:      userID,
		LinkType:    req.LinkType,
		Strength:    strength,
		Note:        req.Note,
	}
	activity := &models.Activity{
		UserID: userID,
		Kind:   models.ActivityLink,
		Metadata: datatypes.JSONMap{
			"fromMediaId": req.FromMediaID,
			"toMediaId":   req.ToMediaID,
			"linkType":    string(req.LinkType),
			"strength":    strength,
		},
	}
	saved, err := s.linkRepo.Create(ctx, link, activity)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, cache.ItemKey(req.FromMediaID))
	metrics.LinksCreated.WithLabelValues(string(req.LinkType)).Inc()
	s.log.Info("link_created",
		"link_id", saved.ID,
		"from_media_id", saved.FromMediaID,
		"to_media_id", saved.ToMediaID,
		"user_id", userID,
	)

	resp := dto.FromModelToLinkResponse(saved)
	return &resp, nil
}

// ListForMedia returns every link where the item is either endpoint, newest first.
func (s *linkService) ListForMedia(ctx context.Context, mediaItemID string) ([]dto.LinkResponse, error) {
	exists, err := s.mediaRepo.Exists(ctx, mediaItemID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("media item not found")
	}

	links, err := s.linkRepo.ListTouching(ctx, mediaItemID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelsToLinkResponses(links), nil
}
