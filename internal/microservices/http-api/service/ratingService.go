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

type RatingService interface {
	Upsert(ctx context.Context, userID, mediaItemID string, req dto.UpsertRatingRequest) (*dto.RatingResponse, error)
	Delete(ctx context.Context, userID, mediaItemID string) error
	ListForMedia(ctx context.Context, mediaItemID string, q dto.PageQuery) (*dto.Paginated[dto.RatingResponse], error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	mediaRepo  repository.MediaRepository
	cache      RecommendationCache
	log        *logger.Logger
}

func NewRatingService(
	ratingRepo repository.RatingRepository,
	mediaRepo repository.MediaRepository,
	recCache RecommendationCache,
	log *logger.Logger,
) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		mediaRepo:  mediaRepo,
		cache:      orNoopCache(recCache),
		log:        log.With("service", "RatingService"),
	}
}

// Upsert creates or overwrites the caller's rating for the item. The second
// write for the same pair wins; there is never more than one row per pair.
func (s *ratingService) Upsert(ctx context.Context, userID, mediaItemID string, req dto.UpsertRatingRequest) (*dto.RatingResponse, error) {
	if err := dto.Check(req); err != nil {
		return nil, err
	}

	exists, err := s.mediaRepo.Exists(ctx, mediaItemID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("media item not found")
	}

	rating := &models.Rating{
		UserID:      userID,
		MediaItemID: mediaItemID,
		Score:       *req.Score,
		ReviewText:  req.ReviewText,
	}
	activity := &models.Activity{
		UserID:   userID,
		Kind:     models.ActivityRate,
		RefID:    mediaItemID,
		Metadata: datatypes.JSONMap{"score": *req.Score},
	}
	saved, err := s.ratingRepo.Upsert(ctx, rating, activity)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, cache.UserKey(userID))
	metrics.RatingsUpserted.Inc()
	s.log.Info("rating_upserted", "user_id", userID, "media_item_id", mediaItemID, "score", saved.Score)

	resp := dto.FromModelToRatingResponse(saved)
	return &resp, nil
}

func (s *ratingService) Delete(ctx context.Context, userID, mediaItemID string) error {
	if err := s.ratingRepo.Delete(ctx, userID, mediaItemID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, cache.UserKey(userID))
	s.log.Info("rating_deleted", "user_id", userID, "media_item_id", mediaItemID)
	return nil
}

// ListForMedia pages through an item's ratings, newest first.
func (s *ratingService) ListForMedia(ctx context.Context, mediaItemID string, q dto.PageQuery) (*dto.Paginated[dto.RatingResponse], error) {
	if err := dto.Check(q); err != nil {
		return nil, err
	}
	exists, err := s.mediaRepo.Exists(ctx, mediaItemID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("media item not found")
	}

	page, limit := q.Normalize()
	ratings, total, err := s.ratingRepo.ListByMedia(ctx, mediaItemID, page, limit)
	if err != nil {
		return nil, err
	}
	return dto.NewPaginated(dto.FromModelsToRatingResponses(ratings), total, page, limit), nil
}
