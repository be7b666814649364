package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"vibelink/internal/apperr"
	"vibelink/internal/logger"
	"vibelink/internal/microservices/http-api/dto"
	"vibelink/internal/microservices/http-api/models"
	"vibelink/internal/microservices/http-api/repository"
)

// recentRatingsOnDetail is how many of the latest ratings the detail view embeds.
const recentRatingsOnDetail = 10

type MediaService interface {
	List(ctx context.Context, q dto.MediaListQuery) (*dto.Paginated[dto.MediaItemResponse], error)
	Get(ctx context.Context, mediaItemID, viewerID string) (*dto.MediaDetailResponse, error)
	Create(ctx context.Context, userID string, req dto.CreateMediaRequest) (*dto.MediaItemResponse, error)
	Update(ctx context.Context, userID, mediaItemID string, req dto.UpdateMediaRequest) (*dto.MediaItemResponse, error)
}

type mediaService struct {
	mediaRepo   repository.MediaRepository
	ratingRepo  repository.RatingRepository
	creatorRepo repository.CreatorRepository
	tagRepo     repository.TagRepository
	log         *logger.Logger
}

func NewMediaService(
	mediaRepo repository.MediaRepository,
	ratingRepo repository.RatingRepository,
	creatorRepo repository.CreatorRepository,
	tagRepo repository.TagRepository,
	log *logger.Logger,
) MediaService {
	return &mediaService{
		mediaRepo:   mediaRepo,
		ratingRepo:  ratingRepo,
		creatorRepo: creatorRepo,
		tagRepo:     tagRepo,
		log:         log.With("service", "MediaService"),
	}
}

func (s *mediaService) List(ctx context.Context, q dto.MediaListQuery) (*dto.Paginated[dto.MediaItemResponse], error) {
	if err := dto.Check(q); err != nil {
		return nil, err
	}
	page, limit := q.Normalize()
	items, total, err := s.mediaRepo.List(ctx, repository.MediaFilter{
		Query:   q.Query,
		Type:    q.Type,
		Tag:     q.Tag,
		Creator: q.Creator,
		Sort:    q.Sort,
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		return nil, err
	}
	return dto.NewPaginated(dto.FromModelsToMediaItemResponses(items), total, page, limit), nil
}

// Get hydrates the detail view. The independent reads run concurrently; the
// average and count come from the ratings table, never from a cached field.
func (s *mediaService) Get(ctx context.Context, mediaItemID, viewerID string) (*dto.MediaDetailResponse, error) {
	var (
		item       *models.MediaItem
		recent     []models.Rating
		stats      repository.RatingStats
		userRating *int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		item, err = s.mediaRepo.GetByID(gctx, mediaItemID)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.ratingRepo.Recent(gctx, mediaItemID, recentRatingsOnDetail)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.ratingRepo.Stats(gctx, mediaItemID)
		return err
	})
	if viewerID != "" {
		g.Go(func() error {
			r, err := s.ratingRepo.GetByUserAndMedia(gctx, viewerID, mediaItemID)
			if err != nil {
				if errors.Is(err, apperr.ErrNotFound) {
					return nil
				}
				return err
			}
			userRating = &r.Score
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.MediaDetailResponse{
		MediaItemResponse: dto.FromModelToMediaItemResponse(item),
		RecentRatings:     dto.FromModelsToRatingResponses(recent),
		AverageRating:     stats.Average,
		RatingsCount:      stats.Count,
		UserRating:        userRating,
	}, nil
}

// Create adds a catalog entry attached to existing creators and tags, recording an ADD activity.
func (s *mediaService) Create(ctx context.Context, userID string, req dto.CreateMediaRequest) (*dto.MediaItemResponse, error) {
	if err := dto.Check(req); err != nil {
		return nil, err
	}

	item := req.ToModel()
	if err := s.checkReferences(ctx, item); err != nil {
		return nil, err
	}

	activity := &models.Activity{
		UserID:   userID,
		Kind:     models.ActivityAdd,
		Metadata: datatypes.JSONMap{"title": item.Title, "type": string(item.Type)},
	}
	if err := s.mediaRepo.Create(ctx, item, activity); err != nil {
		return nil, err
	}

	created, err := s.mediaRepo.GetByID(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	s.log.Info("media_item_created", "media_item_id", item.ID, "user_id", userID)
	resp := dto.FromModelToMediaItemResponse(created)
	return &resp, nil
}

// Update applies a partial change to descriptive fields, recording an EDIT activity.
func (s *mediaService) Update(ctx context.Context, userID, mediaItemID string, req dto.UpdateMediaRequest) (*dto.MediaItemResponse, error) {
	if err := dto.Check(req); err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return nil, apperr.Validation("no fields to update")
	}

	item, err := s.mediaRepo.GetByID(ctx, mediaItemID)
	if err != nil {
		return nil, err
	}
	changed := req.ApplyTo(item)
	item.UpdatedAt = time.Now()

	activity := &models.Activity{
		UserID:   userID,
		Kind:     models.ActivityEdit,
		Metadata: datatypes.JSONMap{"fields": changed},
	}
	if err := s.mediaRepo.Update(ctx, item, activity); err != nil {
		return nil, err
	}

	s.log.Info("media_item_updated", "media_item_id", item.ID, "user_id", userID, "fields", changed)
	resp := dto.FromModelToMediaItemResponse(item)
	return &resp, nil
}

func (s *mediaService) checkReferences(ctx context.Context, item *models.MediaItem) error {
	creatorIDs := make([]string, 0, len(item.Creators))
	seen := make(map[string]bool)
	for _, c := range item.Creators {
		if !seen[c.CreatorID] {
			seen[c.CreatorID] = true
			creatorIDs = append(creatorIDs, c.CreatorID)
		}
	}
	if len(creatorIDs) > 0 {
		found, err := s.creatorRepo.FindByIDs(ctx, creatorIDs)
		if err != nil {
			return err
		}
		if len(found) != len(creatorIDs) {
			return apperr.NotFound("creator not found")
		}
	}

	tagIDs := make([]string, 0, len(item.Tags))
	for _, t := range item.Tags {
		tagIDs = append(tagIDs, t.TagID)
	}
	if len(tagIDs) > 0 {
		found, err := s.tagRepo.FindByIDs(ctx, tagIDs)
		if err != nil {
			return err
		}
		if len(found) != len(tagIDs) {
			return apperr.NotFound("tag not found")
		}
	}
	return nil
}
