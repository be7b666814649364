package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"vibelink/internal/apperr"
	"vibelink/internal/cache"
	"vibelink/internal/logger"
	"vibelink/internal/metrics"
	"vibelink/internal/microservices/http-api/dto"
	"vibelink/internal/microservices/http-api/repository"
)

const (
	contractItem = "item"
	contractUser = "user"
)

var tracer = otel.Tracer("vibelink/recommendations")

// RecommendationCache is the read-through cache in front of both contracts.
// *cache.RecommendationCache satisfies it. Get returns the key's invalidation
// generation; Set only writes while that generation is still current.
type RecommendationCache interface {
	Get(ctx context.Context, key string, dst any) (bool, int64)
	Set(ctx context.Context, key string, gen int64, value any)
	Invalidate(ctx context.Context, keys ...string)
}

type noopCache struct{}

func (noopCache) Get(context.Context, string, any) (bool, int64) { return false, cache.NoGeneration }
func (noopCache) Set(context.Context, string, int64, any)        {}
func (noopCache) Invalidate(context.Context, ...string)          {}

func orNoopCache(c RecommendationCache) RecommendationCache {
	if c == nil {
		return noopCache{}
	}
	return c
}

type RecommendationService interface {
	// RecommendForItem lists the strongest outgoing links of an item.
	RecommendForItem(ctx context.Context, mediaItemID string) ([]dto.RecommendationResponse, error)
	// RecommendForUser walks the links of the user's best-rated items.
	RecommendForUser(ctx context.Context, userID string) ([]dto.RecommendationResponse, error)
}

type recommendationService struct {
	ratingRepo repository.RatingRepository
	linkRepo   repository.LinkRepository
	mediaRepo  repository.MediaRepository
	cache      RecommendationCache
	log        *logger.Logger
}

func NewRecommendationService(
	ratingRepo repository.RatingRepository,
	linkRepo repository.LinkRepository,
	mediaRepo repository.MediaRepository,
	recCache RecommendationCache,
	log *logger.Logger,
) RecommendationService {
	return &recommendationService{
		ratingRepo: ratingRepo,
		linkRepo:   linkRepo,
		mediaRepo:  mediaRepo,
		cache:      orNoopCache(recCache),
		log:        log.With("service", "RecommendationService"),
	}
}

func (s *recommendationService) RecommendForItem(ctx context.Context, mediaItemID string) (recs []dto.RecommendationResponse, err error) {
	ctx, span := tracer.Start(ctx, "RecommendForItem")
	defer span.End()
	span.SetAttributes(attribute.String("media_item.id", mediaItemID))

	start := time.Now()
	defer func() {
		s.observe(contractItem, start, len(recs), err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	key := cache.ItemKey(mediaItemID)
	hit, gen := s.lookup(ctx, contractItem, key, &recs)
	if hit {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return recs, nil
	}

	exists, err := s.mediaRepo.Exists(ctx, mediaItemID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("media item not found")
	}

	links, err := s.linkRepo.Outgoing(ctx, mediaItemID, maxRecommendations)
	if err != nil {
		return nil, err
	}
	recs = scoreItemLinks(links)
	span.SetAttributes(attribute.Int("links.count", len(links)))

	s.cache.Set(ctx, key, gen, recs)
	return recs, nil
}

func (s *recommendationService) RecommendForUser(ctx context.Context, userID string) (recs []dto.RecommendationResponse, err error) {
	ctx, span := tracer.Start(ctx, "RecommendForUser")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	start := time.Now()
	defer func() {
		s.observe(contractUser, start, len(recs), err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	key := cache.UserKey(userID)
	hit, gen := s.lookup(ctx, contractUser, key, &recs)
	if hit {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return recs, nil
	}

	seeds, err := s.ratingRepo.TopRatedByUser(ctx, userID, seedMinScore, maxSeeds)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("seeds.count", len(seeds)))

	walks := make([]seedWalk, len(seeds))
	g, gctx := errgroup.WithContext(ctx)
	for i := range seeds {
		walks[i].Seed = seeds[i]
		g.Go(func() error {
			links, err := s.linkRepo.Outgoing(gctx, seeds[i].MediaItemID, linksPerSeed)
			if err != nil {
				return err
			}
			walks[i].Links = links
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	recs = scoreUserSeeds(walks)
	s.cache.Set(ctx, key, gen, recs)
	return recs, nil
}

func (s *recommendationService) lookup(ctx context.Context, contract, key string, dst *[]dto.RecommendationResponse) (bool, int64) {
	hit, gen := s.cache.Get(ctx, key, dst)
	metrics.RecordCacheLookup(contract, hit)
	return hit, gen
}

func (s *recommendationService) observe(contract string, start time.Time, n int, err error) {
	d := time.Since(start)
	metrics.RecommendationDuration.WithLabelValues(contract).Observe(d.Seconds())
	if err != nil {
		s.log.Warn("recommendation_failed", "contract", contract, "error", err)
		return
	}
	metrics.RecommendationsServed.WithLabelValues(contract).Inc()
	s.log.Debug("recommendation_served", "contract", contract, "count", n, "duration_ms", d.Milliseconds())
}
