package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"vibelink/internal/auth"
	"vibelink/internal/cache"
	"vibelink/internal/config"
	"vibelink/internal/logger"
	"vibelink/internal/microservices/http-api/handler"
	"vibelink/internal/microservices/http-api/middleware"
	"vibelink/internal/microservices/http-api/repository"
	"vibelink/internal/microservices/http-api/service"
)

// Services is every service the API and the CLI drive, wired to one store.
type Services struct {
	Auth           service.AuthService
	User           service.UserService
	Media          service.MediaService
	Rating         service.RatingService
	Link           service.LinkService
	Recommendation service.RecommendationService
	Activity       service.ActivityService
	Tag            service.TagService
	Creator        service.CreatorService
}

// NewServices builds repositories over db and the services on top of them.
// recCache may be nil.
func NewServices(db *gorm.DB, tokens *auth.TokenManager, recCache *cache.RecommendationCache, log *logger.Logger) *Services {
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	linkRepo := repository.NewLinkRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	tagRepo := repository.NewTagRepository(db)
	creatorRepo := repository.NewCreatorRepository(db)

	return &Services{
		Auth:           service.NewAuthService(userRepo, refreshTokenRepo, tokens, log),
		User:           service.NewUserService(userRepo, refreshTokenRepo, log),
		Media:          service.NewMediaService(mediaRepo, ratingRepo, creatorRepo, tagRepo, log),
		Rating:         service.NewRatingService(ratingRepo, mediaRepo, recCache, log),
		Link:           service.NewLinkService(linkRepo, mediaRepo, recCache, log),
		Recommendation: service.NewRecommendationService(ratingRepo, linkRepo, mediaRepo, recCache, log),
		Activity:       service.NewActivityService(activityRepo, log),
		Tag:            service.NewTagService(tagRepo, log),
		Creator:        service.NewCreatorService(creatorRepo, log),
	}
}

// Deps is what New needs to assemble the HTTP API.
type Deps struct {
	DB          *gorm.DB
	Config      *config.Config
	Cache       *cache.RecommendationCache
	Logger      *logger.Logger
	RateLimiter *middleware.RateLimiter
}

// New wires repositories, services and handlers into a ready router.
func New(deps Deps) (*gin.Engine, error) {
	cfg := deps.Config
	sqlDB, err := deps.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	tokens := auth.NewTokenManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	svcs := NewServices(deps.DB, tokens, deps.Cache, deps.Logger)

	return NewRouter(RouterConfig{
		Logger:         deps.Logger,
		Tokens:         svcs.Auth,
		CORSOrigins:    cfg.CORSOrigins,
		RateLimiter:    deps.RateLimiter,
		RequestTimeout: cfg.RequestTimeout,
		ServeMetrics:   cfg.PrometheusEnabled,

		AuthHandler:           handler.NewAuthHandler(svcs.Auth),
		UserHandler:           handler.NewUserHandler(svcs.User),
		MediaHandler:          handler.NewMediaHandler(svcs.Media),
		RatingHandler:         handler.NewRatingHandler(svcs.Rating),
		LinkHandler:           handler.NewLinkHandler(svcs.Link),
		RecommendationHandler: handler.NewRecommendationHandler(svcs.Recommendation),
		ActivityHandler:       handler.NewActivityHandler(svcs.Activity),
		CatalogHandler:        handler.NewCatalogHandler(svcs.Tag, svcs.Creator),
		HealthHandler:         handler.NewHealthHandler(sqlDB, deps.Cache.State),
	}), nil
}
