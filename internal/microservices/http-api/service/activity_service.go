package service

import (
	"context"

	"vibelink/internal/logger"
	"vibelink/internal/microservices/http-api/dto"
	"vibelink/internal/microservices/http-api/repository"
)

type ActivityService interface {
	List(ctx context.Context, q dto.ActivityQuery) (*dto.Paginated[dto.ActivityResponse], error)
}

type activityService struct {
	activityRepo repository.ActivityRepository
	log          *logger.Logger
}

func NewActivityService(activityRepo repository.ActivityRepository, log *logger.Logger) ActivityService {
	return &activityService{activityRepo: activityRepo, log: log.With("service", "ActivityService")}
}

// List returns the global feed, newest first, optionally narrowed to one user or kind.
func (s *activityService) List(ctx context.Context, q dto.ActivityQuery) (*dto.Paginated[dto.ActivityResponse], error) {
	if err := dto.Check(q); err != nil {
		return nil, err
	}
	page, limit := q.Normalize()
	items, total, err := s.activityRepo.List(ctx, repository.ActivityFilter{
		UserID: q.UserID,
		Kind:   q.Kind,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}
	return dto.NewPaginated(dto.FromModelsToActivityResponses(items), total, page, limit), nil
}
