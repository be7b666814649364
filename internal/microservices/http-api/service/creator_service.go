package service

import (
	"context"
	"strings"

	"gorm.io/datatypes"

	"vibelink/internal/logger"
	"vibelink/internal/microservices/http-api/dto"
	"vibelink/internal/microservices/http-api/models"
	"vibelink/internal/microservices/http-api/repository"
)

const defaultCreatorLimit = 20

type CreatorService interface {
	Create(ctx context.Context, req dto.CreateCreatorRequest) (*dto.CreatorResponse, error)
	List(ctx context.Context, q dto.CreatorQuery) ([]dto.CreatorResponse, error)
}

type creatorService struct {
	creatorRepo repository.CreatorRepository
	log         *logger.Logger
}

func NewCreatorService(creatorRepo repository.CreatorRepository, log *logger.Logger) CreatorService {
	return &creatorService{creatorRepo: creatorRepo, log: log.With("service", "CreatorService")}
}

func (s *creatorService) Create(ctx context.Context, req dto.CreateCreatorRequest) (*dto.CreatorResponse, error) {
	if err := dto.Check(req); err != nil {
		return nil, err
	}
	aliases := datatypes.JSONSlice[string]{}
	for _, a := range req.Aliases {
		if a = strings.TrimSpace(a); a != "" {
			aliases = append(aliases, a)
		}
	}
	creator := &models.Creator{
		Name:    strings.TrimSpace(req.Name),
		Aliases: aliases,
		Bio:     req.Bio,
	}
	if err := s.creatorRepo.Create(ctx, creator); err != nil {
		return nil, err
	}
	s.log.Info("creator_created", "creator_id", creator.ID, "name", creator.Name)
	resp := dto.FromModelToCreatorResponse(creator)
	return &resp, nil
}

func (s *creatorService) List(ctx context.Context, q dto.CreatorQuery) ([]dto.CreatorResponse, error) {
	if err := dto.Check(q); err != nil {
		return nil, err
	}
	limit := q.Limit
	if limit == 0 {
		limit = defaultCreatorLimit
	}
	creators, err := s.creatorRepo.List(ctx, q.Query, limit)
	if err != nil {
		return nil, err
	}
	return dto.FromModelsToCreatorResponses(creators), nil
}
