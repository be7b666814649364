package service

import (
	"context"
	"strings"

	"vibelink/internal/logger"
	"vibelink/internal/microservices/http-api/dto"
	"vibelink/internal/microservices/http-api/models"
	"vibelink/internal/microservices/http-api/repository"
)

type TagService interface {
	Create(ctx context.Context, req dto.CreateTagRequest) (*dto.TagResponse, error)
	List(ctx context.Context, q dto.TagQuery) ([]dto.TagResponse, error)
}

type tagService struct {
	tagRepo repository.TagRepository
	log     *logger.Logger
}

func NewTagService(tagRepo repository.TagRepository, log *logger.Logger) TagService {
	return &tagService{tagRepo: tagRepo, log: log.With("service", "TagService")}
}

// Create adds a tag. Names are unique; a duplicate is a conflict.
func (s *tagService) Create(ctx context.Context, req dto.CreateTagRequest) (*dto.TagResponse, error) {
	if err := dto.Check(req); err != nil {
		return nil, err
	}
	tag := &models.Tag{Name: strings.TrimSpace(req.Name), Kind: req.Kind}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}
	s.log.Info("tag_created", "tag_id", tag.ID, "name", tag.Name)
	resp := dto.FromModelToTagResponse(tag)
	return &resp, nil
}

func (s *tagService) List(ctx context.Context, q dto.TagQuery) ([]dto.TagResponse, error) {
	if err := dto.Check(q); err != nil {
		return nil, err
	}
	tags, err := s.tagRepo.List(ctx, q.Query, q.Kind)
	if err != nil {
		return nil, err
	}
	return dto.FromModelsToTagResponses(tags), nil
}
