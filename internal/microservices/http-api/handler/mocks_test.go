package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"vibelink/internal/auth"
	"vibelink/internal/microservices/http-api/dto"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*auth.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) List(ctx context.Context, q dto.MediaListQuery) (*dto.Paginated[dto.MediaItemResponse], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Paginated[dto.MediaItemResponse]), args.Error(1)
}

func (m *MockMediaService) Get(ctx context.Context, mediaItemID, viewerID string) (*dto.MediaDetailResponse, error) {
	args := m.Called(ctx, mediaItemID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MediaDetailResponse), args.Error(1)
}

func (m *MockMediaService) Create(ctx context.Context, userID string, req dto.CreateMediaRequest) (*dto.MediaItemResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MediaItemResponse), args.Error(1)
}

func (m *MockMediaService) Update(ctx context.Context, userID, mediaItemID string, req dto.UpdateMediaRequest) (*dto.MediaItemResponse, error) {
	args := m.Called(ctx, userID, mediaItemID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MediaItemResponse), args.Error(1)
}

type MockRatingService struct {
	mock.Mock
}

func (m *MockRatingService) Upsert(ctx context.Context, userID, mediaItemID string, req dto.UpsertRatingRequest) (*dto.RatingResponse, error) {
	args := m.Called(ctx, userID, mediaItemID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RatingResponse), args.Error(1)
}

func (m *MockRatingService) Delete(ctx context.Context, userID, mediaItemID string) error {
	args := m.Called(ctx, userID, mediaItemID)
	return args.Error(0)
}

func (m *MockRatingService) ListForMedia(ctx context.Context, mediaItemID string, q dto.PageQuery) (*dto.Paginated[dto.RatingResponse], error) {
	args := m.Called(ctx, mediaItemID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Paginated[dto.RatingResponse]), args.Error(1)
}

type MockLinkService struct {
	mock.Mock
}

func (m *MockLinkService) Create(ctx context.Context, userID string, req dto.CreateLinkRequest) (*dto.LinkResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LinkResponse), args.Error(1)
}

func (m *MockLinkService) ListForMedia(ctx context.Context, mediaItemID string) ([]dto.LinkResponse, error) {
	args := m.Called(ctx, mediaItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.LinkResponse), args.Error(1)
}

type MockRecommendationService struct {
	mock.Mock
}

func (m *MockRecommendationService) RecommendForItem(ctx context.Context, mediaItemID string) ([]dto.RecommendationResponse, error) {
	args := m.Called(ctx, mediaItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.RecommendationResponse), args.Error(1)
}

func (m *MockRecommendationService) RecommendForUser(ctx context.Context, userID string) ([]dto.RecommendationResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.RecommendationResponse), args.Error(1)
}

type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) List(ctx context.Context, q dto.ActivityQuery) (*dto.Paginated[dto.ActivityResponse], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Paginated[dto.ActivityResponse]), args.Error(1)
}
