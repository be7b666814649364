package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vibelink/internal/apperr"
	"vibelink/internal/logger"
	"vibelink/internal/microservices/http-api/dto"
	"vibelink/internal/microservices/http-api/models"
)

func intPtr(v int) *int { return &v }

func newTestRatingService() (RatingService, *MockRatingRepository, *MockMediaRepository, *MockRecommendationCache) {
	ratingRepo := new(MockRatingRepository)
	mediaRepo := new(MockMediaRepository)
	recCache := new(MockRecommendationCache)
	return NewRatingService(ratingRepo, mediaRepo, recCache, logger.Nop()), ratingRepo, mediaRepo, recCache
}

func TestRatingUpsert_Success(t *testing.T) {
	svc, ratingRepo, mediaRepo, recCache := newTestRatingService()
	review := "great"
	mediaRepo.On("Exists", mock.Anything, "m1").Return(true, nil)
	ratingRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*models.Rating"), mock.AnythingOfType("*models.Activity")).
		Return(&models.Rating{ID: "r1", UserID: "user-1", MediaItemID: "m1", Score: 9, ReviewText: &review}, nil)
	recCache.On("Invalidate", mock.Anything, []string{"recs:user:user-1"}).Return()

	resp, err := svc.Upsert(t.Context(), "user-1", "m1", dto.UpsertRatingRequest{Score: intPtr(9), ReviewText: &review})

	require.NoError(t, err)
	assert.Equal(t, 9, resp.Score)

	rating := ratingRepo.Calls[0].Arguments.Get(1).(*models.Rating)
	activity := ratingRepo.Calls[0].Arguments.Get(2).(*models.Activity)
	assert.Equal(t, "user-1", rating.UserID)
	assert.Equal(t, models.ActivityRate, activity.Kind)
	assert.Equal(t, "m1", activity.RefID)
	assert.Equal(t, 9, activity.Metadata["score"])
	recCache.AssertExpectations(t)
}

func TestRatingUpsert_ScoreOutOfRange(t *testing.T) {
	for _, score := range []int{0, 11, -3} {
		svc, ratingRepo, mediaRepo, _ := newTestRatingService()

		_, err := svc.Upsert(t.Context(), "user-1", "m1", dto.UpsertRatingRequest{Score: intPtr(score)})

		assert.ErrorIs(t, err, apperr.ErrValidation, "score %d", score)
		mediaRepo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
		ratingRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestRatingUpsert_MissingScore(t *testing.T) {
	svc, _, _, _ := newTestRatingService()

	_, err := svc.Upsert(t.Context(), "user-1", "m1", dto.UpsertRatingRequest{})

	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestRatingUpsert_UnknownMedia(t *testing.T) {
	svc, ratingRepo, mediaRepo, _ := newTestRatingService()
	mediaRepo.On("Exists", mock.Anything, "missing").Return(false, nil)

	_, err := svc.Upsert(t.Context(), "user-1", "missing", dto.UpsertRatingRequest{Score: intPtr(5)})

	assert.ErrorIs(t, err, apperr.ErrNotFound)
	ratingRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
}

func TestRatingUpsert_StoreUnavailable(t *testing.T) {
	svc, ratingRepo, mediaRepo, recCache := newTestRatingService()
	mediaRepo.On("Exists", mock.Anything, "m1").Return(true, nil)
	ratingRepo.On("Upsert", mock.Anything, mock.Anything, mock.Anything).Return(nil, apperr.StoreUnavailable(assert.AnError))

	_, err := svc.Upsert(t.Context(), "user-1", "m1", dto.UpsertRatingRequest{Score: intPtr(5)})

	assert.ErrorIs(t, err, apperr.ErrStoreUnavailable)
	recCache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestRatingDelete_InvalidatesUserCache(t *testing.T) {
	svc, ratingRepo, _, recCache := newTestRatingService()
	ratingRepo.On("Delete", mock.Anything, "user-1", "m1").Return(nil)
	recCache.On("Invalidate", mock.Anything, []string{"recs:user:user-1"}).Return()

	require.NoError(t, svc.Delete(t.Context(), "user-1", "m1"))
	recCache.AssertExpectations(t)
}

func TestRatingListForMedia(t *testing.T) {
	svc, ratingRepo, mediaRepo, _ := newTestRatingService()
	mediaRepo.On("Exists", mock.Anything, "m1").Return(true, nil)
	ratingRepo.On("ListByMedia", mock.Anything, "m1", 2, 5).
		Return([]models.Rating{{ID: "r6", Score: 4}}, int64(6), nil)

	page, err := svc.ListForMedia(t.Context(), "m1", dto.PageQuery{Page: 2, Limit: 5})

	require.NoError(t, err)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, dto.PageMeta{Page: 2, Limit: 5, Total: 6, TotalPages: 2}, page.Meta)
}

func TestRatingListForMedia_UnknownMedia(t *testing.T) {
	svc, _, mediaRepo, _ := newTestRatingService()
	mediaRepo.On("Exists", mock.Anything, "missing").Return(false, nil)

	_, err := svc.ListForMedia(t.Context(), "missing", dto.PageQuery{})

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
