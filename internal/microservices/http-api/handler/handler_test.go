package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vibelink/internal/apperr"
	"vibelink/internal/microservices/http-api/dto"
	"vibelink/internal/microservices/http-api/middleware"
	"vibelink/internal/microservices/http-api/models"
)

const testUserHeader = "X-Test-User"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	ConfigureBinding()
	os.Exit(m.Run())
}

// setupRouter returns a router plus the public and protected groups. The
// protected group trusts X-Test-User in place of a bearer token.
func setupRouter() (*gin.Engine, *gin.RouterGroup, *gin.RouterGroup) {
	r := gin.New()
	api := r.Group("/api")
	public := api.Group("")
	public.Use(func(c *gin.Context) {
		if u := c.GetHeader(testUserHeader); u != "" {
			c.Set(middleware.ContextUserID, u)
		}
	})
	protected := api.Group("")
	protected.Use(func(c *gin.Context) {
		u := c.GetHeader(testUserHeader)
		if u == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed authorization header"})
			return
		}
		c.Set(middleware.ContextUserID, u)
	})
	return r, public, protected
}

func do(r *gin.Engine, method, path, user string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set(testUserHeader, user)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func TestRespondError_StatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		msg    string
	}{
		{apperr.Validation("score must be at most 10"), http.StatusBadRequest, "score must be at most 10"},
		{apperr.NotFound("media item not found"), http.StatusNotFound, "media item not found"},
		{apperr.Conflict("tag already exists"), http.StatusConflict, "tag already exists"},
		{apperr.Unauthorized("invalid credentials"), http.StatusUnauthorized, "invalid credentials"},
		{apperr.StoreUnavailable(errors.New("dial tcp: refused")), http.StatusServiceUnavailable, "store unavailable"},
		{errors.New("boom"), http.StatusInternalServerError, "internal error"},
	}
	for _, tt := range tests {
		r := gin.New()
		r.GET("/", func(c *gin.Context) { respondError(c, tt.err) })
		w := do(r, http.MethodGet, "/", "", nil)
		assert.Equal(t, tt.status, w.Code)
		assert.Equal(t, tt.msg, errorBody(t, w))
	}
}

func TestMediaHandler_GetPassesViewer(t *testing.T) {
	svc := new(MockMediaService)
	r, public, protected := setupRouter()
	NewMediaHandler(svc).RegisterRoutes(public, protected)

	svc.On("Get", mock.Anything, "m1", "user-1").Return(&dto.MediaDetailResponse{
		MediaItemResponse: dto.MediaItemResponse{ID: "m1", Title: "Dune"},
		RecentRatings:     []dto.RatingResponse{},
	}, nil)
	svc.On("Get", mock.Anything, "m1", "").Return(&dto.MediaDetailResponse{
		MediaItemResponse: dto.MediaItemResponse{ID: "m1", Title: "Dune"},
		RecentRatings:     []dto.RatingResponse{},
	}, nil)

	w := do(r, http.MethodGet, "/api/media/m1", "user-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Dune", body["title"])
	assert.Contains(t, body, "averageRating")
	assert.Nil(t, body["averageRating"])
	assert.Nil(t, body["userRating"])

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/media/m1", "", nil).Code)
	svc.AssertExpectations(t)
}

func TestMediaHandler_GetNotFound(t *testing.T) {
	svc := new(MockMediaService)
	r, public, protected := setupRouter()
	NewMediaHandler(svc).RegisterRoutes(public, protected)
	svc.On("Get", mock.Anything, "missing", "").Return(nil, apperr.NotFound("media item not found"))

	w := do(r, http.MethodGet, "/api/media/missing", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "media item not found", errorBody(t, w))
}

func TestMediaHandler_ListQuery(t *testing.T) {
	svc := new(MockMediaService)
	r, public, protected := setupRouter()
	NewMediaHandler(svc).RegisterRoutes(public, protected)

	want := dto.MediaListQuery{
		PageQuery: dto.PageQuery{Page: 2, Limit: 5},
		Query:     "dune",
		Type:      models.MediaTypeBook,
		Sort:      "rating",
	}
	svc.On("List", mock.Anything, want).Return(dto.NewPaginated([]dto.MediaItemResponse{}, 0, 2, 5), nil)

	w := do(r, http.MethodGet, "/api/media?query=dune&type=BOOK&sort=rating&page=2&limit=5", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[],"meta":{"page":2,"limit":5,"total":0,"totalPages":0}}`, w.Body.String())
}

func TestMediaHandler_ListRejectsBadQuery(t *testing.T) {
	svc := new(MockMediaService)
	r, public, protected := setupRouter()
	NewMediaHandler(svc).RegisterRoutes(public, protected)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/media?type=VINYL", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/media?limit=500", "", nil).Code)
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestMediaHandler_CreateRequiresAuth(t *testing.T) {
	svc := new(MockMediaService)
	r, public, protected := setupRouter()
	NewMediaHandler(svc).RegisterRoutes(public, protected)

	w := do(r, http.MethodPost, "/api/media", "", map[string]any{"type": "BOOK", "title": "Dune"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMediaHandler_Create(t *testing.T) {
	svc := new(MockMediaService)
	r, public, protected := setupRouter()
	NewMediaHandler(svc).RegisterRoutes(public, protected)
	svc.On("Create", mock.Anything, "user-1", mock.MatchedBy(func(req dto.CreateMediaRequest) bool {
		return req.Title == "Dune" && req.Type == models.MediaTypeBook
	})).Return(&dto.MediaItemResponse{ID: "m1", Title: "Dune"}, nil)

	w := do(r, http.MethodPost, "/api/media", "user-1", map[string]any{"type": "BOOK", "title": "Dune"})

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRatingHandler_Upsert(t *testing.T) {
	svc := new(MockRatingService)
	r, public, protected := setupRouter()
	NewRatingHandler(svc).RegisterRoutes(public, protected)
	svc.On("Upsert", mock.Anything, "user-1", "m1", mock.MatchedBy(func(req dto.UpsertRatingRequest) bool {
		return req.Score != nil && *req.Score == 9
	})).Return(&dto.RatingResponse{ID: "r1", Score: 9}, nil)

	w := do(r, http.MethodPut, "/api/media/m1/rating", "user-1", map[string]any{"score": 9})

	require.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestRatingHandler_UpsertValidation(t *testing.T) {
	svc := new(MockRatingService)
	r, public, protected := setupRouter()
	NewRatingHandler(svc).RegisterRoutes(public, protected)

	tests := []struct {
		name string
		body any
		msg  string
	}{
		{"score too high", map[string]any{"score": 11}, "score must be at most 10"},
		{"score too low", map[string]any{"score": 0}, "score must be at least 1"},
		{"missing score", map[string]any{}, "score is required"},
		{"unknown field", `{"score": 5, "stars": 5}`, ""},
		{"malformed", `{"score":`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPut, "/api/media/m1/rating", "user-1", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, errorBody(t, w))
			}
		})
	}
	svc.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRatingHandler_Delete(t *testing.T) {
	svc := new(MockRatingService)
	r, public, protected := setupRouter()
	NewRatingHandler(svc).RegisterRoutes(public, protected)
	svc.On("Delete", mock.Anything, "user-1", "m1").Return(nil)
	svc.On("Delete", mock.Anything, "user-1", "m2").Return(apperr.NotFound("rating not found"))

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/api/media/m1/rating", "user-1", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/api/media/m2/rating", "user-1", nil).Code)
}

func TestLinkHandler_CreateRejectsStrength(t *testing.T) {
	svc := new(MockLinkService)
	r, public, protected := setupRouter()
	NewLinkHandler(svc).RegisterRoutes(public, protected)

	for _, strength := range []float64{1.5, -0.1} {
		w := do(r, http.MethodPost, "/api/links", "user-1", map[string]any{
			"fromMediaId": "a", "toMediaId": "b", "linkType": "VIBE", "strength": strength,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code, "strength %v", strength)
	}
	w := do(r, http.MethodPost, "/api/links", "user-1", map[string]any{
		"fromMediaId": "a", "toMediaId": "b", "linkType": "SEQUEL", "strength": 0.5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "linkType has an unknown value SEQUEL", errorBody(t, w))
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestLinkHandler_CreateAndList(t *testing.T) {
	svc := new(MockLinkService)
	r, public, protected := setupRouter()
	NewLinkHandler(svc).RegisterRoutes(public, protected)
	svc.On("Create", mock.Anything, "user-1", mock.AnythingOfType("dto.CreateLinkRequest")).
		Return(&dto.LinkResponse{ID: "l1", FromMediaID: "a", ToMediaID: "b", Strength: 0}, nil)
	svc.On("ListForMedia", mock.Anything, "b").Return([]dto.LinkResponse{{ID: "l1"}}, nil)

	w := do(r, http.MethodPost, "/api/links", "user-1", map[string]any{
		"fromMediaId": "a", "toMediaId": "b", "linkType": "VIBE", "strength": 0,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(r, http.MethodGet, "/api/media/b/links", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var links []dto.LinkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &links))
	assert.Len(t, links, 1)
}

func TestRecommendationHandler(t *testing.T) {
	svc := new(MockRecommendationService)
	r, public, protected := setupRouter()
	NewRecommendationHandler(svc).RegisterRoutes(public, protected)
	svc.On("RecommendForItem", mock.Anything, "m1").Return([]dto.RecommendationResponse{}, nil)
	svc.On("RecommendForUser", mock.Anything, "user-1").Return([]dto.RecommendationResponse{{
		MediaItem: dto.MediaItemResponse{ID: "b"}, Score: 0.8, Reasons: []string{"Similar to Arrival"},
	}}, nil)

	w := do(r, http.MethodGet, "/api/media/m1/recommendations", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/api/users/me/recommendations", "", nil).Code)

	w = do(r, http.MethodGet, "/api/users/me/recommendations", "user-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var recs []dto.RecommendationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, 0.8, recs[0].Score)
}

func TestActivityHandler_List(t *testing.T) {
	svc := new(MockActivityService)
	r, public, _ := setupRouter()
	NewActivityHandler(svc).RegisterRoutes(public)
	svc.On("List", mock.Anything, dto.ActivityQuery{UserID: "user-1", Kind: models.ActivityLink}).
		Return(dto.NewPaginated([]dto.ActivityResponse{}, 0, 1, 20), nil)

	w := do(r, http.MethodGet, "/api/activity?userId=user-1&kind=LINK", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestAuthHandler_Login(t *testing.T) {
	svc := new(MockAuthService)
	r, public, _ := setupRouter()
	NewAuthHandler(svc).RegisterRoutes(public)
	svc.On("Login", mock.Anything, dto.LoginRequest{Email: "ada@example.com", Password: "password123"}).
		Return(&dto.AuthResponse{AccessToken: "a", RefreshToken: "r", ExpiresIn: 900}, nil)
	svc.On("Login", mock.Anything, dto.LoginRequest{Email: "ada@example.com", Password: "wrong-password"}).
		Return(nil, apperr.Unauthorized("invalid credentials"))

	w := do(r, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "ada@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "a", resp.AccessToken)

	w = do(r, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "ada@example.com", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid credentials", errorBody(t, w))
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	svc := new(MockAuthService)
	r, public, _ := setupRouter()
	NewAuthHandler(svc).RegisterRoutes(public)

	w := do(r, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "ada@example.com", "username": "a b", "password": "password123",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorBody(t, w), "username")
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := new(MockAuthService)
	r, public, _ := setupRouter()
	NewAuthHandler(svc).RegisterRoutes(public)
	svc.On("Logout", mock.Anything, "rt").Return(nil)

	w := do(r, http.MethodPost, "/api/auth/logout", "", map[string]any{"refreshToken": "rt"})

	assert.Equal(t, http.StatusNoContent, w.Code)
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	r := gin.New()
	r.GET("/up", NewHealthHandler(fakePinger{}, func() string { return "closed" }).Check)
	r.GET("/down", NewHealthHandler(fakePinger{err: errors.New("refused")}, nil).Check)

	w := do(r, http.MethodGet, "/up", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body dto.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "closed", body.Cache)

	w = do(r, http.MethodGet, "/down", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "down", body.Database)
	assert.Equal(t, "disabled", body.Cache)
}
