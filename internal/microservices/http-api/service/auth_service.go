package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"vibelink/internal/apperr"
	"vibelink/internal/auth"
	"vibelink/internal/logger"
	"vibelink/internal/microservices/http-api/dto"
	"vibelink/internal/microservices/http-api/models"
	"vibelink/internal/microservices/http-api/repository"
)

var (
	ErrEmailInUse          = apperr.Conflict("email already in use")
	ErrNameInUse           = apperr.Conflict("username already taken")
	ErrInvalidCredentials  = apperr.Unauthorized("invalid credentials")
	ErrInvalidRefreshToken = apperr.Unauthorized("invalid refresh token")
)

// TokenValidator is what the auth middleware needs from the auth service.
type TokenValidator interface {
	ValidateToken(tokenString string) (*auth.Claims, error)
}

type AuthService interface {
	TokenValidator
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	tokens           *auth.TokenManager
	log              *logger.Logger
}

func NewAuthService(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	tokens *auth.TokenManager,
	log *logger.Logger,
) AuthService {
	return &authService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		tokens:           tokens,
		log:              log.With("service", "AuthService"),
	}
}

// Register creates the account and signs the user in.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := dto.Check(req); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return nil, ErrNameInUse
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &models.User{
		Email:    req.Email,
		Username: req.Username,
		Password: hashedPassword,
	}
	// the unique indexes still decide a race between two registrations
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user_registered", "user_id", user.ID)
	return s.issueTokens(ctx, user)
}

// Login authenticates by email and password.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := dto.Check(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			// same cost as a real comparison
			auth.BurnPasswordCheck(req.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.VerifyPassword(user.Password, req.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// Refresh rotates a refresh token: the presented one is revoked and a new pair is issued.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	stored, err := s.refreshTokenRepo.FindByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if stored.Revoked || stored.UserID != claims.UserID() || time.Now().After(stored.ExpiresAt) {
		return nil, ErrInvalidRefreshToken
	}

	revoked, err := s.refreshTokenRepo.Revoke(ctx, stored.ID)
	if err != nil {
		return nil, err
	}
	if !revoked {
		// another request rotated it first
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

// Logout revokes the refresh token. Unknown or already revoked tokens are not an error.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return ErrInvalidRefreshToken
	}
	if _, err := s.refreshTokenRepo.Revoke(ctx, claims.ID); err != nil {
		return err
	}
	return nil
}

func (s *authService) ValidateToken(tokenString string) (*auth.Claims, error) {
	return s.tokens.ParseAccess(tokenString)
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	accessToken, expiresAt, err := s.tokens.IssueAccess(user.ID, user.Username)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	stored := &models.RefreshToken{
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.tokens.RefreshTTL()),
	}
	if err := s.refreshTokenRepo.Create(ctx, stored); err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefresh(user.ID, stored.ID, stored.ExpiresAt)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(time.Until(expiresAt).Seconds()),
		User:         dto.FromModelToUserResponse(user),
	}, nil
}
