package services

import (
	"context"
	"time"

	"github.com/corkboard/bulletin_board_app/internal/core/domain"
	portssvc "github.com/corkboard/bulletin_board_app/internal/core/ports/services"
	"github.com/corkboard/bulletin_board_app/internal/platform/config"
	"github.com/corkboard/bulletin_board_app/internal/utils"
)

// tokenService implements the TokenSvcFacade for stateless JWT sessions.
// It requires access to application configuration for the signing secret
// and expiry duration.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(user.UserID, user.Email, user.Username, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, err
	}
	return accessToken, expiryTime, nil
}

// ValidateAccessToken verifies a bearer token and returns its claims.
func (s *tokenService) ValidateAccessToken(ctx context.Context, tokenString string) (*utils.AuthClaims, error) {
	return utils.ParseAndValidateJWT(tokenString, s.cfg.JWTSecret)
}
