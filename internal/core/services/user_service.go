package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/corkboard/bulletin_board_app/internal/apperrors"
	"github.com/corkboard/bulletin_board_app/internal/core/domain"
	"github.com/corkboard/bulletin_board_app/internal/core/ports"
	portssvc "github.com/corkboard/bulletin_board_app/internal/core/ports/services"
	"github.com/corkboard/bulletin_board_app/internal/dto"
	"github.com/corkboard/bulletin_board_app/internal/utils"
	"github.com/google/uuid"
)

// maxUsernameSuffixAttempts bounds the counter-suffix loop when deriving a
// username from a provider display name. Past this we fall back to a random
// suffix instead of scanning further.
const maxUsernameSuffixAttempts = 50

type userService struct {
	userRepo ports.UserRepository
}

// NewUserService creates the user service backed by the given repository.
func NewUserService(userRepo ports.UserRepository) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        strings.ToLower(req.Email),
		Username:     req.Username,
		PasswordHash: hash,
		IsVerified:   false,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		// Duplicate errors from the store's unique indexes pass through
		// unchanged; no auto-renaming for local registration.
		return nil, err
	}
	return &user, nil
}

func (s *userService) VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	// Google-only accounts have no password; reject with the same generic
	// error as a wrong password so the response does not leak which
	// accounts exist or how they authenticate.
	if !user.HasPassword() {
		return nil, apperrors.ErrInvalidCredentials
	}

	ok, err := utils.CheckPasswordHash(password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// ReconcileExternalIdentity resolves a verified provider assertion to a local
// account in three tiers: by provider subject id, by email, then creation.
// Repeated logins with the same assertion always resolve to the same account.
func (s *userService) ReconcileExternalIdentity(ctx context.Context, identity domain.ExternalIdentity) (*domain.User, error) {
	if identity.Email == "" || identity.ProviderUserID == "" {
		return nil, apperrors.ErrExternalIdentity
	}
	email := strings.ToLower(identity.Email)

	// Tier 1: returning provider user.
	user, err := s.userRepo.FindUserByProviderID(ctx, identity.Provider, identity.ProviderUserID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user by provider id: %w", err)
	}

	// Tier 2: pre-existing account with the same email. Link the provider
	// identity as an additional login path; the password, if any, stays.
	user, err = s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		if user.ProviderUserID != "" {
			// Linked to a different subject already. Linking is one-way
			// and permanent, so refuse rather than silently re-link.
			return nil, apperrors.ErrProviderConflict
		}
		user.AuthProvider = identity.Provider
		user.ProviderUserID = identity.ProviderUserID
		if user.ProfilePictureURL == "" {
			user.ProfilePictureURL = identity.PictureURL
		}
		if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
			return nil, fmt.Errorf("failed to link provider identity: %w", err)
		}
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	// Tier 3: first login, create the account.
	username, err := s.availableUsername(ctx, identity.DisplayName)
	if err != nil {
		return nil, err
	}

	newUser := domain.User{
		UserID:            uuid.NewString(),
		Email:             email,
		Username:          username,
		AuthProvider:      identity.Provider,
		ProviderUserID:    identity.ProviderUserID,
		ProfilePictureURL: identity.PictureURL,
		IsVerified:        true,
		CreatedAt:         time.Now(),
	}
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		// A concurrent identical registration may win the race on the
		// unique index; the duplicate error is retryable for the caller.
		return nil, err
	}
	return &newUser, nil
}

// availableUsername derives a candidate from the display name and appends an
// incrementing suffix until free. The loop races concurrent registrations;
// the final SaveUser is the arbiter.
func (s *userService) availableUsername(ctx context.Context, displayName string) (string, error) {
	base := utils.DeriveUsername(displayName)
	candidate := base
	for i := 1; i <= maxUsernameSuffixAttempts; i++ {
		taken, err := s.usernameTaken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}

	suffix, err := utils.GenerateSecureRandomString(4)
	if err != nil {
		return "", fmt.Errorf("failed to generate username suffix: %w", err)
	}
	return base + suffix, nil
}

func (s *userService) usernameTaken(ctx context.Context, username string) (bool, error) {
	_, err := s.userRepo.FindUserByUsername(ctx, username)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check username availability: %w", err)
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(email))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check email availability: %w", err)
}

func (s *userService) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.usernameTaken(ctx, username)
}
