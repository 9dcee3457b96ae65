package services

import (
	"context"

	"github.com/corkboard/bulletin_board_app/internal/core/domain"
	"github.com/corkboard/bulletin_board_app/internal/dto"
)

// UserSvcFacade defines registration, credential verification and identity
// reconciliation. It is the only component that writes to the user store.
type UserSvcFacade interface {
	// Register creates a local account from email/username/password.
	// Duplicate email or username fails with the corresponding apperrors
	// sentinel; no auto-renaming is performed for local registration.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// VerifyCredentials checks a local email/password pair. Unknown email,
	// an account with no password and a wrong password all fail with
	// apperrors.ErrInvalidCredentials.
	VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error)

	// ReconcileExternalIdentity finds or creates the account for a verified
	// provider assertion: lookup by provider subject id, then by email
	// (linking the provider id to a pre-existing local account), then
	// creation with a username derived from the display name.
	ReconcileExternalIdentity(ctx context.Context, identity domain.ExternalIdentity) (*domain.User, error)

	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}
