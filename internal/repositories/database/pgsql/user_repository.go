package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/corkboard/bulletin_board_app/internal/apperrors"
	"github.com/corkboard/bulletin_board_app/internal/core/domain"
	"github.com/corkboard/bulletin_board_app/internal/core/ports"
	"github.com/corkboard/bulletin_board_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func newPgxUserRepository(db *pgxpool.Pool) ports.UserRepository {
	return &PgxUserRepository{db: db}
}

var _ ports.UserRepository = (*PgxUserRepository)(nil)

func toModelUser(d domain.User) models.User {
	return models.User{
		UserID:            d.UserID,
		Email:             d.Email,
		Username:          d.Username,
		PasswordHash:      nullString(d.PasswordHash),
		AuthProvider:      nullString(string(d.AuthProvider)),
		ProviderUserID:    nullString(d.ProviderUserID),
		ProfilePictureURL: nullString(d.ProfilePictureURL),
		IsVerified:        d.IsVerified,
		CreatedAt:         d.CreatedAt,
	}
}

func toDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:            m.UserID,
		Email:             m.Email,
		Username:          m.Username,
		PasswordHash:      m.PasswordHash.String,
		AuthProvider:      domain.AuthProvider(m.AuthProvider.String),
		ProviderUserID:    m.ProviderUserID.String,
		ProfilePictureURL: m.ProfilePictureURL.String,
		IsVerified:        m.IsVerified,
		CreatedAt:         m.CreatedAt,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// translateUniqueViolation maps a unique-index violation onto the duplicate
// error for the constraint that fired. Exactly one of two concurrent
// registrations racing on the same email or username gets this error.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return err
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "email"):
		return apperrors.ErrDuplicateEmail
	case strings.Contains(pgErr.ConstraintName, "username"):
		return apperrors.ErrDuplicateUsername
	default:
		return fmt.Errorf("unique constraint %s violated: %w", pgErr.ConstraintName, err)
	}
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := toModelUser(user)
	query := `
        INSERT INTO users (user_id, email, username, password_hash, auth_provider, provider_user_id, profile_picture_url, is_verified, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.db.Exec(ctx, query,
		m.UserID,
		m.Email,
		m.Username,
		m.PasswordHash,
		m.AuthProvider,
		m.ProviderUserID,
		m.ProfilePictureURL,
		m.IsVerified,
		m.CreatedAt,
	)
	if err != nil {
		return translateUniqueViolation(err)
	}
	return nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := toModelUser(user)
	// Single-row UPDATE; concurrent readers see the old or the new user,
	// never a partial write.
	query := `
        UPDATE users
        SET password_hash = $1, auth_provider = $2, provider_user_id = $3, profile_picture_url = $4, is_verified = $5
        WHERE user_id = $6;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		m.PasswordHash,
		m.AuthProvider,
		m.ProviderUserID,
		m.ProfilePictureURL,
		m.IsVerified,
		m.UserID,
	)
	if err != nil {
		return translateUniqueViolation(err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found: %w", user.UserID, apperrors.ErrNotFound)
	}
	return nil
}

const userColumns = `user_id, email, username, password_hash, auth_provider, provider_user_id, profile_picture_url, is_verified, created_at`

func (r *PgxUserRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Email,
		&m.Username,
		&m.PasswordHash,
		&m.AuthProvider,
		&m.ProviderUserID,
		&m.ProfilePictureURL,
		&m.IsVerified,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user row: %w", err)
	}
	u := toDomainUser(m)
	return &u, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	return r.scanUser(r.db.QueryRow(ctx, query, userID))
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	// Emails are stored lowercased; LOWER() keeps the match
	// case-insensitive for any caller that forgets to normalize.
	query := `SELECT ` + userColumns + ` FROM users WHERE email = LOWER($1);`
	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1;`
	return r.scanUser(r.db.QueryRow(ctx, query, username))
}

func (r *PgxUserRepository) FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE auth_provider = $1 AND provider_user_id = $2;`
	return r.scanUser(r.db.QueryRow(ctx, query, string(provider), providerUserID))
}
