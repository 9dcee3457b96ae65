package ports

import (
	"context"

	"github.com/corkboard/bulletin_board_app/internal/core/domain"
)

// UserRepository is the credential store consumed by the auth core.
// Uniqueness of email, username and (provider, provider_user_id) is enforced
// by the storage layer; violations surface as apperrors.ErrDuplicateEmail /
// ErrDuplicateUsername.
type UserRepository interface {
	// SaveUser inserts a new user record.
	SaveUser(ctx context.Context, user domain.User) error
	// UpdateUser persists mutations (e.g. linking a provider identity).
	// The write is atomic per row; concurrent readers never observe a
	// partially updated user.
	UpdateUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	// FindUserByEmail matches case-insensitively; emails are stored lowercased.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error)
}

// PostRepository stores posts and their embedded comments.
type PostRepository interface {
	SavePost(ctx context.Context, post domain.Post) error
	FindPostByID(ctx context.Context, postID string) (*domain.Post, error)
	FindPosts(ctx context.Context) ([]domain.Post, error)
	FindPostsByAuthor(ctx context.Context, authorID string) ([]domain.Post, error)
	UpdatePost(ctx context.Context, post domain.Post) error
	DeletePost(ctx context.Context, postID string) error
	SaveComment(ctx context.Context, comment domain.Comment) error
	FindCommentByID(ctx context.Context, commentID string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, commentID string) error
}

// RepositoryProvider bundles all repositories for service wiring.
type RepositoryProvider struct {
	UserRepo UserRepository
	PostRepo PostRepository
}
