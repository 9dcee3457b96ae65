package services

import (
	"context"

	"github.com/corkboard/bulletin_board_app/internal/core/domain"
	"github.com/corkboard/bulletin_board_app/internal/dto"
)

// PostSvcFacade defines bulletin board post and comment operations.
// Mutating operations take the acting user's id and enforce authorship.
type PostSvcFacade interface {
	CreatePost(ctx context.Context, req dto.CreatePostRequest, authorID string) (*domain.Post, error)
	ListPosts(ctx context.Context) ([]domain.Post, error)
	ListPostsByAuthor(ctx context.Context, authorID string) ([]domain.Post, error)
	GetPostByID(ctx context.Context, postID string) (*domain.Post, error)
	UpdatePost(ctx context.Context, postID string, req dto.UpdatePostRequest, userID string) (*domain.Post, error)
	DeletePost(ctx context.Context, postID string, userID string) error
	AddComment(ctx context.Context, postID string, req dto.CreateCommentRequest, userID string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID string, userID string) error
}
