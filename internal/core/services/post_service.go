package services

import (
	"context"
	"fmt"
	"time"

	"github.com/corkboard/bulletin_board_app/internal/apperrors"
	"github.com/corkboard/bulletin_board_app/internal/core/domain"
	"github.com/corkboard/bulletin_board_app/internal/core/ports"
	portssvc "github.com/corkboard/bulletin_board_app/internal/core/ports/services"
	"github.com/corkboard/bulletin_board_app/internal/dto"
	"github.com/google/uuid"
)

type postService struct {
	postRepo ports.PostRepository
	userRepo ports.UserRepository
}

// NewPostService creates the post service. The user repository is consulted
// only to denormalize the author's username onto new posts and comments.
func NewPostService(postRepo ports.PostRepository, userRepo ports.UserRepository) portssvc.PostSvcFacade {
	return &postService{postRepo: postRepo, userRepo: userRepo}
}

func (s *postService) CreatePost(ctx context.Context, req dto.CreatePostRequest, authorID string) (*domain.Post, error) {
	author, err := s.userRepo.FindUserByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	post := domain.Post{
		PostID:     uuid.NewString(),
		Title:      req.Title,
		Content:    req.Content,
		AuthorName: author.Username,
		AuthorID:   author.UserID,
		CreatedAt:  now,
		UpdatedAt:  now,
		Comments:   []domain.Comment{},
	}
	if err := s.postRepo.SavePost(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to save post: %w", err)
	}
	return &post, nil
}

func (s *postService) ListPosts(ctx context.Context) ([]domain.Post, error) {
	return s.postRepo.FindPosts(ctx)
}

func (s *postService) ListPostsByAuthor(ctx context.Context, authorID string) ([]domain.Post, error) {
	return s.postRepo.FindPostsByAuthor(ctx, authorID)
}

func (s *postService) GetPostByID(ctx context.Context, postID string) (*domain.Post, error) {
	return s.postRepo.FindPostByID(ctx, postID)
}

func (s *postService) UpdatePost(ctx context.Context, postID string, req dto.UpdatePostRequest, userID string) (*domain.Post, error) {
	post, err := s.postRepo.FindPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, apperrors.ErrForbidden
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	post.UpdatedAt = time.Now()

	if err := s.postRepo.UpdatePost(ctx, *post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

func (s *postService) DeletePost(ctx context.Context, postID string, userID string) error {
	post, err := s.postRepo.FindPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return apperrors.ErrForbidden
	}
	return s.postRepo.DeletePost(ctx, postID)
}

func (s *postService) AddComment(ctx context.Context, postID string, req dto.CreateCommentRequest, userID string) (*domain.Comment, error) {
	if _, err := s.postRepo.FindPostByID(ctx, postID); err != nil {
		return nil, err
	}
	author, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := domain.Comment{
		CommentID:  uuid.NewString(),
		PostID:     postID,
		Text:       req.Text,
		AuthorName: author.Username,
		AuthorID:   author.UserID,
		CreatedAt:  time.Now(),
	}
	if err := s.postRepo.SaveComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}
	return &comment, nil
}

func (s *postService) DeleteComment(ctx context.Context, postID, commentID string, userID string) error {
	if _, err := s.postRepo.FindPostByID(ctx, postID); err != nil {
		return err
	}
	comment, err := s.postRepo.FindCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.PostID != postID {
		return apperrors.ErrNotFound
	}
	if comment.AuthorID != userID {
		return apperrors.ErrForbidden
	}
	return s.postRepo.DeleteComment(ctx, commentID)
}
