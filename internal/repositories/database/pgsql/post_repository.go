package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/corkboard/bulletin_board_app/internal/apperrors"
	"github.com/corkboard/bulletin_board_app/internal/core/domain"
	"github.com/corkboard/bulletin_board_app/internal/core/ports"
	"github.com/corkboard/bulletin_board_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPostRepository struct {
	db *pgxpool.Pool
}

func newPgxPostRepository(db *pgxpool.Pool) ports.PostRepository {
	return &PgxPostRepository{db: db}
}

var _ ports.PostRepository = (*PgxPostRepository)(nil)

func toDomainPost(m models.Post) domain.Post {
	return domain.Post{
		PostID:     m.PostID,
		Title:      m.Title,
		Content:    m.Content,
		AuthorName: m.AuthorName,
		AuthorID:   m.AuthorID,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
		Comments:   []domain.Comment{},
	}
}

func toDomainComment(m models.Comment) domain.Comment {
	return domain.Comment{
		CommentID:  m.CommentID,
		PostID:     m.PostID,
		Text:       m.Text,
		AuthorName: m.AuthorName,
		AuthorID:   m.AuthorID,
		CreatedAt:  m.CreatedAt,
	}
}

func (r *PgxPostRepository) SavePost(ctx context.Context, post domain.Post) error {
	query := `
        INSERT INTO posts (post_id, title, content, author_name, author_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7);
    `
	_, err := r.db.Exec(ctx, query,
		post.PostID, post.Title, post.Content, post.AuthorName, post.AuthorID, post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

func (r *PgxPostRepository) FindPostByID(ctx context.Context, postID string) (*domain.Post, error) {
	query := `
        SELECT post_id, title, content, author_name, author_id, created_at, updated_at
        FROM posts WHERE post_id = $1;
    `
	var m models.Post
	err := r.db.QueryRow(ctx, query, postID).Scan(
		&m.PostID, &m.Title, &m.Content, &m.AuthorName, &m.AuthorID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find post %s: %w", postID, err)
	}

	post := toDomainPost(m)
	comments, err := r.findCommentsForPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	post.Comments = comments
	return &post, nil
}

func (r *PgxPostRepository) FindPosts(ctx context.Context) ([]domain.Post, error) {
	query := `
        SELECT post_id, title, content, author_name, author_id, created_at, updated_at
        FROM posts ORDER BY created_at DESC;
    `
	return r.queryPosts(ctx, query)
}

func (r *PgxPostRepository) FindPostsByAuthor(ctx context.Context, authorID string) ([]domain.Post, error) {
	query := `
        SELECT post_id, title, content, author_name, author_id, created_at, updated_at
        FROM posts WHERE author_id = $1 ORDER BY created_at DESC;
    `
	return r.queryPosts(ctx, query, authorID)
}

func (r *PgxPostRepository) queryPosts(ctx context.Context, query string, args ...any) ([]domain.Post, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		var m models.Post
		if err := rows.Scan(&m.PostID, &m.Title, &m.Content, &m.AuthorName, &m.AuthorID, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, toDomainPost(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", rows.Err())
	}

	for i := range posts {
		comments, err := r.findCommentsForPost(ctx, posts[i].PostID)
		if err != nil {
			return nil, err
		}
		posts[i].Comments = comments
	}
	return posts, nil
}

func (r *PgxPostRepository) UpdatePost(ctx context.Context, post domain.Post) error {
	query := `
        UPDATE posts SET title = $1, content = $2, updated_at = $3
        WHERE post_id = $4;
    `
	cmdTag, err := r.db.Exec(ctx, query, post.Title, post.Content, post.UpdatedAt, post.PostID)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("post %s not found: %w", post.PostID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxPostRepository) DeletePost(ctx context.Context, postID string) error {
	// Comments go with the post via ON DELETE CASCADE.
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE post_id = $1;`, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("post %s not found: %w", postID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxPostRepository) SaveComment(ctx context.Context, comment domain.Comment) error {
	query := `
        INSERT INTO comments (comment_id, post_id, text, author_name, author_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	_, err := r.db.Exec(ctx, query,
		comment.CommentID, comment.PostID, comment.Text, comment.AuthorName, comment.AuthorID, comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

func (r *PgxPostRepository) FindCommentByID(ctx context.Context, commentID string) (*domain.Comment, error) {
	query := `
        SELECT comment_id, post_id, text, author_name, author_id, created_at
        FROM comments WHERE comment_id = $1;
    `
	var m models.Comment
	err := r.db.QueryRow(ctx, query, commentID).Scan(
		&m.CommentID, &m.PostID, &m.Text, &m.AuthorName, &m.AuthorID, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find comment %s: %w", commentID, err)
	}
	c := toDomainComment(m)
	return &c, nil
}

func (r *PgxPostRepository) DeleteComment(ctx context.Context, commentID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE comment_id = $1;`, commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("comment %s not found: %w", commentID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxPostRepository) findCommentsForPost(ctx context.Context, postID string) ([]domain.Comment, error) {
	query := `
        SELECT comment_id, post_id, text, author_name, author_id, created_at
        FROM comments WHERE post_id = $1 ORDER BY created_at ASC;
    `
	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		var m models.Comment
		if err := rows.Scan(&m.CommentID, &m.PostID, &m.Text, &m.AuthorName, &m.AuthorID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		comments = append(comments, toDomainComment(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", rows.Err())
	}
	return comments, nil
}
