package models

import "time"

// Post is the database representation of a bulletin board post.
type Post struct {
	PostID     string    `db:"post_id"`
	Title      string    `db:"title"`
	Content    string    `db:"content"`
	AuthorName string    `db:"author_name"`
	AuthorID   string    `db:"author_id"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// Comment is the database representation of a post comment.
type Comment struct {
	CommentID  string    `db:"comment_id"`
	PostID     string    `db:"post_id"`
	Text       string    `db:"text"`
	AuthorName string    `db:"author_name"`
	AuthorID   string    `db:"author_id"`
	CreatedAt  time.Time `db:"created_at"`
}
