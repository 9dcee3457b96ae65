package domain

import "time"

// Post is a bulletin board entry. AuthorName is denormalized from the users
// table at creation time, matching what readers see in listings.
type Post struct {
	PostID     string    `json:"postID"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	AuthorName string    `json:"author"`
	AuthorID   string    `json:"authorID"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Comments   []Comment `json:"comments"`
}

// Comment is attached to a single post.
type Comment struct {
	CommentID  string    `json:"commentID"`
	PostID     string    `json:"-"`
	Text       string    `json:"text"`
	AuthorName string    `json:"author"`
	AuthorID   string    `json:"authorID"`
	CreatedAt  time.Time `json:"createdAt"`
}
