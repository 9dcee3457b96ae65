package dto

// CreatePostRequest carries a new bulletin board post. The length floors
// match the users' expectations from the frontend forms.
type CreatePostRequest struct {
	Title   string `json:"title" binding:"required,min=10"`
	Content string `json:"content" binding:"required,min=20"`
}

// UpdatePostRequest updates an existing post. Pointers distinguish omitted
// fields from zero values.
type UpdatePostRequest struct {
	Title   *string `json:"title" binding:"omitempty,min=10"`
	Content *string `json:"content" binding:"omitempty,min=20"`
}

// CreateCommentRequest attaches a comment to a post.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// DeletedCommentResponse echoes the id of a removed comment.
type DeletedCommentResponse struct {
	DeletedCommentID string `json:"deletedCommentId"`
}
