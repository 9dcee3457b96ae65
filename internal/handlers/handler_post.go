package handlers

import (
	"net/http"

	"github.com/corkboard/bulletin_board_app/internal/apperrors"
	portssvc "github.com/corkboard/bulletin_board_app/internal/core/ports/services"
	"github.com/corkboard/bulletin_board_app/internal/dto"
	"github.com/corkboard/bulletin_board_app/internal/middleware"
	"github.com/corkboard/bulletin_board_app/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// PostHandler handles bulletin board post and comment requests.
type PostHandler struct {
	postService portssvc.PostSvcFacade
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(ps portssvc.PostSvcFacade) *PostHandler {
	return &PostHandler{postService: ps}
}

// registerPostRoutes sets up post and comment routes under /api. Reading
// posts is public; every mutation requires a bearer token.
func registerPostRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewPostHandler(services.Post)
	authRequired := middleware.AuthMiddleware(cfg.JWTSecret)

	posts := rg.Group("/posts")
	{
		posts.GET("", h.ListPosts)
		posts.GET("/:postID", h.GetPost)
		posts.POST("", authRequired, h.CreatePost)
		posts.PUT("/:postID", authRequired, h.UpdatePost)
		posts.DELETE("/:postID", authRequired, h.DeletePost)
		posts.POST("/:postID/comments", authRequired, h.AddComment)
		posts.DELETE("/:postID/comments/:commentID", authRequired, h.DeleteComment)
	}

	rg.GET("/users/:userID/posts", authRequired, h.ListUserPosts)
}

// requireUser pulls the authenticated user id out of the context; the auth
// middleware guarantees it is present on protected routes.
func requireUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: apperrors.ErrMissingToken.Error()})
	}
	return userID, ok
}

// ListPosts godoc
// @Summary List all posts
// @Tags posts
// @Produce json
// @Success 200 {array} domain.Post
// @Failure 500 {object} ErrorResponse
// @Router /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.postService.ListPosts(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// GetPost godoc
// @Summary Get a single post with its comments
// @Tags posts
// @Produce json
// @Param postID path string true "Post ID"
// @Success 200 {object} domain.Post
// @Failure 404 {object} ErrorResponse
// @Router /posts/{postID} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postService.GetPostByID(c.Request.Context(), c.Param("postID"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// CreatePost godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param post body dto.CreatePostRequest true "New post"
// @Success 201 {object} domain.Post
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Title (min 10 chars) and content (min 20 chars) are required"})
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// UpdatePost godoc
// @Summary Update a post
// @Description Only the author may edit a post.
// @Tags posts
// @Accept json
// @Produce json
// @Param postID path string true "Post ID"
// @Param post body dto.UpdatePostRequest true "Updated fields"
// @Success 200 {object} domain.Post
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /posts/{postID} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	post, err := h.postService.UpdatePost(c.Request.Context(), c.Param("postID"), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary Delete a post
// @Description Only the author may delete a post. Its comments go with it.
// @Tags posts
// @Produce json
// @Param postID path string true "Post ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /posts/{postID} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), c.Param("postID"), userID); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// AddComment godoc
// @Summary Add a comment to a post
// @Tags posts
// @Accept json
// @Produce json
// @Param postID path string true "Post ID"
// @Param comment body dto.CreateCommentRequest true "New comment"
// @Success 201 {object} domain.Comment
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /posts/{postID}/comments [post]
func (h *PostHandler) AddComment(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Comment text is required"})
		return
	}

	comment, err := h.postService.AddComment(c.Request.Context(), c.Param("postID"), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description Only the comment author may delete it.
// @Tags posts
// @Produce json
// @Param postID path string true "Post ID"
// @Param commentID path string true "Comment ID"
// @Success 200 {object} dto.DeletedCommentResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /posts/{postID}/comments/{commentID} [delete]
func (h *PostHandler) DeleteComment(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	commentID := c.Param("commentID")
	if err := h.postService.DeleteComment(c.Request.Context(), c.Param("postID"), commentID, userID); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeletedCommentResponse{DeletedCommentID: commentID})
}

// ListUserPosts godoc
// @Summary List a user's posts
// @Tags posts
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {array} domain.Post
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{userID}/posts [get]
func (h *PostHandler) ListUserPosts(c *gin.Context) {
	posts, err := h.postService.ListPostsByAuthor(c.Request.Context(), c.Param("userID"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}
