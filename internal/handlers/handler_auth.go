package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/corkboard/bulletin_board_app/internal/apperrors"
	portssvc "github.com/corkboard/bulletin_board_app/internal/core/ports/services"
	"github.com/corkboard/bulletin_board_app/internal/dto"
	"github.com/corkboard/bulletin_board_app/internal/middleware"
	"github.com/corkboard/bulletin_board_app/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration, login and profile requests.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade) *AuthHandler {
	return &AuthHandler{
		userService:  us,
		tokenService: ts,
	}
}

// ErrorResponse is the generic error body for all handlers.
type ErrorResponse struct {
	Message string `json:"message"`
}

// respondWithError maps an error onto the apperrors taxonomy. Unexpected
// faults are logged and surfaced as opaque 500s.
func respondWithError(c *gin.Context, err error) {
	status := apperrors.StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Request failed", slog.String("error", err.Error()))
		msg = "Internal server error"
	}
	c.JSON(status, ErrorResponse{Message: msg})
}

// registerAuthRoutes sets up the authentication routes under /api/auth.
func registerAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services.User, services.Token)

	// 5 requests per minute per IP on the credential endpoints.
	rate, _ := limiter.NewRateFromFormatted("5-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limitMiddleware := middleware.RateLimit(ipLimiter)

	rg.POST("/register", limitMiddleware, h.Register)
	rg.POST("/login", limitMiddleware, h.Login)
	rg.POST("/check-email", h.CheckEmail)
	rg.POST("/check-username", h.CheckUsername)
	rg.GET("/me", middleware.AuthMiddleware(cfg.JWTSecret), h.Me)
}

// Register godoc
// @Summary Register a new user
// @Description Creates a local account and returns a bearer token for it.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse "Validation failure or duplicate email/username"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Email, username, and password are required"})
		return
	}

	user, err := h.userService.Register(ctx, req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, _, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    dto.ToUserResponse(user),
	})
}

// Login godoc
// @Summary User login
// @Description Authenticates a local email/password pair and returns a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse "Invalid email or password"
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Email and password are required"})
		return
	}

	user, err := h.userService.VerifyCredentials(ctx, req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, _, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    dto.ToUserResponse(user),
	})
}

// Me godoc
// @Summary Current user profile
// @Description Returns the profile of the authenticated user, password fields stripped.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: apperrors.ErrMissingToken.Error()})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// CheckEmail godoc
// @Summary Check email availability
// @Tags auth
// @Accept json
// @Produce json
// @Param check body dto.CheckEmailRequest true "Email to check"
// @Success 200 {object} dto.ExistsResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/check-email [post]
func (h *AuthHandler) CheckEmail(c *gin.Context) {
	var req dto.CheckEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Please provide a valid email address"})
		return
	}

	exists, err := h.userService.EmailExists(c.Request.Context(), req.Email)
	if err != nil {
		respondWithError(c, err)
		return
	}

	msg := "Email available"
	if exists {
		msg = "Email already registered"
	}
	c.JSON(http.StatusOK, dto.ExistsResponse{Exists: exists, Message: msg})
}

// CheckUsername godoc
// @Summary Check username availability
// @Tags auth
// @Accept json
// @Produce json
// @Param check body dto.CheckUsernameRequest true "Username to check"
// @Success 200 {object} dto.ExistsResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/check-username [post]
func (h *AuthHandler) CheckUsername(c *gin.Context) {
	var req dto.CheckUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Username must be between 3 and 30 characters"})
		return
	}

	exists, err := h.userService.UsernameExists(c.Request.Context(), req.Username)
	if err != nil {
		respondWithError(c, err)
		return
	}

	msg := "Username available"
	if exists {
		msg = "Username already taken"
	}
	c.JSON(http.StatusOK, dto.ExistsResponse{Exists: exists, Message: msg})
}
