package handlers

import (
	"log/slog"
	"net/http"

	"github.com/corkboard/bulletin_board_app/internal/apperrors"
	"github.com/corkboard/bulletin_board_app/internal/core/domain"
	portssvc "github.com/corkboard/bulletin_board_app/internal/core/ports/services"
	"github.com/corkboard/bulletin_board_app/internal/dto"
	"github.com/corkboard/bulletin_board_app/internal/middleware"
	"github.com/corkboard/bulletin_board_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/idtoken"
)

// oauthStateCookie holds the CSRF state between the consent redirect and the
// provider callback.
const oauthStateCookie = "oauth_state"

// GoogleOAuthHandler handles Google OAuth related requests: the redirect
// flow (consent screen + callback) and the popup flow (ID token POSTed by
// the frontend).
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthSvcFacade
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
	frontendBaseURL    string
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(
	googleOAuthService portssvc.GoogleOAuthSvcFacade,
	userService portssvc.UserSvcFacade,
	tokenService portssvc.TokenSvcFacade,
	cfg *config.Config,
) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: googleOAuthService,
		userService:        userService,
		tokenService:       tokenService,
		frontendBaseURL:    cfg.FrontendBaseURL,
	}
}

// registerGoogleOAuthRoutes registers the Google OAuth routes under /api/auth.
func registerGoogleOAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(services.GoogleOAuth, services.User, services.Token, cfg)
	google := rg.Group("/google")
	{
		google.GET("", h.StartGoogleLogin)
		google.GET("/callback", h.CallbackGoogle)
		google.POST("/token", h.ExchangeGoogleToken)
	}
}

// StartGoogleLogin godoc
// @Summary Start Google login
// @Description Redirects the browser to the Google consent screen with a CSRF state cookie.
// @Tags oauth
// @Success 307
// @Failure 500 {object} ErrorResponse
// @Router /auth/google [get]
func (h *GoogleOAuthHandler) StartGoogleLogin(c *gin.Context) {
	ctx := c.Request.Context()

	state, err := h.googleOAuthService.GenerateStateString(ctx)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// Short-lived, HTTP-only; checked on the callback.
	c.SetCookie(oauthStateCookie, state, 300, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.googleOAuthService.GetGoogleLoginURL(ctx, state))
}

// CallbackGoogle godoc
// @Summary Google OAuth callback
// @Description Exchanges the authorization code, reconciles the identity and redirects to the frontend with a token query parameter.
// @Tags oauth
// @Success 302
// @Failure 400 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *GoogleOAuthHandler) CallbackGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	expectedState, err := c.Cookie(oauthStateCookie)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		logger.Warn("OAuth state mismatch on Google callback")
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid OAuth state"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Authorization code is required"})
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid or expired authorization code"})
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.Error("ID token not found in Google's token response")
		c.JSON(http.StatusBadGateway, ErrorResponse{Message: "Failed to retrieve ID token from Google"})
		return
	}

	user, err := h.reconcileFromIDToken(c, idTokenString)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, _, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Redirect(http.StatusFound, h.frontendBaseURL+"/auth/success?token="+token)
}

// ExchangeGoogleToken godoc
// @Summary Exchange a Google ID token for an application token
// @Description For popup-style flows where the frontend obtains the Google ID token itself.
// @Tags oauth
// @Accept json
// @Produce json
// @Param token body dto.GoogleTokenRequest true "Google ID token"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse "Invalid Google token"
// @Router /auth/google/token [post]
func (h *GoogleOAuthHandler) ExchangeGoogleToken(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GoogleTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Google token is required"})
		return
	}

	user, err := h.reconcileFromIDToken(c, req.Token)
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
		Message: "Google authentication successful",
		Token:   token,
		User:    dto.ToUserResponse(user),
	})
}

// reconcileFromIDToken validates a Google ID token, extracts the verified
// profile claims and resolves them to a local account.
func (h *GoogleOAuthHandler) reconcileFromIDToken(c *gin.Context, idTokenString string) (*domain.User, error) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		logger.Warn("Google ID token validation failed", slog.String("error", err.Error()))
		return nil, apperrors.ErrExternalIdentity
	}

	identity, err := identityFromPayload(payload)
	if err != nil {
		logger.Error("Essential claims missing from Google ID token payload")
		return nil, err
	}

	user, err := h.userService.ReconcileExternalIdentity(ctx, identity)
	if err != nil {
		return nil, err
	}
	logger.Info("User resolved via Google OAuth", slog.String("user_id", user.UserID))
	return user, nil
}

// identityFromPayload builds the typed assertion from a validated ID token
// payload, rejecting payloads missing the essential claims.
func identityFromPayload(payload *idtoken.Payload) (domain.ExternalIdentity, error) {
	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)

	if email == "" || payload.Subject == "" {
		return domain.ExternalIdentity{}, apperrors.ErrExternalIdentity
	}

	return domain.ExternalIdentity{
		Provider:       domain.ProviderGoogle,
		ProviderUserID: payload.Subject,
		Email:          email,
		DisplayName:    name,
		PictureURL:     picture,
	}, nil
}
