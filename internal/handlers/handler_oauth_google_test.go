package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/corkboard/bulletin_board_app/internal/core/domain"
	"github.com/corkboard/bulletin_board_app/internal/core/services"
	"github.com/corkboard/bulletin_board_app/internal/dto"
	"github.com/corkboard/bulletin_board_app/internal/handlers"
	"github.com/corkboard/bulletin_board_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// fakeGoogleOAuthService substitutes the parts of the Google flow that would
// otherwise hit Google's endpoints.
type fakeGoogleOAuthService struct {
	state          string
	loginURL       string
	exchangeToken  *oauth2.Token
	exchangeErr    error
	payloadByToken map[string]*idtoken.Payload
}

func (f *fakeGoogleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	return f.state, nil
}

func (f *fakeGoogleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return f.loginURL + "?state=" + state
}

func (f *fakeGoogleOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return f.exchangeToken, nil
}

func (f *fakeGoogleOAuthService) GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error) {
	return nil, errors.New("not used in tests")
}

func (f *fakeGoogleOAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	if payload, ok := f.payloadByToken[idTokenString]; ok {
		return payload, nil
	}
	return nil, errors.New("token signature mismatch")
}

func googlePayload(sub, email, name string) *idtoken.Payload {
	return &idtoken.Payload{
		Subject: sub,
		Claims: map[string]any{
			"email":   email,
			"name":    name,
			"picture": "https://lh3.example/p.jpg",
		},
	}
}

func newOAuthTestRouter(t *testing.T, fake *fakeGoogleOAuthService) (*gin.Engine, *memUserRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret:         "handler-test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "bulletin-board-app",
		FrontendBaseURL:   "http://localhost:5173",
	}
	repo := newMemUserRepository()
	userSvc := services.NewUserService(repo)
	tokenSvc := services.NewTokenService(cfg)
	h := handlers.NewGoogleOAuthHandler(fake, userSvc, tokenSvc, cfg)

	r := gin.New()
	google := r.Group("/api/auth/google")
	google.GET("", h.StartGoogleLogin)
	google.GET("/callback", h.CallbackGoogle)
	google.POST("/token", h.ExchangeGoogleToken)
	return r, repo
}

func TestStartGoogleLogin_SetsStateCookieAndRedirects(t *testing.T) {
	fake := &fakeGoogleOAuthService{state: "csrf-state", loginURL: "https://accounts.google.com/o/oauth2/auth"}
	r, _ := newOAuthTestRouter(t, fake)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "state=csrf-state")

	var stateCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "oauth_state" {
			stateCookie = c
		}
	}
	require.NotNil(t, stateCookie)
	assert.Equal(t, "csrf-state", stateCookie.Value)
	assert.True(t, stateCookie.HttpOnly)
}

func TestCallbackGoogle_RejectsStateMismatch(t *testing.T) {
	fake := &fakeGoogleOAuthService{}
	r, _ := newOAuthTestRouter(t, fake)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?state=evil&code=abc", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "expected"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCallbackGoogle_RedirectsToFrontendWithToken(t *testing.T) {
	idToken := "stub-google-id-token"
	fake := &fakeGoogleOAuthService{
		exchangeToken: (&oauth2.Token{AccessToken: "ya29.x"}).WithExtra(map[string]any{"id_token": idToken}),
		payloadByToken: map[string]*idtoken.Payload{
			idToken: googlePayload("google-sub-1", "ann@x.com", "Ann Example"),
		},
	}
	r, repo := newOAuthTestRouter(t, fake)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?state=good&code=abc", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "good"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	location := w.Header().Get("Location")
	assert.True(t, strings.HasPrefix(location, "http://localhost:5173/auth/success?token="), location)

	// The callback provisioned a verified account for the assertion.
	user, err := repo.FindUserByProviderID(context.Background(), domain.ProviderGoogle, "google-sub-1")
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", user.Email)
	assert.True(t, user.IsVerified)
}

func TestExchangeGoogleToken_IsIdempotent(t *testing.T) {
	idToken := "stub-google-id-token"
	fake := &fakeGoogleOAuthService{
		payloadByToken: map[string]*idtoken.Payload{
			idToken: googlePayload("google-sub-1", "ann@x.com", "Ann Example"),
		},
	}
	r, _ := newOAuthTestRouter(t, fake)

	first := postJSON(t, r, "/api/auth/google/token", dto.GoogleTokenRequest{Token: idToken})
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())
	second := postJSON(t, r, "/api/auth/google/token", dto.GoogleTokenRequest{Token: idToken})
	require.Equal(t, http.StatusOK, second.Code, second.Body.String())

	var firstResp, secondResp dto.AuthResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &firstResp))
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &secondResp))
	assert.Equal(t, firstResp.User.UserID, secondResp.User.UserID)
	assert.Equal(t, "annexample", firstResp.User.Username)
}

func TestExchangeGoogleToken_RejectsInvalidToken(t *testing.T) {
	fake := &fakeGoogleOAuthService{payloadByToken: map[string]*idtoken.Payload{}}
	r, _ := newOAuthTestRouter(t, fake)

	w := postJSON(t, r, "/api/auth/google/token", dto.GoogleTokenRequest{Token: "forged"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
