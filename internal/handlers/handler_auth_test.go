package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/corkboard/bulletin_board_app/internal/apperrors"
	"github.com/corkboard/bulletin_board_app/internal/core/domain"
	"github.com/corkboard/bulletin_board_app/internal/core/services"
	"github.com/corkboard/bulletin_board_app/internal/dto"
	"github.com/corkboard/bulletin_board_app/internal/handlers"
	"github.com/corkboard/bulletin_board_app/internal/middleware"
	"github.com/corkboard/bulletin_board_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memUserRepository is an in-memory stand-in for the pgsql repository,
// enforcing the same unique constraints on email and username.
type memUserRepository struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newMemUserRepository() *memUserRepository {
	return &memUserRepository{users: map[string]domain.User{}}
}

func (r *memUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return apperrors.ErrDuplicateEmail
		}
		if u.Username == user.Username {
			return apperrors.ErrDuplicateUsername
		}
	}
	r.users[user.UserID] = user
	return nil
}

func (r *memUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.UserID]; !ok {
		return apperrors.ErrNotFound
	}
	r.users[user.UserID] = user
	return nil
}

func (r *memUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userID]; ok {
		return &u, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *memUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			copied := u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memUserRepository) FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.AuthProvider == provider && u.ProviderUserID == providerUserID {
			copied := u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// newAuthTestRouter wires the real user and token services over the in-memory
// repository, mirroring the production route layout under /api/auth.
func newAuthTestRouter(t *testing.T) (*gin.Engine, *memUserRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		require.NoError(t, dto.RegisterValidations(v))
	}

	cfg := &config.Config{
		JWTSecret:         "handler-test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "bulletin-board-app",
	}
	repo := newMemUserRepository()
	userSvc := services.NewUserService(repo)
	tokenSvc := services.NewTokenService(cfg)
	h := handlers.NewAuthHandler(userSvc, tokenSvc)

	r := gin.New()
	auth := r.Group("/api/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.POST("/check-email", h.CheckEmail)
	auth.POST("/check-username", h.CheckUsername)
	auth.GET("/me", middleware.AuthMiddleware(cfg.JWTSecret), h.Me)
	return r, repo
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, r *gin.Engine, email, username, password string) dto.AuthResponse {
	t.Helper()
	w := postJSON(t, r, "/api/auth/register", dto.RegisterRequest{
		Email:    email,
		Username: username,
		Password: password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRegister_ReturnsWorkingToken(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	resp := registerUser(t, r, "Ann@X.com", "ann", "secret1")
	assert.Equal(t, "ann@x.com", resp.User.Email)
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.User.UserID)

	// The token from registration must resolve to the same account on /me.
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var me dto.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, resp.User.UserID, me.UserID)
	assert.Equal(t, "ann", me.Username)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	r, _ := newAuthTestRouter(t)
	registerUser(t, r, "ann@x.com", "ann", "secret1")

	w := postJSON(t, r, "/api/auth/register", dto.RegisterRequest{
		Email:    "ANN@x.com",
		Username: "ann2",
		Password: "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_RejectsMissingFields(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	w := postJSON(t, r, "/api/auth/register", gin.H{"email": "ann@x.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_Roundtrip(t *testing.T) {
	r, _ := newAuthTestRouter(t)
	registered := registerUser(t, r, "ann@x.com", "ann", "secret1")

	w := postJSON(t, r, "/api/auth/login", dto.LoginRequest{Email: "ANN@X.COM", Password: "secret1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// A fresh login issues a new token for the same account.
	assert.Equal(t, registered.User.UserID, resp.User.UserID)
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_WrongPasswordIsGeneric(t *testing.T) {
	r, _ := newAuthTestRouter(t)
	registerUser(t, r, "ann@x.com", "ann", "secret1")

	wrongPass := postJSON(t, r, "/api/auth/login", dto.LoginRequest{Email: "ann@x.com", Password: "nope42"})
	unknown := postJSON(t, r, "/api/auth/login", dto.LoginRequest{Email: "ghost@x.com", Password: "nope42"})

	assert.Equal(t, http.StatusBadRequest, wrongPass.Code)
	assert.Equal(t, http.StatusBadRequest, unknown.Code)
	// Same body for both failure modes: no account enumeration.
	assert.JSONEq(t, wrongPass.Body.String(), unknown.Body.String())
}

func TestMe_RequiresToken(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCheckEmailAndUsername(t *testing.T) {
	r, _ := newAuthTestRouter(t)
	registerUser(t, r, "ann@x.com", "ann", "secret1")

	w := postJSON(t, r, "/api/auth/check-email", dto.CheckEmailRequest{Email: "ann@x.com"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.ExistsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Exists)

	w = postJSON(t, r, "/api/auth/check-username", dto.CheckUsernameRequest{Username: "somebodyelse"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Exists)
}
