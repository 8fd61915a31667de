package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fieldscope/field-inspector/internal/model"
	"github.com/fieldscope/field-inspector/internal/testutil"
)

func newAuthRouter(service AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuth(service, testutil.MakeNoopLogger())

	engine := gin.New()
	engine.POST("/api/auth/register", h.Register)
	engine.POST("/api/auth/login", h.Login)
	return engine
}

func TestAuth_Register(t *testing.T) {
	svc := &MockAuthService{}
	engine := newAuthRouter(svc)

	svc.On("Register", mock.Anything, "tech@example.com", "secret", "Field Tech").
		Return(
			model.User{ID: "user-1", Email: "tech@example.com", DisplayName: "Field Tech"},
			model.Session{Token: "signed-token", UserID: "user-1"},
			nil,
		)

	body := `{"email":"tech@example.com","password":"secret","displayName":"Field Tech"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.User)
	assert.Equal(t, "user-1", resp.User.ID)
	require.NotNil(t, resp.Session)
	assert.Equal(t, "signed-token", resp.Session.AccessToken)
}

func TestAuth_Register_DuplicateUser(t *testing.T) {
	svc := &MockAuthService{}
	engine := newAuthRouter(svc)

	svc.On("Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(model.User{}, model.Session{}, model.ErrDuplicateUser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{"email":"a@b.c","password":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
}

func TestAuth_Register_InvalidBody(t *testing.T) {
	engine := newAuthRouter(&MockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("not-json"))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuth_Login(t *testing.T) {
	svc := &MockAuthService{}
	engine := newAuthRouter(svc)

	svc.On("Login", mock.Anything, "tech@example.com", "secret").
		Return(
			model.User{ID: "user-1", Email: "tech@example.com"},
			model.Session{Token: "signed-token", UserID: "user-1"},
			nil,
		)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"tech@example.com","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Session)
	assert.Equal(t, "signed-token", resp.Session.AccessToken)
}

func TestAuth_Login_InvalidCredentials(t *testing.T) {
	svc := &MockAuthService{}
	engine := newAuthRouter(svc)

	svc.On("Login", mock.Anything, mock.Anything, mock.Anything).
		Return(model.User{}, model.Session{}, model.ErrInvalidCredentials)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@b.c","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
