package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-commerce-api/internal/domain/entity"
	"github.com/oksasatya/go-commerce-api/internal/domain/repository"
	"github.com/oksasatya/go-commerce-api/pkg/helpers"
)

type stubUserRepo struct {
	users map[string]*entity.User
	err   error
}

func (s *stubUserRepo) Create(context.Context, *entity.User) error { return nil }
func (s *stubUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}
func (s *stubUserRepo) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, repository.ErrNotFound
}
func (s *stubUserRepo) GetByEmailAndAnswer(context.Context, string, string) (*entity.User, error) {
	return nil, repository.ErrNotFound
}
func (s *stubUserRepo) Update(context.Context, *entity.User) error         { return nil }
func (s *stubUserRepo) UpdatePassword(context.Context, string, string) error { return nil }

var _ repository.UserRepository = (*stubUserRepo)(nil)

func newAuthRouter(t *testing.T, jwt *helpers.JWTManager, users repository.UserRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Authenticate(jwt))
	r.GET("/open", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": c.GetString(CtxUserIDKey)})
	})
	r.GET("/me", RequireSignIn(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": c.GetString(CtxUserIDKey)})
	})
	if users != nil {
		r.GET("/admin", RequireSignIn(), RequireAdmin(users, nil), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
	}
	return r
}

func doGet(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticateAnonymousPassesThrough(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	r := newAuthRouter(t, jwt, nil)

	w := doGet(r, "/open", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"uid":""`)
}

func TestAuthenticateRejectsBadToken(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	r := newAuthRouter(t, jwt, nil)

	// A present-but-invalid token is a hard failure even on open routes.
	w := doGet(r, "/open", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or expired token")
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	expired := helpers.NewJWTManager("secret", -time.Minute)
	token, _, err := expired.GenerateToken("u1")
	require.NoError(t, err)

	r := newAuthRouter(t, helpers.NewJWTManager("secret", time.Hour), nil)
	w := doGet(r, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireSignIn(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	r := newAuthRouter(t, jwt, nil)

	w := doGet(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "sign in required")

	token, _, err := jwt.GenerateToken("u1")
	require.NoError(t, err)
	w = doGet(r, "/me", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"uid":"u1"`)
}

func TestRequireAdmin(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	users := &stubUserRepo{users: map[string]*entity.User{
		"admin-1": {ID: "admin-1", Role: entity.RoleAdmin},
		"user-1":  {ID: "user-1", Role: entity.RoleUser},
	}}
	r := newAuthRouter(t, jwt, users)

	adminToken, _, err := jwt.GenerateToken("admin-1")
	require.NoError(t, err)
	w := doGet(r, "/admin", adminToken)
	assert.Equal(t, http.StatusOK, w.Code)

	userToken, _, err := jwt.GenerateToken("user-1")
	require.NoError(t, err)
	w = doGet(r, "/admin", userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "admin access required")

	// A token whose subject no longer exists is denied, not erred.
	ghostToken, _, err := jwt.GenerateToken("ghost")
	require.NoError(t, err)
	w = doGet(r, "/admin", ghostToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminStoreFailure(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	users := &stubUserRepo{err: context.DeadlineExceeded}
	r := newAuthRouter(t, jwt, users)

	token, _, err := jwt.GenerateToken("admin-1")
	require.NoError(t, err)
	w := doGet(r, "/admin", token)
	// A store outage must not read as an authorization denial.
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestBearerTokenParsing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"Basic abc", ""},
		{"Bearer", ""},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			c.Request.Header.Set("Authorization", tc.header)
		}
		assert.Equal(t, tc.want, bearerToken(c), tc.header)
	}
}
