package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-commerce-api/internal/domain/repository"
	"github.com/oksasatya/go-commerce-api/pkg/helpers"
	"github.com/oksasatya/go-commerce-api/pkg/response"
)

// CtxUserIDKey is the Gin context key carrying the authenticated subject id.
const CtxUserIDKey = "userID"

// Authenticate resolves a bearer token when one is present. A request with no
// Authorization header passes through anonymously; a token that fails
// signature or expiry verification is a hard failure, not anonymity.
func Authenticate(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.Next()
			return
		}
		claims, err := jwt.ParseToken(raw)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, "invalid or expired token", nil)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

// RequireSignIn halts requests that reached a protected route anonymously.
func RequireSignIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxUserIDKey) == "" {
			response.AbortFail(c, http.StatusUnauthorized, "sign in required", nil)
			return
		}
		c.Next()
	}
}

// RequireAdmin loads the subject's record and enforces the administrator
// role. A store failure is reported as a server error, distinct from an
// authorization denial.
func RequireAdmin(users repository.UserRepository, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(CtxUserIDKey)
		u, err := users.GetByID(c.Request.Context(), uid)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				response.AbortFail(c, http.StatusForbidden, "admin access required", nil)
				return
			}
			if logger != nil {
				logger.WithError(err).WithField("user_id", uid).Error("admin role lookup failed")
			}
			response.AbortFail(c, http.StatusInternalServerError, "something went wrong, please try again later", nil)
			return
		}
		if !u.Role.IsAdmin() {
			response.AbortFail(c, http.StatusForbidden, "admin access required", nil)
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
