package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-commerce-api/internal/container"
	"github.com/oksasatya/go-commerce-api/internal/domain/repository"
	handlers "github.com/oksasatya/go-commerce-api/internal/interface/http"
	"github.com/oksasatya/go-commerce-api/internal/interface/middleware"
)

// AuthModule wires account routes under /api/auth.
// Public: register, login, forgot-password.
// Protected: profile update and the SPA route probes.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Users   repository.UserRepository
}

func NewAuthModule(h *handlers.AuthHandler, users repository.UserRepository) *AuthModule {
	return &AuthModule{Handler: h, Users: users}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	logger := container.GetLogger()

	registerLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP(), nil)
	resetLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)

	auth := rg.Group("/auth")
	auth.POST("/register", registerLimiter, m.Handler.Register)
	auth.POST("/login", loginLimiter, m.Handler.Login)
	auth.POST("/forgot-password", resetLimiter, m.Handler.ForgotPassword)

	protected := auth.Group("/")
	protected.Use(middleware.RequireSignIn())
	protected.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		protected.PUT("/profile", m.Handler.UpdateProfile)
		protected.GET("/check", m.Handler.Check)
	}

	admin := auth.Group("/")
	admin.Use(middleware.RequireSignIn(), middleware.RequireAdmin(m.Users, logger))
	{
		admin.GET("/admin-check", m.Handler.AdminCheck)
	}
}
