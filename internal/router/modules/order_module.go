package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-commerce-api/internal/container"
	"github.com/oksasatya/go-commerce-api/internal/domain/repository"
	handlers "github.com/oksasatya/go-commerce-api/internal/interface/http"
	"github.com/oksasatya/go-commerce-api/internal/interface/middleware"
)

// OrderModule wires payment and order routes. Everything here requires a
// signed-in user; listing all orders and changing status require admin.
type OrderModule struct {
	Handler *handlers.OrderHandler
	Users   repository.UserRepository
}

func NewOrderModule(h *handlers.OrderHandler, users repository.UserRepository) *OrderModule {
	return &OrderModule{Handler: h, Users: users}
}

func (m *OrderModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	logger := container.GetLogger()

	signed := rg.Group("/")
	signed.Use(middleware.RequireSignIn())
	signed.Use(middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		signed.GET("/payment/token", m.Handler.ClientToken)
		signed.POST("/orders", m.Handler.Checkout)
		signed.GET("/orders", m.Handler.ListMine)
	}

	admin := rg.Group("/")
	admin.Use(middleware.RequireSignIn(), middleware.RequireAdmin(m.Users, logger))
	{
		admin.GET("/orders/all", m.Handler.ListAll)
		admin.PUT("/orders/:id/status", m.Handler.UpdateStatus)
	}
}
