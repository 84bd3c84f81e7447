package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-commerce-api/internal/container"
	"github.com/oksasatya/go-commerce-api/internal/domain/repository"
	handlers "github.com/oksasatya/go-commerce-api/internal/interface/http"
	"github.com/oksasatya/go-commerce-api/internal/interface/middleware"
)

// CatalogModule wires category and product routes. Reads are public; writes
// require the administrator role.
type CatalogModule struct {
	Handler *handlers.CatalogHandler
	Users   repository.UserRepository
}

func NewCatalogModule(h *handlers.CatalogHandler, users repository.UserRepository) *CatalogModule {
	return &CatalogModule{Handler: h, Users: users}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	logger := container.GetLogger()

	readLimiter := middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/categories", readLimiter, m.Handler.ListCategories)
	rg.GET("/categories/:slug", readLimiter, m.Handler.GetCategory)
	rg.GET("/products", readLimiter, m.Handler.ListProducts)
	rg.GET("/products/search", readLimiter, m.Handler.SearchProducts)
	rg.GET("/products/:slug", readLimiter, m.Handler.GetProduct)

	admin := rg.Group("/")
	admin.Use(middleware.RequireSignIn(), middleware.RequireAdmin(m.Users, logger))
	admin.Use(middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		admin.POST("/categories", m.Handler.CreateCategory)
		admin.PUT("/categories/:slug", m.Handler.UpdateCategory)
		admin.DELETE("/categories/:slug", m.Handler.DeleteCategory)

		admin.POST("/products", m.Handler.CreateProduct)
		admin.PUT("/products/:slug", m.Handler.UpdateProduct)
		admin.DELETE("/products/:slug", m.Handler.DeleteProduct)
		admin.POST("/products/:slug/photo", m.Handler.UploadPhoto)
	}
}
