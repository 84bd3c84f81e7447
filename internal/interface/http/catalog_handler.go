package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-commerce-api/internal/application"
	"github.com/oksasatya/go-commerce-api/internal/domain/repository"
	"github.com/oksasatya/go-commerce-api/pkg/response"
	"github.com/oksasatya/go-commerce-api/pkg/validation"
)

type CatalogHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewCatalogHandler(svc *application.CatalogService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{Svc: svc, Logger: logger}
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type productRequest struct {
	CategoryID  string `json:"category_id" binding:"required,uuid"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents" binding:"gte=0"`
	Quantity    int    `json:"quantity" binding:"gte=0"`
	Shipping    bool   `json:"shipping"`
}

// ListCategories GET /api/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	out, err := h.Svc.ListCategories(c.Request.Context())
	if err != nil {
		respondErr(c, h.Logger, err, http.StatusBadRequest)
		return
	}
	response.OK(c, http.StatusOK, out, "categories", nil)
}

// GetCategory GET /api/categories/:slug
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	cat, err := h.Svc.GetCategory(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondErr(c, h.Logger, err, http.StatusNotFound)
		return
	}
	response.OK(c, http.StatusOK, cat, "category", nil)
}

// CreateCategory POST /api/categories (admin)
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cat, err := h.Svc.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		respondErr(c, h.Logger, err, http.StatusBadRequest)
		return
	}
	response.OK(c, http.StatusCreated, cat, "category created", nil)
}

// UpdateCategory PUT /api/categories/:slug (admin)
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cat, err := h.Svc.UpdateCategory(c.Request.Context(), c.Param("slug"), req.Name)
	if err != nil {
		respondErr(c, h.Logger, err, http.StatusBadRequest)
		return
	}
	response.OK(c, http.StatusOK, cat, "category updated", nil)
}

// DeleteCategory DELETE /api/categories/:slug (admin)
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	if err := h.Svc.DeleteCategory(c.Request.Context(), c.Param("slug")); err != nil {
		respondErr(c, h.Logger, err, http.StatusNotFound)
		return
	}
	response.OK[any](c, http.StatusOK, nil, "category deleted", nil)
}

// ListProducts GET /api/products?category=&min_price=&max_price=&page=&per_page=
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	f := repository.ProductFilter{
		CategoryID:    c.Query("category"),
		MinPriceCents: queryInt64(c, "min_price"),
		MaxPriceCents: queryInt64(c, "max_price"),
		Page:          int(queryInt64(c, "page")),
		PerPage:       int(queryInt64(c, "per_page")),
	}
	out, err := h.Svc.ListProducts(c.Request.Context(), f)
	if err != nil {
		respondErr(c, h.Logger, err, http.StatusBadRequest)
		return
	}
	response.OK(c, http.StatusOK, out, "products", map[string]any{"page": f.Page, "per_page": f.PerPage})
}

// SearchProducts GET /api/products/search?q=&size=
func (h *CatalogHandler) SearchProducts(c *gin.Context) {
	out, err := h.Svc.SearchProducts(c.Request.Context(), c.Query("q"), int(queryInt64(c, "size")))
	if err != nil {
		respondErr(c, h.Logger, err, http.StatusBadRequest)
		return
	}
	response.OK(c, http.StatusOK, out, "search results", nil)
}

// GetProduct GET /api/products/:slug
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	p, err := h.Svc.GetProduct(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondErr(c, h.Logger, err, http.StatusNotFound)
		return
	}
	response.OK(c, http.StatusOK, p, "product", nil)
}

// CreateProduct POST /api/products (admin)
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.CreateProduct(c.Request.Context(), application.ProductInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Quantity:    req.Quantity,
		Shipping:    req.Shipping,
	})
	if err != nil {
		respondErr(c, h.Logger, err, http.StatusBadRequest)
		return
	}
	response.OK(c, http.StatusCreated, p, "product created", nil)
}

// UpdateProduct PUT /api/products/:slug (admin)
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.UpdateProduct(c.Request.Context(), c.Param("slug"), application.ProductInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Quantity:    req.Quantity,
		Shipping:    req.Shipping,
	})
	if err != nil {
		respondErr(c, h.Logger, err, http.StatusBadRequest)
		return
	}
	response.OK(c, http.StatusOK, p, "product updated", nil)
}

// DeleteProduct DELETE /api/products/:slug (admin)
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	if err := h.Svc.DeleteProduct(c.Request.Context(), c.Param("slug")); err != nil {
		respondErr(c, h.Logger, err, http.StatusNotFound)
		return
	}
	response.OK[any](c, http.StatusOK, nil, "product deleted", nil)
}

// UploadPhoto POST /api/products/:slug/photo (admin, multipart field "photo")
func (h *CatalogHandler) UploadPhoto(c *gin.Context) {
	fh, err := c.FormFile("photo")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "photo file is required", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondErr(c, h.Logger, err, http.StatusBadRequest)
		return
	}
	defer func() { _ = f.Close() }()

	p, err := h.Svc.UploadPhoto(c.Request.Context(), c.Param("slug"), f,
		fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		respondErr(c, h.Logger, err, http.StatusBadRequest)
		return
	}
	response.OK(c, http.StatusOK, p, "photo uploaded", nil)
}

func queryInt64(c *gin.Context, key string) int64 {
	v := c.Query(key)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
