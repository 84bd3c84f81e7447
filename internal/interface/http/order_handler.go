package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-commerce-api/internal/application"
	"github.com/oksasatya/go-commerce-api/internal/domain/entity"
	"github.com/oksasatya/go-commerce-api/internal/interface/middleware"
	"github.com/oksasatya/go-commerce-api/pkg/response"
	"github.com/oksasatya/go-commerce-api/pkg/validation"
)

type OrderHandler struct {
	Svc    *application.OrderService
	Logger *logrus.Logger
}

func NewOrderHandler(svc *application.OrderService, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{Svc: svc, Logger: logger}
}

type checkoutRequest struct {
	Items []application.CheckoutItem `json:"items"`
	Nonce string                     `json:"nonce"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ClientToken GET /api/payment/token
func (h *OrderHandler) ClientToken(c *gin.Context) {
	tok, err := h.Svc.ClientToken(c.Request.Context())
	if err != nil {
		respondErr(c, h.Logger, err, http.StatusBadRequest)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"client_token": tok}, "client token", nil)
}

// Checkout POST /api/orders
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	o, err := h.Svc.Checkout(c.Request.Context(), uid, req.Items, req.Nonce)
	if err != nil {
		respondErr(c, h.Logger, err, http.StatusBadRequest)
		return
	}
	response.OK(c, http.StatusCreated, o, "order placed", nil)
}

// ListMine GET /api/orders
func (h *OrderHandler) ListMine(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	out, err := h.Svc.ListMine(c.Request.Context(), uid)
	if err != nil {
		respondErr(c, h.Logger, err, http.StatusBadRequest)
		return
	}
	response.OK(c, http.StatusOK, out, "orders", nil)
}

// ListAll GET /api/orders/all (admin)
func (h *OrderHandler) ListAll(c *gin.Context) {
	out, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		respondErr(c, h.Logger, err, http.StatusBadRequest)
		return
	}
	response.OK(c, http.StatusOK, out, "orders", nil)
}

// UpdateStatus PUT /api/orders/:id/status (admin)
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	o, err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("id"), entity.OrderStatus(req.Status))
	if err != nil {
		respondErr(c, h.Logger, err, http.StatusBadRequest)
		return
	}
	response.OK(c, http.StatusOK, o, "order status updated", nil)
}
