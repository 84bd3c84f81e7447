package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-commerce-api/config"
	"github.com/oksasatya/go-commerce-api/internal/application"
	"github.com/oksasatya/go-commerce-api/pkg/helpers"
	"github.com/oksasatya/go-commerce-api/pkg/mailer"
	"github.com/oksasatya/go-commerce-api/pkg/response"
	"github.com/oksasatya/go-commerce-api/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
	Cfg    *config.Config
	Pub    *helpers.RabbitPublisher
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, cfg *config.Config, pub *helpers.RabbitPublisher) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cfg: cfg, Pub: pub}
}

// Request bodies deliberately carry no binding:"required" tags: the service
// checks fields in a fixed order and its messages are the API contract.
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Answer   string `json:"answer"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resetRequest struct {
	Email       string `json:"email"`
	Answer      string `json:"answer"`
	NewPassword string `json:"new_password"`
}

type updateProfileRequest struct {
	Email           string `json:"email"`
	CurrentPassword string `json:"current_password"`
	Name            string `json:"name"`
	NewPassword     string `json:"new_password"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
		Answer:   req.Answer,
	})
	if err != nil {
		respondErr(c, h.Logger, err, http.StatusBadRequest)
		return
	}
	h.enqueueEmail(c, mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data:     map[string]any{"AppName": h.Cfg.AppName, "Name": u.Name, "Email": u.Email},
	})
	response.OK(c, http.StatusCreated, u.Public(), "registered successfully", nil)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondErr(c, h.Logger, err, http.StatusUnauthorized)
		return
	}
	response.OK(c, http.StatusOK, res, "login successful", map[string]any{"expires_at": res.ExpiresAt})
}

// ForgotPassword POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ResetPassword(c.Request.Context(), req.Email, req.Answer, req.NewPassword); err != nil {
		respondErr(c, h.Logger, err, http.StatusBadRequest)
		return
	}
	response.OK[any](c, http.StatusOK, nil, "password reset successfully", nil)
}

// UpdateProfile PUT /api/auth/profile (sign-in required)
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), application.UpdateProfileInput{
		Email:           req.Email,
		CurrentPassword: req.CurrentPassword,
		Name:            req.Name,
		NewPassword:     req.NewPassword,
		Phone:           req.Phone,
		Address:         req.Address,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, application.ErrUnauthorized) {
			status = http.StatusUnauthorized
		}
		respondErr(c, h.Logger, err, status)
		return
	}
	if req.NewPassword != "" {
		h.enqueueEmail(c, mailer.EmailJob{
			To:       u.Email,
			Template: mailer.TemplatePasswordChanged,
			Data:     map[string]any{"AppName": h.Cfg.AppName, "Name": u.Name},
		})
	}
	response.OK(c, http.StatusOK, u.Public(), "profile updated", nil)
}

// Check GET /api/auth/check — protected-route probe for the SPA.
func (h *AuthHandler) Check(c *gin.Context) {
	response.OK(c, http.StatusOK, gin.H{"ok": true}, "authenticated", nil)
}

// AdminCheck GET /api/auth/admin-check — admin-route probe for the SPA.
func (h *AuthHandler) AdminCheck(c *gin.Context) {
	response.OK(c, http.StatusOK, gin.H{"ok": true}, "admin", nil)
}

func (h *AuthHandler) enqueueEmail(c *gin.Context, job mailer.EmailJob) {
	if h.Pub == nil || h.Cfg == nil || !h.Cfg.MailSendEnabled {
		return
	}
	if err := h.Pub.PublishJSON(c.Request.Context(), job); err != nil && h.Logger != nil {
		h.Logger.WithError(err).WithField("template", job.Template).Warn("email enqueue failed")
	}
}
