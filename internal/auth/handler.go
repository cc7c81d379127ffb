package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dvo/event-booking-backend/internal/apperror"
	"github.com/dvo/event-booking-backend/internal/auditlog"
)

type Handler struct {
	Service *Service
	Audit   auditlog.Service
}

func NewHandler(s *Service, audit auditlog.Service) *Handler {
	return &Handler{Service: s, Audit: audit}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Login - POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Respond(c, apperror.FromBinding(err))
		return
	}

	pair, u, err := h.Service.Login(LoginInput{Username: req.Username, Password: req.Password})
	if err != nil {
		h.Audit.LogAction(c.Request.Context(), nil, "USER_LOGIN",
			map[string]interface{}{"username": req.Username, "error": err.Error()},
			c.ClientIP(), "failure")
		apperror.Respond(c, err)
		return
	}

	h.Audit.LogAction(c.Request.Context(), &u.ID, "USER_LOGIN",
		map[string]interface{}{"username": u.Username}, c.ClientIP(), "success")

	c.JSON(http.StatusOK, gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"user":         u.ToResponse(),
	})
}

// Refresh - POST /auth/refresh
func (h *Handler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Respond(c, apperror.FromBinding(err))
		return
	}

	accessToken, err := h.Service.Refresh(req.RefreshToken)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}
