package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"puntoventa/internal/core/apperror"
	appctx "puntoventa/internal/core/context"
	"puntoventa/internal/core/id"
	"puntoventa/internal/domain/auth"
	"puntoventa/internal/infrastructure/http/v1/dto"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	token, operator, err := h.service.Login(ctx, req.ToCredentials())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:    dto.FromToken(token),
		Operator: dto.FromOperator(operator),
	})
}

// Register handles POST /auth/operators (admin only).
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RegisterOperatorRequest
	if !h.BindJSON(c, &req) {
		return
	}

	operator, err := h.service.Register(ctx, req.Username, req.Password, req.Name, req.IsAdmin)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromOperator(operator))
}

// ChangePassword handles POST /auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	ctx := c.Request.Context()

	op := appctx.GetOperator(ctx)
	if op == nil {
		h.Error(c, apperror.NewUnauthorized("not authenticated"))
		return
	}

	operatorID, err := id.Parse(op.OperatorID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid operator id"))
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.ChangePassword(ctx, operatorID, req.CurrentPassword, req.NewPassword); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	op := appctx.GetOperator(c.Request.Context())
	if op == nil {
		h.Error(c, apperror.NewUnauthorized("not authenticated"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"operatorId": op.OperatorID,
		"username":   op.Username,
		"name":       op.Name,
		"isAdmin":    op.IsAdmin,
	})
}
