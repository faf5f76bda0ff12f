package dto

import (
	"time"

	"puntoventa/internal/domain/auth"
)

// --- Request DTOs ---

// LoginRequest for operator login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ToCredentials converts to domain credentials.
func (r *LoginRequest) ToCredentials() auth.Credentials {
	return auth.Credentials{
		Username: r.Username,
		Password: r.Password,
	}
}

// RegisterOperatorRequest for creating operators (admin only).
type RegisterOperatorRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
	IsAdmin  bool   `json:"isAdmin"`
}

// ChangePasswordRequest for changing the current operator's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// --- Response DTOs ---

// TokenResponse represents an access token response.
type TokenResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	TokenType   string    `json:"tokenType"`
}

// FromToken creates response from domain token.
func FromToken(t *auth.Token) *TokenResponse {
	return &TokenResponse{
		AccessToken: t.AccessToken,
		ExpiresAt:   t.ExpiresAt,
		TokenType:   t.TokenType,
	}
}

// OperatorResponse represents an operator in API responses.
type OperatorResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name,omitempty"`
	IsActive  bool      `json:"isActive"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromOperator creates response from domain operator.
func FromOperator(o *auth.Operator) *OperatorResponse {
	return &OperatorResponse{
		ID:        o.ID.String(),
		Username:  o.Username,
		Name:      o.Name,
		IsActive:  o.IsActive,
		IsAdmin:   o.IsAdmin,
		CreatedAt: o.CreatedAt,
	}
}

// LoginResponse includes the token and operator info.
type LoginResponse struct {
	Token    *TokenResponse    `json:"token"`
	Operator *OperatorResponse `json:"operator"`
}
