package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
	"github.com/ignatzorin/upcycle-backend/internal/usecase/identity"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID              uuid.UUID `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	IsActiveArtisan bool      `json:"is_active_artisan"`
	CreatedAt       time.Time `json:"created_at"`
}

type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
}

func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		IsActiveArtisan: u.IsActiveArtisan(),
		CreatedAt:       u.CreatedAt,
	}
}

func ToAuthResponse(res *identity.LoginResult) AuthResponse {
	return AuthResponse{
		User:        ToUserResponse(res.User),
		AccessToken: res.Token.Token,
		ExpiresAt:   res.Token.ExpiresAt,
	}
}
