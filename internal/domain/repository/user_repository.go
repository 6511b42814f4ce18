package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// FindByID загружает пользователя вместе с профилем мастера, если он есть.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
}

type ProfileRepository interface {
	// EnsureProfile создаёт неактивный профиль, если его ещё нет, и возвращает текущий.
	EnsureProfile(ctx context.Context, userID uuid.UUID) (*entity.ArtisanProfile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.ArtisanProfile, error)
	Update(ctx context.Context, profile *entity.ArtisanProfile) error
}
