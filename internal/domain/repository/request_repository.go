package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
)

type RequestRepository interface {
	Create(ctx context.Context, req *entity.UpcyclingRequest) error
	Update(ctx context.Context, req *entity.UpcyclingRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.UpcyclingRequest, error)
	// LockByID читает заявку с блокировкой строки до конца транзакции.
	LockByID(ctx context.Context, id uuid.UUID) (*entity.UpcyclingRequest, error)
	// ListByOwner возвращает заявки владельца, новые первыми.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.UpcyclingRequest, error)
	// ListAvailable возвращает заявки без выбранного мастера в статусе Request Received, новые первыми.
	ListAvailable(ctx context.Context) ([]*entity.UpcyclingRequest, error)
}
