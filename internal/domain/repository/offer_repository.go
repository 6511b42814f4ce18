package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
)

// OfferSort задаёт порядок выдачи предложений; выбирается вызывающим кодом.
type OfferSort int

const (
	OfferSortPriceAsc OfferSort = iota
	OfferSortNewest
)

type OfferRepository interface {
	Create(ctx context.Context, offer *entity.Offer) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error)
	LockByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error)
	FindByRequestAndArtisan(ctx context.Context, requestID, artisanID uuid.UUID) (*entity.Offer, error)
	ListByRequest(ctx context.Context, requestID uuid.UUID, sort OfferSort) ([]*entity.Offer, error)
	UpdateStatus(ctx context.Context, offer *entity.Offer) error
	// RejectIfPending отклоняет предложение, только если оно ещё в Pending.
	// false означает, что статус уже был изменён.
	RejectIfPending(ctx context.Context, id uuid.UUID) (bool, error)
	// RejectPendingExcept отклоняет все ожидающие предложения заявки, кроме keepID.
	RejectPendingExcept(ctx context.Context, requestID, keepID uuid.UUID) (int64, error)
}
