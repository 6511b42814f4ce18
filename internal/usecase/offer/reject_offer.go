package offer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
	"github.com/ignatzorin/upcycle-backend/internal/domain/repository"
	"github.com/ignatzorin/upcycle-backend/internal/domain/valueobject"
	"github.com/ignatzorin/upcycle-backend/internal/metrics"
	"github.com/ignatzorin/upcycle-backend/internal/pkg/apperror"
)

type RejectOfferUseCase struct {
	store   repository.Store
	metrics *metrics.Metrics
}

func NewRejectOfferUseCase(store repository.Store, m *metrics.Metrics) *RejectOfferUseCase {
	return &RejectOfferUseCase{store: store, metrics: m}
}

// Execute отклоняет одно предложение. Остальные предложения и заявка не меняются.
func (uc *RejectOfferUseCase) Execute(ctx context.Context, actingUserID, offerID uuid.UUID) (_ *entity.Offer, err error) {
	defer func() { uc.metrics.OfferOperation("reject", err) }()

	offer, err := uc.store.Offers().FindByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	req, err := uc.store.Requests().FindByID(ctx, offer.RequestID)
	if err != nil {
		return nil, err
	}

	if !req.IsOwnedBy(actingUserID) {
		return nil, apperror.ErrNotRequestOwner
	}
	if !offer.IsPending() {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "предложение уже не ожидает решения")
	}

	ok, err := uc.store.Offers().RejectIfPending(ctx, offer.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "предложение уже не ожидает решения")
	}

	offer.Status = valueobject.OfferStatusRejected
	offer.UpdatedAt = time.Now()
	return offer, nil
}
