package offer

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
	"github.com/ignatzorin/upcycle-backend/internal/domain/repository"
	"github.com/ignatzorin/upcycle-backend/internal/metrics"
	"github.com/ignatzorin/upcycle-backend/internal/pkg/apperror"
)

type SubmitOfferInput struct {
	Price         float64
	EstimatedDays int
	Message       string
}

type SubmitOfferUseCase struct {
	store   repository.Store
	metrics *metrics.Metrics
}

func NewSubmitOfferUseCase(store repository.Store, m *metrics.Metrics) *SubmitOfferUseCase {
	return &SubmitOfferUseCase{store: store, metrics: m}
}

func (uc *SubmitOfferUseCase) Execute(ctx context.Context, actingUserID, requestID uuid.UUID, in SubmitOfferInput) (_ *entity.Offer, err error) {
	defer func() { uc.metrics.OfferOperation("submit", err) }()

	req, err := uc.store.Requests().FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	user, err := uc.store.Users().FindByID(ctx, actingUserID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.ErrUnauthenticated
		}
		return nil, err
	}
	if !user.IsActiveArtisan() {
		return nil, apperror.ErrNotActiveArtisan
	}

	if req.IsOwnedBy(actingUserID) {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "нельзя откликнуться на собственную заявку")
	}
	if !req.AcceptsOffers() {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "заявка больше не принимает предложения")
	}

	_, err = uc.store.Offers().FindByRequestAndArtisan(ctx, requestID, actingUserID)
	switch {
	case err == nil:
		return nil, apperror.New(apperror.ErrCodeConflict, "вы уже отправили предложение по этой заявке")
	case !apperror.IsNotFound(err):
		return nil, err
	}

	offer, err := entity.NewOffer(requestID, actingUserID, in.Price, in.EstimatedDays, in.Message)
	if err != nil {
		return nil, err
	}

	// Параллельная отправка упрётся в уникальный ключ и вернёт Conflict.
	if err := uc.store.Offers().Create(ctx, offer); err != nil {
		return nil, err
	}
	return offer, nil
}
