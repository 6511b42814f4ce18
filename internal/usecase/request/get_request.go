package request

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
	"github.com/ignatzorin/upcycle-backend/internal/domain/repository"
	"github.com/ignatzorin/upcycle-backend/internal/pkg/apperror"
)

// RequestDetail - заявка глазами конкретного пользователя.
// Владелец видит все предложения, остальные только своё.
type RequestDetail struct {
	Request      *entity.UpcyclingRequest
	Offers       []*entity.Offer
	IsOwner      bool
	HasMadeOffer bool
	CanMakeOffer bool
}

type GetRequestUseCase struct {
	store repository.Store
}

func NewGetRequestUseCase(store repository.Store) *GetRequestUseCase {
	return &GetRequestUseCase{store: store}
}

func (uc *GetRequestUseCase) Execute(ctx context.Context, userID, requestID uuid.UUID) (*RequestDetail, error) {
	req, err := uc.store.Requests().FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	detail := &RequestDetail{Request: req, Offers: []*entity.Offer{}, IsOwner: req.IsOwnedBy(userID)}

	if detail.IsOwner {
		offers, err := uc.store.Offers().ListByRequest(ctx, requestID, repository.OfferSortPriceAsc)
		if err != nil {
			return nil, err
		}
		detail.Offers = offers
		return detail, nil
	}

	own, err := uc.store.Offers().FindByRequestAndArtisan(ctx, requestID, userID)
	switch {
	case err == nil:
		detail.HasMadeOffer = true
		detail.Offers = []*entity.Offer{own}
	case !apperror.IsNotFound(err):
		return nil, err
	}

	user, err := uc.store.Users().FindByID(ctx, userID)
	if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}
	detail.CanMakeOffer = user.IsActiveArtisan() && !detail.HasMadeOffer && req.AcceptsOffers()
	return detail, nil
}
