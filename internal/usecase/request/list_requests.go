package request

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
	"github.com/ignatzorin/upcycle-backend/internal/domain/repository"
	"github.com/ignatzorin/upcycle-backend/internal/pkg/apperror"
)

type ListMyRequestsUseCase struct {
	store repository.Store
}

func NewListMyRequestsUseCase(store repository.Store) *ListMyRequestsUseCase {
	return &ListMyRequestsUseCase{store: store}
}

func (uc *ListMyRequestsUseCase) Execute(ctx context.Context, ownerID uuid.UUID) ([]*entity.UpcyclingRequest, error) {
	return uc.store.Requests().ListByOwner(ctx, ownerID)
}

// ListAvailableRequestsUseCase - лента заявок для активных мастеров.
type ListAvailableRequestsUseCase struct {
	store repository.Store
}

func NewListAvailableRequestsUseCase(store repository.Store) *ListAvailableRequestsUseCase {
	return &ListAvailableRequestsUseCase{store: store}
}

func (uc *ListAvailableRequestsUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]*entity.UpcyclingRequest, error) {
	user, err := uc.store.Users().FindByID(ctx, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.ErrUnauthenticated
		}
		return nil, err
	}
	if !user.IsActiveArtisan() {
		return nil, apperror.ErrNotActiveArtisan
	}
	return uc.store.Requests().ListAvailable(ctx)
}

type ListRequestOffersUseCase struct {
	store repository.Store
}

func NewListRequestOffersUseCase(store repository.Store) *ListRequestOffersUseCase {
	return &ListRequestOffersUseCase{store: store}
}

// Execute возвращает предложения по заявке, дешёвые первыми. Доступно только владельцу.
func (uc *ListRequestOffersUseCase) Execute(ctx context.Context, userID, requestID uuid.UUID) ([]*entity.Offer, error) {
	req, err := uc.store.Requests().FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !req.IsOwnedBy(userID) {
		return nil, apperror.ErrNotRequestOwner
	}
	return uc.store.Offers().ListByRequest(ctx, requestID, repository.OfferSortPriceAsc)
}
