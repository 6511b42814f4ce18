package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
	"github.com/ignatzorin/upcycle-backend/internal/domain/repository"
	"github.com/ignatzorin/upcycle-backend/internal/logger"
)

type GetProfileUseCase struct {
	store repository.Store
}

func NewGetProfileUseCase(store repository.Store) *GetProfileUseCase {
	return &GetProfileUseCase{store: store}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	return uc.store.Users().FindByID(ctx, userID)
}

type UpdateProfileInput struct {
	Bio           *string
	Skills        *string
	PortfolioLink *string
}

type UpdateProfileUseCase struct {
	uow repository.UnitOfWork
}

func NewUpdateProfileUseCase(uow repository.UnitOfWork) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{uow: uow}
}

// Execute меняет описание профиля мастера. Флаг активности здесь не меняется.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*entity.ArtisanProfile, error) {
	var profile *entity.ArtisanProfile
	err := uc.uow.WithinTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if _, err := tx.Users().FindByID(ctx, userID); err != nil {
			return err
		}
		p, err := tx.Profiles().EnsureProfile(ctx, userID)
		if err != nil {
			return err
		}
		if err := p.Update(in.Bio, in.Skills, in.PortfolioLink); err != nil {
			return err
		}
		if err := tx.Profiles().Update(ctx, p); err != nil {
			return err
		}
		profile = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// SetArtisanActiveUseCase - действие оператора площадки.
type SetArtisanActiveUseCase struct {
	uow repository.UnitOfWork
}

func NewSetArtisanActiveUseCase(uow repository.UnitOfWork) *SetArtisanActiveUseCase {
	return &SetArtisanActiveUseCase{uow: uow}
}

func (uc *SetArtisanActiveUseCase) Execute(ctx context.Context, username string, active bool) (*entity.ArtisanProfile, error) {
	var profile *entity.ArtisanProfile
	err := uc.uow.WithinTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		user, err := tx.Users().FindByUsername(ctx, username)
		if err != nil {
			return err
		}
		p, err := tx.Profiles().EnsureProfile(ctx, user.ID)
		if err != nil {
			return err
		}
		p.SetActive(active)
		if err := tx.Profiles().Update(ctx, p); err != nil {
			return err
		}
		profile = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"username": username,
		"active":   active,
	}).Info("статус мастера изменён")
	return profile, nil
}
