package identity

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
	"github.com/ignatzorin/upcycle-backend/internal/domain/repository"
	"github.com/ignatzorin/upcycle-backend/internal/pkg/apperror"
	"github.com/ignatzorin/upcycle-backend/internal/validation"
)

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type RegisterUseCase struct {
	uow  repository.UnitOfWork
	cost int
}

func NewRegisterUseCase(uow repository.UnitOfWork) *RegisterUseCase {
	return &RegisterUseCase{uow: uow, cost: bcrypt.DefaultCost}
}

// WithCost меняет сложность bcrypt. В тестах используется bcrypt.MinCost.
func (uc *RegisterUseCase) WithCost(cost int) *RegisterUseCase {
	uc.cost = cost
	return uc
}

// Execute создаёт пользователя и в той же транзакции его неактивный профиль мастера.
func (uc *RegisterUseCase) Execute(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось захешировать пароль")
	}

	user := entity.NewUser(in.Username, strings.ToLower(in.Email), string(hash))

	err = uc.uow.WithinTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}
		profile, err := tx.Profiles().EnsureProfile(ctx, user.ID)
		if err != nil {
			return err
		}
		user.ArtisanProfile = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
