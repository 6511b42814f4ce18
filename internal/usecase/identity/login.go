package identity

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
	"github.com/ignatzorin/upcycle-backend/internal/domain/repository"
	"github.com/ignatzorin/upcycle-backend/internal/pkg/apperror"
	"github.com/ignatzorin/upcycle-backend/internal/service"
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	User  *entity.User
	Token *service.AccessToken
}

type LoginUseCase struct {
	store  repository.Store
	tokens *service.TokenManager
}

func NewLoginUseCase(store repository.Store, tokens *service.TokenManager) *LoginUseCase {
	return &LoginUseCase{store: store, tokens: tokens}
}

func (uc *LoginUseCase) Execute(ctx context.Context, in LoginInput) (*LoginResult, error) {
	user, err := uc.store.Users().FindByEmail(ctx, in.Email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperror.New(apperror.ErrCodeForbidden, "аккаунт заблокирован")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	token, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось выпустить токен")
	}
	return &LoginResult{User: user, Token: token}, nil
}
