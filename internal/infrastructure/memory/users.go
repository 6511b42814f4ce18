package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
	"github.com/ignatzorin/upcycle-backend/internal/pkg/apperror"
)

type userRepo struct {
	do access
}

func (r *userRepo) Create(ctx context.Context, user *entity.User) error {
	return r.do(ctx, func(d *state) error {
		for _, u := range d.users {
			if u.Username == user.Username || strings.EqualFold(u.Email, user.Email) {
				return apperror.New(apperror.ErrCodeConflict, "пользователь с таким именем или email уже существует")
			}
		}
		stored := *user
		stored.ArtisanProfile = nil
		d.users[user.ID] = stored
		return nil
	})
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, func(u entity.User) bool { return u.ID == id })
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, func(u entity.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, func(u entity.User) bool { return u.Username == username })
}

func (r *userRepo) findOne(ctx context.Context, match func(entity.User) bool) (*entity.User, error) {
	var found *entity.User
	err := r.do(ctx, func(d *state) error {
		for _, u := range d.users {
			if !match(u) {
				continue
			}
			user := u
			if p, ok := d.profiles[u.ID]; ok {
				profile := p
				user.ArtisanProfile = &profile
			}
			found = &user
			return nil
		}
		return apperror.ErrUserNotFound
	})
	return found, err
}

type profileRepo struct {
	do access
}

func (r *profileRepo) EnsureProfile(ctx context.Context, userID uuid.UUID) (*entity.ArtisanProfile, error) {
	var result entity.ArtisanProfile
	err := r.do(ctx, func(d *state) error {
		if _, ok := d.users[userID]; !ok {
			return apperror.New(apperror.ErrCodeValidation, "не удалось создать профиль мастера")
		}
		p, ok := d.profiles[userID]
		if !ok {
			p = *entity.NewArtisanProfile(userID)
			d.profiles[userID] = p
		}
		result = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *profileRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.ArtisanProfile, error) {
	var result entity.ArtisanProfile
	err := r.do(ctx, func(d *state) error {
		p, ok := d.profiles[userID]
		if !ok {
			return apperror.ErrProfileNotFound
		}
		result = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *profileRepo) Update(ctx context.Context, profile *entity.ArtisanProfile) error {
	return r.do(ctx, func(d *state) error {
		if _, ok := d.profiles[profile.UserID]; !ok {
			return apperror.ErrProfileNotFound
		}
		d.profiles[profile.UserID] = *profile
		return nil
	})
}
