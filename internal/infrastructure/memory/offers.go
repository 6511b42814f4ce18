package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
	"github.com/ignatzorin/upcycle-backend/internal/domain/repository"
	"github.com/ignatzorin/upcycle-backend/internal/domain/valueobject"
	"github.com/ignatzorin/upcycle-backend/internal/pkg/apperror"
)

type offerRepo struct {
	do access
}

func (r *offerRepo) Create(ctx context.Context, o *entity.Offer) error {
	return r.do(ctx, func(d *state) error {
		if _, ok := d.requests[o.RequestID]; !ok {
			return apperror.New(apperror.ErrCodeValidation, "заявка для предложения не найдена")
		}
		if _, ok := d.profiles[o.ArtisanID]; !ok {
			return apperror.New(apperror.ErrCodeValidation, "профиль мастера не найден")
		}
		for _, existing := range d.offers {
			if existing.RequestID == o.RequestID && existing.ArtisanID == o.ArtisanID {
				return apperror.New(apperror.ErrCodeConflict, "вы уже отправили предложение по этой заявке")
			}
		}
		d.offers[o.ID] = *o
		return nil
	})
}

func (r *offerRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error) {
	return r.findOne(ctx, func(o entity.Offer) bool { return o.ID == id })
}

func (r *offerRepo) LockByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error) {
	return r.FindByID(ctx, id)
}

func (r *offerRepo) FindByRequestAndArtisan(ctx context.Context, requestID, artisanID uuid.UUID) (*entity.Offer, error) {
	return r.findOne(ctx, func(o entity.Offer) bool { return o.RequestID == requestID && o.ArtisanID == artisanID })
}

func (r *offerRepo) findOne(ctx context.Context, match func(entity.Offer) bool) (*entity.Offer, error) {
	var found *entity.Offer
	err := r.do(ctx, func(d *state) error {
		for _, o := range d.offers {
			if match(o) {
				o := o
				found = &o
				return nil
			}
		}
		return apperror.ErrOfferNotFound
	})
	return found, err
}

func (r *offerRepo) ListByRequest(ctx context.Context, requestID uuid.UUID, sortBy repository.OfferSort) ([]*entity.Offer, error) {
	result := []*entity.Offer{}
	err := r.do(ctx, func(d *state) error {
		for _, o := range d.offers {
			if o.RequestID == requestID {
				o := o
				result = append(result, &o)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if sortBy == repository.OfferSortNewest {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID.String() < b.ID.String()
		}
		if a.Price.Amount != b.Price.Amount {
			return a.Price.Less(b.Price)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})
	return result, nil
}

func (r *offerRepo) UpdateStatus(ctx context.Context, o *entity.Offer) error {
	return r.do(ctx, func(d *state) error {
		stored, ok := d.offers[o.ID]
		if !ok {
			return apperror.ErrOfferNotFound
		}
		stored.Status = o.Status
		stored.UpdatedAt = o.UpdatedAt
		d.offers[o.ID] = stored
		return nil
	})
}

func (r *offerRepo) RejectIfPending(ctx context.Context, id uuid.UUID) (bool, error) {
	rejected := false
	err := r.do(ctx, func(d *state) error {
		o, ok := d.offers[id]
		if !ok || o.Status != valueobject.OfferStatusPending {
			return nil
		}
		o.Status = valueobject.OfferStatusRejected
		o.UpdatedAt = time.Now()
		d.offers[id] = o
		rejected = true
		return nil
	})
	return rejected, err
}

func (r *offerRepo) RejectPendingExcept(ctx context.Context, requestID, keepID uuid.UUID) (int64, error) {
	var n int64
	err := r.do(ctx, func(d *state) error {
		now := time.Now()
		for id, o := range d.offers {
			if o.RequestID != requestID || id == keepID || o.Status != valueobject.OfferStatusPending {
				continue
			}
			o.Status = valueobject.OfferStatusRejected
			o.UpdatedAt = now
			d.offers[id] = o
			n++
		}
		return nil
	})
	return n, err
}
