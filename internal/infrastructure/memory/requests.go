package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
	"github.com/ignatzorin/upcycle-backend/internal/domain/valueobject"
	"github.com/ignatzorin/upcycle-backend/internal/pkg/apperror"
)

type requestRepo struct {
	do access
}

func (r *requestRepo) Create(ctx context.Context, req *entity.UpcyclingRequest) error {
	return r.do(ctx, func(d *state) error {
		if _, ok := d.users[req.OwnerID]; !ok {
			return apperror.New(apperror.ErrCodeValidation, "владелец заявки не найден")
		}
		if _, ok := d.requests[req.ID]; ok {
			return apperror.New(apperror.ErrCodeConflict, "заявка уже существует")
		}
		d.requests[req.ID] = *req
		return nil
	})
}

func (r *requestRepo) Update(ctx context.Context, req *entity.UpcyclingRequest) error {
	return r.do(ctx, func(d *state) error {
		if _, ok := d.requests[req.ID]; !ok {
			return apperror.ErrRequestNotFound
		}
		d.requests[req.ID] = *req
		return nil
	})
}

func (r *requestRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.UpcyclingRequest, error) {
	var result entity.UpcyclingRequest
	err := r.do(ctx, func(d *state) error {
		req, ok := d.requests[id]
		if !ok {
			return apperror.ErrRequestNotFound
		}
		result = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// LockByID: транзакции и так выполняются по одной.
func (r *requestRepo) LockByID(ctx context.Context, id uuid.UUID) (*entity.UpcyclingRequest, error) {
	return r.FindByID(ctx, id)
}

func (r *requestRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.UpcyclingRequest, error) {
	return r.list(ctx, func(req entity.UpcyclingRequest) bool { return req.OwnerID == ownerID })
}

func (r *requestRepo) ListAvailable(ctx context.Context) ([]*entity.UpcyclingRequest, error) {
	return r.list(ctx, func(req entity.UpcyclingRequest) bool {
		return req.Status == valueobject.RequestStatusReceived && req.AcceptedArtisan == nil
	})
}

func (r *requestRepo) list(ctx context.Context, match func(entity.UpcyclingRequest) bool) ([]*entity.UpcyclingRequest, error) {
	result := []*entity.UpcyclingRequest{}
	err := r.do(ctx, func(d *state) error {
		for _, req := range d.requests {
			if match(req) {
				req := req
				result = append(result, &req)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID.String() < result[j].ID.String()
	})
	return result, nil
}
