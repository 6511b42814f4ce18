package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
	"github.com/ignatzorin/upcycle-backend/internal/domain/repository"
	"github.com/ignatzorin/upcycle-backend/internal/domain/valueobject"
	"github.com/ignatzorin/upcycle-backend/internal/pkg/apperror"
	"github.com/jmoiron/sqlx"
)

const offerColumns = `id, request_id, artisan_id, price, estimated_completion_days, message, status, created_at, updated_at`

type OfferRepositoryAdapter struct {
	q sqlx.ExtContext
}

func NewOfferRepositoryAdapter(q sqlx.ExtContext) *OfferRepositoryAdapter {
	return &OfferRepositoryAdapter{q: q}
}

func (r *OfferRepositoryAdapter) Create(ctx context.Context, o *entity.Offer) error {
	query := `INSERT INTO offers (` + offerColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.ExecContext(ctx, query, o.ID, o.RequestID, o.ArtisanID, o.Price.Amount, o.EstimatedDays,
		o.Message, string(o.Status), o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return mapWriteError(err, "вы уже отправили предложение по этой заявке", "не удалось создать предложение")
	}
	return nil
}

func (r *OfferRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error) {
	return r.findOne(ctx, `SELECT `+offerColumns+` FROM offers WHERE id = $1`, id)
}

func (r *OfferRepositoryAdapter) LockByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error) {
	return r.findOne(ctx, `SELECT `+offerColumns+` FROM offers WHERE id = $1 FOR UPDATE`, id)
}

func (r *OfferRepositoryAdapter) FindByRequestAndArtisan(ctx context.Context, requestID, artisanID uuid.UUID) (*entity.Offer, error) {
	return r.findOne(ctx, `SELECT `+offerColumns+` FROM offers WHERE request_id = $1 AND artisan_id = $2`, requestID, artisanID)
}

func (r *OfferRepositoryAdapter) ListByRequest(ctx context.Context, requestID uuid.UUID, sort repository.OfferSort) ([]*entity.Offer, error) {
	order := "price ASC, created_at ASC, id"
	if sort == repository.OfferSortNewest {
		order = "created_at DESC, id"
	}
	var rows []offerRow
	query := `SELECT ` + offerColumns + ` FROM offers WHERE request_id = $1 ORDER BY ` + order
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, requestID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить предложения")
	}
	result := make([]*entity.Offer, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

func (r *OfferRepositoryAdapter) UpdateStatus(ctx context.Context, o *entity.Offer) error {
	res, err := r.q.ExecContext(ctx, `UPDATE offers SET status = $2, updated_at = $3 WHERE id = $1`,
		o.ID, string(o.Status), o.UpdatedAt)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить предложение")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.ErrOfferNotFound
	}
	return nil
}

func (r *OfferRepositoryAdapter) RejectIfPending(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `UPDATE offers SET status = $2, updated_at = NOW() WHERE id = $1 AND status = $3`
	res, err := r.q.ExecContext(ctx, query, id, string(valueobject.OfferStatusRejected), string(valueobject.OfferStatusPending))
	if err != nil {
		return false, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось отклонить предложение")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось отклонить предложение")
	}
	return n == 1, nil
}

func (r *OfferRepositoryAdapter) RejectPendingExcept(ctx context.Context, requestID, keepID uuid.UUID) (int64, error) {
	query := `UPDATE offers SET status = $3, updated_at = NOW()
		WHERE request_id = $1 AND id <> $2 AND status = $4`
	res, err := r.q.ExecContext(ctx, query, requestID, keepID,
		string(valueobject.OfferStatusRejected), string(valueobject.OfferStatusPending))
	if err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось отклонить остальные предложения")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось отклонить остальные предложения")
	}
	return n, nil
}

func (r *OfferRepositoryAdapter) findOne(ctx context.Context, query string, args ...any) (*entity.Offer, error) {
	var row offerRow
	if err := sqlx.GetContext(ctx, r.q, &row, query, args...); err != nil {
		return nil, mapReadError(err, apperror.ErrOfferNotFound, "не удалось получить предложение")
	}
	return row.toEntity(), nil
}

type offerRow struct {
	ID            uuid.UUID      `db:"id"`
	RequestID     uuid.UUID      `db:"request_id"`
	ArtisanID     uuid.UUID      `db:"artisan_id"`
	Price         float64        `db:"price"`
	EstimatedDays int            `db:"estimated_completion_days"`
	Message       sql.NullString `db:"message"`
	Status        string         `db:"status"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (o *offerRow) toEntity() *entity.Offer {
	return &entity.Offer{
		ID:            o.ID,
		RequestID:     o.RequestID,
		ArtisanID:     o.ArtisanID,
		Price:         valueobject.Money{Amount: o.Price},
		EstimatedDays: o.EstimatedDays,
		Message:       nullString(o.Message),
		Status:        valueobject.OfferStatus(o.Status),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}
