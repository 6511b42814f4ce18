package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
	"github.com/ignatzorin/upcycle-backend/internal/domain/valueobject"
	"github.com/ignatzorin/upcycle-backend/internal/pkg/apperror"
	"github.com/jmoiron/sqlx"
)

const requestColumns = `id, user_id, product_type, material_details, style_preference, pickup_location,
	budget, status, accepted_artisan_id, image_path, created_at, updated_at`

type RequestRepositoryAdapter struct {
	q sqlx.ExtContext
}

func NewRequestRepositoryAdapter(q sqlx.ExtContext) *RequestRepositoryAdapter {
	return &RequestRepositoryAdapter{q: q}
}

func (r *RequestRepositoryAdapter) Create(ctx context.Context, req *entity.UpcyclingRequest) error {
	query := `INSERT INTO upcycling_requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.ExecContext(ctx, query,
		req.ID, req.OwnerID, req.ProductType, req.MaterialDetails, req.StylePreference, req.PickupLocation,
		moneyPtr(req.Budget), string(req.Status), req.AcceptedArtisan, req.ImagePath, req.CreatedAt, req.UpdatedAt)
	if err != nil {
		return mapWriteError(err, "заявка уже существует", "не удалось создать заявку")
	}
	return nil
}

func (r *RequestRepositoryAdapter) Update(ctx context.Context, req *entity.UpcyclingRequest) error {
	query := `UPDATE upcycling_requests
		SET product_type = $2, material_details = $3, style_preference = $4, pickup_location = $5,
			budget = $6, status = $7, accepted_artisan_id = $8, image_path = $9, updated_at = $10
		WHERE id = $1`
	res, err := r.q.ExecContext(ctx, query,
		req.ID, req.ProductType, req.MaterialDetails, req.StylePreference, req.PickupLocation,
		moneyPtr(req.Budget), string(req.Status), req.AcceptedArtisan, req.ImagePath, req.UpdatedAt)
	if err != nil {
		return mapWriteError(err, "заявка уже существует", "не удалось обновить заявку")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.ErrRequestNotFound
	}
	return nil
}

func (r *RequestRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.UpcyclingRequest, error) {
	return r.findOne(ctx, `SELECT `+requestColumns+` FROM upcycling_requests WHERE id = $1`, id)
}

func (r *RequestRepositoryAdapter) LockByID(ctx context.Context, id uuid.UUID) (*entity.UpcyclingRequest, error) {
	return r.findOne(ctx, `SELECT `+requestColumns+` FROM upcycling_requests WHERE id = $1 FOR UPDATE`, id)
}

func (r *RequestRepositoryAdapter) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.UpcyclingRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM upcycling_requests
		WHERE user_id = $1 ORDER BY created_at DESC, id`
	return r.list(ctx, query, ownerID)
}

func (r *RequestRepositoryAdapter) ListAvailable(ctx context.Context) ([]*entity.UpcyclingRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM upcycling_requests
		WHERE status = $1 AND accepted_artisan_id IS NULL ORDER BY created_at DESC, id`
	return r.list(ctx, query, string(valueobject.RequestStatusReceived))
}

func (r *RequestRepositoryAdapter) findOne(ctx context.Context, query string, id uuid.UUID) (*entity.UpcyclingRequest, error) {
	var row requestRow
	if err := sqlx.GetContext(ctx, r.q, &row, query, id); err != nil {
		return nil, mapReadError(err, apperror.ErrRequestNotFound, "не удалось получить заявку")
	}
	return row.toEntity(), nil
}

func (r *RequestRepositoryAdapter) list(ctx context.Context, query string, args ...any) ([]*entity.UpcyclingRequest, error) {
	var rows []requestRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить заявки")
	}
	result := make([]*entity.UpcyclingRequest, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

type requestRow struct {
	ID              uuid.UUID       `db:"id"`
	UserID          uuid.UUID       `db:"user_id"`
	ProductType     string          `db:"product_type"`
	MaterialDetails string          `db:"material_details"`
	StylePreference sql.NullString  `db:"style_preference"`
	PickupLocation  string          `db:"pickup_location"`
	Budget          sql.NullFloat64 `db:"budget"`
	Status          string          `db:"status"`
	AcceptedArtisan uuid.NullUUID   `db:"accepted_artisan_id"`
	ImagePath       sql.NullString  `db:"image_path"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

func (r *requestRow) toEntity() *entity.UpcyclingRequest {
	req := &entity.UpcyclingRequest{
		ID:              r.ID,
		OwnerID:         r.UserID,
		ProductType:     r.ProductType,
		MaterialDetails: r.MaterialDetails,
		StylePreference: nullString(r.StylePreference),
		PickupLocation:  r.PickupLocation,
		Status:          valueobject.RequestStatus(r.Status),
		AcceptedArtisan: nullUUID(r.AcceptedArtisan),
		ImagePath:       nullString(r.ImagePath),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if r.Budget.Valid {
		req.Budget = &valueobject.Money{Amount: r.Budget.Float64}
	}
	return req
}

func moneyPtr(m *valueobject.Money) *float64 {
	if m == nil {
		return nil
	}
	v := m.Amount
	return &v
}
