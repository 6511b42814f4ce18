package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
	"github.com/ignatzorin/upcycle-backend/internal/pkg/apperror"
	"github.com/jmoiron/sqlx"
)

const userColumns = `u.id, u.username, u.email, u.password_hash, u.is_active, u.created_at, u.updated_at,
	p.user_id AS profile_user_id, p.bio, p.skills, p.portfolio_link,
	p.is_active_artisan, p.created_at AS profile_created_at, p.updated_at AS profile_updated_at`

const userFrom = `FROM users u LEFT JOIN artisan_profiles p ON p.user_id = u.id`

type UserRepositoryAdapter struct {
	q sqlx.ExtContext
}

func NewUserRepositoryAdapter(q sqlx.ExtContext) *UserRepositoryAdapter {
	return &UserRepositoryAdapter{q: q}
}

func (r *UserRepositoryAdapter) Create(ctx context.Context, user *entity.User) error {
	query := `INSERT INTO users (id, username, email, password_hash, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.ExecContext(ctx, query, user.ID, user.Username, user.Email, user.PasswordHash,
		user.IsActive, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return mapWriteError(err, "пользователь с таким именем или email уже существует", "не удалось создать пользователя")
	}
	return nil
}

func (r *UserRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` `+userFrom+` WHERE u.id = $1`, id)
}

func (r *UserRepositoryAdapter) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` `+userFrom+` WHERE lower(u.email) = lower($1)`, email)
}

func (r *UserRepositoryAdapter) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` `+userFrom+` WHERE u.username = $1`, username)
}

func (r *UserRepositoryAdapter) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var row userRow
	if err := sqlx.GetContext(ctx, r.q, &row, query, arg); err != nil {
		return nil, mapReadError(err, apperror.ErrUserNotFound, "не удалось получить пользователя")
	}
	return row.toEntity(), nil
}

type userRow struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`

	ProfileUserID    uuid.NullUUID  `db:"profile_user_id"`
	Bio              sql.NullString `db:"bio"`
	Skills           sql.NullString `db:"skills"`
	PortfolioLink    sql.NullString `db:"portfolio_link"`
	IsActiveArtisan  sql.NullBool   `db:"is_active_artisan"`
	ProfileCreatedAt sql.NullTime   `db:"profile_created_at"`
	ProfileUpdatedAt sql.NullTime   `db:"profile_updated_at"`
}

func (u *userRow) toEntity() *entity.User {
	user := &entity.User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if u.ProfileUserID.Valid {
		user.ArtisanProfile = &entity.ArtisanProfile{
			UserID:          u.ProfileUserID.UUID,
			Bio:             nullString(u.Bio),
			Skills:          nullString(u.Skills),
			PortfolioLink:   nullString(u.PortfolioLink),
			IsActiveArtisan: u.IsActiveArtisan.Bool,
			CreatedAt:       u.ProfileCreatedAt.Time,
			UpdatedAt:       u.ProfileUpdatedAt.Time,
		}
	}
	return user
}

type ProfileRepositoryAdapter struct {
	q sqlx.ExtContext
}

func NewProfileRepositoryAdapter(q sqlx.ExtContext) *ProfileRepositoryAdapter {
	return &ProfileRepositoryAdapter{q: q}
}

func (r *ProfileRepositoryAdapter) EnsureProfile(ctx context.Context, userID uuid.UUID) (*entity.ArtisanProfile, error) {
	p := entity.NewArtisanProfile(userID)
	query := `INSERT INTO artisan_profiles (user_id, is_active_artisan, created_at, updated_at)
		VALUES ($1, FALSE, $2, $3) ON CONFLICT (user_id) DO NOTHING`
	if _, err := r.q.ExecContext(ctx, query, p.UserID, p.CreatedAt, p.UpdatedAt); err != nil {
		return nil, mapWriteError(err, "профиль мастера уже существует", "не удалось создать профиль мастера")
	}
	return r.FindByUserID(ctx, userID)
}

func (r *ProfileRepositoryAdapter) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.ArtisanProfile, error) {
	var row profileRow
	query := `SELECT user_id, bio, skills, portfolio_link, is_active_artisan, created_at, updated_at
		FROM artisan_profiles WHERE user_id = $1`
	if err := sqlx.GetContext(ctx, r.q, &row, query, userID); err != nil {
		return nil, mapReadError(err, apperror.ErrProfileNotFound, "не удалось получить профиль мастера")
	}
	return row.toEntity(), nil
}

func (r *ProfileRepositoryAdapter) Update(ctx context.Context, p *entity.ArtisanProfile) error {
	query := `UPDATE artisan_profiles
		SET bio = $2, skills = $3, portfolio_link = $4, is_active_artisan = $5, updated_at = $6
		WHERE user_id = $1`
	res, err := r.q.ExecContext(ctx, query, p.UserID, p.Bio, p.Skills, p.PortfolioLink, p.IsActiveArtisan, p.UpdatedAt)
	if err != nil {
		return mapWriteError(err, "профиль мастера уже существует", "не удалось обновить профиль мастера")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.ErrProfileNotFound
	}
	return nil
}

type profileRow struct {
	UserID          uuid.UUID      `db:"user_id"`
	Bio             sql.NullString `db:"bio"`
	Skills          sql.NullString `db:"skills"`
	PortfolioLink   sql.NullString `db:"portfolio_link"`
	IsActiveArtisan bool           `db:"is_active_artisan"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

func (p *profileRow) toEntity() *entity.ArtisanProfile {
	return &entity.ArtisanProfile{
		UserID:          p.UserID,
		Bio:             nullString(p.Bio),
		Skills:          nullString(p.Skills),
		PortfolioLink:   nullString(p.PortfolioLink),
		IsActiveArtisan: p.IsActiveArtisan,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func nullUUID(u uuid.NullUUID) *uuid.UUID {
	if !u.Valid {
		return nil
	}
	return &u.UUID
}
