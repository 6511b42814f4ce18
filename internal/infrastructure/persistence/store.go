package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ignatzorin/upcycle-backend/internal/domain/repository"
	"github.com/jmoiron/sqlx"
)

// PostgresStore собирает репозитории поверх одного исполнителя запросов:
// пула соединений или открытой транзакции.
type PostgresStore struct {
	db *sqlx.DB
	q  sqlx.ExtContext
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db, q: db}
}

func (s *PostgresStore) Users() repository.UserRepository {
	return &UserRepositoryAdapter{q: s.q}
}

func (s *PostgresStore) Profiles() repository.ProfileRepository {
	return &ProfileRepositoryAdapter{q: s.q}
}

func (s *PostgresStore) Requests() repository.RequestRepository {
	return &RequestRepositoryAdapter{q: s.q}
}

func (s *PostgresStore) Offers() repository.OfferRepository {
	return &OfferRepositoryAdapter{q: s.q}
}

func (s *PostgresStore) Messages() repository.MessageRepository {
	return &MessageRepositoryAdapter{q: s.q}
}

func (s *PostgresStore) Conversations() repository.ConversationRepository {
	return &ConversationRepositoryAdapter{q: s.q}
}

// WithinTransaction открывает транзакцию READ COMMITTED. Блокировки строк
// берут сами репозитории через LockByID.
func (s *PostgresStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) (err error) {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("postgres: не удалось начать транзакцию: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, &PostgresStore{db: s.db, q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: не удалось зафиксировать транзакцию: %w", err)
	}
	return nil
}

// Ping нужен health-check эндпоинту.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Stats() sql.DBStats {
	return s.db.Stats()
}
