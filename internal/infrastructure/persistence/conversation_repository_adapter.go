package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
	"github.com/ignatzorin/upcycle-backend/internal/domain/repository"
	"github.com/ignatzorin/upcycle-backend/internal/pkg/apperror"
	"github.com/jmoiron/sqlx"
)

const conversationColumns = `id, request_id, participant1_id, participant2_id, created_at, updated_at`

type ConversationRepositoryAdapter struct {
	q sqlx.ExtContext
}

func NewConversationRepositoryAdapter(q sqlx.ExtContext) *ConversationRepositoryAdapter {
	return &ConversationRepositoryAdapter{q: q}
}

// GetOrCreate не использует перехват 23505: в PostgreSQL ошибка внутри
// транзакции делает её непригодной, а ON CONFLICT DO NOTHING нет.
func (r *ConversationRepositoryAdapter) GetOrCreate(ctx context.Context, conv *entity.Conversation) (*entity.Conversation, bool, error) {
	var row conversationRow
	insert := `INSERT INTO conversations (` + conversationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT ON CONSTRAINT conversations_request_pair_key DO NOTHING
		RETURNING ` + conversationColumns
	err := sqlx.GetContext(ctx, r.q, &row, insert,
		conv.ID, conv.RequestID, conv.Participant1, conv.Participant2, conv.CreatedAt, conv.UpdatedAt)
	if err == nil {
		return row.toEntity(), true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, mapWriteError(err, "беседа уже существует", "не удалось создать беседу")
	}

	query := `SELECT ` + conversationColumns + ` FROM conversations
		WHERE request_id IS NOT DISTINCT FROM $1 AND participant1_id = $2 AND participant2_id = $3`
	if err := sqlx.GetContext(ctx, r.q, &row, query, conv.RequestID, conv.Participant1, conv.Participant2); err != nil {
		return nil, false, mapReadError(err, apperror.ErrConversationNotFound, "не удалось получить беседу")
	}
	return row.toEntity(), false, nil
}

func (r *ConversationRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Conversation, error) {
	var row conversationRow
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE id = $1`
	if err := sqlx.GetContext(ctx, r.q, &row, query, id); err != nil {
		return nil, mapReadError(err, apperror.ErrConversationNotFound, "не удалось получить беседу")
	}
	return row.toEntity(), nil
}

func (r *ConversationRepositoryAdapter) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]repository.ConversationSummary, error) {
	var rows []conversationSummaryRow
	query := `SELECT c.id, c.request_id, c.participant1_id, c.participant2_id, c.created_at, c.updated_at,
			(SELECT COUNT(*) FROM messages m
			 WHERE m.conversation_id = c.id AND m.sender_id <> $1 AND NOT m.is_read) AS unread_count
		FROM conversations c
		WHERE c.participant1_id = $1 OR c.participant2_id = $1
		ORDER BY c.updated_at DESC, c.id`
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, userID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить беседы")
	}
	result := make([]repository.ConversationSummary, len(rows))
	for i := range rows {
		result[i] = repository.ConversationSummary{
			Conversation: rows[i].conversationRow.toEntity(),
			UnreadCount:  rows[i].UnreadCount,
		}
	}
	return result, nil
}

func (r *ConversationRepositoryAdapter) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	res, err := r.q.ExecContext(ctx, `UPDATE conversations SET updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить беседу")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.ErrConversationNotFound
	}
	return nil
}

type conversationRow struct {
	ID           uuid.UUID     `db:"id"`
	RequestID    uuid.NullUUID `db:"request_id"`
	Participant1 uuid.UUID     `db:"participant1_id"`
	Participant2 uuid.UUID     `db:"participant2_id"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
}

func (c *conversationRow) toEntity() *entity.Conversation {
	return &entity.Conversation{
		ID:           c.ID,
		RequestID:    nullUUID(c.RequestID),
		Participant1: c.Participant1,
		Participant2: c.Participant2,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

type conversationSummaryRow struct {
	conversationRow
	UnreadCount int `db:"unread_count"`
}

type MessageRepositoryAdapter struct {
	q sqlx.ExtContext
}

func NewMessageRepositoryAdapter(q sqlx.ExtContext) *MessageRepositoryAdapter {
	return &MessageRepositoryAdapter{q: q}
}

func (r *MessageRepositoryAdapter) Create(ctx context.Context, msg *entity.Message) error {
	query := `INSERT INTO messages (id, conversation_id, sender_id, content, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.ExecContext(ctx, query, msg.ID, msg.ConversationID, msg.SenderID, msg.Content, msg.IsRead, msg.CreatedAt)
	if err != nil {
		return mapWriteError(err, "сообщение уже существует", "не удалось создать сообщение")
	}
	return nil
}

func (r *MessageRepositoryAdapter) ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]*entity.Message, error) {
	var rows []messageRow
	query := `SELECT id, conversation_id, sender_id, content, is_read, created_at
		FROM messages WHERE conversation_id = $1 ORDER BY created_at ASC, id ASC`
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, conversationID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить сообщения")
	}
	result := make([]*entity.Message, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

func (r *MessageRepositoryAdapter) MarkReadFor(ctx context.Context, conversationID, readerID uuid.UUID) (int64, error) {
	query := `UPDATE messages SET is_read = TRUE
		WHERE conversation_id = $1 AND sender_id <> $2 AND NOT is_read`
	res, err := r.q.ExecContext(ctx, query, conversationID, readerID)
	if err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось отметить сообщения прочитанными")
	}
	n, _ := res.RowsAffected()
	return n, nil
}

type messageRow struct {
	ID             uuid.UUID `db:"id"`
	ConversationID uuid.UUID `db:"conversation_id"`
	SenderID       uuid.UUID `db:"sender_id"`
	Content        string    `db:"content"`
	IsRead         bool      `db:"is_read"`
	CreatedAt      time.Time `db:"created_at"`
}

func (m *messageRow) toEntity() *entity.Message {
	return &entity.Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
	}
}
