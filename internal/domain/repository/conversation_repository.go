package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
)

// ConversationSummary - строка списка бесед пользователя.
type ConversationSummary struct {
	Conversation *entity.Conversation
	UnreadCount  int
}

type ConversationRepository interface {
	// GetOrCreate ищет беседу по (request, participant1, participant2) и создаёт её,
	// если такой нет. Параллельная вставка той же тройки не приводит к ошибке.
	GetOrCreate(ctx context.Context, conv *entity.Conversation) (*entity.Conversation, bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Conversation, error)
	// ListByParticipant возвращает беседы пользователя, последние обновлённые первыми.
	ListByParticipant(ctx context.Context, userID uuid.UUID) ([]ConversationSummary, error)
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error
}

type MessageRepository interface {
	Create(ctx context.Context, msg *entity.Message) error
	// ListByConversation возвращает сообщения по возрастанию времени отправки.
	ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]*entity.Message, error)
	// MarkReadFor помечает прочитанными входящие для readerID сообщения беседы.
	MarkReadFor(ctx context.Context, conversationID, readerID uuid.UUID) (int64, error)
}
