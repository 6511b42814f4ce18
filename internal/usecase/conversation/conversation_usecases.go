package conversation

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
	"github.com/ignatzorin/upcycle-backend/internal/domain/repository"
	"github.com/ignatzorin/upcycle-backend/internal/logger"
	"github.com/ignatzorin/upcycle-backend/internal/metrics"
	"github.com/ignatzorin/upcycle-backend/internal/pkg/apperror"
)

type ConversationItem struct {
	Conversation     *entity.Conversation
	OtherParticipant uuid.UUID
	UnreadCount      int
}

type ListConversationsUseCase struct {
	store repository.Store
}

func NewListConversationsUseCase(store repository.Store) *ListConversationsUseCase {
	return &ListConversationsUseCase{store: store}
}

// Execute возвращает беседы пользователя, последние обновлённые первыми.
func (uc *ListConversationsUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]ConversationItem, error) {
	summaries, err := uc.store.Conversations().ListByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]ConversationItem, len(summaries))
	for i, s := range summaries {
		items[i] = ConversationItem{
			Conversation:     s.Conversation,
			OtherParticipant: s.Conversation.OtherParticipant(userID),
			UnreadCount:      s.UnreadCount,
		}
	}
	return items, nil
}

type ConversationView struct {
	Conversation     *entity.Conversation
	OtherParticipant uuid.UUID
	Messages         []*entity.Message
	MarkedRead       int64
}

type ViewConversationUseCase struct {
	store repository.Store
}

func NewViewConversationUseCase(store repository.Store) *ViewConversationUseCase {
	return &ViewConversationUseCase{store: store}
}

// Execute помечает входящие сообщения прочитанными и возвращает всю переписку
// по возрастанию времени.
func (uc *ViewConversationUseCase) Execute(ctx context.Context, userID, conversationID uuid.UUID) (*ConversationView, error) {
	conv, err := participantConversation(ctx, uc.store, userID, conversationID)
	if err != nil {
		return nil, err
	}

	marked, err := uc.store.Messages().MarkReadFor(ctx, conv.ID, userID)
	if err != nil {
		return nil, err
	}

	messages, err := uc.store.Messages().ListByConversation(ctx, conv.ID)
	if err != nil {
		return nil, err
	}

	return &ConversationView{
		Conversation:     conv,
		OtherParticipant: conv.OtherParticipant(userID),
		Messages:         messages,
		MarkedRead:       marked,
	}, nil
}

type SendMessageUseCase struct {
	uow     repository.UnitOfWork
	metrics *metrics.Metrics
}

func NewSendMessageUseCase(uow repository.UnitOfWork, m *metrics.Metrics) *SendMessageUseCase {
	return &SendMessageUseCase{uow: uow, metrics: m}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, senderID, conversationID uuid.UUID, content string) (*entity.Message, error) {
	conv, err := participantConversation(ctx, uc.uow, senderID, conversationID)
	if err != nil {
		return nil, err
	}

	msg, err := entity.NewMessage(conv.ID, senderID, content)
	if err != nil {
		return nil, err
	}

	err = uc.uow.WithinTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if err := tx.Messages().Create(ctx, msg); err != nil {
			return err
		}
		return tx.Conversations().Touch(ctx, conv.ID, msg.CreatedAt)
	})
	if err != nil {
		logger.WithContext(ctx).WithFields(logrus.Fields{
			"conversation_id": conversationID,
			"sender_id":       senderID,
			"error":           err.Error(),
		}).Error("send message: не удалось сохранить сообщение")
		return nil, err
	}

	uc.metrics.MessageSent()
	return msg, nil
}

func participantConversation(ctx context.Context, store repository.Store, userID, conversationID uuid.UUID) (*entity.Conversation, error) {
	conv, err := store.Conversations().FindByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.IsParticipant(userID) {
		return nil, apperror.ErrNotParticipant
	}
	return conv, nil
}
