package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
	"github.com/ignatzorin/upcycle-backend/internal/domain/repository"
	"github.com/ignatzorin/upcycle-backend/internal/pkg/apperror"
)

type conversationRepo struct {
	do access
}

func sameRequest(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (r *conversationRepo) GetOrCreate(ctx context.Context, conv *entity.Conversation) (*entity.Conversation, bool, error) {
	var (
		result  entity.Conversation
		created bool
	)
	err := r.do(ctx, func(d *state) error {
		for _, c := range d.conversations {
			if sameRequest(c.RequestID, conv.RequestID) &&
				c.Participant1 == conv.Participant1 && c.Participant2 == conv.Participant2 {
				result = c.Conversation
				return nil
			}
		}
		p1, p2 := entity.CanonicalPair(conv.Participant1, conv.Participant2)
		if p1 != conv.Participant1 || p1 == p2 {
			return apperror.New(apperror.ErrCodeValidation, "участники беседы не упорядочены")
		}
		d.conversations[conv.ID] = conversationRecord{Conversation: *conv, touchSeq: d.nextSeq()}
		result = *conv
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &result, created, nil
}

func (r *conversationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Conversation, error) {
	var result entity.Conversation
	err := r.do(ctx, func(d *state) error {
		c, ok := d.conversations[id]
		if !ok {
			return apperror.ErrConversationNotFound
		}
		result = c.Conversation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *conversationRepo) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]repository.ConversationSummary, error) {
	var records []conversationRecord
	unread := make(map[uuid.UUID]int)
	err := r.do(ctx, func(d *state) error {
		for _, c := range d.conversations {
			if c.IsParticipant(userID) {
				records = append(records, c)
			}
		}
		for _, m := range d.messages {
			if m.SenderID != userID && !m.IsRead {
				unread[m.ConversationID]++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
		return a.touchSeq > b.touchSeq
	})

	result := make([]repository.ConversationSummary, len(records))
	for i := range records {
		conv := records[i].Conversation
		result[i] = repository.ConversationSummary{Conversation: &conv, UnreadCount: unread[conv.ID]}
	}
	return result, nil
}

func (r *conversationRepo) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.do(ctx, func(d *state) error {
		c, ok := d.conversations[id]
		if !ok {
			return apperror.ErrConversationNotFound
		}
		c.UpdatedAt = at
		c.touchSeq = d.nextSeq()
		d.conversations[id] = c
		return nil
	})
}

type messageRepo struct {
	do access
}

func (r *messageRepo) Create(ctx context.Context, msg *entity.Message) error {
	return r.do(ctx, func(d *state) error {
		if _, ok := d.conversations[msg.ConversationID]; !ok {
			return apperror.New(apperror.ErrCodeValidation, "беседа для сообщения не найдена")
		}
		d.messages[msg.ID] = messageRecord{Message: *msg, seq: d.nextSeq()}
		return nil
	})
}

func (r *messageRepo) ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]*entity.Message, error) {
	var records []messageRecord
	err := r.do(ctx, func(d *state) error {
		for _, m := range d.messages {
			if m.ConversationID == conversationID {
				records = append(records, m)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.seq < b.seq
	})

	result := make([]*entity.Message, len(records))
	for i := range records {
		msg := records[i].Message
		result[i] = &msg
	}
	return result, nil
}

func (r *messageRepo) MarkReadFor(ctx context.Context, conversationID, readerID uuid.UUID) (int64, error) {
	var n int64
	err := r.do(ctx, func(d *state) error {
		for id, m := range d.messages {
			if m.ConversationID == conversationID && !m.IsOwnedBy(readerID) && !m.IsRead {
				m.MarkRead()
				d.messages[id] = m
				n++
			}
		}
		return nil
	})
	return n, err
}
