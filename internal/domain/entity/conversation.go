package entity

import (
	"bytes"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/upcycle-backend/internal/pkg/apperror"
)

// Conversation - приватная беседа двух пользователей, опционально привязанная к заявке.
// Участники всегда хранятся в каноническом порядке: Participant1 < Participant2.
type Conversation struct {
	ID           uuid.UUID
	RequestID    *uuid.UUID
	Participant1 uuid.UUID
	Participant2 uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanonicalPair упорядочивает пару по байтам UUID. Порядок совпадает
// с сортировкой типа uuid в PostgreSQL.
func CanonicalPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return a, b
	}
	return b, a
}

func NewConversation(requestID *uuid.UUID, userA, userB uuid.UUID) (*Conversation, error) {
	if userA == userB {
		return nil, apperror.New(apperror.ErrCodeValidation, "нельзя создать беседу с самим собой")
	}
	p1, p2 := CanonicalPair(userA, userB)
	now := time.Now()
	return &Conversation{
		ID:           uuid.New(),
		RequestID:    requestID,
		Participant1: p1,
		Participant2: p2,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (c *Conversation) IsParticipant(userID uuid.UUID) bool {
	return c.Participant1 == userID || c.Participant2 == userID
}

// OtherParticipant возвращает собеседника userID. Вызывать только для участника.
func (c *Conversation) OtherParticipant(userID uuid.UUID) uuid.UUID {
	if c.Participant1 == userID {
		return c.Participant2
	}
	return c.Participant1
}

func (c *Conversation) Touch(at time.Time) {
	c.UpdatedAt = at
}
