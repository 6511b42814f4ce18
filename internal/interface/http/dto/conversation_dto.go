package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
	"github.com/ignatzorin/upcycle-backend/internal/usecase/conversation"
)

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

type ConversationResponse struct {
	ID           uuid.UUID  `json:"id"`
	RequestID    *uuid.UUID `json:"request_id"`
	Participant1 uuid.UUID  `json:"participant1_id"`
	Participant2 uuid.UUID  `json:"participant2_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type ConversationListItem struct {
	ConversationResponse
	OtherParticipant uuid.UUID `json:"other_participant_id"`
	UnreadCount      int       `json:"unread_count"`
}

type ConversationViewResponse struct {
	Conversation     ConversationResponse `json:"conversation"`
	OtherParticipant uuid.UUID            `json:"other_participant_id"`
	Messages         []MessageResponse    `json:"messages"`
}

type MessageResponse struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	SenderID       uuid.UUID `json:"sender_id"`
	Content        string    `json:"content"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

func ToConversationResponse(conv *entity.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:           conv.ID,
		RequestID:    conv.RequestID,
		Participant1: conv.Participant1,
		Participant2: conv.Participant2,
		CreatedAt:    conv.CreatedAt,
		UpdatedAt:    conv.UpdatedAt,
	}
}

func ToConversationList(items []conversation.ConversationItem) []ConversationListItem {
	result := make([]ConversationListItem, len(items))
	for i, item := range items {
		result[i] = ConversationListItem{
			ConversationResponse: ToConversationResponse(item.Conversation),
			OtherParticipant:     item.OtherParticipant,
			UnreadCount:          item.UnreadCount,
		}
	}
	return result
}

func ToConversationView(v *conversation.ConversationView) ConversationViewResponse {
	return ConversationViewResponse{
		Conversation:     ToConversationResponse(v.Conversation),
		OtherParticipant: v.OtherParticipant,
		Messages:         ToMessageResponses(v.Messages),
	}
}

func ToMessageResponse(msg *entity.Message) MessageResponse {
	return MessageResponse{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		Content:        msg.Content,
		IsRead:         msg.IsRead,
		CreatedAt:      msg.CreatedAt,
	}
}

func ToMessageResponses(msgs []*entity.Message) []MessageResponse {
	result := make([]MessageResponse, len(msgs))
	for i, msg := range msgs {
		result[i] = ToMessageResponse(msg)
	}
	return result
}
