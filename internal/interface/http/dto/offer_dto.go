package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
	"github.com/ignatzorin/upcycle-backend/internal/usecase/offer"
)

type SubmitOfferRequest struct {
	Price         float64 `json:"price"`
	EstimatedDays int     `json:"estimated_days" binding:"required"`
	Message       string  `json:"message"`
}

type OfferResponse struct {
	ID            uuid.UUID `json:"id"`
	RequestID     uuid.UUID `json:"request_id"`
	ArtisanID     uuid.UUID `json:"artisan_id"`
	Price         float64   `json:"price"`
	EstimatedDays int       `json:"estimated_days"`
	Message       *string   `json:"message"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AcceptOfferResponse содержит всё, что нужно клиенту для перехода в беседу.
type AcceptOfferResponse struct {
	Offer               OfferResponse        `json:"offer"`
	RequestID           uuid.UUID            `json:"request_id"`
	RequestStatus       string               `json:"request_status"`
	Conversation        ConversationResponse `json:"conversation"`
	ConversationCreated bool                 `json:"conversation_created"`
	RejectedOffers      int64                `json:"rejected_offers"`
}

func ToOfferResponse(o *entity.Offer) OfferResponse {
	return OfferResponse{
		ID:            o.ID,
		RequestID:     o.RequestID,
		ArtisanID:     o.ArtisanID,
		Price:         o.Price.Amount,
		EstimatedDays: o.EstimatedDays,
		Message:       o.Message,
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func ToOfferResponses(offers []*entity.Offer) []OfferResponse {
	result := make([]OfferResponse, len(offers))
	for i, o := range offers {
		result[i] = ToOfferResponse(o)
	}
	return result
}

func ToAcceptOfferResponse(res *offer.AcceptOfferResult) AcceptOfferResponse {
	return AcceptOfferResponse{
		Offer:               ToOfferResponse(res.Offer),
		RequestID:           res.Request.ID,
		RequestStatus:       string(res.Request.Status),
		Conversation:        ToConversationResponse(res.Conversation),
		ConversationCreated: res.ConversationCreated,
		RejectedOffers:      res.RejectedOffers,
	}
}
