package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/upcycle-backend/internal/domain/valueobject"
	"github.com/ignatzorin/upcycle-backend/internal/pkg/apperror"
	"github.com/ignatzorin/upcycle-backend/internal/validation"
)

// Offer - отклик мастера на заявку. Статус меняется ровно один раз из Pending.
type Offer struct {
	ID            uuid.UUID
	RequestID     uuid.UUID
	ArtisanID     uuid.UUID
	Price         valueobject.Money
	EstimatedDays int
	Message       *string
	Status        valueobject.OfferStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewOffer(requestID, artisanID uuid.UUID, price float64, estimatedDays int, message string) (*Offer, error) {
	if err := wrapValidation(validation.ValidateOfferTerms(price, estimatedDays, message)); err != nil {
		return nil, err
	}
	money, err := valueobject.NewMoney(price)
	if err != nil {
		return nil, err
	}

	var msg *string
	if sanitized := validation.SanitizeString(message); sanitized != "" {
		msg = &sanitized
	}

	now := time.Now()
	return &Offer{
		ID:            uuid.New(),
		RequestID:     requestID,
		ArtisanID:     artisanID,
		Price:         money,
		EstimatedDays: estimatedDays,
		Message:       msg,
		Status:        valueobject.OfferStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (o *Offer) IsPending() bool {
	return o.Status == valueobject.OfferStatusPending
}

func (o *Offer) Accept() error {
	if !o.IsPending() {
		return apperror.New(apperror.ErrCodeInvalidState, "предложение уже не ожидает решения")
	}
	o.Status = valueobject.OfferStatusAccepted
	o.UpdatedAt = time.Now()
	return nil
}

func (o *Offer) Reject() error {
	if !o.IsPending() {
		return apperror.New(apperror.ErrCodeInvalidState, "предложение уже не ожидает решения")
	}
	o.Status = valueobject.OfferStatusRejected
	o.UpdatedAt = time.Now()
	return nil
}
