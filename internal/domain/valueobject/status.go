package valueobject

import "github.com/ignatzorin/upcycle-backend/internal/pkg/apperror"

// RequestStatus хранится в БД строкой в том же виде, в каком его видит пользователь.
type RequestStatus string

const (
	RequestStatusReceived      RequestStatus = "Request Received"
	RequestStatusOfferMade     RequestStatus = "Offer Made"
	RequestStatusOpen          RequestStatus = "Open"
	RequestStatusOfferAccepted RequestStatus = "Offer Accepted"
	RequestStatusCompleted     RequestStatus = "Completed"
	RequestStatusCancelled     RequestStatus = "Cancelled"
)

func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusReceived, RequestStatusOfferMade, RequestStatusOpen,
		RequestStatusOfferAccepted, RequestStatusCompleted, RequestStatusCancelled:
		return true
	}
	return false
}

// AcceptsOffers сообщает, можно ли ещё принять предложение по заявке.
func (s RequestStatus) AcceptsOffers() bool {
	switch s {
	case RequestStatusReceived, RequestStatusOfferMade, RequestStatusOpen:
		return true
	}
	return false
}

// HasAssignedArtisan: в этих статусах у заявки обязан быть выбранный мастер.
func (s RequestStatus) HasAssignedArtisan() bool {
	return s == RequestStatusOfferAccepted || s == RequestStatusCompleted
}

func (s RequestStatus) CanTransitionTo(newStatus RequestStatus) bool {
	transitions := map[RequestStatus][]RequestStatus{
		RequestStatusReceived:      {RequestStatusOfferAccepted, RequestStatusCancelled},
		RequestStatusOfferMade:     {RequestStatusOfferAccepted, RequestStatusCancelled},
		RequestStatusOpen:          {RequestStatusOfferAccepted, RequestStatusCancelled},
		RequestStatusOfferAccepted: {RequestStatusCompleted},
		RequestStatusCompleted:     {},
		RequestStatusCancelled:     {},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == newStatus {
			return true
		}
	}
	return false
}

func NewRequestStatus(status string) (RequestStatus, error) {
	s := RequestStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус заявки")
	}
	return s, nil
}

type OfferStatus string

const (
	OfferStatusPending  OfferStatus = "Pending"
	OfferStatusAccepted OfferStatus = "Accepted"
	OfferStatusRejected OfferStatus = "Rejected"
)

func (s OfferStatus) IsValid() bool {
	switch s {
	case OfferStatusPending, OfferStatusAccepted, OfferStatusRejected:
		return true
	}
	return false
}

func NewOfferStatus(status string) (OfferStatus, error) {
	s := OfferStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус предложения")
	}
	return s, nil
}
