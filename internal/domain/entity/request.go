package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/upcycle-backend/internal/domain/valueobject"
	"github.com/ignatzorin/upcycle-backend/internal/pkg/apperror"
	"github.com/ignatzorin/upcycle-backend/internal/validation"
)

type UpcyclingRequest struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	ProductType     string
	MaterialDetails string
	StylePreference *string
	PickupLocation  string
	Budget          *valueobject.Money
	Status          valueobject.RequestStatus
	AcceptedArtisan *uuid.UUID
	ImagePath       *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type NewRequestParams struct {
	OwnerID         uuid.UUID
	ProductType     string
	MaterialDetails string
	StylePreference *string
	PickupLocation  string
	Budget          *float64
}

func NewUpcyclingRequest(p NewRequestParams) (*UpcyclingRequest, error) {
	if err := wrapValidation(validation.ValidateNonEmpty("тип изделия", p.ProductType)); err != nil {
		return nil, err
	}
	if err := wrapValidation(validation.ValidateLength("тип изделия", p.ProductType, 1, validation.MaxProductTypeLength)); err != nil {
		return nil, err
	}
	if err := wrapValidation(validation.ValidateNonEmpty("описание материалов", p.MaterialDetails)); err != nil {
		return nil, err
	}
	if err := wrapValidation(validation.ValidateLength("описание материалов", p.MaterialDetails, 1, validation.MaxMaterialDetailsLength)); err != nil {
		return nil, err
	}
	if err := wrapValidation(validation.ValidateNonEmpty("место забора", p.PickupLocation)); err != nil {
		return nil, err
	}
	if err := wrapValidation(validation.ValidateLength("место забора", p.PickupLocation, 1, validation.MaxPickupLocationLength)); err != nil {
		return nil, err
	}
	style := emptyToNil(p.StylePreference)
	if style != nil {
		if err := wrapValidation(validation.ValidateLength("пожелания по стилю", *style, 0, validation.MaxStylePreferenceLength)); err != nil {
			return nil, err
		}
	}

	budget, err := valueobject.NewOptionalMoney(p.Budget)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &UpcyclingRequest{
		ID:              uuid.New(),
		OwnerID:         p.OwnerID,
		ProductType:     validation.SanitizeString(p.ProductType),
		MaterialDetails: validation.SanitizeString(p.MaterialDetails),
		StylePreference: style,
		PickupLocation:  validation.SanitizeString(p.PickupLocation),
		Budget:          budget,
		Status:          valueobject.RequestStatusReceived,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

func (r *UpcyclingRequest) IsOwnedBy(userID uuid.UUID) bool {
	return r.OwnerID == userID
}

func (r *UpcyclingRequest) AcceptsOffers() bool {
	return r.Status.AcceptsOffers()
}

// AssignArtisan фиксирует выбранного мастера. Статус и мастер меняются
// вместе, иначе нарушится инвариант accepted_artisan.
func (r *UpcyclingRequest) AssignArtisan(artisanID uuid.UUID) error {
	if !r.Status.CanTransitionTo(valueobject.RequestStatusOfferAccepted) {
		return apperror.New(apperror.ErrCodeInvalidState, "заявка больше не принимает предложения")
	}
	r.Status = valueobject.RequestStatusOfferAccepted
	r.AcceptedArtisan = &artisanID
	r.UpdatedAt = time.Now()
	return nil
}

// IsAvailable - заявку видят мастера в общем списке.
func (r *UpcyclingRequest) IsAvailable() bool {
	return r.Status == valueobject.RequestStatusReceived && r.AcceptedArtisan == nil
}

func (r *UpcyclingRequest) SetImage(path string) {
	r.ImagePath = &path
}

func wrapValidation(err error) error {
	if err == nil {
		return nil
	}
	return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
}
