package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
	"github.com/ignatzorin/upcycle-backend/internal/usecase/request"
)

// CreateRequestForm приходит как multipart/form-data, файл передаётся в поле image.
type CreateRequestForm struct {
	ProductType     string   `form:"product_type" binding:"required"`
	MaterialDetails string   `form:"material_details" binding:"required"`
	StylePreference *string  `form:"style_preference"`
	PickupLocation  string   `form:"pickup_location" binding:"required"`
	Budget          *float64 `form:"budget"`
}

type RequestResponse struct {
	ID              uuid.UUID  `json:"id"`
	OwnerID         uuid.UUID  `json:"owner_id"`
	ProductType     string     `json:"product_type"`
	MaterialDetails string     `json:"material_details"`
	StylePreference *string    `json:"style_preference"`
	PickupLocation  string     `json:"pickup_location"`
	Budget          *float64   `json:"budget"`
	Status          string     `json:"status"`
	AcceptedArtisan *uuid.UUID `json:"accepted_artisan_id"`
	ImageURL        *string    `json:"image_url"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type RequestDetailResponse struct {
	Request      RequestResponse `json:"request"`
	Offers       []OfferResponse `json:"offers"`
	IsOwner      bool            `json:"is_owner"`
	HasMadeOffer bool            `json:"has_made_offer"`
	CanMakeOffer bool            `json:"can_make_offer"`
}

// ImageURLFunc превращает ключ хранилища в публичный адрес.
type ImageURLFunc func(key string) *string

func ToRequestResponse(r *entity.UpcyclingRequest, imageURL ImageURLFunc) RequestResponse {
	resp := RequestResponse{
		ID:              r.ID,
		OwnerID:         r.OwnerID,
		ProductType:     r.ProductType,
		MaterialDetails: r.MaterialDetails,
		StylePreference: r.StylePreference,
		PickupLocation:  r.PickupLocation,
		Status:          string(r.Status),
		AcceptedArtisan: r.AcceptedArtisan,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if r.Budget != nil {
		amount := r.Budget.Amount
		resp.Budget = &amount
	}
	if r.ImagePath != nil && imageURL != nil {
		resp.ImageURL = imageURL(*r.ImagePath)
	}
	return resp
}

func ToRequestResponses(reqs []*entity.UpcyclingRequest, imageURL ImageURLFunc) []RequestResponse {
	result := make([]RequestResponse, len(reqs))
	for i, r := range reqs {
		result[i] = ToRequestResponse(r, imageURL)
	}
	return result
}

func ToRequestDetailResponse(d *request.RequestDetail, imageURL ImageURLFunc) RequestDetailResponse {
	return RequestDetailResponse{
		Request:      ToRequestResponse(d.Request, imageURL),
		Offers:       ToOfferResponses(d.Offers),
		IsOwner:      d.IsOwner,
		HasMadeOffer: d.HasMadeOffer,
		CanMakeOffer: d.CanMakeOffer,
	}
}
