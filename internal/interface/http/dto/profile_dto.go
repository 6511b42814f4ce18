package dto

import (
	"time"

	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
)

type UpdateProfileRequest struct {
	Bio           *string `json:"bio"`
	Skills        *string `json:"skills"`
	PortfolioLink *string `json:"portfolio_link"`
}

type ArtisanProfileResponse struct {
	Bio             *string   `json:"bio"`
	Skills          []string  `json:"skills"`
	PortfolioLink   *string   `json:"portfolio_link"`
	IsActiveArtisan bool      `json:"is_active_artisan"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ProfileResponse struct {
	User    UserResponse            `json:"user"`
	Artisan *ArtisanProfileResponse `json:"artisan_profile"`
}

func ToArtisanProfileResponse(p *entity.ArtisanProfile) *ArtisanProfileResponse {
	if p == nil {
		return nil
	}
	return &ArtisanProfileResponse{
		Bio:             p.Bio,
		Skills:          p.SkillList(),
		PortfolioLink:   p.PortfolioLink,
		IsActiveArtisan: p.IsActiveArtisan,
		UpdatedAt:       p.UpdatedAt,
	}
}

func ToProfileResponse(u *entity.User) ProfileResponse {
	return ProfileResponse{
		User:    ToUserResponse(u),
		Artisan: ToArtisanProfileResponse(u.ArtisanProfile),
	}
}
