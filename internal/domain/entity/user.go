package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/upcycle-backend/internal/validation"
)

// User - аутентифицированный участник площадки.
// ArtisanProfile равен nil, если профиль мастера ещё не загружен или не создан.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	ArtisanProfile *ArtisanProfile
}

func NewUser(username, email, passwordHash string) *User {
	now := time.Now()
	return &User{
		ID:           uuid.New(),
		Username:     strings.TrimSpace(username),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsActiveArtisan - право откликаться на заявки.
func (u *User) IsActiveArtisan() bool {
	return u != nil && u.ArtisanProfile != nil && u.ArtisanProfile.IsActiveArtisan
}

type ArtisanProfile struct {
	UserID          uuid.UUID
	Bio             *string
	Skills          *string
	PortfolioLink   *string
	IsActiveArtisan bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewArtisanProfile создаёт неактивный профиль; активирует его оператор.
func NewArtisanProfile(userID uuid.UUID) *ArtisanProfile {
	now := time.Now()
	return &ArtisanProfile{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (p *ArtisanProfile) Update(bio, skills, portfolioLink *string) error {
	if err := wrapValidation(validation.ValidateBio(bio)); err != nil {
		return err
	}
	if err := wrapValidation(validation.ValidateSkills(skills)); err != nil {
		return err
	}
	if err := wrapValidation(validation.ValidateExternalLink(portfolioLink)); err != nil {
		return err
	}
	p.Bio = emptyToNil(bio)
	p.Skills = emptyToNil(skills)
	p.PortfolioLink = emptyToNil(portfolioLink)
	p.UpdatedAt = time.Now()
	return nil
}

func (p *ArtisanProfile) SetActive(active bool) {
	p.IsActiveArtisan = active
	p.UpdatedAt = time.Now()
}

// SkillList разбирает навыки, записанные через запятую.
func (p *ArtisanProfile) SkillList() []string {
	if p.Skills == nil {
		return []string{}
	}
	parts := strings.Split(*p.Skills, ",")
	skills := make([]string, 0, len(parts))
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

func emptyToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
