package identity_test

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/upcycle-backend/internal/infrastructure/memory"
	"github.com/ignatzorin/upcycle-backend/internal/pkg/apperror"
	"github.com/ignatzorin/upcycle-backend/internal/service"
	"github.com/ignatzorin/upcycle-backend/internal/usecase/identity"
)

func strPtr(s string) *string { return &s }

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tokens := service.NewTokenManager("test-secret", time.Minute)

	user, err := identity.NewRegisterUseCase(store).WithCost(bcrypt.MinCost).Execute(ctx, identity.RegisterInput{
		Username: "maria",
		Email:    "Maria@Example.com",
		Password: "Secret123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "maria@example.com" {
		t.Fatalf("email must be normalized, got %q", user.Email)
	}
	if user.ArtisanProfile == nil || user.ArtisanProfile.IsActiveArtisan {
		t.Fatalf("new user must get an inactive artisan profile")
	}

	res, err := identity.NewLoginUseCase(store, tokens).Execute(ctx, identity.LoginInput{
		Email:    "maria@example.com",
		Password: "Secret123",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token == nil || res.Token.Token == "" {
		t.Fatalf("expected access token")
	}
	userID, err := tokens.ParseAccess(res.Token.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("token subject mismatch")
	}

	_, err = identity.NewLoginUseCase(store, tokens).Execute(ctx, identity.LoginInput{
		Email:    "maria@example.com",
		Password: "Wrong1234",
	})
	if !apperror.Is(err, apperror.ErrCodeUnauthenticated) {
		t.Fatalf("expected UNAUTHENTICATED for wrong password, got %v", err)
	}

	_, err = identity.NewLoginUseCase(store, tokens).Execute(ctx, identity.LoginInput{
		Email:    "nobody@example.com",
		Password: "Secret123",
	})
	if !apperror.Is(err, apperror.ErrCodeUnauthenticated) {
		t.Fatalf("expected UNAUTHENTICATED for unknown email, got %v", err)
	}
}

func TestRegister_Rejects(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := identity.NewRegisterUseCase(store).WithCost(bcrypt.MinCost)

	if _, err := uc.Execute(ctx, identity.RegisterInput{Username: "ivan", Email: "ivan@example.com", Password: "Secret123"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	tests := []struct {
		name string
		in   identity.RegisterInput
		code apperror.ErrorCode
	}{
		{"duplicate email", identity.RegisterInput{Username: "ivan2", Email: "IVAN@example.com", Password: "Secret123"}, apperror.ErrCodeConflict},
		{"duplicate username", identity.RegisterInput{Username: "ivan", Email: "other@example.com", Password: "Secret123"}, apperror.ErrCodeConflict},
		{"weak password", identity.RegisterInput{Username: "petr", Email: "petr@example.com", Password: "password"}, apperror.ErrCodeValidation},
		{"bad email", identity.RegisterInput{Username: "petr", Email: "petr.example.com", Password: "Secret123"}, apperror.ErrCodeValidation},
		{"bad username", identity.RegisterInput{Username: "p", Email: "petr@example.com", Password: "Secret123"}, apperror.ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.in)
			if !apperror.Is(err, tt.code) {
				t.Fatalf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestProfile_UpdateAndActivate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	user, err := identity.NewRegisterUseCase(store).WithCost(bcrypt.MinCost).Execute(ctx, identity.RegisterInput{
		Username: "olga",
		Email:    "olga@example.com",
		Password: "Secret123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	profile, err := identity.NewUpdateProfileUseCase(store).Execute(ctx, user.ID, identity.UpdateProfileInput{
		Bio:    strPtr("  шью из старого  "),
		Skills: strPtr("шитьё, вышивка, ,кожа"),
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if profile.Bio == nil || *profile.Bio != "шью из старого" {
		t.Fatalf("bio must be trimmed, got %v", profile.Bio)
	}
	if got := profile.SkillList(); len(got) != 3 {
		t.Fatalf("expected 3 skills, got %v", got)
	}
	if profile.IsActiveArtisan {
		t.Fatalf("profile update must not activate artisan")
	}

	if _, err := identity.NewSetArtisanActiveUseCase(store).Execute(ctx, "olga", true); err != nil {
		t.Fatalf("activate: %v", err)
	}
	me, err := identity.NewGetProfileUseCase(store).Execute(ctx, user.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if !me.IsActiveArtisan() {
		t.Fatalf("user must be an active artisan after activation")
	}
	if me.ArtisanProfile.Bio == nil || *me.ArtisanProfile.Bio != "шью из старого" {
		t.Fatalf("activation must keep profile fields")
	}

	if _, err := identity.NewSetArtisanActiveUseCase(store).Execute(ctx, "nobody", true); !apperror.IsNotFound(err) {
		t.Fatalf("expected NOT_FOUND for unknown username, got %v", err)
	}
}
