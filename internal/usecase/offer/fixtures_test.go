package offer_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
	"github.com/ignatzorin/upcycle-backend/internal/infrastructure/memory"
)

func newUser(t *testing.T, store *memory.Store, username string, activeArtisan bool) *entity.User {
	t.Helper()
	ctx := context.Background()

	user := entity.NewUser(username, username+"@example.com", "hash")
	if err := store.Users().Create(ctx, user); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	profile, err := store.Profiles().EnsureProfile(ctx, user.ID)
	if err != nil {
		t.Fatalf("ensure profile %s: %v", username, err)
	}
	if activeArtisan {
		profile.SetActive(true)
		if err := store.Profiles().Update(ctx, profile); err != nil {
			t.Fatalf("activate %s: %v", username, err)
		}
	}
	user.ArtisanProfile = profile
	return user
}

func newRequest(t *testing.T, store *memory.Store, ownerID uuid.UUID, productType string) *entity.UpcyclingRequest {
	t.Helper()
	req, err := entity.NewUpcyclingRequest(entity.NewRequestParams{
		OwnerID:         ownerID,
		ProductType:     productType,
		MaterialDetails: "старые джинсы, 3 пары",
		PickupLocation:  "Москва",
	})
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if err := store.Requests().Create(context.Background(), req); err != nil {
		t.Fatalf("create request: %v", err)
	}
	return req
}

func newOffer(t *testing.T, store *memory.Store, requestID, artisanID uuid.UUID, price float64) *entity.Offer {
	t.Helper()
	o, err := entity.NewOffer(requestID, artisanID, price, 7, "сделаю аккуратно")
	if err != nil {
		t.Fatalf("new offer: %v", err)
	}
	if err := store.Offers().Create(context.Background(), o); err != nil {
		t.Fatalf("create offer: %v", err)
	}
	return o
}

func mustOffer(t *testing.T, store *memory.Store, id uuid.UUID) *entity.Offer {
	t.Helper()
	o, err := store.Offers().FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("find offer: %v", err)
	}
	return o
}

func mustRequest(t *testing.T, store *memory.Store, id uuid.UUID) *entity.UpcyclingRequest {
	t.Helper()
	req, err := store.Requests().FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("find request: %v", err)
	}
	return req
}
