package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
	"github.com/ignatzorin/upcycle-backend/internal/domain/repository"
	"github.com/ignatzorin/upcycle-backend/internal/domain/valueobject"
	"github.com/ignatzorin/upcycle-backend/internal/infrastructure/memory"
)

func TestStore_WithinTransaction_RollsBack(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	user := entity.NewUser("anna", "anna@example.com", "hash")

	boom := errors.New("boom")
	err := store.WithinTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, err := store.Users().FindByID(ctx, user.ID); err == nil {
		t.Fatalf("user must not survive rollback")
	}

	err = store.WithinTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		return tx.Users().Create(ctx, user)
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if _, err := store.Users().FindByID(ctx, user.ID); err != nil {
		t.Fatalf("user must exist after commit: %v", err)
	}
}

func TestConversations_GetOrCreateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	a, b := uuid.New(), uuid.New()
	requestID := uuid.New()

	first, _ := entity.NewConversation(&requestID, a, b)
	got, created, err := store.Conversations().GetOrCreate(ctx, first)
	if err != nil || !created {
		t.Fatalf("first GetOrCreate: created=%v err=%v", created, err)
	}

	second, _ := entity.NewConversation(&requestID, b, a)
	again, created, err := store.Conversations().GetOrCreate(ctx, second)
	if err != nil {
		t.Fatalf("second GetOrCreate: %v", err)
	}
	if created || again.ID != got.ID {
		t.Fatalf("expected existing conversation %s, got %s (created=%v)", got.ID, again.ID, created)
	}

	// Без заявки это отдельная беседа
	direct, _ := entity.NewConversation(nil, a, b)
	other, created, err := store.Conversations().GetOrCreate(ctx, direct)
	if err != nil || !created || other.ID == got.ID {
		t.Fatalf("direct conversation must be separate: created=%v err=%v", created, err)
	}
}

func seedArtisan(t *testing.T, store *memory.Store, name string) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	u := entity.NewUser(name, name+"@example.com", "hash")
	if err := store.Users().Create(ctx, u); err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	if _, err := store.Profiles().EnsureProfile(ctx, u.ID); err != nil {
		t.Fatalf("ensure profile %s: %v", name, err)
	}
	return u.ID
}

func seedRequest(t *testing.T, store *memory.Store, ownerID uuid.UUID) uuid.UUID {
	t.Helper()
	req, err := entity.NewUpcyclingRequest(entity.NewRequestParams{
		OwnerID:         ownerID,
		ProductType:     "куртка",
		MaterialDetails: "джинса",
		PickupLocation:  "Тверь",
	})
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if err := store.Requests().Create(context.Background(), req); err != nil {
		t.Fatalf("create request: %v", err)
	}
	return req.ID
}

func TestOffers_RejectPendingExcept(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := seedArtisan(t, store, "owner")
	requestID := seedRequest(t, store, owner)
	otherRequestID := seedRequest(t, store, owner)

	var offers []*entity.Offer
	for i, name := range []string{"a1", "a2", "a3"} {
		o, err := entity.NewOffer(requestID, seedArtisan(t, store, name), float64(100*(i+1)), 5, "")
		if err != nil {
			t.Fatalf("new offer: %v", err)
		}
		if err := store.Offers().Create(ctx, o); err != nil {
			t.Fatalf("create offer: %v", err)
		}
		offers = append(offers, o)
	}
	foreign, _ := entity.NewOffer(otherRequestID, offers[1].ArtisanID, 50, 5, "")
	if err := store.Offers().Create(ctx, foreign); err != nil {
		t.Fatalf("create foreign offer: %v", err)
	}

	dup, _ := entity.NewOffer(requestID, offers[0].ArtisanID, 10, 1, "")
	if err := store.Offers().Create(ctx, dup); err == nil {
		t.Fatalf("second offer from the same artisan must be rejected")
	}

	n, err := store.Offers().RejectPendingExcept(ctx, requestID, offers[0].ID)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if n != 2 {
		t.Fatalf("rejected %d, want 2", n)
	}

	want := map[uuid.UUID]valueobject.OfferStatus{
		offers[0].ID: valueobject.OfferStatusPending,
		offers[1].ID: valueobject.OfferStatusRejected,
		offers[2].ID: valueobject.OfferStatusRejected,
		foreign.ID:   valueobject.OfferStatusPending,
	}
	for id, status := range want {
		o, err := store.Offers().FindByID(ctx, id)
		if err != nil {
			t.Fatalf("find %s: %v", id, err)
		}
		if o.Status != status {
			t.Fatalf("offer %s status %s, want %s", id, o.Status, status)
		}
	}

	if ok, _ := store.Offers().RejectIfPending(ctx, offers[1].ID); ok {
		t.Fatalf("already rejected offer must not be rejected twice")
	}
}
