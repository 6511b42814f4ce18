package offer_test

import (
	"context"
	"testing"

	"github.com/ignatzorin/upcycle-backend/internal/domain/valueobject"
	"github.com/ignatzorin/upcycle-backend/internal/infrastructure/memory"
	"github.com/ignatzorin/upcycle-backend/internal/pkg/apperror"
	"github.com/ignatzorin/upcycle-backend/internal/usecase/offer"
)

func TestRejectOffer_OnlyTargetOfferChanges(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := newUser(t, store, "owner", false)
	a := newUser(t, store, "alpha", true)
	b := newUser(t, store, "beta", true)

	req := newRequest(t, store, owner.ID, "ваза")
	target := newOffer(t, store, req.ID, a.ID, 100)
	other := newOffer(t, store, req.ID, b.ID, 200)

	rejected, err := offer.NewRejectOfferUseCase(store, nil).Execute(ctx, owner.ID, target.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rejected.Status != valueobject.OfferStatusRejected {
		t.Fatalf("expected Rejected, got %s", rejected.Status)
	}

	if got := mustOffer(t, store, target.ID).Status; got != valueobject.OfferStatusRejected {
		t.Fatalf("stored offer: expected Rejected, got %s", got)
	}
	if got := mustOffer(t, store, other.ID).Status; got != valueobject.OfferStatusPending {
		t.Fatalf("other offer must stay pending, got %s", got)
	}
	storedReq := mustRequest(t, store, req.ID)
	if storedReq.Status != valueobject.RequestStatusReceived || storedReq.AcceptedArtisan != nil {
		t.Fatalf("request must not change on reject")
	}
	if list, _ := store.Conversations().ListByParticipant(ctx, owner.ID); len(list) != 0 {
		t.Fatalf("reject must not open a conversation")
	}
}

func TestRejectOffer_NotOwner(t *testing.T) {
	store := memory.NewStore()
	owner := newUser(t, store, "owner", false)
	artisan := newUser(t, store, "artisan", true)

	req := newRequest(t, store, owner.ID, "стул")
	o := newOffer(t, store, req.ID, artisan.ID, 100)

	_, err := offer.NewRejectOfferUseCase(store, nil).Execute(context.Background(), artisan.ID, o.ID)
	if !apperror.Is(err, apperror.ErrCodeUnauthorized) {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
	if got := mustOffer(t, store, o.ID).Status; got != valueobject.OfferStatusPending {
		t.Fatalf("offer must stay pending, got %s", got)
	}
}

func TestRejectOffer_AlreadyDecided(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := newUser(t, store, "owner", false)
	artisan := newUser(t, store, "artisan", true)

	req := newRequest(t, store, owner.ID, "стул")
	o := newOffer(t, store, req.ID, artisan.ID, 100)
	if _, err := offer.NewAcceptOfferUseCase(store, nil).Execute(ctx, owner.ID, o.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	_, err := offer.NewRejectOfferUseCase(store, nil).Execute(ctx, owner.ID, o.ID)
	if !apperror.Is(err, apperror.ErrCodeInvalidState) {
		t.Fatalf("expected INVALID_STATE, got %v", err)
	}
	if got := mustOffer(t, store, o.ID).Status; got != valueobject.OfferStatusAccepted {
		t.Fatalf("accepted offer must not change, got %s", got)
	}
}
