package request_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
	"github.com/ignatzorin/upcycle-backend/internal/domain/valueobject"
	"github.com/ignatzorin/upcycle-backend/internal/infrastructure/memory"
	"github.com/ignatzorin/upcycle-backend/internal/pkg/apperror"
	"github.com/ignatzorin/upcycle-backend/internal/storage"
	"github.com/ignatzorin/upcycle-backend/internal/usecase/offer"
	"github.com/ignatzorin/upcycle-backend/internal/usecase/request"
)

// pngHeader - минимальные магические байты PNG.
var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52}

func createUser(t *testing.T, store *memory.Store, username string, activeArtisan bool) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	user := entity.NewUser(username, username+"@example.com", "hash")
	if err := store.Users().Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	profile, err := store.Profiles().EnsureProfile(ctx, user.ID)
	if err != nil {
		t.Fatalf("ensure profile: %v", err)
	}
	if activeArtisan {
		profile.SetActive(true)
		if err := store.Profiles().Update(ctx, profile); err != nil {
			t.Fatalf("activate: %v", err)
		}
	}
	return user.ID
}

func input(productType string) request.CreateRequestInput {
	return request.CreateRequestInput{
		ProductType:     productType,
		MaterialDetails: "две старые рубашки",
		PickupLocation:  "Казань",
	}
}

func TestCreateRequest_WithImage(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := createUser(t, store, "owner", false)

	root := t.TempDir()
	images, err := storage.NewLocalImageStore(root, "/media")
	if err != nil {
		t.Fatalf("local store: %v", err)
	}

	in := input("фартук")
	budget := 1999.999
	in.Budget = &budget
	in.Image = bytes.NewReader(pngHeader)

	req, err := request.NewCreateRequestUseCase(store, images, 1<<20).Execute(ctx, owner, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if req.Status != valueobject.RequestStatusReceived {
		t.Fatalf("new request must be %q, got %q", valueobject.RequestStatusReceived, req.Status)
	}
	if req.Budget == nil || req.Budget.Amount != 2000 {
		t.Fatalf("budget must be rounded to cents, got %v", req.Budget)
	}
	if req.ImagePath == nil {
		t.Fatalf("image path must be set")
	}
	if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(*req.ImagePath))); err != nil {
		t.Fatalf("image must be written: %v", err)
	}
	if filepath.Ext(*req.ImagePath) != ".png" {
		t.Fatalf("extension must come from content, got %s", *req.ImagePath)
	}
}

func TestCreateRequest_Rejects(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := createUser(t, store, "owner", false)
	images, err := storage.NewLocalImageStore(t.TempDir(), "/media")
	if err != nil {
		t.Fatalf("local store: %v", err)
	}
	uc := request.NewCreateRequestUseCase(store, images, 8)

	blank := input("  ")
	if _, err := uc.Execute(ctx, owner, blank); !apperror.IsValidation(err) {
		t.Fatalf("expected VALIDATION_ERROR for blank product type, got %v", err)
	}

	notImage := input("сумка")
	notImage.Image = bytes.NewReader([]byte("plain text"))
	if _, err := uc.Execute(ctx, owner, notImage); !apperror.IsValidation(err) {
		t.Fatalf("expected VALIDATION_ERROR for oversized upload, got %v", err)
	}

	mine, _ := request.NewListMyRequestsUseCase(store).Execute(ctx, owner)
	if len(mine) != 0 {
		t.Fatalf("rejected requests must not be stored")
	}
}

func TestListRequests(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := createUser(t, store, "owner", false)
	artisan := createUser(t, store, "artisan", true)
	newbie := createUser(t, store, "newbie", false)

	create := request.NewCreateRequestUseCase(store, nil, 0)
	open, err := create.Execute(ctx, owner, input("пуф"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	taken, err := create.Execute(ctx, owner, input("плед"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	o, err := offer.NewSubmitOfferUseCase(store, nil).Execute(ctx, artisan, taken.ID, offer.SubmitOfferInput{Price: 100, EstimatedDays: 2})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := offer.NewAcceptOfferUseCase(store, nil).Execute(ctx, owner, o.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	mine, err := request.NewListMyRequestsUseCase(store).Execute(ctx, owner)
	if err != nil || len(mine) != 2 {
		t.Fatalf("owner must see both requests: %d, %v", len(mine), err)
	}

	available, err := request.NewListAvailableRequestsUseCase(store).Execute(ctx, artisan)
	if err != nil {
		t.Fatalf("available: %v", err)
	}
	if len(available) != 1 || available[0].ID != open.ID {
		t.Fatalf("only the open request must be available")
	}

	if _, err := request.NewListAvailableRequestsUseCase(store).Execute(ctx, newbie); !apperror.IsForbidden(err) {
		t.Fatalf("expected FORBIDDEN for inactive artisan, got %v", err)
	}
}

func TestGetRequest_Visibility(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := createUser(t, store, "owner", false)
	first := createUser(t, store, "first", true)
	second := createUser(t, store, "second", true)
	viewer := createUser(t, store, "viewer", true)

	req, err := request.NewCreateRequestUseCase(store, nil, 0).Execute(ctx, owner, input("абажур"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	submit := offer.NewSubmitOfferUseCase(store, nil)
	if _, err := submit.Execute(ctx, first, req.ID, offer.SubmitOfferInput{Price: 900, EstimatedDays: 4}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := submit.Execute(ctx, second, req.ID, offer.SubmitOfferInput{Price: 300, EstimatedDays: 9}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	get := request.NewGetRequestUseCase(store)

	asOwner, err := get.Execute(ctx, owner, req.ID)
	if err != nil {
		t.Fatalf("owner view: %v", err)
	}
	if !asOwner.IsOwner || len(asOwner.Offers) != 2 {
		t.Fatalf("owner must see all offers")
	}
	if asOwner.Offers[0].Price.Amount != 300 {
		t.Fatalf("offers must be sorted by price ascending")
	}

	asFirst, err := get.Execute(ctx, first, req.ID)
	if err != nil {
		t.Fatalf("artisan view: %v", err)
	}
	if !asFirst.HasMadeOffer || asFirst.CanMakeOffer || len(asFirst.Offers) != 1 || asFirst.Offers[0].ArtisanID != first {
		t.Fatalf("artisan must see only own offer")
	}

	asViewer, err := get.Execute(ctx, viewer, req.ID)
	if err != nil {
		t.Fatalf("viewer: %v", err)
	}
	if asViewer.HasMadeOffer || !asViewer.CanMakeOffer || len(asViewer.Offers) != 0 {
		t.Fatalf("fresh artisan must be able to make an offer and see no offers")
	}

	if _, err := request.NewListRequestOffersUseCase(store).Execute(ctx, first, req.ID); !apperror.Is(err, apperror.ErrCodeUnauthorized) {
		t.Fatalf("expected UNAUTHORIZED for non-owner, got %v", err)
	}
	if _, err := get.Execute(ctx, owner, uuid.New()); !apperror.IsNotFound(err) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
