package persistence

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
	"github.com/ignatzorin/upcycle-backend/internal/domain/repository"
	"github.com/ignatzorin/upcycle-backend/internal/pkg/apperror"
)

var conversationCols = []string{"id", "request_id", "participant1_id", "participant2_id", "created_at", "updated_at"}

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPostgresStore(sqlx.NewDb(db, "postgres")), mock
}

func expectationsMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func newTestConversation(t *testing.T) *entity.Conversation {
	t.Helper()
	requestID := uuid.New()
	conv, err := entity.NewConversation(&requestID, uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("new conversation: %v", err)
	}
	return conv
}

var (
	insertConversationSQL = regexp.QuoteMeta(`ON CONFLICT ON CONSTRAINT conversations_request_pair_key DO NOTHING`)
	selectConversationSQL = regexp.QuoteMeta(`WHERE request_id IS NOT DISTINCT FROM $1 AND participant1_id = $2 AND participant2_id = $3`)
)

func TestConversationGetOrCreate_Inserts(t *testing.T) {
	store, mock := newMockStore(t)
	conv := newTestConversation(t)
	now := time.Now()

	mock.ExpectQuery(insertConversationSQL).
		WithArgs(conv.ID, conv.RequestID.String(), conv.Participant1, conv.Participant2, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(conversationCols).
			AddRow(conv.ID.String(), conv.RequestID.String(), conv.Participant1.String(), conv.Participant2.String(), now, now))

	got, created, err := store.Conversations().GetOrCreate(context.Background(), conv)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if !created || got.ID != conv.ID {
		t.Fatalf("expected new conversation %s, got %s (created=%v)", conv.ID, got.ID, created)
	}
	if got.RequestID == nil || *got.RequestID != *conv.RequestID {
		t.Fatalf("request id not mapped: %v", got.RequestID)
	}
	expectationsMet(t, mock)
}

func TestConversationGetOrCreate_FetchesExistingOnConflict(t *testing.T) {
	store, mock := newMockStore(t)
	conv := newTestConversation(t)
	existingID := uuid.New()
	now := time.Now()

	// DO NOTHING не возвращает строк, адаптер должен дочитать существующую беседу.
	mock.ExpectQuery(insertConversationSQL).
		WillReturnRows(sqlmock.NewRows(conversationCols))
	mock.ExpectQuery(selectConversationSQL).
		WithArgs(conv.RequestID.String(), conv.Participant1, conv.Participant2).
		WillReturnRows(sqlmock.NewRows(conversationCols).
			AddRow(existingID.String(), conv.RequestID.String(), conv.Participant1.String(), conv.Participant2.String(), now, now))

	got, created, err := store.Conversations().GetOrCreate(context.Background(), conv)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if created {
		t.Fatalf("conversation must not be reported as created")
	}
	if got.ID != existingID {
		t.Fatalf("got %s, want existing %s", got.ID, existingID)
	}
	expectationsMet(t, mock)
}

func TestConversationGetOrCreate_DirectConversation(t *testing.T) {
	store, mock := newMockStore(t)
	conv, err := entity.NewConversation(nil, uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("new conversation: %v", err)
	}
	now := time.Now()

	mock.ExpectQuery(insertConversationSQL).
		WillReturnRows(sqlmock.NewRows(conversationCols))
	mock.ExpectQuery(selectConversationSQL).
		WithArgs(nil, conv.Participant1, conv.Participant2).
		WillReturnRows(sqlmock.NewRows(conversationCols).
			AddRow(conv.ID.String(), nil, conv.Participant1.String(), conv.Participant2.String(), now, now))

	got, _, err := store.Conversations().GetOrCreate(context.Background(), conv)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if got.RequestID != nil {
		t.Fatalf("direct conversation must have no request, got %v", got.RequestID)
	}
	expectationsMet(t, mock)
}

func TestConversationGetOrCreate_DriverError(t *testing.T) {
	store, mock := newMockStore(t)
	conv := newTestConversation(t)

	mock.ExpectQuery(insertConversationSQL).
		WillReturnError(&pq.Error{Code: "23503"})

	_, _, err := store.Conversations().GetOrCreate(context.Background(), conv)
	if !apperror.IsValidation(err) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestWithinTransaction_LocksAndCommits(t *testing.T) {
	store, mock := newMockStore(t)
	requestID, keepID := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM offers WHERE id = $1 FOR UPDATE`)).
		WithArgs(keepID).
		WillReturnError(errors.New("unused"))
	mock.ExpectRollback()

	err := store.WithinTransaction(context.Background(), func(ctx context.Context, tx repository.Store) error {
		_, err := tx.Offers().LockByID(ctx, keepID)
		return err
	})
	if !apperror.Is(err, apperror.ErrCodeDatabaseError) {
		t.Fatalf("expected DATABASE_ERROR, got %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`WHERE request_id = $1 AND id <> $2 AND status = $4`)).
		WithArgs(requestID, keepID, "Rejected", "Pending").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	var rejected int64
	err = store.WithinTransaction(context.Background(), func(ctx context.Context, tx repository.Store) error {
		var err error
		rejected, err = tx.Offers().RejectPendingExcept(ctx, requestID, keepID)
		return err
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if rejected != 2 {
		t.Fatalf("rejected %d, want 2", rejected)
	}
	expectationsMet(t, mock)
}

func TestWithinTransaction_RollsBackOnError(t *testing.T) {
	store, mock := newMockStore(t)
	requestID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM upcycling_requests WHERE id = $1 FOR UPDATE`)).
		WithArgs(requestID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := store.WithinTransaction(context.Background(), func(ctx context.Context, tx repository.Store) error {
		_, err := tx.Requests().LockByID(ctx, requestID)
		return err
	})
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestRejectIfPending_LostRace(t *testing.T) {
	store, mock := newMockStore(t)
	offerID := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`WHERE id = $1 AND status = $3`)).
		WithArgs(offerID, "Rejected", "Pending").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := store.Offers().RejectIfPending(context.Background(), offerID)
	if err != nil {
		t.Fatalf("RejectIfPending: %v", err)
	}
	if ok {
		t.Fatalf("zero affected rows must report a lost race")
	}
	expectationsMet(t, mock)
}
