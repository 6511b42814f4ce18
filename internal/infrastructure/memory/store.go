// Package memory хранит данные площадки в памяти процесса. Используется
// в тестах и в режиме serve --in-memory. Транзакции выполняются строго
// по одной; при ошибке состояние восстанавливается из снимка.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
	"github.com/ignatzorin/upcycle-backend/internal/domain/repository"
)

type state struct {
	users         map[uuid.UUID]entity.User
	profiles      map[uuid.UUID]entity.ArtisanProfile
	requests      map[uuid.UUID]entity.UpcyclingRequest
	offers        map[uuid.UUID]entity.Offer
	conversations map[uuid.UUID]conversationRecord
	messages      map[uuid.UUID]messageRecord
	seq           int64
}

type conversationRecord struct {
	entity.Conversation
	touchSeq int64
}

type messageRecord struct {
	entity.Message
	seq int64
}

func newState() *state {
	return &state{
		users:         make(map[uuid.UUID]entity.User),
		profiles:      make(map[uuid.UUID]entity.ArtisanProfile),
		requests:      make(map[uuid.UUID]entity.UpcyclingRequest),
		offers:        make(map[uuid.UUID]entity.Offer),
		conversations: make(map[uuid.UUID]conversationRecord),
		messages:      make(map[uuid.UUID]messageRecord),
	}
}

func (s *state) nextSeq() int64 {
	s.seq++
	return s.seq
}

// clone копирует карты. Значения хранятся копиями структур, а поля-указатели
// после записи не изменяются, поэтому поверхностной копии достаточно.
func (s *state) clone() *state {
	c := &state{
		users:         make(map[uuid.UUID]entity.User, len(s.users)),
		profiles:      make(map[uuid.UUID]entity.ArtisanProfile, len(s.profiles)),
		requests:      make(map[uuid.UUID]entity.UpcyclingRequest, len(s.requests)),
		offers:        make(map[uuid.UUID]entity.Offer, len(s.offers)),
		conversations: make(map[uuid.UUID]conversationRecord, len(s.conversations)),
		messages:      make(map[uuid.UUID]messageRecord, len(s.messages)),
		seq:           s.seq,
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.profiles {
		c.profiles[k] = v
	}
	for k, v := range s.requests {
		c.requests[k] = v
	}
	for k, v := range s.offers {
		c.offers[k] = v
	}
	for k, v := range s.conversations {
		c.conversations[k] = v
	}
	for k, v := range s.messages {
		c.messages[k] = v
	}
	return c
}

// access выполняет fn с эксклюзивным доступом к состоянию.
type access func(ctx context.Context, fn func(d *state) error) error

type Store struct {
	mu   sync.Mutex
	data *state
}

func NewStore() *Store {
	return &Store{data: newState()}
}

func (s *Store) exclusive(ctx context.Context, fn func(d *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

func (s *Store) Users() repository.UserRepository {
	return &userRepo{do: s.exclusive}
}

func (s *Store) Profiles() repository.ProfileRepository {
	return &profileRepo{do: s.exclusive}
}

func (s *Store) Requests() repository.RequestRepository {
	return &requestRepo{do: s.exclusive}
}

func (s *Store) Offers() repository.OfferRepository {
	return &offerRepo{do: s.exclusive}
}

func (s *Store) Messages() repository.MessageRepository {
	return &messageRepo{do: s.exclusive}
}

func (s *Store) Conversations() repository.ConversationRepository {
	return &conversationRepo{do: s.exclusive}
}

func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	committed := false
	defer func() {
		if !committed {
			s.data = snapshot
		}
	}()

	if err := fn(ctx, &txStore{data: s.data}); err != nil {
		return err
	}
	committed = true
	return nil
}

// Ping всегда успешен: хранилище живёт в процессе.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

type txStore struct {
	data *state
}

func (t *txStore) inTx(ctx context.Context, fn func(d *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(t.data)
}

func (t *txStore) Users() repository.UserRepository {
	return &userRepo{do: t.inTx}
}

func (t *txStore) Profiles() repository.ProfileRepository {
	return &profileRepo{do: t.inTx}
}

func (t *txStore) Requests() repository.RequestRepository {
	return &requestRepo{do: t.inTx}
}

func (t *txStore) Offers() repository.OfferRepository {
	return &offerRepo{do: t.inTx}
}

func (t *txStore) Messages() repository.MessageRepository {
	return &messageRepo{do: t.inTx}
}

func (t *txStore) Conversations() repository.ConversationRepository {
	return &conversationRepo{do: t.inTx}
}
