// Package inmem is an in-memory Record Store for tests. It satisfies every
// repository interface and the transaction.Transactor: a failed transaction
// restores the state captured when it began.
package inmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bloodbank/entities"

	"github.com/google/uuid"
)

type txKey struct{}

type tables struct {
	users     map[uuid.UUID]entities.User
	profiles  map[uuid.UUID]entities.DonorProfile
	donations map[uuid.UUID]entities.DonationHistory
	banks     map[uuid.UUID]entities.BloodBank
	inventory map[uuid.UUID]entities.BloodInventory
	requests  map[uuid.UUID]entities.BloodRequest
}

func (t tables) clone() tables {
	return tables{
		users:     cloneMap(t.users),
		profiles:  cloneMap(t.profiles),
		donations: cloneMap(t.donations),
		banks:     cloneMap(t.banks),
		inventory: cloneMap(t.inventory),
		requests:  cloneMap(t.requests),
	}
}

func cloneMap[V any](m map[uuid.UUID]V) map[uuid.UUID]V {
	out := make(map[uuid.UUID]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex

	data     tables
	failures map[string]error
	base     time.Time
	seq      int

	// Commits counts transactions that finished without error.
	Commits int
	// Rollbacks counts transactions whose state was restored.
	Rollbacks int
}

func New() *Store {
	return &Store{
		data: tables{
			users:     map[uuid.UUID]entities.User{},
			profiles:  map[uuid.UUID]entities.DonorProfile{},
			donations: map[uuid.UUID]entities.DonationHistory{},
			banks:     map[uuid.UUID]entities.BloodBank{},
			inventory: map[uuid.UUID]entities.BloodInventory{},
			requests:  map[uuid.UUID]entities.BloodRequest{},
		},
		failures: map[string]error{},
		base:     time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
	}
}

// FailNext makes the next call of the named repository method return err.
func (s *Store) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

func (s *Store) fail(op string) error {
	if err, ok := s.failures[op]; ok {
		delete(s.failures, op)
		return err
	}
	return nil
}

// tick returns strictly increasing timestamps so creation order is observable.
func (s *Store) tick() time.Time {
	s.seq++
	return s.base.Add(time.Duration(s.seq) * time.Second)
}

func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.Rollbacks++
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.Commits++
	s.mu.Unlock()
	return nil
}

func parseID(id string) (uuid.UUID, bool) {
	parsed, err := uuid.Parse(id)
	return parsed, err == nil
}

// MustCreateUser inserts a user directly and panics on failure.
func (s *Store) MustCreateUser(username, role string) entities.User {
	user, err := s.CreateUser(context.Background(), entities.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		FirstName:    username,
		Role:         role,
	})
	if err != nil {
		panic(fmt.Sprintf("inmem: create user %s: %v", username, err))
	}
	return user
}
