// Package memory is the local backend: process-wide maps behind a lock.
// It exists as a zero-dependency fallback for development and tests and
// holds nothing across restarts.
package memory

import (
	"context"
	"sync"

	"github.com/quickfix-labs/quickfix/internal/domain/booking"
	"github.com/quickfix-labs/quickfix/internal/domain/service"
	"github.com/quickfix-labs/quickfix/internal/domain/user"
	"github.com/quickfix-labs/quickfix/internal/repo"
)

type Store struct {
	mu       sync.RWMutex
	users    map[string]user.User
	services []service.Service
	bookings []booking.Booking
}

func NewStore() *Store {
	return &Store{
		users: make(map[string]user.User),
	}
}

func (s *Store) GetUser(_ context.Context, username string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return user.User{}, repo.ErrNotFound
	}
	return u, nil
}

func (s *Store) CreateUser(_ context.Context, u user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Same conditional-put semantics as the remote table: the insert only
	// succeeds while the username is absent.
	if _, exists := s.users[u.Username]; exists {
		return repo.ErrConflict
	}

	s.users[u.Username] = u
	return nil
}

func (s *Store) ListServices(_ context.Context) ([]service.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]service.Service, len(s.services))
	copy(out, s.services)
	return out, nil
}

func (s *Store) ListServicesByCategory(_ context.Context, category string) ([]service.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]service.Service, 0)
	for _, svc := range s.services {
		if svc.Category == category {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (s *Store) AddService(_ context.Context, svc service.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.services = append(s.services, svc)
	return nil
}

func (s *Store) CreateBooking(_ context.Context, b booking.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bookings = append(s.bookings, b)
	return nil
}

func (s *Store) ListBookingsForUser(_ context.Context, username string) ([]booking.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]booking.Booking, 0)
	for _, b := range s.bookings {
		if b.Username == username {
			out = append(out, b)
		}
	}
	return out, nil
}
