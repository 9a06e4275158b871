package observability

import (
	"context"

	"github.com/quickfix-labs/quickfix/internal/domain/booking"
	"github.com/quickfix-labs/quickfix/internal/domain/service"
	"github.com/quickfix-labs/quickfix/internal/domain/user"
	"github.com/quickfix-labs/quickfix/internal/repo"
)

// InstrumentedStore decorates a backend with per-operation metrics. It is
// mode-agnostic: both the memory and the dynamo backend sit behind it.
type InstrumentedStore struct {
	next repo.Store
	prom *Prom
}

var _ repo.Store = (*InstrumentedStore)(nil)

func NewInstrumentedStore(next repo.Store, prom *Prom) *InstrumentedStore {
	return &InstrumentedStore{next: next, prom: prom}
}

func (s *InstrumentedStore) GetUser(ctx context.Context, username string) (user.User, error) {
	var u user.User
	err := s.prom.ObserveStore("users.get", func() error {
		var err error
		u, err = s.next.GetUser(ctx, username)
		return err
	})
	return u, err
}

func (s *InstrumentedStore) CreateUser(ctx context.Context, u user.User) error {
	return s.prom.ObserveStore("users.create", func() error {
		return s.next.CreateUser(ctx, u)
	})
}

func (s *InstrumentedStore) ListServices(ctx context.Context) ([]service.Service, error) {
	var out []service.Service
	err := s.prom.ObserveStore("services.list", func() error {
		var err error
		out, err = s.next.ListServices(ctx)
		return err
	})
	return out, err
}

func (s *InstrumentedStore) ListServicesByCategory(ctx context.Context, category string) ([]service.Service, error) {
	var out []service.Service
	err := s.prom.ObserveStore("services.list_by_category", func() error {
		var err error
		out, err = s.next.ListServicesByCategory(ctx, category)
		return err
	})
	return out, err
}

func (s *InstrumentedStore) AddService(ctx context.Context, svc service.Service) error {
	return s.prom.ObserveStore("services.add", func() error {
		return s.next.AddService(ctx, svc)
	})
}

func (s *InstrumentedStore) CreateBooking(ctx context.Context, b booking.Booking) error {
	return s.prom.ObserveStore("bookings.create", func() error {
		return s.next.CreateBooking(ctx, b)
	})
}

func (s *InstrumentedStore) ListBookingsForUser(ctx context.Context, username string) ([]booking.Booking, error) {
	var out []booking.Booking
	err := s.prom.ObserveStore("bookings.list_for_user", func() error {
		var err error
		out, err = s.next.ListBookingsForUser(ctx, username)
		return err
	})
	return out, err
}
