// Package repo defines the storage contract the rest of the application
// programs against. Two backends satisfy it: memory (in-process maps, the
// local development fallback) and dynamo (the managed key-value table
// service). Callers never touch a backend directly.
package repo

import (
	"context"

	"github.com/quickfix-labs/quickfix/internal/domain/booking"
	"github.com/quickfix-labs/quickfix/internal/domain/service"
	"github.com/quickfix-labs/quickfix/internal/domain/user"
)

type Users interface {
	// GetUser returns ErrNotFound on a miss.
	GetUser(ctx context.Context, username string) (user.User, error)
	// CreateUser persists u. The password must already be hashed.
	// Returns ErrConflict if the username is taken, in both backends.
	CreateUser(ctx context.Context, u user.User) error
}

type Services interface {
	// ListServices is a full unordered scan.
	ListServices(ctx context.Context) ([]service.Service, error)
	// ListServicesByCategory matches the category tag exactly,
	// case-sensitively.
	ListServicesByCategory(ctx context.Context, category string) ([]service.Service, error)
	AddService(ctx context.Context, svc service.Service) error
}

type Bookings interface {
	CreateBooking(ctx context.Context, b booking.Booking) error
	// ListBookingsForUser is a scan plus client-side filter. There is no
	// index and no pagination at this scale.
	ListBookingsForUser(ctx context.Context, username string) ([]booking.Booking, error)
}

type Store interface {
	Users
	Services
	Bookings
}
