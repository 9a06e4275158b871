package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/quickfix-labs/quickfix/internal/auth"
	"github.com/quickfix-labs/quickfix/internal/domain/booking"
	"github.com/quickfix-labs/quickfix/internal/domain/provider"
	"github.com/quickfix-labs/quickfix/internal/http/handlers"
	"github.com/quickfix-labs/quickfix/internal/http/middlewares"
	"github.com/quickfix-labs/quickfix/internal/repo"
)

type fakeBookingsRepo struct {
	createFn func(ctx context.Context, b booking.Booking) error
	listFn   func(ctx context.Context, username string) ([]booking.Booking, error)
}

func (f *fakeBookingsRepo) CreateBooking(ctx context.Context, b booking.Booking) error {
	if f.createFn != nil {
		return f.createFn(ctx, b)
	}
	return nil
}

func (f *fakeBookingsRepo) ListBookingsForUser(ctx context.Context, username string) ([]booking.Booking, error) {
	if f.listFn != nil {
		return f.listFn(ctx, username)
	}
	return nil, nil
}

type fakeProviderFinder struct {
	known map[int]provider.Provider
}

func (f *fakeProviderFinder) Get(id int) (provider.Provider, bool) {
	p, ok := f.known[id]
	return p, ok
}

func bookingsRouter(h *handlers.BookingsHandler, verifier middlewares.TokenVerifier) *gin.Engine {
	r := gin.New()
	am := middlewares.NewAuthMiddleware(verifier)
	r.POST("/providers/:id/bookings", am.RequireAuth(), h.CreateBooking)
	r.GET("/my/bookings", am.RequireAuth(), h.ListMyBookings)
	return r
}

func TestCreateBookingHandler(t *testing.T) {
	finder := &fakeProviderFinder{known: map[int]provider.Provider{
		3: {ID: 3, Name: "Amit Electricals"},
	}}

	aliceClaims := &auth.Claims{Username: "alice", Role: "customer"}

	tests := []struct {
		name           string
		url            string
		body           string
		repoSetUp      func(*fakeBookingsRepo)
		wantStatusCode int
	}{
		{
			name: "success",
			url:  "/providers/3/bookings",
			body: `{"date": "2024-05-01", "time": "10:00", "notes": "leaky tap"}`,
			repoSetUp: func(f *fakeBookingsRepo) {
				f.createFn = func(ctx context.Context, b booking.Booking) error {
					if b.Username != "alice" {
						return errors.New("username not taken from the token")
					}
					if b.ProviderID != 3 {
						return errors.New("wrong provider id")
					}
					if b.ID == "" {
						return errors.New("missing generated booking id")
					}
					return nil
				}
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "unknown_provider",
			url:            "/providers/99/bookings",
			body:           `{"date": "2024-05-01", "time": "10:00"}`,
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:           "non_integer_provider_id",
			url:            "/providers/amit/bookings",
			body:           `{"date": "2024-05-01", "time": "10:00"}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "bad_date_format",
			url:            "/providers/3/bookings",
			body:           `{"date": "01-05-2024", "time": "10:00"}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "bad_time_format",
			url:            "/providers/3/bookings",
			body:           `{"date": "2024-05-01", "time": "10am"}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "backend_unavailable",
			url:  "/providers/3/bookings",
			body: `{"date": "2024-05-01", "time": "10:00"}`,
			repoSetUp: func(f *fakeBookingsRepo) {
				f.createFn = func(ctx context.Context, b booking.Booking) error {
					return repo.ErrUnavailable
				}
			},
			wantStatusCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			store := &fakeBookingsRepo{}
			if tt.repoSetUp != nil {
				tt.repoSetUp(store)
			}

			notifier := &recordingNotifier{}
			h := handlers.NewBookingsHandler(store, finder, notifier, discardLogger())
			r := bookingsRouter(h, &fakeVerifier{claims: aliceClaims})

			req := httptest.NewRequest(http.MethodPost, tt.url, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer test-token")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantStatusCode == http.StatusCreated {
				if len(notifier.messages) != 1 {
					t.Fatalf("expected one notification, got %v", notifier.messages)
				}

				var got booking.Booking
				if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
					t.Fatalf("decode body: %v", err)
				}
				if got.ID == "" {
					t.Fatal("response is missing the booking id")
				}
			}
		})
	}
}

func TestCreateBookingRequiresAuth(t *testing.T) {
	h := handlers.NewBookingsHandler(&fakeBookingsRepo{}, &fakeProviderFinder{}, &recordingNotifier{}, discardLogger())
	r := bookingsRouter(h, &fakeVerifier{err: errors.New("bad token")})

	req := httptest.NewRequest(http.MethodPost, "/providers/3/bookings", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestListMyBookingsHandler(t *testing.T) {
	aliceClaims := &auth.Claims{Username: "alice", Role: "customer"}

	store := &fakeBookingsRepo{
		listFn: func(ctx context.Context, username string) ([]booking.Booking, error) {
			if username != "alice" {
				return nil, errors.New("scope leaked to " + username)
			}
			return []booking.Booking{
				{ID: "b-1", Username: "alice", ProviderID: 3, Date: "2024-05-01", Time: "10:00"},
			}, nil
		},
	}

	h := handlers.NewBookingsHandler(store, &fakeProviderFinder{}, &recordingNotifier{}, discardLogger())
	r := bookingsRouter(h, &fakeVerifier{claims: aliceClaims})

	req := httptest.NewRequest(http.MethodGet, "/my/bookings", nil)
	req.Header.Set("Authorization", "Bearer test-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Items []booking.Booking `json:"items"`
		Count int               `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Count != 1 || len(resp.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(resp.Items))
	}
}
