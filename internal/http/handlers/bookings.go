package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/quickfix-labs/quickfix/internal/config"
	"github.com/quickfix-labs/quickfix/internal/domain/booking"
	"github.com/quickfix-labs/quickfix/internal/domain/provider"
	"github.com/quickfix-labs/quickfix/internal/http/middlewares"
	"github.com/quickfix-labs/quickfix/internal/notifications"
	"github.com/quickfix-labs/quickfix/internal/repo"
)

type BookingStore interface {
	CreateBooking(ctx context.Context, b booking.Booking) error
	ListBookingsForUser(ctx context.Context, username string) ([]booking.Booking, error)
}

type ProviderFinder interface {
	Get(id int) (provider.Provider, bool)
}

type BookingsHandler struct {
	store     BookingStore
	providers ProviderFinder
	notifier  notifications.Notifier
	log       *slog.Logger
}

func NewBookingsHandler(store BookingStore, providers ProviderFinder, notifier notifications.Notifier, log *slog.Logger) *BookingsHandler {
	return &BookingsHandler{
		store:     store,
		providers: providers,
		notifier:  notifier,
		log:       log,
	}
}

type CreateBookingRequest struct {
	Date  string `json:"date" binding:"required,datetime=2006-01-02"`
	Time  string `json:"time" binding:"required,datetime=15:04"`
	Notes string `json:"notes" binding:"max=500"`
}

func (h *BookingsHandler) CreateBooking(ctx *gin.Context) {
	providerID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		RespondBadRequest(ctx, "provider id must be an integer", nil)
		return
	}

	if _, ok := h.providers.Get(providerID); !ok {
		RespondNotFound(ctx, "Provider not found")
		return
	}

	var req CreateBookingRequest
	if !BindJSON(ctx, &req) {
		return
	}

	username, ok := middlewares.UsernameFromContext(ctx)
	if !ok || username == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	b := booking.Booking{
		ID:         uuid.NewString(),
		Username:   username,
		ProviderID: providerID,
		Date:       req.Date,
		Time:       req.Time,
		Notes:      req.Notes,
		CreatedAt:  time.Now().UTC(),
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.store.CreateBooking(cctx, b); err != nil {
		h.log.Error("create booking failed", "booking", b.ID, "username", username, "err", err)
		if errors.Is(err, repo.ErrUnavailable) {
			RespondUnavailable(ctx, "Booking failed")
			return
		}
		RespondInternal(ctx, "Booking failed")
		return
	}

	notifyBestEffort(ctx, h.notifier, h.log, "New booking by "+username)

	ctx.JSON(http.StatusCreated, b)
}

func (h *BookingsHandler) ListMyBookings(ctx *gin.Context) {
	username, ok := middlewares.UsernameFromContext(ctx)
	if !ok || username == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	bookings, err := h.store.ListBookingsForUser(cctx, username)
	if err != nil {
		h.log.Error("list bookings failed", "username", username, "err", err)
		if errors.Is(err, repo.ErrUnavailable) {
			RespondUnavailable(ctx, "Could not list bookings")
			return
		}
		RespondInternal(ctx, "Could not list bookings")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": bookings,
		"count": len(bookings),
	})
}
