package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/quickfix-labs/quickfix/internal/config"
	"github.com/quickfix-labs/quickfix/internal/domain/service"
	"github.com/quickfix-labs/quickfix/internal/http/middlewares"
	"github.com/quickfix-labs/quickfix/internal/repo"
	"github.com/shopspring/decimal"
)

type ServiceCatalog interface {
	List(ctx context.Context) ([]service.Service, error)
	ListByCategory(ctx context.Context, category string) ([]service.Service, error)
	Add(ctx context.Context, svc service.Service) error
}

type ServicesHandler struct {
	catalog ServiceCatalog
	log     *slog.Logger
}

func NewServicesHandler(catalog ServiceCatalog, log *slog.Logger) *ServicesHandler {
	return &ServicesHandler{catalog: catalog, log: log}
}

type AddServiceRequest struct {
	Name     string `json:"name" binding:"required,max=120"`
	Category string `json:"category" binding:"required,max=60"`
	// Price arrives as a string ("19.99") and is parsed as a decimal so
	// it is never a float anywhere in the pipeline.
	Price string `json:"price" binding:"required"`
}

// ListServices answers both the full catalog and ?category= filtered
// reads. The category match is exact and case-sensitive.
func (h *ServicesHandler) ListServices(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	var (
		services []service.Service
		err      error
	)

	if category := ctx.Query("category"); category != "" {
		services, err = h.catalog.ListByCategory(cctx, category)
	} else {
		services, err = h.catalog.List(cctx)
	}

	if err != nil {
		h.log.Error("list services failed", "err", err)
		if errors.Is(err, repo.ErrUnavailable) {
			RespondUnavailable(ctx, "Could not list services")
			return
		}
		RespondInternal(ctx, "Could not list services")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": services,
		"count": len(services),
	})
}

func (h *ServicesHandler) AddService(ctx *gin.Context) {
	var req AddServiceRequest

	if !BindJSON(ctx, &req) {
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		RespondBadRequest(ctx, "Invalid request body", gin.H{"fields": []FieldError{
			{Field: "price", Rule: "numeric", Message: "must be a decimal number"},
		}})
		return
	}
	if price.IsNegative() {
		RespondBadRequest(ctx, "Invalid request body", gin.H{"fields": []FieldError{
			{Field: "price", Rule: "min", Param: "0", Message: "must not be negative"},
		}})
		return
	}

	username, ok := middlewares.UsernameFromContext(ctx)
	if !ok || username == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	svc := service.Service{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Category:  req.Category,
		Price:     price,
		Provider:  username,
		CreatedAt: time.Now().UTC(),
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.catalog.Add(cctx, svc); err != nil {
		h.log.Error("add service failed", "service", svc.ID, "err", err)
		if errors.Is(err, repo.ErrUnavailable) {
			RespondUnavailable(ctx, "Could not add service")
			return
		}
		RespondInternal(ctx, "Could not add service")
		return
	}

	ctx.JSON(http.StatusCreated, svc)
}
