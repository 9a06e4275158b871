package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quickfix-labs/quickfix/internal/domain/provider"
)

type ProviderDirectory interface {
	All() []provider.Provider
	ByServiceType(serviceType string) []provider.Provider
	Get(id int) (provider.Provider, bool)
	Similar(p provider.Provider) []provider.Provider
}

type ProvidersHandler struct {
	directory ProviderDirectory
}

func NewProvidersHandler(directory ProviderDirectory) *ProvidersHandler {
	return &ProvidersHandler{directory: directory}
}

func (h *ProvidersHandler) ListProviders(ctx *gin.Context) {
	var providers []provider.Provider

	if serviceType := ctx.Query("category"); serviceType != "" {
		providers = h.directory.ByServiceType(serviceType)
	} else {
		providers = h.directory.All()
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": providers,
		"count": len(providers),
	})
}

func (h *ProvidersHandler) GetProvider(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		RespondBadRequest(ctx, "provider id must be an integer", nil)
		return
	}

	p, ok := h.directory.Get(id)
	if !ok {
		RespondNotFound(ctx, "Provider not found")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"provider":         p,
		"similarProviders": h.directory.Similar(p),
	})
}
