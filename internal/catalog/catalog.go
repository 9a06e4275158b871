// Package catalog fronts the service store with a short-TTL read cache.
// Catalog reads are full scans, so even a few seconds of caching keeps the
// dashboard from hammering the table on every page load.
package catalog

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/quickfix-labs/quickfix/internal/cache"
	"github.com/quickfix-labs/quickfix/internal/domain/service"
	"github.com/quickfix-labs/quickfix/internal/repo"
)

type Catalog struct {
	store repo.Services
	cache cache.Cache
	log   *slog.Logger
}

func New(store repo.Services, c cache.Cache, log *slog.Logger) *Catalog {
	return &Catalog{store: store, cache: c, log: log}
}

func listKey() string {
	return "services:list:v1:all"
}

func categoryKey(category string) string {
	return "services:list:v1:cat=" + category
}

func (c *Catalog) List(ctx context.Context) ([]service.Service, error) {
	return c.cached(ctx, listKey(), func(ctx context.Context) ([]service.Service, error) {
		return c.store.ListServices(ctx)
	})
}

func (c *Catalog) ListByCategory(ctx context.Context, category string) ([]service.Service, error) {
	return c.cached(ctx, categoryKey(category), func(ctx context.Context) ([]service.Service, error) {
		return c.store.ListServicesByCategory(ctx, category)
	})
}

func (c *Catalog) Add(ctx context.Context, svc service.Service) error {
	if err := c.store.AddService(ctx, svc); err != nil {
		return err
	}

	c.cache.Delete(ctx, listKey())
	c.cache.Delete(ctx, categoryKey(svc.Category))
	return nil
}

func (c *Catalog) cached(ctx context.Context, key string, load func(ctx context.Context) ([]service.Service, error)) ([]service.Service, error) {
	if raw, ok := c.cache.Get(ctx, key); ok {
		var out []service.Service
		if err := json.Unmarshal(raw, &out); err == nil {
			return out, nil
		}
		// a corrupt entry is dropped, not served
		c.cache.Delete(ctx, key)
	}

	out, err := load(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(out)
	if err != nil {
		c.log.Warn("could not encode catalog cache entry", "key", key, "err", err)
		return out, nil
	}
	c.cache.Set(ctx, key, raw)

	return out, nil
}
