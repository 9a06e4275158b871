package catalog_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/quickfix-labs/quickfix/internal/cache"
	"github.com/quickfix-labs/quickfix/internal/catalog"
	"github.com/quickfix-labs/quickfix/internal/domain/service"
	"github.com/quickfix-labs/quickfix/internal/repo/memory"
	"github.com/shopspring/decimal"
)

type countingStore struct {
	*memory.Store
	listCalls int
}

func (s *countingStore) ListServices(ctx context.Context) ([]service.Service, error) {
	s.listCalls++
	return s.Store.ListServices(ctx)
}

func newCatalog(t *testing.T) (*catalog.Catalog, *countingStore) {
	t.Helper()
	store := &countingStore{Store: memory.NewStore()}
	c := catalog.New(store, cache.NewMemory(time.Minute), slog.New(slog.DiscardHandler))
	return c, store
}

func svc(id, category, price string) service.Service {
	return service.Service{
		ID:       id,
		Name:     "Fan Installation",
		Category: category,
		Price:    decimal.RequireFromString(price),
		Provider: "amit",
	}
}

func TestListServesSecondReadFromCache(t *testing.T) {
	c, store := newCatalog(t)
	ctx := context.Background()

	if err := c.Add(ctx, svc("s1", "electrical", "300")); err != nil {
		t.Fatalf("add: %v", err)
	}

	first, err := c.List(ctx)
	if err != nil {
		t.Fatalf("first list: %v", err)
	}
	second, err := c.List(ctx)
	if err != nil {
		t.Fatalf("second list: %v", err)
	}

	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("got %d/%d services, want 1/1", len(first), len(second))
	}
	if store.listCalls != 1 {
		t.Fatalf("store scanned %d times, want 1", store.listCalls)
	}
	if !second[0].Price.Equal(decimal.RequireFromString("300")) {
		t.Fatalf("cached price drifted: %s", second[0].Price)
	}
}

func TestAddInvalidatesCachedListings(t *testing.T) {
	c, _ := newCatalog(t)
	ctx := context.Background()

	if err := c.Add(ctx, svc("s1", "electrical", "300")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := c.List(ctx); err != nil {
		t.Fatalf("warm list: %v", err)
	}
	if _, err := c.ListByCategory(ctx, "electrical"); err != nil {
		t.Fatalf("warm category list: %v", err)
	}

	if err := c.Add(ctx, svc("s2", "electrical", "500")); err != nil {
		t.Fatalf("second add: %v", err)
	}

	all, err := c.List(ctx)
	if err != nil {
		t.Fatalf("list after add: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("stale list served: got %d services, want 2", len(all))
	}

	cat, err := c.ListByCategory(ctx, "electrical")
	if err != nil {
		t.Fatalf("category list after add: %v", err)
	}
	if len(cat) != 2 {
		t.Fatalf("stale category list served: got %d, want 2", len(cat))
	}
}
