// Package directory serves the provider listings. The data set is a seed
// fixture loaded once at startup and read-only after that.
package directory

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/quickfix-labs/quickfix/internal/domain/provider"
)

type Directory struct {
	providers []provider.Provider
	byID      map[int]provider.Provider
}

// Load reads the provider fixture from path and indexes it. Duplicate IDs
// are a broken fixture and fail startup.
func Load(path string) (*Directory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read provider seed %s: %w", path, err)
	}

	var providers []provider.Provider
	if err := json.Unmarshal(raw, &providers); err != nil {
		return nil, fmt.Errorf("parse provider seed %s: %w", path, err)
	}

	d := &Directory{
		providers: providers,
		byID:      make(map[int]provider.Provider, len(providers)),
	}
	for _, p := range providers {
		if _, dup := d.byID[p.ID]; dup {
			return nil, fmt.Errorf("provider seed %s: duplicate provider id %d", path, p.ID)
		}
		d.byID[p.ID] = p
	}

	return d, nil
}

func (d *Directory) All() []provider.Provider {
	out := make([]provider.Provider, len(d.providers))
	copy(out, d.providers)
	return out
}

// ByServiceType matches the stored lower-case tag. The query is lowered
// here, at the boundary, so "Electrical" and "electrical" find the same
// providers; the tag itself stays exact.
func (d *Directory) ByServiceType(serviceType string) []provider.Provider {
	want := strings.ToLower(serviceType)

	out := make([]provider.Provider, 0)
	for _, p := range d.providers {
		if p.ServiceType == want {
			out = append(out, p)
		}
	}
	return out
}

func (d *Directory) Get(id int) (provider.Provider, bool) {
	p, ok := d.byID[id]
	return p, ok
}

// Similar returns providers offering the same service type, excluding p
// itself.
func (d *Directory) Similar(p provider.Provider) []provider.Provider {
	out := make([]provider.Provider, 0)
	for _, other := range d.providers {
		if other.ServiceType == p.ServiceType && other.ID != p.ID {
			out = append(out, other)
		}
	}
	return out
}
