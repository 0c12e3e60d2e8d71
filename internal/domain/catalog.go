package domain

import (
	"embed"
	"fmt"
	"sync"

	json "github.com/goccy/go-json"
)

//go:embed data/destinations.json
var catalogFS embed.FS

// Catalog is the fixed, read-only set of candidate destinations.
type Catalog struct {
	entries []Destination
}

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     *Catalog
	defaultCatalogErr  error
)

// LoadCatalog parses the embedded seed once and returns the shared catalog.
func LoadCatalog() (*Catalog, error) {
	defaultCatalogOnce.Do(func() {
		raw, err := catalogFS.ReadFile("data/destinations.json")
		if err != nil {
			defaultCatalogErr = fmt.Errorf("read destination catalog: %w", err)
			return
		}
		var entries []Destination
		if err := json.Unmarshal(raw, &entries); err != nil {
			defaultCatalogErr = fmt.Errorf("parse destination catalog: %w", err)
			return
		}
		defaultCatalog = NewCatalog(entries)
	})
	return defaultCatalog, defaultCatalogErr
}

// NewCatalog copies entries so later mutation by the caller has no effect.
func NewCatalog(entries []Destination) *Catalog {
	copied := make([]Destination, len(entries))
	for i, d := range entries {
		copied[i] = d.Clone()
	}
	return &Catalog{entries: copied}
}

// All returns deep copies of every entry in seed order.
func (c *Catalog) All() []Destination {
	out := make([]Destination, len(c.entries))
	for i, d := range c.entries {
		out[i] = d.Clone()
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

func (c *Catalog) ByID(id int) (Destination, bool) {
	for _, d := range c.entries {
		if d.ID == id {
			return d.Clone(), true
		}
	}
	return Destination{}, false
}
