// Package catalog holds the launchable desktop apps in memory.
package catalog

import (
	"strings"
	"sync"

	"go.trai.ch/dock/internal/core/domain"
	"go.trai.ch/dock/internal/core/ports"
)

var _ ports.Catalog = (*Catalog)(nil)

// Catalog is an ordered, concurrency-safe set of apps.
type Catalog struct {
	mu    sync.RWMutex
	apps  []domain.App
	byKey map[string]int
}

// New creates a catalog holding apps in the given order.
func New(apps []domain.App) (*Catalog, error) {
	c := &Catalog{}
	if err := c.Replace(apps); err != nil {
		return nil, err
	}
	return c, nil
}

// Merge returns base with overrides applied: an override replaces the entry
// with the same key in place, anything else is appended.
func Merge(base, overrides []domain.App) []domain.App {
	merged := make([]domain.App, len(base), len(base)+len(overrides))
	copy(merged, base)

	index := make(map[string]int, len(merged))
	for i := range merged {
		index[merged[i].Key] = i
	}
	for i := range overrides {
		if at, ok := index[overrides[i].Key]; ok {
			merged[at] = overrides[i]
			continue
		}
		index[overrides[i].Key] = len(merged)
		merged = append(merged, overrides[i])
	}
	return merged
}

// List returns a copy of every app in catalog order.
func (c *Catalog) List() []domain.App {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.App, len(c.apps))
	copy(out, c.apps)
	return out
}

// Lookup finds an app by its exact key first, then by name or id ignoring case.
func (c *Catalog) Lookup(name string) (domain.App, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i, ok := c.byKey[name]; ok {
		return c.apps[i], nil
	}
	for i := range c.apps {
		if strings.EqualFold(c.apps[i].Name, name) || strings.EqualFold(c.apps[i].ID, name) {
			return c.apps[i], nil
		}
	}
	return domain.App{}, domain.Tag(domain.ErrAppNotFound, "app", name)
}

// Replace swaps the catalog contents. The old contents are kept when apps is invalid.
func (c *Catalog) Replace(apps []domain.App) error {
	byKey := make(map[string]int, len(apps))
	for i := range apps {
		if apps[i].Key == "" {
			return domain.Tag(domain.ErrInvalidApp, "id", apps[i].ID)
		}
		if _, dup := byKey[apps[i].Key]; dup {
			return domain.Tag(domain.ErrDuplicateAppKey, "key", apps[i].Key)
		}
		byKey[apps[i].Key] = i
	}

	snapshot := make([]domain.App, len(apps))
	copy(snapshot, apps)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.apps = snapshot
	c.byKey = byKey
	return nil
}
