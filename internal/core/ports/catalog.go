package ports

import "go.trai.ch/dock/internal/core/domain"

// Catalog holds the launchable apps.
//
//go:generate mockgen -source=catalog.go -destination=mocks/mock_catalog.go -package=mocks
type Catalog interface {
	// List returns every app in catalog order.
	List() []domain.App

	// Lookup finds an app by key, or by name or id ignoring case.
	// It returns domain.ErrAppNotFound when nothing matches.
	Lookup(name string) (domain.App, error)

	// Replace swaps the catalog contents for apps.
	Replace(apps []domain.App) error
}
