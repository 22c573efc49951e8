package ports

import "go.trai.ch/dock/internal/core/domain"

// ManifestReader reads and validates pinned dependency manifests.
//
//go:generate mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ManifestReader interface {
	// Read parses the manifest at path.
	Read(path string) (*domain.Manifest, error)

	// Validate checks versions and duplicate names, joining every problem found.
	Validate(m *domain.Manifest) error
}
