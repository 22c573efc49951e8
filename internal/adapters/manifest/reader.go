package manifest

import (
	"os"

	"go.trai.ch/dock/internal/core/domain"
	"go.trai.ch/dock/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestReader = (*Reader)(nil)

// Reader implements ports.ManifestReader for files on disk.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read parses the manifest at path.
func (r *Reader) Read(path string) (*domain.Manifest, error) {
	//nolint:gosec // Path is provided by the user on purpose
	f, err := os.Open(path)
	if err != nil {
		return nil, zerr.With(domain.Wrap(domain.ErrManifestReadFailed, err), "path", path)
	}
	defer func() { _ = f.Close() }()

	m, err := Parse(f)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	m.Path = path
	return m, nil
}

// Validate checks versions and duplicate names.
func (r *Reader) Validate(m *domain.Manifest) error {
	return Validate(m)
}
