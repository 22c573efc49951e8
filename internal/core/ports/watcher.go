package ports

import "context"

//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks

// Watcher notifies about changes to a set of files.
type Watcher interface {
	// Watch blocks until ctx is done, calling onChange after each burst of
	// writes to any of paths.
	Watch(ctx context.Context, paths []string, onChange func()) error
}
