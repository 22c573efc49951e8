package ports

import "context"

// Launcher opens URLs with the desktop's default handler.
//
//go:generate mockgen -source=launcher.go -destination=mocks/mock_launcher.go -package=mocks
type Launcher interface {
	Open(ctx context.Context, url string) error
}
