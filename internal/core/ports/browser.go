package ports

import (
	"context"

	"go.trai.ch/dock/internal/core/domain"
)

// Browser drives a real browser for the flows that need a human-visible session.
//
//go:generate mockgen -source=browser.go -destination=mocks/mock_browser.go -package=mocks
type Browser interface {
	// AwaitLogin opens the login page and blocks until the user has logged in,
	// the target timeout passes, or ctx is done.
	// A timeout is reported as domain.ErrLoginTimeout.
	AwaitLogin(ctx context.Context, target domain.LoginTarget) (*domain.LoginRecord, error)

	// Publish replays cookies into a fresh session and uploads the job.
	// It returns the URL of the page reached after publishing.
	Publish(ctx context.Context, job domain.PublishJob, cookies []domain.Cookie) (string, error)
}
