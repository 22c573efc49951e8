package ports

import "go.trai.ch/dock/internal/core/domain"

// SessionStore persists captured logins.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type SessionStore interface {
	// Save writes a timestamped snapshot and replaces the latest login.
	// It returns the snapshot path.
	Save(record domain.LoginRecord) (string, error)

	// Latest returns the most recent login.
	// Returns nil, nil if none has been saved.
	Latest() (*domain.LoginRecord, error)

	// History lists saved snapshots, newest first.
	History() ([]domain.LoginSummary, error)
}
