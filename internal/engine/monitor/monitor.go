package monitor

import (
	"context"

	"go.trai.ch/dock/internal/core/domain"
	"go.trai.ch/dock/internal/core/ports"
)

// LoginRunName labels login watch runs in logs and traces.
const LoginRunName = "watch-login"

// Monitor watches a browser window until the user logs in, then saves the session.
type Monitor struct {
	runner  *Runner
	browser ports.Browser
	store   ports.SessionStore
	logger  ports.Logger
	target  domain.LoginTarget
}

// NewMonitor creates a Monitor for target.
func NewMonitor(
	browser ports.Browser,
	store ports.SessionStore,
	logger ports.Logger,
	tracer ports.Tracer,
	target domain.LoginTarget,
) *Monitor {
	return &Monitor{
		runner:  NewRunner(LoginRunName, logger, tracer),
		browser: browser,
		store:   store,
		logger:  logger,
		target:  target,
	}
}

// Start begins a watch in the background unless one is already running.
// It reports whether a new watch was started.
func (m *Monitor) Start(ctx context.Context) bool {
	_, err := m.runner.Start(ctx, m.watch)
	return err == nil
}

// Watch runs a watch on the calling goroutine and returns the saved record.
func (m *Monitor) Watch(ctx context.Context) (*domain.LoginRecord, error) {
	var record *domain.LoginRecord
	_, err := m.runner.Run(ctx, func(ctx context.Context) (string, error) {
		r, err := m.capture(ctx)
		record = r
		if err != nil {
			return "", err
		}
		return r.URL, nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Status reports whether a watch is running and how the last one ended.
func (m *Monitor) Status() domain.RunStatus {
	return m.runner.Status()
}

// Close cancels a running watch and waits for it to finish.
func (m *Monitor) Close() {
	m.runner.Close()
}

func (m *Monitor) watch(ctx context.Context) (string, error) {
	record, err := m.capture(ctx)
	if err != nil {
		return "", err
	}
	return record.URL, nil
}

func (m *Monitor) capture(ctx context.Context) (*domain.LoginRecord, error) {
	m.logger.Info("login watcher started, waiting for login")

	record, err := m.browser.AwaitLogin(ctx, m.target)
	if err != nil {
		return nil, err
	}
	if record.Platform == "" {
		record.Platform = m.target.Platform
	}

	path, err := m.store.Save(*record)
	if err != nil {
		return nil, err
	}
	m.logger.Info("login detected for " + record.Username + ", saved to " + path)
	return record, nil
}
