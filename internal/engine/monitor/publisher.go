package monitor

import (
	"context"
	"strings"

	"go.trai.ch/dock/internal/core/domain"
	"go.trai.ch/dock/internal/core/ports"
	"go.trai.ch/zerr"
)

// PublishRunName labels publish runs in logs and traces.
const PublishRunName = "publish"

// Publisher replays the latest saved login to upload videos.
type Publisher struct {
	runner  *Runner
	browser ports.Browser
	store   ports.SessionStore
	logger  ports.Logger
}

// NewPublisher creates a Publisher.
func NewPublisher(browser ports.Browser, store ports.SessionStore, logger ports.Logger, tracer ports.Tracer) *Publisher {
	return &Publisher{
		runner:  NewRunner(PublishRunName, logger, tracer),
		browser: browser,
		store:   store,
		logger:  logger,
	}
}

// Publish uploads job on the calling goroutine and returns the final page URL.
func (p *Publisher) Publish(ctx context.Context, job domain.PublishJob) (string, error) {
	cookies, err := p.prepare(job)
	if err != nil {
		return "", err
	}
	return p.runner.Run(ctx, p.job(job, cookies))
}

// StartPublish uploads job in the background and returns the run ID.
// Missing fields and a missing login are reported before anything starts.
func (p *Publisher) StartPublish(ctx context.Context, job domain.PublishJob) (string, error) {
	cookies, err := p.prepare(job)
	if err != nil {
		return "", err
	}
	return p.runner.Start(ctx, p.job(job, cookies))
}

// Status reports whether a publish is running and how the last one ended.
func (p *Publisher) Status() domain.RunStatus {
	return p.runner.Status()
}

// Close cancels a running publish and waits for it to finish.
func (p *Publisher) Close() {
	p.runner.Close()
}

func (p *Publisher) prepare(job domain.PublishJob) ([]domain.Cookie, error) {
	if strings.TrimSpace(job.VideoPath) == "" {
		return nil, domain.Tag(domain.ErrInvalidRequest, "field", "video_path")
	}
	if strings.TrimSpace(job.Title) == "" {
		return nil, domain.Tag(domain.ErrInvalidRequest, "field", "title")
	}

	record, err := p.store.Latest()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load saved login")
	}
	if record == nil || len(record.Cookies) == 0 {
		return nil, domain.ErrNotLoggedIn
	}
	return record.Cookies, nil
}

func (p *Publisher) job(job domain.PublishJob, cookies []domain.Cookie) Job {
	return func(ctx context.Context) (string, error) {
		p.logger.Info("publishing " + job.VideoPath)
		return p.browser.Publish(ctx, job, cookies)
	}
}
