// Package monitor runs the long browser flows (login watch, publish) one at a
// time in the background and reports their status.
package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/dock/internal/core/domain"
	"go.trai.ch/dock/internal/core/ports"
	"go.trai.ch/zerr"
)

// Job is one run of a flow. It returns the URL the flow ended on.
type Job func(ctx context.Context) (string, error)

// Runner allows a single active job at a time.
type Runner struct {
	name   string
	logger ports.Logger
	tracer ports.Tracer
	newID  func() string
	now    func() time.Time

	mu     sync.Mutex
	status domain.RunStatus
	cancel context.CancelFunc
	closed bool
	wg     sync.WaitGroup
}

// NewRunner creates a Runner whose spans and logs are labelled name.
func NewRunner(name string, logger ports.Logger, tracer ports.Tracer) *Runner {
	return &Runner{
		name:   name,
		logger: logger,
		tracer: tracer,
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// Status returns a snapshot of the runner state.
func (r *Runner) Status() domain.RunStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Start runs job in a new goroutine and returns its run ID.
// The job outlives ctx; only Close cancels it.
// It returns domain.ErrMonitorBusy when a job is already active.
func (r *Runner) Start(ctx context.Context, job Job) (string, error) {
	runCtx, runID, err := r.begin(context.WithoutCancel(ctx), true)
	if err != nil {
		return "", err
	}

	go func() {
		defer r.wg.Done()
		_, _ = r.execute(runCtx, runID, job)
	}()
	return runID, nil
}

// Run runs job on the calling goroutine under the same single-flight rule.
func (r *Runner) Run(ctx context.Context, job Job) (string, error) {
	runCtx, runID, err := r.begin(ctx, false)
	if err != nil {
		return "", err
	}
	return r.execute(runCtx, runID, job)
}

// Close cancels the active job and waits for background jobs to return.
// No job can start afterwards.
func (r *Runner) Close() {
	r.mu.Lock()
	r.closed = true
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Unlock()

	r.wg.Wait()
}

// begin marks the runner active. Background runs join wg under the same lock Close takes.
func (r *Runner) begin(parent context.Context, background bool) (context.Context, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, "", zerr.With(zerr.Wrap(context.Canceled, "runner closed"), "runner", r.name)
	}
	if r.status.Active {
		return nil, "", zerr.With(domain.Tag(domain.ErrMonitorBusy, "runner", r.name), "run_id", r.status.RunID)
	}

	ctx, cancel := context.WithCancel(parent)
	runID := r.newID()
	r.cancel = cancel
	r.status.Active = true
	r.status.RunID = runID
	r.status.StartedAt = r.now()
	if background {
		r.wg.Add(1)
	}
	return ctx, runID, nil
}

func (r *Runner) execute(ctx context.Context, runID string, job Job) (url string, err error) {
	ctx, span := r.tracer.Start(ctx, r.name)
	span.SetAttribute("run_id", runID)

	defer func() {
		r.finish(url, err)
		span.RecordError(err)
		span.End()
	}()
	defer zerr.Defer(func(panicErr error) {
		err = panicErr
	})

	url, err = job(ctx)
	return url, err
}

func (r *Runner) finish(url string, err error) {
	result := classify(err)

	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.status.Active = false
	r.status.LastResult = result
	r.status.LastFinished = r.now()
	r.status.LastError = ""
	if err != nil {
		r.status.LastError = err.Error()
	}
	if result == domain.RunResultSucceeded {
		r.status.LastURL = url
	}
	r.mu.Unlock()

	switch result {
	case domain.RunResultSucceeded:
		r.logger.Info(r.name + " finished")
	case domain.RunResultTimedOut:
		r.logger.Warn(r.name + " timed out")
	case domain.RunResultCanceled:
		r.logger.Warn(r.name + " canceled")
	default:
		r.logger.Error(zerr.Wrap(err, r.name+" failed"))
	}
}

func classify(err error) domain.RunResult {
	switch {
	case err == nil:
		return domain.RunResultSucceeded
	case errors.Is(err, domain.ErrLoginTimeout), errors.Is(err, context.DeadlineExceeded):
		return domain.RunResultTimedOut
	case errors.Is(err, context.Canceled):
		return domain.RunResultCanceled
	default:
		return domain.RunResultFailed
	}
}
