// Package launcher opens URLs with the desktop's default handler.
package launcher

import (
	"context"

	"github.com/pkg/browser"
	"go.trai.ch/dock/internal/core/domain"
	"go.trai.ch/dock/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Launcher = (*Launcher)(nil)

// OpenFunc opens a single URL.
type OpenFunc func(url string) error

// Launcher implements ports.Launcher on top of github.com/pkg/browser.
type Launcher struct {
	open OpenFunc
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithOpenFunc replaces the function used to open URLs.
func WithOpenFunc(fn OpenFunc) Option {
	return func(l *Launcher) {
		l.open = fn
	}
}

// New creates a Launcher. By default it hands the URL to open, xdg-open or
// rundll32 depending on the platform.
func New(opts ...Option) *Launcher {
	l := &Launcher{open: browser.OpenURL}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Open opens url unless ctx is already done.
func (l *Launcher) Open(ctx context.Context, url string) error {
	if url == "" {
		return domain.Tag(domain.ErrLaunchFailed, "reason", "empty url")
	}
	if err := ctx.Err(); err != nil {
		return zerr.With(domain.Wrap(domain.ErrLaunchFailed, err), "url", url)
	}
	if err := l.open(url); err != nil {
		return zerr.With(domain.Wrap(domain.ErrLaunchFailed, err), "url", url)
	}
	return nil
}
