// Package app implements the application layer for dock.
package app

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/dock/internal/adapters/catalog" //nolint:depguard // Wired in app layer
	"go.trai.ch/dock/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/dock/internal/adapters/httpapi" //nolint:depguard // Wired in app layer
	"go.trai.ch/dock/internal/core/domain"
	"go.trai.ch/dock/internal/core/ports"
	"go.trai.ch/dock/internal/engine/monitor"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	msgLoginPopup   = "请在弹出的窗口中登录小红书创作者中心"
	msgLoginRunning = "登录监控已在运行中，请完成当前登录"
)

// App represents the main application logic.
type App struct {
	cfg       *domain.Config
	loader    ports.ConfigLoader
	catalog   ports.Catalog
	launcher  ports.Launcher
	store     ports.SessionStore
	manifests ports.ManifestReader
	watcher   ports.Watcher
	monitor   *monitor.Monitor
	publisher *monitor.Publisher
	logger    ports.Logger
	tracer    ports.Tracer
}

var _ httpapi.Service = (*App)(nil)

// New creates a new App instance.
func New(
	cfg *domain.Config,
	loader ports.ConfigLoader,
	apps ports.Catalog,
	launcher ports.Launcher,
	store ports.SessionStore,
	manifests ports.ManifestReader,
	watcher ports.Watcher,
	mon *monitor.Monitor,
	publisher *monitor.Publisher,
	log ports.Logger,
	tracer ports.Tracer,
) *App {
	return &App{
		cfg:       cfg,
		loader:    loader,
		catalog:   apps,
		launcher:  launcher,
		store:     store,
		manifests: manifests,
		watcher:   watcher,
		monitor:   mon,
		publisher: publisher,
		logger:    log,
		tracer:    tracer,
	}
}

// Serve runs the HTTP API on the configured address until ctx is done.
func (a *App) Serve(ctx context.Context) error {
	srv := httpapi.NewServer(a, a.cfg.Server, a.logger, a.tracer)
	return a.serve(ctx, srv.ListenAndServe)
}

// ServeListener runs the HTTP API on lis until ctx is done.
func (a *App) ServeListener(ctx context.Context, lis net.Listener) error {
	srv := httpapi.NewServer(a, a.cfg.Server, a.logger, a.tracer)
	return a.serve(ctx, func(ctx context.Context) error {
		return srv.Serve(ctx, lis)
	})
}

// Close cancels any login watch or publish still running and waits for them.
// It is safe to call more than once.
func (a *App) Close() {
	a.monitor.Close()
	a.publisher.Close()
}

// serve runs the API next to the config watcher. Background runs are
// cancelled once both have stopped.
func (a *App) serve(ctx context.Context, listen func(context.Context) error) error {
	defer a.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return listen(gctx)
	})
	if a.cfg.Watch && a.cfg.Path != "" {
		g.Go(func() error {
			return a.watcher.Watch(gctx, []string{a.cfg.Path}, a.reload)
		})
	}

	if err := g.Wait(); err != nil {
		return zerr.Wrap(err, "server stopped")
	}
	return nil
}

// reload re-reads the config file and swaps in its catalog.
// A broken file keeps the current catalog.
func (a *App) reload() {
	cfg, err := a.loader.Load(filepath.Dir(a.cfg.Path), a.cfg.Path)
	if err != nil {
		a.logger.Error(zerr.Wrap(err, "config reload failed, keeping current catalog"))
		return
	}
	if err := a.catalog.Replace(catalog.Merge(catalog.Defaults(), cfg.Apps)); err != nil {
		a.logger.Error(zerr.Wrap(err, "catalog reload failed"))
		return
	}
	a.logger.Info("reloaded catalog from " + a.cfg.Path)
}

// ListApps returns the catalog.
func (a *App) ListApps() []domain.App {
	return a.catalog.List()
}

// OpenApp launches the named app. Apps with the login handler start the
// login watcher instead of opening a URL.
func (a *App) OpenApp(ctx context.Context, name string) (domain.OpenResult, error) {
	app, err := a.catalog.Lookup(name)
	if err != nil {
		return domain.OpenResult{}, err
	}

	if app.SpecialHandler == domain.HandlerXiaohongshuLogin {
		if !a.monitor.Start(ctx) {
			return domain.OpenResult{Message: msgLoginRunning}, nil
		}
		return domain.OpenResult{
			Success: true,
			Message: msgLoginPopup,
			Action:  domain.ActionOpenPopup,
		}, nil
	}

	url := app.LaunchURL()
	if url == "" {
		return domain.OpenResult{Success: true, Message: app.Label() + " has no launch method"}, nil
	}
	if err := a.launcher.Open(ctx, url); err != nil {
		a.logger.Warn("failed to open " + app.Label() + ": " + err.Error())
		return domain.OpenResult{Message: "Failed to open " + app.Label() + ": " + err.Error()}, nil
	}
	return domain.OpenResult{Success: true, Message: "Successfully opened " + app.Label()}, nil
}

// LoginStatus reports the latest saved login. Unreadable records count as logged out.
func (a *App) LoginStatus() domain.LoginStatus {
	record, err := a.store.Latest()
	if err != nil {
		a.logger.Warn("cannot read latest login: " + err.Error())
		return domain.LoginStatus{}
	}
	if record == nil {
		return domain.LoginStatus{}
	}

	username := record.Username
	if username == "" {
		username = domain.UnknownUsername
	}
	return domain.LoginStatus{
		LoggedIn:  true,
		Username:  username,
		LoginTime: record.LoginTime,
	}
}

// Logins lists saved login snapshots, newest first.
func (a *App) Logins() ([]domain.LoginSummary, error) {
	return a.store.History()
}

// MonitorStatus reports the login watcher state.
func (a *App) MonitorStatus() domain.RunStatus {
	return a.monitor.Status()
}

// WatchLogin runs the login watcher in the foreground.
func (a *App) WatchLogin(ctx context.Context) (*domain.LoginRecord, error) {
	return a.monitor.Watch(ctx)
}

// Publish uploads a video in the foreground and returns the final page URL.
func (a *App) Publish(ctx context.Context, job domain.PublishJob) (string, error) {
	if err := checkVideo(job.VideoPath); err != nil {
		return "", err
	}
	return a.publisher.Publish(ctx, job)
}

// StartPublish uploads a video in the background and returns the run ID.
func (a *App) StartPublish(ctx context.Context, job domain.PublishJob) (string, error) {
	if err := checkVideo(job.VideoPath); err != nil {
		return "", err
	}
	return a.publisher.StartPublish(ctx, job)
}

// PublishStatus reports the background publisher state.
func (a *App) PublishStatus() domain.RunStatus {
	return a.publisher.Status()
}

// CheckManifest reads and validates the manifest at path.
// The parsed manifest is returned alongside validation problems.
func (a *App) CheckManifest(path string) (*domain.Manifest, error) {
	if path == "" {
		path = domain.DefaultManifestFile
	}
	m, err := a.manifests.Read(path)
	if err != nil {
		return nil, err
	}
	return m, a.manifests.Validate(m)
}

// ReadManifest parses the manifest at path without validating it.
func (a *App) ReadManifest(path string) (*domain.Manifest, error) {
	if path == "" {
		path = domain.DefaultManifestFile
	}
	return a.manifests.Read(path)
}

// InitConfig writes the default configuration to path.
func (a *App) InitConfig(path string, force bool) error {
	if err := config.WriteDefault(path, force); err != nil {
		return err
	}
	a.logger.Info("wrote default configuration to " + path)
	return nil
}

// checkVideo rejects a missing video before a run is started.
// A blank path is left for the publisher to report.
func checkVideo(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return domain.Tag(domain.ErrVideoNotFound, "path", path)
	}
	return nil
}
