// Package config provides the configuration loader for dock.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"go.trai.ch/dock/internal/core/domain"
	"go.trai.ch/dock/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment variable overrides, e.g. DOCK_SERVER_PORT.
const EnvPrefix = "DOCK"

var decodeHook = viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
	mapstructure.StringToTimeDurationHookFunc(),
	mapstructure.StringToSliceHookFunc(","),
))

// Loader implements ports.ConfigLoader using viper over a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load resolves the configuration for cwd.
// An explicit path must exist. Without one, cwd and its parents are searched
// for dock.yaml, and the built-in defaults are used when none is found.
// Environment variables override both.
func (l *Loader) Load(cwd, path string) (*domain.Config, error) {
	if path == "" {
		path = l.findConfiguration(cwd)
	} else if _, err := os.Stat(path); err != nil {
		return nil, zerr.With(domain.Wrap(domain.ErrConfigReadFailed, err), "path", path)
	}

	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, zerr.With(domain.Wrap(domain.ErrConfigReadFailed, err), "path", path)
		}
	}

	cfg := &domain.Config{}
	if err := v.Unmarshal(cfg, decodeHook); err != nil {
		return nil, zerr.With(domain.Wrap(domain.ErrConfigParseFailed, err), "path", path)
	}

	baseDir := cwd
	if path != "" {
		abs, err := filepath.Abs(path)
		if err == nil {
			path = abs
		}
		baseDir = filepath.Dir(path)
	}
	cfg.Path = path
	if !filepath.IsAbs(cfg.DataDir) {
		cfg.DataDir = filepath.Join(baseDir, cfg.DataDir)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every scalar key needs a default so AutomaticEnv can see it during Unmarshal.
	def := domain.DefaultConfig()
	v.SetDefault("server.host", def.Server.Host)
	v.SetDefault("server.port", def.Server.Port)
	v.SetDefault("server.allowed_origins", def.Server.AllowedOrigins)
	v.SetDefault("server.shutdown_timeout", def.Server.ShutdownTimeout)
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("watch", def.Watch)
	v.SetDefault("browser.exec_path", def.Browser.ExecPath)
	v.SetDefault("browser.user_data_dir", def.Browser.UserDataDir)
	v.SetDefault("browser.headless", def.Browser.Headless)
	v.SetDefault("browser.window_width", def.Browser.WindowWidth)
	v.SetDefault("browser.window_height", def.Browser.WindowHeight)
	v.SetDefault("login.url", def.Login.URL)
	v.SetDefault("login.platform", def.Login.Platform)
	v.SetDefault("login.success_selector", def.Login.SuccessSelector)
	v.SetDefault("login.username_selector", def.Login.UsernameSelector)
	v.SetDefault("login.timeout", def.Login.Timeout)
	v.SetDefault("login.grace", def.Login.Grace)
	v.SetDefault("publish.home_url", def.Publish.HomeURL)
	v.SetDefault("publish.url", def.Publish.URL)
	v.SetDefault("publish.upload_done_text", def.Publish.UploadDoneText)
	v.SetDefault("publish.title_selector", def.Publish.TitleSelector)
	v.SetDefault("publish.publish_selector", def.Publish.PublishSelector)
	v.SetDefault("publish.success_url_fragment", def.Publish.SuccessURLFragment)
	v.SetDefault("publish.timeout", def.Publish.Timeout)
	v.SetDefault("publish.settle", def.Publish.Settle)
	return v
}

// findConfiguration walks up from cwd looking for dock.yaml.
func (l *Loader) findConfiguration(cwd string) string {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return ""
		}
		currentDir = parentDir
	}
}

// WriteDefault writes the default configuration to path.
// It refuses to overwrite an existing file unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return domain.Tag(domain.ErrConfigExists, "path", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return domain.Wrap(domain.ErrConfigReadFailed, err)
		}
	}

	data, err := yaml.Marshal(toDockfile(domain.DefaultConfig()))
	if err != nil {
		return zerr.Wrap(err, "failed to marshal default config")
	}

	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write config file"), "path", path)
	}
	return nil
}

// Validate checks the configuration for values dock cannot run with.
func Validate(cfg *domain.Config) error {
	var errs error

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = errors.Join(errs, domain.Tag(domain.ErrConfigInvalid, "server.port", cfg.Server.Port))
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		errs = errors.Join(errs, domain.Tag(domain.ErrConfigInvalid, "server.shutdown_timeout", cfg.Server.ShutdownTimeout))
	}
	if cfg.Login.Timeout <= 0 {
		errs = errors.Join(errs, domain.Tag(domain.ErrConfigInvalid, "login.timeout", cfg.Login.Timeout))
	}
	if cfg.Publish.Timeout <= 0 {
		errs = errors.Join(errs, domain.Tag(domain.ErrConfigInvalid, "publish.timeout", cfg.Publish.Timeout))
	}

	seen := make(map[string]struct{}, len(cfg.Apps))
	for i := range cfg.Apps {
		app := &cfg.Apps[i]
		if err := ValidateApp(app); err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		if _, dup := seen[app.Key]; dup {
			errs = errors.Join(errs, domain.Tag(domain.ErrDuplicateAppKey, "key", app.Key))
		}
		seen[app.Key] = struct{}{}
	}

	return errs
}

// ValidateApp checks a single catalog entry.
func ValidateApp(app *domain.App) error {
	if app.Key == "" || app.ID == "" || app.Name == "" {
		return zerr.With(domain.Tag(domain.ErrInvalidApp, "key", app.Key), "id", app.ID)
	}
	if !app.SpecialHandler.IsKnown() {
		return zerr.With(domain.Tag(domain.ErrUnknownHandler, "key", app.Key), "special_handler", string(app.SpecialHandler))
	}
	return nil
}
