package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dock/internal/adapters/config"
	"go.trai.ch/dock/internal/core/domain"
	"go.trai.ch/dock/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	return config.NewLoader(mocks.NewMockLogger(ctrl))
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, domain.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := newLoader(t).Load(tmpDir, "")
	require.NoError(t, err)

	def := domain.DefaultConfig()
	assert.Empty(t, cfg.Path)
	assert.Equal(t, def.Server, cfg.Server)
	assert.Equal(t, def.Login, cfg.Login)
	assert.Equal(t, def.Publish, cfg.Publish)
	assert.Equal(t, filepath.Join(tmpDir, domain.DefaultDataDir), cfg.DataDir)
	assert.Empty(t, cfg.Apps)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeConfig(t, tmpDir, `
server:
  port: 9001
  allowed_origins: ["http://localhost:3000"]
data_dir: sessions
login:
  timeout: 30s
apps:
  - key: Notes
    id: notes
    name: Notes
    display_name: Notes
    icon: "📝"
    background: "#fff"
    category: tools
    url: https://example.com/notes
`)

	cfg, err := newLoader(t).Load(tmpDir, "")
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, 9001, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.Login.Timeout)
	assert.Equal(t, 2*time.Second, cfg.Login.Grace)
	assert.Equal(t, filepath.Join(tmpDir, "sessions"), cfg.DataDir)

	require.Len(t, cfg.Apps, 1)
	assert.Equal(t, "notes", cfg.Apps[0].ID)
	assert.Equal(t, "https://example.com/notes", cfg.Apps[0].LaunchURL())
	assert.Nil(t, cfg.Apps[0].ExecutablePath)
}

func TestLoad_WalksUpToParent(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "server:\n  port: 8100\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	cfg, err := newLoader(t).Load(nested, "")
	require.NoError(t, err)

	assert.Equal(t, 8100, cfg.Server.Port)
	assert.Equal(t, filepath.Join(root, domain.DefaultDataDir), cfg.DataDir)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "server:\n  port: 9001\n")
	t.Setenv("DOCK_SERVER_PORT", "9100")
	t.Setenv("DOCK_LOGIN_TIMEOUT", "1m")

	cfg, err := newLoader(t).Load(tmpDir, "")
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, time.Minute, cfg.Login.Timeout)
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := newLoader(t).Load(tmpDir, filepath.Join(tmpDir, "nope.yaml"))
	require.ErrorIs(t, err, domain.ErrConfigReadFailed)
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeConfig(t, tmpDir, "server: [unclosed\n")

	_, err := newLoader(t).Load(tmpDir, path)
	require.ErrorIs(t, err, domain.ErrConfigReadFailed)
}

func TestLoad_InvalidPort(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "server:\n  port: 70000\n")

	_, err := newLoader(t).Load(tmpDir, "")
	require.ErrorIs(t, err, domain.ErrConfigInvalid)
}

func TestValidate_Apps(t *testing.T) {
	tests := []struct {
		name    string
		apps    []domain.App
		wantErr error
	}{
		{
			name:    "missing id",
			apps:    []domain.App{{Key: "x", Name: "x"}},
			wantErr: domain.ErrInvalidApp,
		},
		{
			name:    "unknown handler",
			apps:    []domain.App{{Key: "x", ID: "x", Name: "x", SpecialHandler: "teleport"}},
			wantErr: domain.ErrUnknownHandler,
		},
		{
			name: "duplicate key",
			apps: []domain.App{
				{Key: "x", ID: "x", Name: "x"},
				{Key: "x", ID: "y", Name: "y"},
			},
			wantErr: domain.ErrDuplicateAppKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.DefaultConfig()
			cfg.Apps = tt.apps
			require.ErrorIs(t, config.Validate(cfg), tt.wantErr)
		})
	}
}

func TestValidate_Defaults(t *testing.T) {
	assert.NoError(t, config.Validate(domain.DefaultConfig()))
}

func TestWriteDefault(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, domain.ConfigFileName)

	require.NoError(t, config.WriteDefault(path, false))

	cfg, err := newLoader(t).Load(tmpDir, path)
	require.NoError(t, err)
	def := domain.DefaultConfig()
	assert.Equal(t, def.Server, cfg.Server)
	assert.Equal(t, def.Login, cfg.Login)
	assert.Equal(t, def.Publish, cfg.Publish)
	assert.Equal(t, def.Browser, cfg.Browser)

	err = config.WriteDefault(path, false)
	require.ErrorIs(t, err, domain.ErrConfigExists)

	require.NoError(t, config.WriteDefault(path, true))
}
