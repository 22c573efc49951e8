package config

import "go.trai.ch/dock/internal/core/domain"

// Dockfile is the on-disk shape written by `dock config init`.
// Durations are kept as strings so the file stays readable.
type Dockfile struct {
	Server  ServerDTO    `yaml:"server"`
	DataDir string       `yaml:"data_dir"`
	Watch   bool         `yaml:"watch"`
	Browser BrowserDTO   `yaml:"browser"`
	Login   LoginDTO     `yaml:"login"`
	Publish PublishDTO   `yaml:"publish"`
	Apps    []domain.App `yaml:"apps,omitempty"`
}

// ServerDTO mirrors domain.ServerConfig.
type ServerDTO struct {
	Host            string   `yaml:"host"`
	Port            int      `yaml:"port"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
	ShutdownTimeout string   `yaml:"shutdown_timeout"`
}

// BrowserDTO mirrors domain.BrowserConfig.
type BrowserDTO struct {
	ExecPath     string `yaml:"exec_path"`
	UserDataDir  string `yaml:"user_data_dir"`
	Headless     bool   `yaml:"headless"`
	WindowWidth  int    `yaml:"window_width"`
	WindowHeight int    `yaml:"window_height"`
}

// LoginDTO mirrors domain.LoginConfig.
type LoginDTO struct {
	URL              string `yaml:"url"`
	Platform         string `yaml:"platform"`
	SuccessSelector  string `yaml:"success_selector"`
	UsernameSelector string `yaml:"username_selector"`
	Timeout          string `yaml:"timeout"`
	Grace            string `yaml:"grace"`
}

// PublishDTO mirrors domain.PublishConfig.
type PublishDTO struct {
	HomeURL            string `yaml:"home_url"`
	URL                string `yaml:"url"`
	UploadDoneText     string `yaml:"upload_done_text"`
	TitleSelector      string `yaml:"title_selector"`
	PublishSelector    string `yaml:"publish_selector"`
	SuccessURLFragment string `yaml:"success_url_fragment"`
	Timeout            string `yaml:"timeout"`
	Settle             string `yaml:"settle"`
}

// toDockfile converts a resolved configuration to its file form.
func toDockfile(cfg *domain.Config) Dockfile {
	return Dockfile{
		Server: ServerDTO{
			Host:            cfg.Server.Host,
			Port:            cfg.Server.Port,
			AllowedOrigins:  cfg.Server.AllowedOrigins,
			ShutdownTimeout: cfg.Server.ShutdownTimeout.String(),
		},
		DataDir: cfg.DataDir,
		Watch:   cfg.Watch,
		Browser: BrowserDTO(cfg.Browser),
		Login: LoginDTO{
			URL:              cfg.Login.URL,
			Platform:         cfg.Login.Platform,
			SuccessSelector:  cfg.Login.SuccessSelector,
			UsernameSelector: cfg.Login.UsernameSelector,
			Timeout:          cfg.Login.Timeout.String(),
			Grace:            cfg.Login.Grace.String(),
		},
		Publish: PublishDTO{
			HomeURL:            cfg.Publish.HomeURL,
			URL:                cfg.Publish.URL,
			UploadDoneText:     cfg.Publish.UploadDoneText,
			TitleSelector:      cfg.Publish.TitleSelector,
			PublishSelector:    cfg.Publish.PublishSelector,
			SuccessURLFragment: cfg.Publish.SuccessURLFragment,
			Timeout:            cfg.Publish.Timeout.String(),
			Settle:             cfg.Publish.Settle.String(),
		},
		Apps: cfg.Apps,
	}
}
