package domain

import "time"

// Config is the fully resolved dock configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"   yaml:"server"`
	DataDir string        `mapstructure:"data_dir" yaml:"data_dir"`
	Watch   bool          `mapstructure:"watch"    yaml:"watch"`
	Browser BrowserConfig `mapstructure:"browser"  yaml:"browser"`
	Login   LoginConfig   `mapstructure:"login"    yaml:"login"`
	Publish PublishConfig `mapstructure:"publish"  yaml:"publish"`
	Apps    []App         `mapstructure:"apps"     yaml:"apps,omitempty"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `mapstructure:"-" yaml:"-"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Host            string        `mapstructure:"host"             yaml:"host"`
	Port            int           `mapstructure:"port"             yaml:"port"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"  yaml:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// BrowserConfig configures the automated Chrome instance.
type BrowserConfig struct {
	ExecPath     string `mapstructure:"exec_path"     yaml:"exec_path,omitempty"`
	UserDataDir  string `mapstructure:"user_data_dir" yaml:"user_data_dir,omitempty"`
	Headless     bool   `mapstructure:"headless"      yaml:"headless"`
	WindowWidth  int    `mapstructure:"window_width"  yaml:"window_width"`
	WindowHeight int    `mapstructure:"window_height" yaml:"window_height"`
}

// LoginConfig configures the creator-center login watcher.
type LoginConfig struct {
	URL              string        `mapstructure:"url"               yaml:"url"`
	Platform         string        `mapstructure:"platform"          yaml:"platform"`
	SuccessSelector  string        `mapstructure:"success_selector"  yaml:"success_selector"`
	UsernameSelector string        `mapstructure:"username_selector" yaml:"username_selector"`
	Timeout          time.Duration `mapstructure:"timeout"           yaml:"timeout"`
	Grace            time.Duration `mapstructure:"grace"             yaml:"grace"`
}

// Target converts the login settings into a watch target.
func (c LoginConfig) Target() LoginTarget {
	return LoginTarget{
		URL:              c.URL,
		Platform:         c.Platform,
		SuccessSelector:  c.SuccessSelector,
		UsernameSelector: c.UsernameSelector,
		Timeout:          c.Timeout,
		Grace:            c.Grace,
	}
}

// PublishConfig configures the cookie-replay publisher.
type PublishConfig struct {
	HomeURL            string        `mapstructure:"home_url"             yaml:"home_url"`
	URL                string        `mapstructure:"url"                  yaml:"url"`
	UploadDoneText     string        `mapstructure:"upload_done_text"     yaml:"upload_done_text"`
	TitleSelector      string        `mapstructure:"title_selector"       yaml:"title_selector"`
	PublishSelector    string        `mapstructure:"publish_selector"     yaml:"publish_selector"`
	SuccessURLFragment string        `mapstructure:"success_url_fragment" yaml:"success_url_fragment"`
	Timeout            time.Duration `mapstructure:"timeout"              yaml:"timeout"`
	// Settle is how long the page is left alone after typing the title and after success.
	Settle time.Duration `mapstructure:"settle" yaml:"settle"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			AllowedOrigins:  []string{"*"},
			ShutdownTimeout: 10 * time.Second,
		},
		DataDir: DefaultDataDir,
		Browser: BrowserConfig{
			WindowWidth:  1400,
			WindowHeight: 900,
		},
		Login: LoginConfig{
			URL:              "https://creator.xiaohongshu.com/login",
			Platform:         "xiaohongshu",
			SuccessSelector:  ".user-avatar",
			UsernameSelector: ".username",
			Timeout:          5 * time.Minute,
			Grace:            2 * time.Second,
		},
		Publish: PublishConfig{
			HomeURL:            "https://creator.xiaohongshu.com",
			URL:                "https://creator.xiaohongshu.com/publish/publish",
			UploadDoneText:     "上传成功",
			TitleSelector:      `input.d-text`,
			PublishSelector:    `button.publishBtn`,
			SuccessURLFragment: "/publish/success",
			Timeout:            2 * time.Minute,
			Settle:             2 * time.Second,
		},
	}
}
