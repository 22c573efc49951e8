package domain

import "encoding/json"

// SpecialHandler names an alternative launch behavior for an app.
type SpecialHandler string

const (
	// HandlerNone launches the app through its URL, if any.
	HandlerNone SpecialHandler = ""

	// HandlerXiaohongshuLogin starts the creator-center login watcher instead of opening a URL.
	HandlerXiaohongshuLogin SpecialHandler = "xiaohongshu_login"
)

// IsKnown reports whether the handler is one dock knows how to run.
func (h SpecialHandler) IsKnown() bool {
	switch h {
	case HandlerNone, HandlerXiaohongshuLogin:
		return true
	default:
		return false
	}
}

// MarshalJSON renders the absent handler as null, matching the other optional fields.
func (h SpecialHandler) MarshalJSON() ([]byte, error) {
	if h == HandlerNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(h))
}

// App describes a launchable entry of the desktop catalog.
//
// Key is the lookup key used by the front end. The built-in catalog keys
// apps by their display name.
type App struct {
	Key            string         `json:"-"                         mapstructure:"key"             yaml:"key"`
	ID             string         `json:"id"                        mapstructure:"id"              yaml:"id"`
	Name           string         `json:"name"                      mapstructure:"name"            yaml:"name"`
	DisplayName    string         `json:"display_name"              mapstructure:"display_name"    yaml:"display_name"`
	Icon           string         `json:"icon"                      mapstructure:"icon"            yaml:"icon"`
	Background     string         `json:"background"                mapstructure:"background"      yaml:"background"`
	Category       string         `json:"category"                  mapstructure:"category"        yaml:"category"`
	ExecutablePath *string        `json:"executable_path"           mapstructure:"executable_path" yaml:"executable_path,omitempty"`
	URL            *string        `json:"url"                       mapstructure:"url"             yaml:"url,omitempty"`
	Description    *string        `json:"description"               mapstructure:"description"     yaml:"description,omitempty"`
	SpecialHandler SpecialHandler `json:"special_handler"           mapstructure:"special_handler" yaml:"special_handler,omitempty"`
}

// LaunchURL returns the app URL, or an empty string when the app has none.
func (a *App) LaunchURL() string {
	if a.URL == nil {
		return ""
	}
	return *a.URL
}

// Label returns the name shown to the user, falling back to Name.
func (a *App) Label() string {
	if a.DisplayName != "" {
		return a.DisplayName
	}
	return a.Name
}

// Ptr returns a pointer to s. It keeps optional catalog fields readable.
func Ptr(s string) *string {
	return &s
}

// OpenAction tells the front end what happened after an open request.
type OpenAction string

const (
	// ActionNone means the front end has nothing further to do.
	ActionNone OpenAction = ""

	// ActionOpenPopup means a browser window was opened for the user to log in.
	ActionOpenPopup OpenAction = "open_popup"
)

// OpenResult is the outcome of an open request.
type OpenResult struct {
	Success bool
	Message string
	Action  OpenAction
}
