package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrAppNotFound is returned when no catalog entry matches the requested name.
	ErrAppNotFound = zerr.New("application not found")

	// ErrDuplicateAppKey is returned when two catalog entries share a key.
	ErrDuplicateAppKey = zerr.New("duplicate app key")

	// ErrInvalidApp is returned when a catalog entry is missing required fields.
	ErrInvalidApp = zerr.New("invalid app definition")

	// ErrUnknownHandler is returned when an app names a special handler dock does not know.
	ErrUnknownHandler = zerr.New("unknown special handler")

	// ErrInvalidRequest is returned when an API request body is malformed or incomplete.
	ErrInvalidRequest = zerr.New("invalid request")

	// ErrLaunchFailed is returned when the desktop could not open an app URL.
	ErrLaunchFailed = zerr.New("failed to open url")

	// ErrMonitorBusy is returned when a background run is already in progress.
	ErrMonitorBusy = zerr.New("a run is already in progress")

	// ErrLoginTimeout is returned when the user did not log in before the watch timed out.
	ErrLoginTimeout = zerr.New("login timed out")

	// ErrBrowserStartFailed is returned when the automated browser cannot be started.
	ErrBrowserStartFailed = zerr.New("failed to start browser")

	// ErrCookieCaptureFailed is returned when cookies cannot be read from the browser.
	ErrCookieCaptureFailed = zerr.New("failed to capture cookies")

	// ErrNotLoggedIn is returned when an operation needs a saved login and there is none.
	ErrNotLoggedIn = zerr.New("no saved login, run the login watcher first")

	// ErrPublishFailed is returned when the publish flow does not reach the success page.
	ErrPublishFailed = zerr.New("publish failed")

	// ErrVideoNotFound is returned when the video to publish does not exist.
	ErrVideoNotFound = zerr.New("video file not found")

	// ErrStoreCreateFailed is returned when the data directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create data directory")

	// ErrStoreReadFailed is returned when a login record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read login record")

	// ErrStoreUnmarshalFailed is returned when a login record cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal login record")

	// ErrStoreMarshalFailed is returned when a login record cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal login record")

	// ErrStoreWriteFailed is returned when a login record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write login record")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be decoded.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when the configuration fails validation.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrConfigExists is returned when init would overwrite an existing config file.
	ErrConfigExists = zerr.New("config file already exists")

	// ErrManifestReadFailed is returned when the manifest file cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read manifest")

	// ErrManifestSyntax is returned when an active manifest line is not of the form name==version.
	ErrManifestSyntax = zerr.New("expected name==version")

	// ErrManifestVersion is returned when a pinned version is not an exact semantic version.
	ErrManifestVersion = zerr.New("version is not an exact semantic version")

	// ErrManifestDuplicate is returned when two active lines declare the same package.
	ErrManifestDuplicate = zerr.New("duplicate dependency")

	// ErrManifestInvalid is returned when manifest validation finds any problem.
	ErrManifestInvalid = zerr.New("manifest validation failed")

	// ErrServerFailed is returned when the HTTP server stops unexpectedly.
	ErrServerFailed = zerr.New("http server failed")
)

// Tag attaches metadata to a sentinel without hiding it from errors.Is.
// zerr.With on a bare sentinel copies it, so the sentinel is wrapped first.
func Tag(sentinel error, key string, value any) error {
	return zerr.With(zerr.Wrap(sentinel, ""), key, value)
}

// Wrap attaches cause to sentinel. The result matches both with errors.Is and
// logs as the sentinel's message followed by the cause.
func Wrap(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return &causedError{sentinel: sentinel, cause: cause}
}

type causedError struct {
	sentinel error
	cause    error
}

func (e *causedError) Error() string {
	return e.sentinel.Error() + ": " + e.cause.Error()
}

// Message reports the sentinel alone so chain renderers print the cause separately.
func (e *causedError) Message() string {
	return e.sentinel.Error()
}

func (e *causedError) Is(target error) bool {
	return errors.Is(e.sentinel, target)
}

func (e *causedError) Unwrap() error {
	return e.cause
}
