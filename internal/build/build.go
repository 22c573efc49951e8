// Package build holds build-time information.
package build

var (
	// Version is the application version.
	// It defaults to "dev" and can be overwritten by linker flags.
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = "none"

	// Date is the build date.
	Date = "unknown"
)

// APIVersion is the version reported by the HTTP API root endpoint.
// The desktop front end pins against it, so it moves independently of Version.
const APIVersion = "0.1.0"
