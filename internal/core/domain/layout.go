package domain

import (
	"path/filepath"
	"time"
)

const (
	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "dock.yaml"

	// DefaultDataDir is where login snapshots are written, relative to the working directory.
	DefaultDataDir = "data"

	// LatestLoginFile is the name of the file that always holds the most recent login.
	LatestLoginFile = "latest_login.json"

	// LoginFilePrefix prefixes timestamped login snapshots.
	LoginFilePrefix = "user_login_"

	// LoginFileTimeLayout is the timestamp layout used in snapshot file names.
	LoginFileTimeLayout = "20060102_150405"

	// DefaultManifestFile is the manifest checked when no path is given.
	DefaultManifestFile = "requirements.txt"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// LatestLoginPath returns the path of the latest login file inside dataDir.
func LatestLoginPath(dataDir string) string {
	return filepath.Join(dataDir, LatestLoginFile)
}

// LoginSnapshotPath returns the timestamped snapshot path for a login at t.
func LoginSnapshotPath(dataDir string, t time.Time) string {
	return filepath.Join(dataDir, LoginFilePrefix+t.Format(LoginFileTimeLayout)+".json")
}
