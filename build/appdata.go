package build

import (
	"os"
	"path/filepath"
)

var (
	// pnchDataDir is the environment variable that tells pnch where to put
	// persisted benchmark reports and logs.
	pnchDataDir = "PNCH_DATA_DIR"
)

// DataDirEnvvar returns the name of the environment variable controlling the
// data directory, for use in help text.
func DataDirEnvvar() string {
	return pnchDataDir
}

// DataDir returns the directory that pnch uses to store benchmark reports and
// logs. The environment variable takes precedence over the default, which is
// a dot directory in the user's home directory.
func DataDir() string {
	dataDir := os.Getenv(pnchDataDir)
	if dataDir != "" {
		return dataDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// No home directory, fall back to the working directory.
		return ".pnch"
	}
	return filepath.Join(home, ".pnch")
}
