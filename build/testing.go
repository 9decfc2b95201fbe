package build

import (
	"os"
	"path/filepath"
)

// TempDir joins the provided directories and prefixes them with the testing
// directory, removing any files that may have been left over from previous
// runs of the same test.
func TempDir(dirs ...string) string {
	path := filepath.Join(os.TempDir(), "pest-testing", filepath.Join(dirs...))
	err := os.RemoveAll(path)
	if err != nil {
		Critical("unable to clean testing directory:", err)
	}
	return path
}
