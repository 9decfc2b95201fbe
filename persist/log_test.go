package persist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gitlab.com/emptyspace/pest/build"
)

// TestFileLogger writes through a file logger and checks that the output
// lands on disk with the expected framing.
func TestFileLogger(t *testing.T) {
	t.Parallel()
	testDir := build.TempDir("persist", t.Name())
	if err := os.MkdirAll(testDir, 0700); err != nil {
		t.Fatal(err)
	}
	logFilename := filepath.Join(testDir, "test.log")
	logger, err := NewFileLogger(logFilename)
	if err != nil {
		t.Fatal(err)
	}
	logger.Println("benchmark session started")
	if err := logger.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(logFilename)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "benchmark session started") {
		t.Error("log line missing from file:\n" + out)
	}
}
