package persist

import (
	"os"
	"path/filepath"
	"testing"

	"gitlab.com/NebulousLabs/errors"
	"gitlab.com/emptyspace/pest/build"
)

// TestRandomSuffix checks that random suffixes are filename-safe and unique.
func TestRandomSuffix(t *testing.T) {
	t.Parallel()
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		suffix := RandomSuffix()
		if len(suffix) != 20 {
			t.Fatal("suffix has wrong length:", suffix)
		}
		for _, c := range suffix {
			if !(c >= 'A' && c <= 'Z') && !(c >= '2' && c <= '7') {
				t.Fatal("suffix contains non-base32 character:", suffix)
			}
		}
		if _, exists := seen[suffix]; exists {
			t.Fatal("suffix collision:", suffix)
		}
		seen[suffix] = struct{}{}
	}
}

// TestSaveLoadJSON saves an object and loads it back, checking the metadata
// guards along the way.
func TestSaveLoadJSON(t *testing.T) {
	t.Parallel()
	testDir := build.TempDir("persist", t.Name())
	filename := filepath.Join(testDir, "test.json")
	meta := Metadata{Header: "persist test", Version: "1.0"}

	type object struct {
		Name    string  `json:"name"`
		Samples []int64 `json:"samples"`
		Mean    float64 `json:"mean"`
	}
	saved := object{Name: "lcg", Samples: []int64{3, 1, 2}, Mean: 2.0}
	if err := SaveJSON(meta, saved, filename); err != nil {
		t.Fatal(err)
	}

	var loaded object
	if err := LoadJSON(meta, &loaded, filename); err != nil {
		t.Fatal(err)
	}
	if loaded.Name != saved.Name || loaded.Mean != saved.Mean {
		t.Error("loaded object does not match:", loaded)
	}
	if len(loaded.Samples) != 3 || loaded.Samples[0] != 3 {
		t.Error("loaded samples do not match:", loaded.Samples)
	}

	// The commit must leave no temp file behind.
	if _, err := os.Stat(filename + tempSuffix); !os.IsNotExist(err) {
		t.Error("temp file was not cleaned up")
	}

	// Loading with a different header or version must be rejected.
	err := LoadJSON(Metadata{Header: "wrong", Version: "1.0"}, &loaded, filename)
	if !errors.Contains(err, ErrBadHeader) {
		t.Error("expected ErrBadHeader, got", err)
	}
	err = LoadJSON(Metadata{Header: "persist test", Version: "2.0"}, &loaded, filename)
	if !errors.Contains(err, ErrBadVersion) {
		t.Error("expected ErrBadVersion, got", err)
	}
}

// TestSaveJSONOverwrite checks that saving over an existing file replaces the
// contents atomically.
func TestSaveJSONOverwrite(t *testing.T) {
	t.Parallel()
	testDir := build.TempDir("persist", t.Name())
	filename := filepath.Join(testDir, "overwrite.json")
	meta := Metadata{Header: "persist test", Version: "1.0"}

	if err := SaveJSON(meta, "first", filename); err != nil {
		t.Fatal(err)
	}
	if err := SaveJSON(meta, "second", filename); err != nil {
		t.Fatal(err)
	}
	var loaded string
	if err := LoadJSON(meta, &loaded, filename); err != nil {
		t.Fatal(err)
	}
	if loaded != "second" {
		t.Error("overwrite did not take:", loaded)
	}
}

// TestBadFilenameSuffix checks that files ending in the reserved temp suffix
// are refused.
func TestBadFilenameSuffix(t *testing.T) {
	t.Parallel()
	testDir := build.TempDir("persist", t.Name())
	filename := filepath.Join(testDir, "object"+tempSuffix)
	meta := Metadata{Header: "persist test", Version: "1.0"}

	if err := SaveJSON(meta, "data", filename); !errors.Contains(err, ErrBadFilenameSuffix) {
		t.Error("expected ErrBadFilenameSuffix, got", err)
	}
	if err := LoadJSON(meta, new(string), filename); !errors.Contains(err, ErrBadFilenameSuffix) {
		t.Error("expected ErrBadFilenameSuffix, got", err)
	}
}

// TestRemoveFile checks that both the committed file and any stale temp file
// are removed.
func TestRemoveFile(t *testing.T) {
	t.Parallel()
	testDir := build.TempDir("persist", t.Name())
	filename := filepath.Join(testDir, "removable.json")
	meta := Metadata{Header: "persist test", Version: "1.0"}

	if err := SaveJSON(meta, "data", filename); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filename+tempSuffix, []byte("stale"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := RemoveFile(filename); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filename); !os.IsNotExist(err) {
		t.Error("file still exists after removal")
	}
	if _, err := os.Stat(filename + tempSuffix); !os.IsNotExist(err) {
		t.Error("temp file still exists after removal")
	}
}

// TestLoadJSONMissing checks that loading a nonexistent file reports the open
// failure rather than a metadata error.
func TestLoadJSONMissing(t *testing.T) {
	t.Parallel()
	testDir := build.TempDir("persist", t.Name())
	meta := Metadata{Header: "persist test", Version: "1.0"}
	err := LoadJSON(meta, new(string), filepath.Join(testDir, "ghost.json"))
	if err == nil {
		t.Fatal("expected an error loading a missing file")
	}
	if errors.Contains(err, ErrBadHeader) || errors.Contains(err, ErrBadVersion) {
		t.Error("missing file misreported as metadata mismatch:", err)
	}
}
