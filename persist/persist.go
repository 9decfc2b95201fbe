// Package persist saves benchmark reports and other small objects to disk as
// JSON with a metadata header, and provides the project logger.
package persist

import (
	"bytes"
	"encoding/base32"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gitlab.com/NebulousLabs/errors"
	"gitlab.com/NebulousLabs/fastrand"
)

const (
	// defaultFilePermissions are used when a persist file is created.
	defaultFilePermissions = 0600

	// defaultDirPermissions are used when a persist directory is created.
	defaultDirPermissions = 0700

	// tempSuffix is the suffix applied to the temporary version of a file
	// being persisted, so that a crash mid-write cannot tear the real file.
	tempSuffix = "_temp"
)

var (
	// ErrBadFilenameSuffix indicates that SaveJSON or LoadJSON was called
	// using a filename that has a bad suffix. This prevents users from trying
	// to use this package to manage the temp files - this package will manage
	// them automatically.
	ErrBadFilenameSuffix = errors.New("filename suffix not allowed")

	// ErrBadHeader indicates that the file opened is not the file that was
	// expected.
	ErrBadHeader = errors.New("wrong header")

	// ErrBadVersion indicates that the version number of the file is not
	// compatible with the current codebase.
	ErrBadVersion = errors.New("incompatible version")

	// ErrFileInUse is returned if SaveJSON or LoadJSON is called on a file
	// that's already being manipulated in another thread by the persist
	// package.
	ErrFileInUse = errors.New("another thread is saving or loading this file")
)

var (
	// activeFiles is a map tracking which filenames are currently being used
	// for saving and loading. There should never be a situation where the
	// same file is accessed twice from different threads, as the persist
	// package has no way to tell what order they were intended to happen in.
	activeFiles   = make(map[string]struct{})
	activeFilesMu sync.Mutex
)

// Metadata contains the header and version of the data being stored.
type Metadata struct {
	Header  string
	Version string
}

// RandomSuffix returns a 20 character base32 suffix for a filename. There are
// 100 bits of entropy, and a very low probability of colliding with existing
// files unintentionally.
func RandomSuffix() string {
	str := base32.StdEncoding.EncodeToString(fastrand.Bytes(20))
	return str[:20]
}

// RemoveFile removes an atomic file from disk, along with any uncommitted or
// temporary files.
func RemoveFile(filename string) error {
	err := os.RemoveAll(filename)
	if err != nil {
		return err
	}
	return os.RemoveAll(filename + tempSuffix)
}

// registerFile claims filename for the calling thread.
func registerFile(filename string) error {
	activeFilesMu.Lock()
	defer activeFilesMu.Unlock()
	if _, exists := activeFiles[filename]; exists {
		return ErrFileInUse
	}
	activeFiles[filename] = struct{}{}
	return nil
}

// releaseFile releases the claim on filename.
func releaseFile(filename string) {
	activeFilesMu.Lock()
	defer activeFilesMu.Unlock()
	delete(activeFiles, filename)
}

// encodeJSON encodes the metadata header lines followed by the object.
func encodeJSON(meta Metadata, object interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if err := enc.Encode(meta.Header); err != nil {
		return nil, errors.AddContext(err, "unable to encode metadata header")
	}
	if err := enc.Encode(meta.Version); err != nil {
		return nil, errors.AddContext(err, "unable to encode metadata version")
	}
	objBytes, err := json.MarshalIndent(object, "", "\t")
	if err != nil {
		return nil, errors.AddContext(err, "unable to marshal object")
	}
	buf.Write(objBytes)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// SaveJSON saves an object to disk in a readable JSON format, prefixed by the
// metadata as two JSON lines. The data is written to a temporary file which
// is synced and then renamed over the destination, so a crash at any point
// leaves either the old file or the new one, never a torn mix.
func SaveJSON(meta Metadata, object interface{}, filename string) error {
	if strings.HasSuffix(filename, tempSuffix) {
		return ErrBadFilenameSuffix
	}
	if err := registerFile(filename); err != nil {
		return err
	}
	defer releaseFile(filename)

	data, err := encodeJSON(meta, object)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(filename), defaultDirPermissions); err != nil {
		return errors.AddContext(err, "unable to create persist directory")
	}
	tempFilename := filename + tempSuffix
	file, err := os.OpenFile(tempFilename, os.O_RDWR|os.O_TRUNC|os.O_CREATE, defaultFilePermissions)
	if err != nil {
		return errors.AddContext(err, "unable to open temp persist file")
	}
	_, err = file.Write(data)
	err = errors.Compose(err, file.Sync(), file.Close())
	if err != nil {
		return errors.AddContext(err, "unable to write temp persist file")
	}
	if err := os.Rename(tempFilename, filename); err != nil {
		return errors.AddContext(err, "unable to commit persist file")
	}
	return nil
}

// LoadJSON loads a saved object from disk, verifying that the metadata
// header and version match before decoding into object.
func LoadJSON(meta Metadata, object interface{}, filename string) error {
	if strings.HasSuffix(filename, tempSuffix) {
		return ErrBadFilenameSuffix
	}
	if err := registerFile(filename); err != nil {
		return err
	}
	defer releaseFile(filename)

	file, err := os.Open(filename)
	if err != nil {
		return errors.AddContext(err, "unable to open persist file")
	}
	err = loadJSON(meta, object, file)
	return errors.Compose(err, file.Close())
}

// loadJSON verifies the metadata of r and decodes the object.
func loadJSON(meta Metadata, object interface{}, r io.Reader) error {
	dec := json.NewDecoder(r)
	var header string
	if err := dec.Decode(&header); err != nil {
		return errors.AddContext(err, "unable to read metadata header")
	}
	if header != meta.Header {
		return ErrBadHeader
	}
	var version string
	if err := dec.Decode(&version); err != nil {
		return errors.AddContext(err, "unable to read metadata version")
	}
	if version != meta.Version {
		return ErrBadVersion
	}
	if err := dec.Decode(object); err != nil {
		return errors.AddContext(err, "unable to decode object")
	}
	return nil
}
