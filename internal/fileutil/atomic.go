// Package fileutil reads command inputs and writes results and config files.
package fileutil

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

// MaxInputSize bounds the documents and raw transactions read from disk.
const MaxInputSize = 4 << 20

func pathError(msg, path string, cause error) error {
	return sdkerr.WithCause(
		sdkerr.WithDetails(sdkerr.Newf(sdkerr.ErrInvalidInput, "%s", msg), map[string]string{"path": path}),
		cause)
}

// ReadFile reads path, rejecting files larger than MaxInputSize.
func ReadFile(path string) ([]byte, error) {
	if path == "" {
		return nil, sdkerr.Newf(sdkerr.ErrInvalidInput, "path is empty")
	}
	f, err := os.Open(path) //nolint:gosec // G304: path is the command argument
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, pathError("input file not found", path, err)
		}
		return nil, pathError("cannot read input file", path, err)
	}
	defer func() { _ = f.Close() }()

	return readLimited(f, path)
}

// ReadAll reads r, rejecting input larger than MaxInputSize. name labels
// errors.
func ReadAll(r io.Reader, name string) ([]byte, error) {
	return readLimited(r, name)
}

func readLimited(r io.Reader, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxInputSize+1))
	if err != nil {
		return nil, pathError("cannot read input", name, err)
	}
	if len(data) > MaxInputSize {
		return nil, sdkerr.WithDetails(
			sdkerr.Newf(sdkerr.ErrInvalidInput, "input exceeds %d bytes", MaxInputSize),
			map[string]string{"path": name, "limit": strconv.Itoa(MaxInputSize)})
	}
	return data, nil
}

// WriteAtomic writes data to path with perm, creating the parent directory.
// It writes a temp file in the same directory, syncs it, then renames it, so
// readers see either the old or the new content.
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	if path == "" {
		return sdkerr.Newf(sdkerr.ErrInvalidInput, "path is empty")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return writeError(path, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return writeError(path, err)
	}
	tmpPath := tmp.Name()
	closed := false
	defer func() {
		if !closed {
			_ = tmp.Close()
		}
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return writeError(path, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return writeError(path, err)
	}
	if err := tmp.Sync(); err != nil {
		return writeError(path, err)
	}
	if err := tmp.Close(); err != nil {
		return writeError(path, err)
	}
	closed = true

	if err := os.Rename(tmpPath, path); err != nil { //nolint:gosec // G703: path is chosen by the caller
		return writeError(path, err)
	}

	// best effort; the rename is already visible
	if d, err := os.Open(dir); err == nil { //nolint:gosec // G304: dir is derived from path
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}

func writeError(path string, cause error) error {
	return sdkerr.WithCause(
		sdkerr.WithDetails(sdkerr.Newf(sdkerr.ErrGeneral, "cannot write file"), map[string]string{"path": path}),
		cause)
}
