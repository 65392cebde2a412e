package fileutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

func TestWriteAtomic_Success(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteAtomic(target, []byte("old"), 0o644))
	require.NoError(t, WriteAtomic(target, []byte("new"), 0o600))

	data, err := os.ReadFile(target) //nolint:gosec // G304: Test path from t.TempDir()
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteAtomic_FailureLeavesOriginalFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "cert.json")
	require.NoError(t, os.WriteFile(target, []byte("original"), 0o600))

	require.NoError(t, os.Chmod(tmpDir, 0o500)) //nolint:gosec // G302: Test uses intentionally restrictive perms
	defer func() {
		_ = os.Chmod(tmpDir, 0o700) //nolint:gosec // G302: Restoring perms in test cleanup
	}()

	err := WriteAtomic(target, []byte("replacement"), 0o600)
	require.Error(t, err)
	assert.ErrorIs(t, err, sdkerr.ErrGeneral)

	data, readErr := os.ReadFile(target) //nolint:gosec // G304: Test path from t.TempDir()
	require.NoError(t, readErr)
	assert.Equal(t, "original", string(data))
}

func TestEmptyPath(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, WriteAtomic("", []byte("data"), 0o600), sdkerr.ErrInvalidInput)
	_, err := ReadFile("")
	require.ErrorIs(t, err, sdkerr.ErrInvalidInput)
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "body.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gas: 21000\n"), 0o600))

	data, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "gas: 21000\n", string(data))

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, sdkerr.ErrInvalidInput)
	assert.Equal(t, sdkerr.ExitInput, sdkerr.ExitCode(err))
}

func TestReadAllLimit(t *testing.T) {
	t.Parallel()

	data, err := ReadAll(strings.NewReader("0xc0"), "stdin")
	require.NoError(t, err)
	assert.Equal(t, "0xc0", string(data))

	_, err = ReadAll(bytes.NewReader(make([]byte, MaxInputSize+1)), "stdin")
	require.ErrorIs(t, err, sdkerr.ErrInvalidInput)
}
