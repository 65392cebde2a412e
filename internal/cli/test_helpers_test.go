package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const (
	senderKeyHex   = "7582be841ca040aa940fff6c05773129e135623e41acce3e0b8ba520dc1ae26a"
	gasPayerKeyHex = "40de805e918403683fb9a6081c3fba072cdc5c88232c62a9509165122488dab7"
	senderAddress  = "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed"
)

// withMockSecrets answers hidden prompts with secrets, in order, and
// restores the real prompt on cleanup.
func withMockSecrets(t *testing.T, secrets ...string) {
	t.Helper()
	orig := promptSecretFn
	t.Cleanup(func() { promptSecretFn = orig })

	queue := append([]string(nil), secrets...)
	promptSecretFn = func(prompt string) ([]byte, error) {
		require.NotEmpty(t, queue, "unexpected prompt %q", prompt)
		next := queue[0]
		queue = queue[1:]
		return []byte(next), nil
	}
}

// resetFlags restores every flag of cmd and its children to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// testHome isolates HOME and the THORSDK_* variables and returns a fresh
// thorsdk home directory.
func testHome(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"THORSDK_HOME", "THORSDK_NETWORK", "THORSDK_CHAIN_TAG", "THORSDK_OUTPUT_FORMAT", "THORSDK_VERBOSE", "THORSDK_LOG_LEVEL", "THORSDK_SIGNER_CACHE"} {
		t.Setenv(k, "")
	}
	return filepath.Join(t.TempDir(), "thorsdk")
}

// runCLI executes thorsdk with args against home and returns stdout and
// stderr.
func runCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	cfg, logger, formatter = nil, nil, nil

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(append([]string{"--home", home}, args...))

	err := execute(&stderr)
	return stdout.String(), stderr.String(), err
}

// runJSON runs args with JSON output and decodes stdout into v.
func runJSON(t *testing.T, home string, v any, args ...string) {
	t.Helper()
	stdout, stderr, err := runCLI(t, home, append([]string{"-o", "json"}, args...)...)
	require.NoError(t, err, stderr)
	require.NoError(t, json.Unmarshal([]byte(stdout), v), stdout)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
