package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/vechain-sdk-go/internal/config"
	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

func TestConfigInit(t *testing.T) {
	home := testHome(t)

	var v map[string]string
	runJSON(t, home, &v, "config", "init")
	assert.Equal(t, config.Path(home), v["path"])

	loaded, err := config.Load(config.Path(home))
	require.NoError(t, err)
	assert.Equal(t, "mainnet", loaded.Network.Name)
	assert.Equal(t, home, loaded.Home)

	_, stderr, err := runCLI(t, home, "-o", "text", "config", "init")
	require.Error(t, err)
	assert.ErrorIs(t, err, sdkerr.ErrGeneral)
	assert.Contains(t, stderr, "--force")

	_, _, err = runCLI(t, home, "-o", "json", "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigShowLayers(t *testing.T) {
	home := testHome(t)
	cfgFile := config.Defaults()
	cfgFile.Transaction.Expiration = 99
	require.NoError(t, config.Save(cfgFile, config.Path(home)))
	t.Setenv(config.EnvLogLevel, "off")

	var v config.Config
	runJSON(t, home, &v, "--network", "testnet", "config", "show")
	assert.Equal(t, uint32(99), v.Transaction.Expiration)
	assert.Equal(t, "testnet", v.Network.Name)
	assert.Equal(t, "off", v.Logging.Level)
	assert.Equal(t, home, v.Home)
}

func TestConfigShowText(t *testing.T) {
	home := testHome(t)

	stdout, _, err := runCLI(t, home, "-o", "text", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "network:")
	assert.Contains(t, stdout, "name: mainnet")
}

func TestInvalidConfigFails(t *testing.T) {
	home := testHome(t)
	require.NoError(t, os.MkdirAll(home, 0o750))
	require.NoError(t, os.WriteFile(config.Path(home), []byte("network:\n  name: nowhere\n"), 0o600))

	_, stderr, err := runCLI(t, home, "-o", "text", "config", "show")
	require.Error(t, err)
	assert.ErrorIs(t, err, sdkerr.ErrConfigInvalid)
	assert.Contains(t, stderr, "mainnet, testnet, solo")
}

func TestChainTagFromNetworkFlag(t *testing.T) {
	home := testHome(t)
	body := writeFile(t, "body.yaml", "blockRef: \"0x00000000aabbccdd\"\nclauses: []\ngas: 21000\n")

	var encoded txView
	runJSON(t, home, &encoded, "-n", "solo", "tx", "encode", body)

	var decoded txView
	runJSON(t, home, &decoded, "tx", "decode", encoded.Raw)
	require.NotNil(t, decoded.Body)
	assert.Equal(t, config.ChainTagSolo, decoded.Body.ChainTag)
	assert.Equal(t, uint32(720), decoded.Body.Expiration)
}
