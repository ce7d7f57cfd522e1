package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadModelRoundTrip(t *testing.T) {
	simsDir := t.TempDir()
	dataDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "wallet.db"), []byte("fake-wallet-state"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dataDir, "channels"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "channels", "chan1.json"), []byte("{}"), 0o644))

	require.NoError(t, SaveModel(simsDir, "sim1", "blast_lnd", dataDir))

	archivePath := filepath.Join(ModelDir(simsDir, "sim1", "blast_lnd"), "sim1.tar.gz")
	_, err := os.Stat(archivePath)
	require.NoError(t, err)

	destDir := t.TempDir()
	require.NoError(t, LoadModel(simsDir, "sim1", "blast_lnd", destDir))

	data, err := os.ReadFile(filepath.Join(destDir, "wallet.db"))
	require.NoError(t, err)
	assert.Equal(t, "fake-wallet-state", string(data))

	data, err = os.ReadFile(filepath.Join(destDir, "channels", "chan1.json"))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestJSONSidecarRoundTrip(t *testing.T) {
	dir := t.TempDir()

	type payload struct {
		Value int `json:"value"`
	}

	require.NoError(t, SaveJSONSidecar(dir, "sim1", "channels", payload{Value: 42}))

	var out payload
	require.NoError(t, LoadJSONSidecar(dir, "sim1", "channels", &out))
	assert.Equal(t, 42, out.Value)
}

func TestLoadModelMissingArchive(t *testing.T) {
	err := LoadModel(t.TempDir(), "sim1", "blast_lnd", t.TempDir())
	assert.Error(t, err)
}
