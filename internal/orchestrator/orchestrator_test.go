package orchestrator

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjohnson5/blast/internal/btcclient"
	"github.com/bjohnson5/blast/internal/config"
	"github.com/bjohnson5/blast/internal/event"
	"github.com/bjohnson5/blast/internal/model"
)

func testBlast(t *testing.T, modelsDir string) *Blast {
	t.Helper()
	cfg := &config.Config{}
	cfg.Paths.ModelsDir = modelsDir
	cfg.Paths.SimsDir = filepath.Join(t.TempDir(), "sims")
	cfg.Frame.RateSec = 1
	cfg.Frame.MineEvery = 5
	cfg.Frame.BlocksPerMine = 10
	return New(cfg, model.NewExecBackend(), btcclient.NewFakeBackend(), nil)
}

func writeModelConfig(t *testing.T, dir, name string) {
	t.Helper()
	modelDir := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(modelDir, 0o755))
	data, err := json.Marshal(model.Config{Name: name, RPC: "127.0.0.1:0", Start: "true"})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(modelDir, model.ConfigFileName), data, 0o644))
}

func TestCreateNetworkNoModels(t *testing.T) {
	b := testBlast(t, t.TempDir())
	_, err := b.CreateNetwork(context.Background(), "net", nil)
	assert.ErrorIs(t, err, ErrNoModels)
}

func TestCreateNetworkRejectsUnknownModel(t *testing.T) {
	modelsDir := t.TempDir()
	writeModelConfig(t, modelsDir, "blast_lnd")

	b := testBlast(t, modelsDir)
	_, err := b.CreateNetwork(context.Background(), "net", map[string]int32{"blast_cln": 1})
	assert.ErrorIs(t, err, ErrUnknownModel)
}

func TestAddEventValidatesArity(t *testing.T) {
	b := testBlast(t, t.TempDir())
	err := b.AddEvent(10, event.OpenChannel, []string{"only-one-arg"})
	assert.ErrorIs(t, err, event.ErrBadArity)
}

func TestAddEventValidatesNumericFields(t *testing.T) {
	b := testBlast(t, t.TempDir())
	err := b.AddEvent(10, event.OpenChannel, []string{"a", "b", "1", "notanumber", "0"})
	assert.ErrorIs(t, err, event.ErrBadEventArgs)
}

func TestAddEventAccumulatesIntoTable(t *testing.T) {
	b := testBlast(t, t.TempDir())
	require.NoError(t, b.AddEvent(0, event.StartNode, []string{"blast_lnd-0000"}))
	require.NoError(t, b.AddEvent(3, event.CloseChannel, []string{"blast_lnd-0000", "1"}))

	assert.Equal(t, []uint64{0, 3}, b.sim.table.Frames())
}

func TestStopSimulationWithoutStartIsIdle(t *testing.T) {
	b := testBlast(t, t.TempDir())
	err := b.StopSimulation()
	assert.ErrorIs(t, err, ErrSimulationIdle)
}

func TestSaveRequiresRunningSimulation(t *testing.T) {
	b := testBlast(t, t.TempDir())
	err := b.Save(context.Background(), "sim1")
	assert.ErrorIs(t, err, ErrSimulationIdle)
}
