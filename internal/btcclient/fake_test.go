package btcclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeBackendMineBlocks(t *testing.T) {
	f := NewFakeBackend()
	require.NoError(t, f.MineBlocks(100))
	assert.Equal(t, int64(100), f.BlocksMined)
	assert.Equal(t, 1, f.MineCalls)
}

func TestFakeBackendSendToAddress(t *testing.T) {
	f := NewFakeBackend()
	addr, err := f.NewAddress()
	require.NoError(t, err)

	require.NoError(t, f.SendToAddress(addr, 100_000_000))
	assert.Equal(t, int64(100_000_000), f.SentSat)
	assert.Equal(t, 1, f.SendCalls)
}
