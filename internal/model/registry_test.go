package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeIDFormat(t *testing.T) {
	assert.Equal(t, "blast_lnd-0000", NodeID("blast_lnd", 0))
	assert.Equal(t, "blast_cln-0012", NodeID("blast_cln", 12))
}

func TestRegistryByNodeID(t *testing.T) {
	r := NewRegistry()
	r.Register(Config{Name: "blast_lnd", RPC: "127.0.0.1:10000", Start: "blast_lnd"})
	r.Register(Config{Name: "blast_cln", RPC: "127.0.0.1:10001", Start: "blast_cln"})

	h, err := r.ByNodeID(NodeID("blast_cln", 3))
	require.NoError(t, err)
	assert.Equal(t, "blast_cln", h.Config.Name)

	_, err = r.ByNodeID("unknown-0000")
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestHandleStateTransitionsWithoutStart(t *testing.T) {
	h := NewHandle(Config{Name: "blast_lnd"})
	assert.Equal(t, Registered, h.State())

	_, err := h.Client()
	assert.ErrorIs(t, err, ErrNotReady)
}
