package workload

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjohnson5/blast/internal/model"
)

func nodesJSON(t *testing.T, nodes ...NodeConnection) []byte {
	t.Helper()
	data, err := json.Marshal(SimParams{Nodes: nodes})
	require.NoError(t, err)
	return data
}

func TestSetupResolvesActivitiesByAlias(t *testing.T) {
	r := NewRunner(model.NewRegistry(), Config{ExpectedPaymentMsat: 3_800_000, ActivityMultiplier: 2})

	require.NoError(t, r.AddNodes(nodesJSON(t,
		NodeConnection{ID: "blast_lnd-0000", Alias: "alice", PubKey: "pk-alice"},
		NodeConnection{ID: "blast_lnd-0001", Alias: "bob", PubKey: "pk-bob"},
	)))
	r.AddActivity(Activity{Source: "alice", Destination: "bob", IntervalSecs: 1})

	require.NoError(t, r.Setup())
	assert.Equal(t, Ready, r.State())
	require.Len(t, r.resolved, 1)
	assert.Equal(t, "blast_lnd-0000", r.resolved[0].SourceNodeID)
	assert.Equal(t, "pk-bob", r.resolved[0].DestPubKey)
}

func TestSetupRejectsUnresolvedSource(t *testing.T) {
	r := NewRunner(model.NewRegistry(), Config{})
	require.NoError(t, r.AddNodes(nodesJSON(t, NodeConnection{ID: "blast_lnd-0000", Alias: "alice", PubKey: "pk-alice"})))
	r.AddActivity(Activity{Source: "nonexistent", Destination: "alice"})

	err := r.Setup()
	assert.ErrorIs(t, err, ErrUnresolvedSource)
}

func TestSetupRejectsDuplicateAlias(t *testing.T) {
	r := NewRunner(model.NewRegistry(), Config{})
	require.NoError(t, r.AddNodes(nodesJSON(t,
		NodeConnection{ID: "blast_lnd-0000", Alias: "alice", PubKey: "pk-1"},
		NodeConnection{ID: "blast_lnd-0001", Alias: "alice", PubKey: "pk-2"},
	)))

	err := r.Setup()
	assert.ErrorIs(t, err, ErrDuplicateAlias)
}

func TestSetupRejectsUnknownActivityEndpoint(t *testing.T) {
	r := NewRunner(model.NewRegistry(), Config{})
	require.NoError(t, r.AddNodes(nodesJSON(t, NodeConnection{ID: "blast_lnd-0000", Alias: "x", PubKey: "pk-x"})))
	r.AddActivity(Activity{Source: "x", Destination: "y"})

	err := r.Setup()
	assert.ErrorIs(t, err, ErrUnknownActivityEndpoint)
}

func TestSetupResolvesDestinationByPubKey(t *testing.T) {
	r := NewRunner(model.NewRegistry(), Config{})
	require.NoError(t, r.AddNodes(nodesJSON(t,
		NodeConnection{ID: "blast_lnd-0000", Alias: "alice", PubKey: "pk-alice"},
		NodeConnection{ID: "blast_lnd-0001", Alias: "bob", PubKey: "pk-bob"},
	)))
	r.AddActivity(Activity{Source: "alice", Destination: "pk-bob"})

	require.NoError(t, r.Setup())
	assert.Equal(t, "pk-bob", r.resolved[0].DestPubKey)
}
