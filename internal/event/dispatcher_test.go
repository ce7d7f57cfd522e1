package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjohnson5/blast/internal/circuitbreaker"
	"github.com/bjohnson5/blast/internal/model"
)

func TestDispatcherCloseChannelUnknownNode(t *testing.T) {
	registry := model.NewRegistry()
	breakers := circuitbreaker.NewModelBreakers()
	d := NewDispatcher(registry, breakers, nil)

	e, err := New(CloseChannel, []string{"blast_lnd-0000", "7"})
	require.NoError(t, err)

	err = d.dispatch(context.Background(), e)
	assert.ErrorIs(t, err, model.ErrUnknownNode)
}

func TestEventArityValidation(t *testing.T) {
	_, err := New(OpenChannel, []string{"only", "two"})
	assert.ErrorIs(t, err, ErrBadArity)

	e, err := New(CloseChannel, []string{"blast_lnd-0000", "3"})
	require.NoError(t, err)
	assert.Equal(t, CloseChannel, e.Kind)
}

func TestTableOrdering(t *testing.T) {
	table := NewTable()
	e1, _ := New(StartNode, []string{"blast_lnd-0000"})
	e2, _ := New(StopNode, []string{"blast_lnd-0001"})
	table.Add(5, e1)
	table.Add(2, e2)

	assert.Equal(t, []uint64{2, 5}, table.Frames())
	assert.Equal(t, 2, table.Len())
}

func TestDispatcherStartStopNodeUnknownNode(t *testing.T) {
	registry := model.NewRegistry()
	breakers := circuitbreaker.NewModelBreakers()
	d := NewDispatcher(registry, breakers, nil)

	e, err := New(StartNode, []string{"blast_lnd-0000"})
	require.NoError(t, err)

	err = d.dispatch(context.Background(), e)
	assert.ErrorIs(t, err, model.ErrUnknownNode)
}
