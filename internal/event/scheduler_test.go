package event

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjohnson5/blast/internal/btcclient"
)

func TestSchedulerMinesOnCadence(t *testing.T) {
	table := NewTable()
	btc := btcclient.NewFakeBackend()
	s := NewScheduler(table, btc, 5*time.Millisecond, 2, 10)

	out := make(chan []Event, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancel()

	err := s.Run(ctx, out)
	require.NoError(t, err)
	assert.Greater(t, btc.MineCalls, 0)
}

func TestSchedulerDeliversFrameEvents(t *testing.T) {
	table := NewTable()
	e, err := New(StartNode, []string{"blast_lnd-0000"})
	require.NoError(t, err)
	table.Add(0, e)

	btc := btcclient.NewFakeBackend()
	s := NewScheduler(table, btc, 2*time.Millisecond, 0, 0)

	out := make(chan []Event, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		s.Run(ctx, out)
		close(done)
	}()

	select {
	case events := <-out:
		assert.Len(t, events, 1)
		assert.Equal(t, StartNode, events[0].Kind)
	case <-time.After(50 * time.Millisecond):
		t.Fatal("timed out waiting for frame 0 events")
	}
	cancel()
	<-done
}
