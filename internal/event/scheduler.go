package event

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/bjohnson5/blast/internal/btcclient"
	"github.com/bjohnson5/blast/internal/metrics"
)

// Scheduler ticks frames forward at a configured cadence, mining a burst
// of blocks every MineEvery frames and publishing each frame's events to a
// capacity-1 channel for the Dispatcher to consume. Generalizes the
// start() loop in blast_event_manager.rs: FRAME_RATE/MINE_RATE/
// BLOCKS_PER_MINE are configuration fields here instead of compiled-in
// constants (see internal/config).
type Scheduler struct {
	Table         *Table
	Bitcoin       btcclient.Backend
	FrameRate     time.Duration
	MineEvery     uint64
	BlocksPerMine int64
	Metrics       *metrics.Registry // optional; nil disables instrumentation

	running atomic.Bool
	frame   atomic.Uint64
}

// NewScheduler constructs a Scheduler over an event table and bitcoin
// backend, with the given cadence.
func NewScheduler(table *Table, bitcoin btcclient.Backend, frameRate time.Duration, mineEvery uint64, blocksPerMine int64) *Scheduler {
	return &Scheduler{
		Table:         table,
		Bitcoin:       bitcoin,
		FrameRate:     frameRate,
		MineEvery:     mineEvery,
		BlocksPerMine: blocksPerMine,
	}
}

// Frame returns the current frame number.
func (s *Scheduler) Frame() uint64 {
	return s.frame.Load()
}

// Run advances frames until ctx is cancelled or Stop is called, sending
// each frame's scheduled events to out. out is expected to have capacity 1
// (the scheduler<->dispatcher backpressure channel in spec.md §5). If the
// receiver stops draining out, the send blocks until ctx is cancelled and
// Run then returns nil; Run does not detect a departed receiver and never
// returns ErrDispatchChanClosed.
func (s *Scheduler) Run(ctx context.Context, out chan<- []Event) error {
	s.running.Store(true)
	defer s.running.Store(false)

	ticker := time.NewTicker(s.FrameRate)
	defer ticker.Stop()

	for s.running.Load() {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		frame := s.frame.Add(1) - 1
		if s.Metrics != nil {
			s.Metrics.FramesProcessed.Inc()
		}

		if s.MineEvery > 0 && frame%s.MineEvery == 0 {
			if err := s.Bitcoin.MineBlocks(s.BlocksPerMine); err != nil {
				return fmt.Errorf("event: mine at frame %d: %w", frame, err)
			}
			if s.Metrics != nil {
				s.Metrics.BlocksMined.Add(float64(s.BlocksPerMine))
			}
		}

		events := s.Table.At(frame)
		if len(events) == 0 {
			continue
		}

		select {
		case out <- events:
		case <-ctx.Done():
			return nil
		}
	}
	return nil
}

// Stop signals Run to exit at the next frame boundary.
func (s *Scheduler) Stop() {
	s.running.Store(false)
}
