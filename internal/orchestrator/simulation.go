package orchestrator

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bjohnson5/blast/internal/event"
	"github.com/bjohnson5/blast/internal/workload"
)

// simulation bundles the three long-lived goroutines a running simulation
// joins: the frame scheduler, the event dispatcher, and the workload
// runner. Matches start_simulation/stop_simulation in blast_manager.rs,
// which spawns the same three tasks into one tokio::task::JoinSet.
type simulation struct {
	table      *event.Table
	scheduler  *event.Scheduler
	dispatcher *event.Dispatcher
	workload   *workload.Runner

	cancel context.CancelFunc
	done   chan error
}

// AddEvent schedules an event at the given frame, matching add_event in
// blast_event_manager.rs. Must be called before StartSimulation.
func (b *Blast) AddEvent(frame uint64, kind event.Kind, args []string) error {
	e, err := event.New(kind, args)
	if err != nil {
		return err
	}
	if b.sim == nil {
		b.sim = b.newSimulation()
	}
	b.sim.table.Add(frame, e)
	return nil
}

// AddActivity registers a recurring payment flow, matching add_activity in
// blast_simln_manager.rs. Must be called before StartSimulation.
func (b *Blast) AddActivity(a workload.Activity) {
	if b.sim == nil {
		b.sim = b.newSimulation()
	}
	b.sim.workload.AddActivity(a)
}

// AddSimLnNodes merges one model's sim-ln node catalog into the workload
// runner, matching add_nodes in blast_simln_manager.rs. Called once per
// model after StartNodes returns its sim-ln document.
func (b *Blast) AddSimLnNodes(raw []byte) error {
	if b.sim == nil {
		b.sim = b.newSimulation()
	}
	return b.sim.workload.AddNodes(raw)
}

func (b *Blast) newSimulation() *simulation {
	table := event.NewTable()
	frameRate := time.Duration(b.Config.Frame.RateSec) * time.Second
	scheduler := event.NewScheduler(table, b.Bitcoin, frameRate,
		uint64(b.Config.Frame.MineEvery), int64(b.Config.Frame.BlocksPerMine))
	scheduler.Metrics = b.Metrics

	dispatcher := event.NewDispatcher(b.Registry, b.Breakers, b.Log)
	dispatcher.Metrics = b.Metrics
	dispatcher.Bitcoin = b.Bitcoin
	dispatcher.OpenConf = int64(b.Config.Bitcoin.OpenConf)

	runner := workload.NewRunner(b.Registry, workload.Config{
		ExpectedPaymentMsat: b.Config.Workload.ExpectedPaymentMsat,
		ActivityMultiplier:  b.Config.Workload.ActivityMultiplier,
		ResultsDir:          b.Config.Workload.ResultsDir,
		ResultsBatchSize:    b.Config.Workload.ResultsBatchSize,
	})
	runner.Metrics = b.Metrics

	return &simulation{
		table:      table,
		scheduler:  scheduler,
		dispatcher: dispatcher,
		workload:   runner,
	}
}

// StartSimulation resolves every pending activity against the accumulated
// node catalog, then runs the scheduler, dispatcher, and workload runner
// concurrently until StopSimulation is called or ctx is cancelled, joined
// with errgroup.Group the way blast_manager.rs joins its JoinSet of
// scheduler/dispatcher/workload tasks.
func (b *Blast) StartSimulation(ctx context.Context) error {
	if b.sim == nil {
		b.sim = b.newSimulation()
	}
	if b.sim.done != nil {
		return ErrSimulationActive
	}

	if err := b.sim.workload.Setup(); err != nil {
		return fmt.Errorf("orchestrator: start simulation: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	b.sim.cancel = cancel
	b.sim.done = make(chan error, 1)

	warmup := time.Duration(b.Config.Frame.WarmupSec) * time.Second
	select {
	case <-time.After(warmup):
	case <-runCtx.Done():
		b.sim.done = nil
		return runCtx.Err()
	}

	frameEvents := make(chan []event.Event, 1)

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error { return b.sim.scheduler.Run(gctx, frameEvents) })
	g.Go(func() error { return b.sim.dispatcher.Run(gctx, frameEvents) })
	g.Go(func() error { return b.sim.workload.Start(gctx) })

	go func() {
		b.sim.done <- g.Wait()
	}()

	return nil
}

// StopSimulation signals the scheduler to stop advancing frames and cancels
// the workload runner and dispatcher, then waits for all three to exit.
func (b *Blast) StopSimulation() error {
	if b.sim == nil || b.sim.done == nil {
		return ErrSimulationIdle
	}
	b.sim.scheduler.Stop()
	b.sim.cancel()
	err := <-b.sim.done
	b.sim.done = nil
	return err
}

// Frame returns the current simulation frame number, or 0 if no simulation
// has been started.
func (b *Blast) Frame() uint64 {
	if b.sim == nil {
		return 0
	}
	return b.sim.scheduler.Frame()
}

// PaymentResults returns every payment result the workload runner has
// recorded so far.
func (b *Blast) PaymentResults() []workload.PaymentResult {
	if b.sim == nil {
		return nil
	}
	return b.sim.workload.Results()
}
