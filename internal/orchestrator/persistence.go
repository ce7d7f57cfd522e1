package orchestrator

import (
	"context"
	"fmt"

	"github.com/bjohnson5/blast/blastrpc"
	"github.com/bjohnson5/blast/internal/event"
	"github.com/bjohnson5/blast/internal/persistence"
)

// savedEvent is the JSON-friendly form of a scheduled event, used for the
// global event table sidecar.
type savedEvent struct {
	Frame uint64   `json:"frame"`
	Kind  int      `json:"kind"`
	Args  []string `json:"args"`
}

// savedState is the sim-wide sidecar Save writes and Load reads: the event
// table plus the set of models that were actually live at save time, so
// Load restarts exactly the "previously running" models spec.md §4.5
// names, not every model the registry happens to have registered.
type savedState struct {
	Events        []savedEvent `json:"events"`
	RunningModels []string     `json:"running_models"`
}

// Save tells every live model to archive its own node data directories and
// channel state over the Save RPC — the model owns that layout and BLAST
// treats it as opaque (spec.md §4.1/§4.6) — then writes the event table and
// the set of models that were running as the sim-wide JSON sidecar.
// Matches blast_cln's save handler plus the event state blast_manager.rs's
// save command keeps at the manager level. Workload activities are not
// saved, so Load does not restore them.
func (b *Blast) Save(ctx context.Context, simName string) error {
	if b.sim == nil {
		return ErrSimulationIdle
	}

	var running []string
	for _, h := range b.Registry.Handles() {
		client, err := h.Client()
		if err != nil {
			continue // not running; nothing live to snapshot
		}
		name := h.Config.Name
		if _, err := client.Save(ctx, &blastrpc.SaveRequest{SimName: simName}); err != nil {
			return fmt.Errorf("orchestrator: save %s: %w", name, err)
		}
		running = append(running, name)
	}

	var events []savedEvent
	for _, frame := range b.sim.table.Frames() {
		for _, e := range b.sim.table.At(frame) {
			events = append(events, savedEvent{Frame: frame, Kind: int(e.Kind), Args: e.Args})
		}
	}

	state := savedState{Events: events, RunningModels: running}
	simDir := persistence.SimDir(b.Config.Paths.SimsDir, simName)
	if err := persistence.SaveJSONSidecar(simDir, simName, "state", state); err != nil {
		return fmt.Errorf("orchestrator: save state: %w", err)
	}

	return nil
}

// Load reads the sim-wide JSON sidecar and, for each model that was
// previously running, asks it to restore itself over the Load RPC — the
// model counts its own archived node directories, brings up that many
// nodes, and reattaches its channels JSON internally, matching blast_cln's
// load handler — then folds the returned sim-ln document into the
// workload runner exactly as start_nodes does, and rebuilds the event
// table. Models named in the saved state must already be started (their
// RPC channel must be live) before Load is called.
func (b *Blast) Load(ctx context.Context, simName string) error {
	var state savedState
	simDir := persistence.SimDir(b.Config.Paths.SimsDir, simName)
	if err := persistence.LoadJSONSidecar(simDir, simName, "state", &state); err != nil {
		return fmt.Errorf("orchestrator: load state: %w", err)
	}

	if b.sim == nil {
		b.sim = b.newSimulation()
	}

	for _, name := range state.RunningModels {
		h, ok := b.Registry.ByModelName(name)
		if !ok {
			return fmt.Errorf("orchestrator: load %s: %w", name, ErrUnknownModel)
		}
		client, err := h.Client()
		if err != nil {
			return fmt.Errorf("orchestrator: load %s: model is not running: %w", name, err)
		}
		resp, err := client.Load(ctx, &blastrpc.LoadRequest{SimName: simName})
		if err != nil {
			return fmt.Errorf("orchestrator: load %s: %w", name, err)
		}
		if err := b.sim.workload.AddNodes(resp.SimLn); err != nil {
			return fmt.Errorf("orchestrator: load %s sim-ln: %w", name, err)
		}
	}

	for _, se := range state.Events {
		b.sim.table.Add(se.Frame, event.Event{Kind: event.Kind(se.Kind), Args: se.Args})
	}

	return nil
}
