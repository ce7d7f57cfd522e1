// Package orchestrator wires the model registry, event scheduler/dispatcher,
// and workload runner into the single facade a CLI or test driver talks to,
// joining their three long-lived goroutines the way blast_manager.rs's Blast
// struct owns a BlastModelManager, BlastEventManager, and
// BlastSimlnManager side by side.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bjohnson5/blast/internal/btcclient"
	"github.com/bjohnson5/blast/internal/circuitbreaker"
	"github.com/bjohnson5/blast/internal/config"
	"github.com/bjohnson5/blast/internal/metrics"
	"github.com/bjohnson5/blast/internal/model"
)

// Network is the facade's descriptor of one simulated network: a name plus
// how many nodes each model should bring up, matching the {name,
// model->count} pair create_network takes in blast_manager.rs. Immutable
// once CreateNetwork returns; cleared by StopNetwork.
type Network struct {
	Name   string
	Counts map[string]int32
}

// Blast is the top-level facade over one BLAST network: model discovery and
// supervision, the event scheduler/dispatcher, the workload runner, and
// save/load. Mirrors the surface of blast_manager.rs's Blast struct
// (create_network/stop_network/start_simulation/stop_simulation/save/load/
// node verbs) with Rust's Arc<Mutex<...>>-guarded managers replaced by the
// same mutex-guarded Go types they compose.
type Blast struct {
	Config   *config.Config
	Registry *model.Registry
	Backend  model.Backend
	Bitcoin  btcclient.Backend
	Breakers *circuitbreaker.ModelBreakers
	Log      *slog.Logger
	Metrics  *metrics.Registry

	network *Network
	sim     *simulation
}

// New constructs a Blast facade. backend and bitcoin may be fakes in tests.
func New(cfg *config.Config, backend model.Backend, bitcoin btcclient.Backend, log *slog.Logger) *Blast {
	if log == nil {
		log = slog.Default()
	}
	return &Blast{
		Config:   cfg,
		Registry: model.NewRegistry(),
		Backend:  backend,
		Bitcoin:  bitcoin,
		Breakers: circuitbreaker.NewModelBreakers(),
		Log:      log,
		Metrics:  metrics.NewRegistry(),
	}
}

// CreateNetwork discovers the model catalog under the configured models
// directory, registers and starts every model named in counts, starts each
// one's requested node count, and folds every model's sim-ln JSON into the
// workload runner — the single create_network(name, {model->n}) verb of
// spec.md §4.5, replacing what blast_model_manager.rs and
// blast_simln_manager.rs split across parse_models/start_network/
// start_nodes/add_nodes. Returns the child-process token for every model
// started, keyed by model name, for the caller to wait on after
// StopNetwork (spec.md §5).
func (b *Blast) CreateNetwork(ctx context.Context, name string, counts map[string]int32) (map[string]model.Process, error) {
	if len(counts) == 0 {
		return nil, ErrNoModels
	}

	configs, err := model.Discover(b.Config.Paths.ModelsDir)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: create network: %w", err)
	}
	byName := make(map[string]model.Config, len(configs))
	for _, cfg := range configs {
		byName[cfg.Name] = cfg
	}

	for modelName := range counts {
		cfg, ok := byName[modelName]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownModel, modelName)
		}
		b.Registry.Register(cfg)
	}

	b.network = &Network{Name: name, Counts: counts}

	tokens, err := b.Registry.StartAll(ctx, b.Backend, b.Config.Paths.ModelsDir)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: create network: %w", err)
	}

	for modelName, count := range counts {
		simLn, err := b.Registry.StartNodes(ctx, modelName, uint64(count))
		if err != nil {
			return tokens, fmt.Errorf("orchestrator: create network: %w", err)
		}
		if err := b.AddSimLnNodes(simLn); err != nil {
			return tokens, fmt.Errorf("orchestrator: create network: %w", err)
		}
	}

	return tokens, nil
}

// StopNetwork tears down every model's process, matching stop_network.
// The supervisor does not reap any child here; callers hold the tokens
// CreateNetwork returned and are responsible for waiting on them.
func (b *Blast) StopNetwork(ctx context.Context) error {
	err := b.Registry.StopAll(ctx)
	b.network = nil
	return err
}
