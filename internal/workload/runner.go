package workload

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bjohnson5/blast/blastrpc"
	"github.com/bjohnson5/blast/internal/metrics"
	"github.com/bjohnson5/blast/internal/model"
)

// RunnerState is the workload runner's lifecycle, per spec.md §3:
// Empty -> Configured -> Ready -> Active -> Idle.
type RunnerState int

const (
	Empty RunnerState = iota
	Configured
	Ready
	Active
	Idle
)

// Config carries the traffic generator's defaults, promoted out of the
// compiled-in EXPECTED_PAYMENT_AMOUNT/ACTIVITY_MULTIPLIER constants in
// blast_simln_manager.rs and results_dir out of its hard-coded
// "/home/simln_results" path (SPEC_FULL.md Open Question 3).
type Config struct {
	ExpectedPaymentMsat int64
	ActivityMultiplier  float64
	ResultsDir          string
	ResultsBatchSize    int
}

// PaymentResult records one SendPayment outcome, flushed to ResultsDir in
// batches of ResultsBatchSize, matching the WriteResults sink
// blast_simln_manager.rs configures on its Simulation.
type PaymentResult struct {
	Source        string `json:"source"`
	Destination   string `json:"destination"`
	AmountMsat    int64  `json:"amount_msat"`
	Success       bool   `json:"success"`
	LatencyMicros int64  `json:"latency_micros"`
	Timestamp     int64  `json:"timestamp"`
}

// Runner drives recurring payment activities against a model registry.
type Runner struct {
	Registry *model.Registry
	Config   Config
	Metrics  *metrics.Registry // optional; nil disables instrumentation

	mu         sync.Mutex
	state      RunnerState
	activities []Activity
	nodes      []NodeConnection
	resolved   []resolved
	results    []PaymentResult
	flushed    int // results[:flushed] have already been written to ResultsDir
}

// NewRunner constructs an empty workload runner.
func NewRunner(registry *model.Registry, cfg Config) *Runner {
	return &Runner{Registry: registry, Config: cfg, state: Empty}
}

// State returns the runner's current lifecycle state.
func (r *Runner) State() RunnerState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// AddActivity appends a recurring payment flow, matching add_activity in
// blast_simln_manager.rs.
func (r *Runner) AddActivity(a Activity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activities = append(r.activities, a)
	if r.state == Empty {
		r.state = Configured
	}
}

// AddNodes merges a model's sim-ln node catalog, matching add_nodes in
// blast_simln_manager.rs (one call per model once its nodes are up).
func (r *Runner) AddNodes(raw []byte) error {
	var params SimParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return fmt.Errorf("workload: add nodes: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodes = append(r.nodes, params.Nodes...)
	if r.state == Empty {
		r.state = Configured
	}
	return nil
}

// Setup validates every activity against the node catalog built from
// AddNodes, matching setup_simln's clients/pk_node_map/alias_node_map
// construction and per-activity validation, then transitions to Ready.
func (r *Runner) Setup() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byAlias := make(map[string]NodeConnection, len(r.nodes))
	byPubKey := make(map[string]NodeConnection, len(r.nodes))
	for _, n := range r.nodes {
		if n.Alias != "" {
			if _, dup := byAlias[n.Alias]; dup {
				return fmt.Errorf("%w: %s", ErrDuplicateAlias, n.Alias)
			}
			byAlias[n.Alias] = n
		}
		byPubKey[n.PubKey] = n
	}

	resolvedActivities := make([]resolved, 0, len(r.activities))
	for _, a := range r.activities {
		ra, err := resolve(a, byAlias, byPubKey)
		if err != nil {
			return err
		}
		resolvedActivities = append(resolvedActivities, ra)
	}

	r.resolved = resolvedActivities
	r.state = Ready
	return nil
}

// Start runs every validated activity concurrently, one goroutine per
// activity, joined with errgroup.Group the way orchestrator.StartSimulation
// joins the scheduler/dispatcher/workload goroutines
// (golang.org/x/sync/errgroup, the Go analogue of tokio::task::JoinSet).
// Each activity issues SendPayment at IntervalSecs cadence for Count
// iterations, or forever if Count is nil, until ctx is cancelled.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.state != Ready {
		r.mu.Unlock()
		return fmt.Errorf("%w", ErrNotConfigured)
	}
	r.state = Active
	activities := r.resolved
	r.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)
	for _, a := range activities {
		a := a
		g.Go(func() error {
			return r.runActivity(ctx, a)
		})
	}

	err := g.Wait()
	r.mu.Lock()
	r.state = Idle
	r.mu.Unlock()
	return err
}

func (r *Runner) runActivity(ctx context.Context, a resolved) error {
	if a.StartSecs > 0 {
		select {
		case <-time.After(time.Duration(a.StartSecs) * time.Second):
		case <-ctx.Done():
			return nil
		}
	}

	interval := time.Duration(a.IntervalSecs) * time.Second
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var iterations uint64
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		if err := r.sendOnce(ctx, a); err != nil {
			return err
		}

		iterations++
		if a.Count != nil && iterations >= *a.Count {
			return nil
		}
	}
}

func (r *Runner) sendOnce(ctx context.Context, a resolved) error {
	client, err := r.clientFor(a.SourceNodeID)
	if err != nil {
		return err
	}

	amount := a.AmountMsat
	if amount == 0 {
		amount = int64(float64(r.Config.ExpectedPaymentMsat) * r.Config.ActivityMultiplier)
	}

	resp, err := client.SendPayment(ctx, &blastrpc.SendPaymentRequest{
		NodeID:     a.SourceNodeID,
		DestPubKey: a.DestPubKey,
		AmountMsat: amount,
	})

	if r.Metrics != nil {
		r.Metrics.PaymentsAttempted.Inc()
	}

	result := PaymentResult{
		Source: a.SourceNodeID, Destination: a.DestPubKey, AmountMsat: amount,
	}
	if err != nil {
		result.Success = false
		if r.Metrics != nil {
			r.Metrics.PaymentsFailed.Inc()
		}
	} else {
		result.Success = resp.Success
		result.LatencyMicros = resp.LatencyMicros
		if !resp.Success && r.Metrics != nil {
			r.Metrics.PaymentsFailed.Inc()
		}
		if resp.Success && r.Metrics != nil {
			r.Metrics.PaymentLatency.Observe(float64(resp.LatencyMicros) / 1e6)
		}
	}

	r.recordResult(result)
	return nil // a single failed payment does not abort the activity loop
}

func (r *Runner) clientFor(nodeID string) (blastrpc.Client, error) {
	return r.Registry.ClientFor(nodeID)
}

// recordResult buffers a payment result and flushes to ResultsDir once
// ResultsBatchSize results have accumulated, matching WriteResults's
// batch_size configuration in blast_simln_manager.rs.
func (r *Runner) recordResult(res PaymentResult) {
	r.mu.Lock()
	r.results = append(r.results, res)
	shouldFlush := r.Config.ResultsDir != "" && len(r.results)-r.flushed >= max(r.Config.ResultsBatchSize, 1)
	var batch []PaymentResult
	if shouldFlush {
		batch = append([]PaymentResult(nil), r.results[r.flushed:]...)
		r.flushed = len(r.results)
	}
	r.mu.Unlock()

	if shouldFlush {
		_ = r.flush(batch)
	}
}

func (r *Runner) flush(batch []PaymentResult) error {
	if err := os.MkdirAll(r.Config.ResultsDir, 0o755); err != nil {
		return fmt.Errorf("workload: results dir: %w", err)
	}
	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return fmt.Errorf("workload: marshal results: %w", err)
	}
	path := filepath.Join(r.Config.ResultsDir, fmt.Sprintf("results-%s.json", uuid.New().String()))
	return os.WriteFile(path, data, 0o644)
}

// Results returns every recorded payment result, flushed or not.
func (r *Runner) Results() []PaymentResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]PaymentResult, len(r.results))
	copy(out, r.results)
	return out
}
