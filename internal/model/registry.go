package model

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/bjohnson5/blast/blastrpc"
)

// NodeID formats a node identifier as "<modelName>-%04d", the scheme every
// node verb in the orchestrator resolves back to its owning model.
func NodeID(modelName string, index int) string {
	return fmt.Sprintf("%s-%04d", modelName, index)
}

// Registry tracks every model handle for one network and resolves node ids
// to the handle that owns them — the lookup the original left as a TODO
// ("look up the node_id and find which model it belongs too") in every
// node verb of blast_model_manager.rs.
type Registry struct {
	mu      sync.RWMutex
	handles map[string]*Handle // by model name
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handles: make(map[string]*Handle)}
}

// Register adds a handle for the given model configuration, in the
// Registered state.
func (r *Registry) Register(cfg Config) *Handle {
	h := NewHandle(cfg)
	r.mu.Lock()
	r.handles[cfg.Name] = h
	r.mu.Unlock()
	return h
}

// Handles returns every registered handle.
func (r *Registry) Handles() []*Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Handle, 0, len(r.handles))
	for _, h := range r.handles {
		out = append(out, h)
	}
	return out
}

// ByModelName looks up a handle by its model's name.
func (r *Registry) ByModelName(name string) (*Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handles[name]
	return h, ok
}

// ByNodeID resolves the model owning nodeID via its "<modelName>-NNNN"
// prefix.
func (r *Registry) ByNodeID(nodeID string) (*Handle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := strings.LastIndex(nodeID, "-")
	if idx <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, nodeID)
	}
	modelName := nodeID[:idx]

	if h, ok := r.handles[modelName]; ok {
		return h, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownNode, nodeID)
}

// ClientFor is a convenience wrapper resolving a node id straight to its
// model's RPC client.
func (r *Registry) ClientFor(nodeID string) (blastrpc.Client, error) {
	h, err := r.ByNodeID(nodeID)
	if err != nil {
		return nil, err
	}
	return h.Client()
}

// StartAll spawns every registered handle concurrently, joined with
// errgroup.Group the way orchestrator.StartSimulation joins its three
// long-lived goroutines (golang.org/x/sync/errgroup, the Go analogue of
// the original's tokio::task::JoinSet). It returns every started handle's
// child-process token keyed by model name — the set create_network hands
// back to its caller, who must wait on each after stop_network (spec.md
// §5).
func (r *Registry) StartAll(ctx context.Context, backend Backend, modelsDir string) (map[string]Process, error) {
	handles := r.Handles()

	var mu sync.Mutex
	tokens := make(map[string]Process, len(handles))

	g, ctx := errgroup.WithContext(ctx)
	for _, h := range handles {
		h := h
		g.Go(func() error {
			proc, err := h.Start(ctx, backend, modelsDir)
			if err != nil {
				return err
			}
			mu.Lock()
			tokens[h.Config.Name] = proc
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tokens, nil
}

// StopAll stops every registered handle, collecting the first error.
func (r *Registry) StopAll(ctx context.Context) error {
	var firstErr error
	for _, h := range r.Handles() {
		if err := h.Stop(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// StartNodes asks a model to bring up numNodes Lightning nodes, then pulls
// back its sim-ln connection JSON, matching start_nodes in
// blast_model_manager.rs (BlastStartRequest followed by BlastSimlnRequest
// on success).
func (r *Registry) StartNodes(ctx context.Context, modelName string, numNodes uint64) ([]byte, error) {
	h, ok := r.ByModelName(modelName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, modelName)
	}
	client, err := h.Client()
	if err != nil {
		return nil, err
	}

	startResp, err := client.Start(ctx, &blastrpc.StartRequest{NumNodes: numNodes})
	if err != nil {
		return nil, fmt.Errorf("model %s: start nodes: %w", modelName, err)
	}
	if !startResp.Success {
		return nil, fmt.Errorf("model %s: start nodes reported failure", modelName)
	}

	simResp, err := client.SimLn(ctx, &blastrpc.SimLnRequest{})
	if err != nil {
		return nil, fmt.Errorf("model %s: sim-ln: %w", modelName, err)
	}
	return simResp.SimLn, nil
}
