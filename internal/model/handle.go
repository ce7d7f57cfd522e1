package model

import (
	"context"
	"fmt"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/bjohnson5/blast/blastrpc"
)

// State is the lifecycle of a model handle.
type State int

const (
	Registered State = iota
	Starting
	Ready
	Stopping
	Gone
)

func (s State) String() string {
	switch s {
	case Registered:
		return "registered"
	case Starting:
		return "starting"
	case Ready:
		return "ready"
	case Stopping:
		return "stopping"
	case Gone:
		return "gone"
	default:
		return "unknown"
	}
}

// dialRetryInterval matches the 1s thread::sleep retry loop in
// blast_model_manager.rs's start_model.
const dialRetryInterval = time.Second

// Handle tracks one running (or about to run) model: its configuration,
// its process, and once dialed, its RPC client.
type Handle struct {
	Config Config

	mu      sync.Mutex
	state   State
	proc    Process
	conn    *grpc.ClientConn
	client  blastrpc.Client
	backend Backend // retained for Stop's stop-script fallback
	dir     string
}

// NewHandle creates a handle in the Registered state.
func NewHandle(cfg Config) *Handle {
	return &Handle{Config: cfg, state: Registered}
}

// State returns the handle's current lifecycle state.
func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Client returns the handle's RPC client. Only valid once the handle has
// reached Ready.
func (h *Handle) Client() (blastrpc.Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != Ready {
		return nil, fmt.Errorf("%w: model %s is %s", ErrNotReady, h.Config.Name, h.state)
	}
	return h.client, nil
}

// Start spawns the model's process and dials its RPC endpoint, retrying
// with a 1s backoff until ctx is cancelled — the Go analogue of
// start_model's polling Channel::from_shared(addr).connect() loop guarded
// by the running atomic flag. The returned Process is the child-process
// token the caller owns from this point on; the handle keeps a copy but
// never waits on it, and retains the backend only to spawn an out-of-band
// stop script later.
func (h *Handle) Start(ctx context.Context, backend Backend, modelsDir string) (Process, error) {
	h.mu.Lock()
	if h.state != Registered {
		h.mu.Unlock()
		return nil, fmt.Errorf("%w: model %s", ErrAlreadyStarted, h.Config.Name)
	}
	h.state = Starting
	h.mu.Unlock()

	dir := modelsDir + "/" + h.Config.Name
	proc, err := backend.Spawn(ctx, dir, h.Config.Start)
	if err != nil {
		h.setState(Gone)
		return nil, fmt.Errorf("model %s: %w", h.Config.Name, err)
	}

	conn, client, err := dialWithRetry(ctx, h.Config.RPC)
	if err != nil {
		proc.Kill()
		h.setState(Gone)
		return nil, fmt.Errorf("model %s: %w", h.Config.Name, err)
	}

	h.mu.Lock()
	h.proc = proc
	h.conn = conn
	h.client = client
	h.backend = backend
	h.dir = dir
	h.state = Ready
	h.mu.Unlock()

	return proc, nil
}

func dialWithRetry(ctx context.Context, addr string) (*grpc.ClientConn, blastrpc.Client, error) {
	ticker := time.NewTicker(dialRetryInterval)
	defer ticker.Stop()

	for {
		conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err == nil {
			// NewClient does not connect; wait up to one retry interval for
			// the channel to reach Ready before counting the attempt a success.
			attemptCtx, cancel := context.WithTimeout(ctx, dialRetryInterval)
			conn.Connect()
			state := conn.GetState()
			for state != connectivity.Ready && conn.WaitForStateChange(attemptCtx, state) {
				state = conn.GetState()
			}
			cancel()
			if state == connectivity.Ready {
				return conn, blastrpc.NewClient(conn), nil
			}
			conn.Close()
		}

		select {
		case <-ctx.Done():
			return nil, nil, fmt.Errorf("%w: %v", ErrDialTimeout, ctx.Err())
		case <-ticker.C:
		}
	}
}

// Stop asks the model to shut down over RPC. If that fails, it falls back
// to an out-of-band stop script named by the model, matching spec.md
// §4.1's "if that fails, fall back to an out-of-band stop script named by
// the model". Neither path reaps the original child process: the caller
// that received the token from Start is responsible for waiting on it
// (spec.md §5 — "the orchestrator does not own the reaping step").
func (h *Handle) Stop(ctx context.Context) error {
	h.mu.Lock()
	h.state = Stopping
	client, conn, backend, dir, stopScript := h.client, h.conn, h.backend, h.dir, h.Config.StopScript
	h.mu.Unlock()

	var rpcErr error
	if client != nil {
		_, rpcErr = client.StopModel(ctx, &blastrpc.StopModelRequest{})
	} else {
		rpcErr = fmt.Errorf("%w: model %s", ErrNotReady, h.Config.Name)
	}

	if rpcErr != nil {
		if stopScript == "" || backend == nil {
			h.setState(Gone)
			return fmt.Errorf("model %s: stop_model failed and no stop script configured: %w", h.Config.Name, rpcErr)
		}
		scriptProc, err := backend.Spawn(ctx, dir, stopScript)
		if err != nil {
			h.setState(Gone)
			return fmt.Errorf("model %s: stop script: %w", h.Config.Name, err)
		}
		if err := scriptProc.Wait(); err != nil {
			h.setState(Gone)
			return fmt.Errorf("%w: model %s: stop script: %v", ErrProcessFailed, h.Config.Name, err)
		}
	}

	if conn != nil {
		conn.Close()
	}

	h.setState(Gone)
	return nil
}

func (h *Handle) setState(s State) {
	h.mu.Lock()
	h.state = s
	h.mu.Unlock()
}
