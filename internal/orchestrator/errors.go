package orchestrator

import "errors"

// Sentinel errors for the orchestrator facade.
var (
	ErrNoModels          = errors.New("orchestrator: no models discovered")
	ErrUnknownModel      = errors.New("orchestrator: unknown model in network map")
	ErrNetworkNotStarted = errors.New("orchestrator: network has not been started")
	ErrSimulationActive  = errors.New("orchestrator: simulation is already running")
	ErrSimulationIdle    = errors.New("orchestrator: no simulation is running")
)
