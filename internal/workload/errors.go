package workload

import "errors"

// Sentinel errors for the workload runner, part of the WorkloadError
// category in spec.md §7.
var (
	ErrUnresolvedSource        = errors.New("workload: activity source not found in node catalog")
	ErrUnknownActivityEndpoint = errors.New("workload: activity destination not found in node catalog")
	ErrDuplicateAlias          = errors.New("workload: duplicate node alias")
	ErrNotConfigured           = errors.New("workload: Setup has not been called")
	ErrAlreadyActive           = errors.New("workload: runner is already active")
)
