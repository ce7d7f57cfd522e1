package model

import "errors"

// Sentinel errors for the model registry/supervisor, part of the error
// taxonomy shared across the orchestrator (spec §7): ConfigError and
// ProcessError originate here, TransportError/RpcError originate once a
// Handle has a live RPC connection.
var (
	ErrConfig         = errors.New("model: invalid or missing configuration")
	ErrProcessFailed  = errors.New("model: process failed to start")
	ErrProcessExited  = errors.New("model: process exited unexpectedly")
	ErrDialTimeout    = errors.New("model: timed out dialing RPC endpoint")
	ErrUnknownNode    = errors.New("model: no registered model owns this node id")
	ErrNotReady       = errors.New("model: handle is not in a ready state")
	ErrAlreadyStarted = errors.New("model: already started")
)
