package event

import "errors"

// Sentinel errors for the scheduler/dispatcher, part of the error taxonomy
// in spec.md §7: ScheduleError and WorkloadError-adjacent cases.
var (
	ErrBadArity           = errors.New("event: wrong number of arguments for event kind")
	ErrBadEventArgs       = errors.New("event: numeric argument failed to parse")
	ErrDispatchChanClosed = errors.New("event: dispatch channel closed")
	ErrUnknownEventKind   = errors.New("event: unknown event kind")
)
