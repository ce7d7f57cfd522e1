package event

import "sort"

// Table holds every scheduled event, keyed by frame number, matching the
// HashMap<u64, Vec<BlastEvent>> shape in blast_event_manager.rs.
type Table struct {
	byFrame map[uint64][]Event
}

// NewTable returns an empty event table.
func NewTable() *Table {
	return &Table{byFrame: make(map[uint64][]Event)}
}

// Add appends an event to the given frame's queue, preserving insertion
// order within the frame — push_event in blast_event_manager.rs appends
// rather than replaces.
func (t *Table) Add(frame uint64, e Event) {
	t.byFrame[frame] = append(t.byFrame[frame], e)
}

// At returns the events scheduled for a frame, or nil if none.
func (t *Table) At(frame uint64) []Event {
	return t.byFrame[frame]
}

// Frames returns every frame number with at least one scheduled event, in
// ascending order.
func (t *Table) Frames() []uint64 {
	frames := make([]uint64, 0, len(t.byFrame))
	for f := range t.byFrame {
		frames = append(frames, f)
	}
	sort.Slice(frames, func(i, j int) bool { return frames[i] < frames[j] })
	return frames
}

// Len returns the total number of scheduled events across all frames.
func (t *Table) Len() int {
	n := 0
	for _, events := range t.byFrame {
		n += len(events)
	}
	return n
}
