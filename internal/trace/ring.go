package trace

import (
	"fmt"
	"io"
	"sync"
)

const defaultRingSize = 4096

// RingTracer keeps the most recent events in memory so that a crashing command
// can still show what it was doing.
type RingTracer struct {
	mu     sync.RWMutex
	events []Event
	total  uint64 // events accepted since creation
	level  Level
}

// NewRingTracer creates a ring holding at most size events.
func NewRingTracer(size int, level Level) *RingTracer {
	if size <= 0 {
		size = defaultRingSize
	}
	return &RingTracer{events: make([]Event, size), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	t.events[t.total%uint64(len(t.events))] = *ev
	t.total++
	t.mu.Unlock()
}

// Overwritten reports how many events fell out of the ring.
func (t *RingTracer) Overwritten() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if n := uint64(len(t.events)); t.total > n {
		return t.total - n
	}
	return 0
}

// Snapshot returns the stored events oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()

	size := uint64(len(t.events))
	if t.total <= size {
		out := make([]Event, t.total)
		copy(out, t.events[:t.total])
		return out
	}
	start := t.total % size
	out := make([]Event, 0, size)
	out = append(out, t.events[start:]...)
	return append(out, t.events[:start]...)
}

// Dump writes the stored events to w, preceded by a note about lost events.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	if lost := t.Overwritten(); lost > 0 && format == FormatText {
		if _, err := fmt.Fprintf(w, "(%d earlier events overwritten)\n", lost); err != nil {
			return err
		}
	}
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
