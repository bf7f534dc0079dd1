// Package memory records dispatched heat signals in memory, for tests and
// harnesses that need to inspect emitted events.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/heatwatch/thermaltrap/pkg/trap"
)

// Event is one recorded dispatch.
type Event struct {
	Origin  string
	Payload []byte
}

// Dispatcher implements trap.Dispatcher by appending to an in-memory log.
type Dispatcher struct {
	allowed trap.AllowList

	mu     sync.Mutex
	events []Event
}

var _ trap.Dispatcher = (*Dispatcher)(nil)

// New creates a recording dispatcher restricted to the given allow-list.
func New(allowed trap.AllowList) *Dispatcher {
	return &Dispatcher{allowed: allowed}
}

// DispatchHeat implements trap.Dispatcher. The recorded payload is a copy, so
// later mutation of the caller's slice cannot rewrite history.
func (d *Dispatcher) DispatchHeat(_ context.Context, origin string, payload []byte) error {
	if !d.allowed.Permits(origin) {
		return fmt.Errorf("%w: %q", trap.ErrUnauthorizedDispatch, origin)
	}

	recorded := make([]byte, len(payload))
	copy(recorded, payload)

	d.mu.Lock()
	d.events = append(d.events, Event{Origin: origin, Payload: recorded})
	d.mu.Unlock()
	return nil
}

// Events returns a snapshot of everything dispatched so far.
func (d *Dispatcher) Events() []Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Event, len(d.events))
	copy(out, d.events)
	return out
}
