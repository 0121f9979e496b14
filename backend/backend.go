// backend/backend.go - Mock Backend Adapter
//
// Stands in for a real API. Every operation elapses a fixed artificial delay
// for its class, then either succeeds or returns a previously injected
// failure. There is no cancellation: a dispatched call always resolves.
package backend

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Class groups operations by their simulated latency, mirroring the delays
// the original front end used per call site.
type Class int

const (
	ClassAuth   Class = iota // login/signup round-trips, ~1s
	ClassCreate              // create/update/delete round-trips, ~500ms
	ClassQuick               // lightweight ops (move, comment, read-marks), ~300ms
)

type Adapter struct {
	mu       sync.Mutex
	delays   map[Class]time.Duration
	now      func() time.Time
	failures map[string]error
}

// New returns an adapter with the production delays.
func New() *Adapter {
	return &Adapter{
		delays: map[Class]time.Duration{
			ClassAuth:   1000 * time.Millisecond,
			ClassCreate: 500 * time.Millisecond,
			ClassQuick:  300 * time.Millisecond,
		},
		now:      time.Now,
		failures: make(map[string]error),
	}
}

// NewInstant returns an adapter with zero latency. Tests use it so suites do
// not spend wall-clock time sleeping.
func NewInstant() *Adapter {
	a := New()
	for class := range a.delays {
		a.delays[class] = 0
	}
	return a
}

// Do simulates the network round-trip for op. It sleeps for the class delay
// and returns the injected failure for op, if any (consumed once).
func (a *Adapter) Do(class Class, op string) error {
	a.mu.Lock()
	delay := a.delays[class]
	err := a.failures[op]
	if err != nil {
		delete(a.failures, op)
	}
	a.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	return err
}

// FailNext makes the next Do call for op return err. The mock contract has no
// structured error codes; err carries a human-readable message only.
func (a *Adapter) FailNext(op string, err error) {
	a.mu.Lock()
	a.failures[op] = err
	a.mu.Unlock()
}

// NewID returns a server-assigned id.
func (a *Adapter) NewID() string {
	return uuid.NewString()
}

// Now returns the server-assigned timestamp for creates.
func (a *Adapter) Now() time.Time {
	return a.now()
}

// SetClock overrides the adapter clock.
func (a *Adapter) SetClock(now func() time.Time) {
	a.mu.Lock()
	a.now = now
	a.mu.Unlock()
}
