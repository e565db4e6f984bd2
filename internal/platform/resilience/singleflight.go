package resilience

import (
	"errors"
	"sync"
)

// ErrSharedCallPanicked is what waiters receive when the call they joined panicked.
var ErrSharedCallPanicked = errors.New("shared call panicked")

// SingleFlight collapses concurrent loads of the same key into one call.
type SingleFlight struct {
	mu       sync.Mutex
	inFlight map[string]*flight
}

type flight struct {
	done chan struct{}
	val  any
	err  error
}

// Do runs fn once per key at a time. Callers that arrive while fn runs wait
// for its result; shared reports whether the result came from another caller.
// A panic in fn is re-raised in the caller that ran it.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (val any, err error, shared bool) {
	g.mu.Lock()
	if f, ok := g.inFlight[key]; ok {
		g.mu.Unlock()
		<-f.done
		return f.val, f.err, true
	}
	if g.inFlight == nil {
		g.inFlight = make(map[string]*flight)
	}
	f := &flight{done: make(chan struct{}), err: ErrSharedCallPanicked}
	g.inFlight[key] = f
	g.mu.Unlock()

	defer g.land(key, f)
	f.val, f.err = fn()
	return f.val, f.err, false
}

func (g *SingleFlight) land(key string, f *flight) {
	g.mu.Lock()
	delete(g.inFlight, key)
	g.mu.Unlock()
	close(f.done)
}
