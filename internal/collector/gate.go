package collector

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrTimeout = errors.New("timed out waiting for the scraper to finish")

// Gate is a one-shot completion signal. Set may be called any number of
// times; only the first call has an effect until the next Reset.
type Gate struct {
	mu   sync.Mutex
	ch   chan struct{}
	once *sync.Once
}

func NewGate() *Gate {
	g := &Gate{}
	g.Reset()
	return g
}

// Reset re-arms the gate for a new run.
func (g *Gate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ch = make(chan struct{})
	g.once = new(sync.Once)
}

func (g *Gate) Set() {
	g.mu.Lock()
	ch, once := g.ch, g.once
	g.mu.Unlock()
	once.Do(func() { close(ch) })
}

func (g *Gate) Done() <-chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ch
}

func (g *Gate) IsSet() bool {
	select {
	case <-g.Done():
		return true
	default:
		return false
	}
}

// Wait blocks until the gate is set, ctx is done or timeout elapses.
// A non-positive timeout waits without a bound.
func (g *Gate) Wait(ctx context.Context, timeout time.Duration) error {
	var expired <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		expired = t.C
	}

	select {
	case <-g.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-expired:
		return ErrTimeout
	}
}
