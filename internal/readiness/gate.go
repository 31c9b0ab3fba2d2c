// Package readiness tracks whether the storefront has finished its
// minimum start-up display period.
package readiness

import (
	"sync"
	"time"
)

// Gate starts not-ready and becomes ready exactly once.
type Gate struct {
	once  sync.Once
	ready chan struct{}
}

func New() *Gate {
	return &Gate{ready: make(chan struct{})}
}

// Start schedules the transition to ready after d. A non-positive d makes
// the gate ready immediately.
func (g *Gate) Start(d time.Duration) {
	if d <= 0 {
		g.open()
		return
	}
	time.AfterFunc(d, g.open)
}

func (g *Gate) open() {
	g.once.Do(func() { close(g.ready) })
}

func (g *Gate) Ready() bool {
	select {
	case <-g.ready:
		return true
	default:
		return false
	}
}
