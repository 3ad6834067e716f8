package engine

import "time"

// Start begins the countdown. Calling it again restarts the clock.
func (g *Game) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.started = g.now()
	g.logger.Info("timer started", "limit", g.limit)
}

// Remaining is the time left, never negative. Before Start it is the
// full limit.
func (g *Game) Remaining() time.Duration {
	g.mu.Lock()
	started := g.started
	g.mu.Unlock()

	if started.IsZero() {
		return g.limit
	}
	return max(0, g.limit-g.now().Sub(started))
}

func (g *Game) IsExpired() bool {
	return g.Remaining() <= 0
}

func (g *Game) TimeLimit() time.Duration {
	return g.limit
}
