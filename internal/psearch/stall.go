package psearch

import "math"

// StallConfig controls early stopping when the search stops making progress.
type StallConfig struct {
	// Enabled controls whether stall detection is active.
	Enabled bool

	// Patience is the number of iterations with no significant improvement
	// before the search stops.
	Patience int

	// Threshold is the minimum relative improvement of the progress
	// indicator required to count as progress (0.001 = 0.1%).
	Threshold float64
}

// DefaultStallConfig returns sensible defaults for stall detection.
func DefaultStallConfig() StallConfig {
	return StallConfig{Enabled: true, Patience: 10, Threshold: 1e-4}
}

// stallTracker watches a scalar progress indicator (here: the best aggregate
// objective in the archive) and reports when it has gone stale.
type stallTracker struct {
	config          StallConfig
	best            float64
	lastSignificant float64
	staleCount      int
}

func newStallTracker(config StallConfig) *stallTracker {
	return &stallTracker{
		config:          config,
		best:            math.Inf(1),
		lastSignificant: math.Inf(1),
	}
}

// Update records a new indicator value and returns true once the configured
// patience is exhausted without significant relative improvement.
func (s *stallTracker) Update(v float64) bool {
	if !s.config.Enabled {
		return false
	}
	if v < s.best {
		s.best = v
	}
	if math.IsInf(s.lastSignificant, 1) {
		s.lastSignificant = v
		return false
	}
	improvement := (s.lastSignificant - v) / math.Abs(s.lastSignificant)
	if improvement >= s.config.Threshold {
		s.lastSignificant = v
		s.staleCount = 0
		return false
	}
	s.staleCount++
	return s.staleCount >= s.config.Patience
}
