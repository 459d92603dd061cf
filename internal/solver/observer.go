package solver

import "log/slog"

// Event is one progress report from a running engine. Events are
// observational only; emitting one never halts the run.
type Event struct {
	Phase     string `json:"phase"`
	Iteration int    `json:"iteration"`
	Evals     int    `json:"evals"`
}

// Observer receives progress events.
type Observer interface {
	Progress(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

func (f ObserverFunc) Progress(e Event) { f(e) }

// LogObserver writes one slog line per event; it is the default when no
// observer is configured.
type LogObserver struct{}

func (LogObserver) Progress(e Event) {
	slog.Info("Solver progress", "phase", e.Phase, "iteration", e.Iteration, "evals", e.Evals)
}

// MultiObserver fans events out to several observers.
type MultiObserver []Observer

func (m MultiObserver) Progress(e Event) {
	for _, o := range m {
		o.Progress(e)
	}
}
