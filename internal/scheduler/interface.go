package scheduler

import (
	"log/slog"

	"github.com/vk/pulsegrid/internal/circuit"
)

// Observer is notified of every signal as it is dequeued, before delivery.
type Observer interface {
	Observe(press int, sig circuit.Signal)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(press int, sig circuit.Signal)

// Observe implements Observer.
func (f ObserverFunc) Observe(press int, sig circuit.Signal) {
	f(press, sig)
}

// Observers fans a signal out to several observers in order.
type Observers []Observer

// Observe implements Observer.
func (obs Observers) Observe(press int, sig circuit.Signal) {
	for _, o := range obs {
		o.Observe(press, sig)
	}
}

// LogObserver logs every signal at debug level.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an observer that writes to logger.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

// Observe implements Observer.
func (o *LogObserver) Observe(press int, sig circuit.Signal) {
	o.logger.Debug("Signal.", "press", press, "signal", sig.String())
}
