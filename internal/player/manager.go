package player

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// DefaultCheckInterval is used when Manager.Interval is not set.
const DefaultCheckInterval = 5123 * time.Millisecond

// Service is something the manager starts and stops.
type Service interface {
	Start() error
	Stop() error
	Stopped() bool
}

// Manager keeps a Service running exactly while the target runs.
type Manager struct {
	// Running reports whether the target runs. Nil means always.
	Running  func() bool
	Service  Service
	Interval time.Duration
	Log      *slog.Logger
}

// Run checks the target now and then every Interval, starting and stopping
// the service as the target comes and goes. It returns after ctx is done,
// with the service stopped.
func (m *Manager) Run(ctx context.Context) error {
	log := m.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if m.Running == nil {
		if err := m.Service.Start(); err != nil {
			log.Error("failed to start player", "error", err)
		}
		<-ctx.Done()
		return m.stop(log)
	}

	interval := m.Interval
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		m.check(log)

		select {
		case <-ctx.Done():
			return m.stop(log)
		case <-ticker.C:
		}
	}
}

func (m *Manager) check(log *slog.Logger) {
	running := m.Running()
	stopped := m.Service.Stopped()

	switch {
	case running && stopped:
		log.Info("winamp is running, starting player")
		if err := m.Service.Start(); err != nil {
			log.Error("failed to start player", "error", err)
		}
	case !running && !stopped:
		log.Info("winamp is gone, stopping player")
		if err := m.Service.Stop(); err != nil {
			log.Error("failed to stop player", "error", err)
		}
	}
}

func (m *Manager) stop(log *slog.Logger) error {
	if m.Service.Stopped() {
		return nil
	}
	log.Info("shutting down player")
	return m.Service.Stop()
}
