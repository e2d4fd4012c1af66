package player

import (
	"context"
	"errors"
	"time"
)

// refreshLoop polls the target until ctx is cancelled so that changes made
// in Winamp itself reach idle MPD clients.
func (p *Player) refreshLoop(ctx context.Context, done chan<- struct{}) {
	defer close(done)
	defer p.log.Debug("refresh loop exiting")

	ticker := time.NewTicker(p.refreshInterval)
	defer ticker.Stop()

	for {
		p.refresh()

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// refresh takes one snapshot and notifies what changed.
func (p *Player) refresh() {
	p.mu.Lock()
	var changed []string
	err := p.doLocked(func(c Controller) error {
		var err error
		_, changed, err = p.refreshLocked(c, false)
		return err
	})
	p.mu.Unlock()

	if err != nil && !errors.Is(err, ErrNotConnected) {
		p.log.Warn("refresh failed", "error", err)
	}
	p.notify(changed...)
}
