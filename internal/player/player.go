package player

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/famish99/winampmpd/internal/art"
	"github.com/famish99/winampmpd/internal/playlist"
	"github.com/famish99/winampmpd/internal/winamp"
)

// DefaultRefreshInterval is how often a started player polls the target
// for changes made outside of MPD.
const DefaultRefreshInterval = time.Second

// Options configures a Player.
type Options struct {
	// MaxResults caps library queries, 0 for no limit.
	MaxResults int
	// InfoCapacity is the reply buffer size for extended file info.
	InfoCapacity int
	// RefreshInterval is the polling period while started.
	RefreshInterval time.Duration

	Art *art.Finder
	Log *slog.Logger
}

// Player adapts one Winamp instance to the MPD server. A session must not
// be used from several goroutines at once, so every call into the target
// holds mu.
type Player struct {
	mu     sync.Mutex
	attach AttachFunc
	ctl    Controller
	pl     *playlist.Playlist
	art    *art.Finder
	log    *slog.Logger

	maxResults      int
	infoCapacity    int
	refreshInterval time.Duration

	// Refresh loop, non-nil while started
	refreshCancel context.CancelFunc
	refreshDone   chan struct{}

	// Last observed status, for change notification
	last    Status
	hasLast bool

	// Subsystem change notification callback (e.g., for MPD idle notifications)
	notifySubsystem func(subsystem string)
}

// NewPlayer creates a player that attaches through attach. No session is
// opened until Connect or Start.
func NewPlayer(attach AttachFunc, opts Options) *Player {
	log := opts.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	capacity := opts.InfoCapacity
	if capacity <= 0 {
		capacity = winamp.DefaultInfoCapacity
	}
	interval := opts.RefreshInterval
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Player{
		attach:          attach,
		pl:              playlist.NewPlaylist(),
		art:             opts.Art,
		log:             log,
		maxResults:      opts.MaxResults,
		infoCapacity:    capacity,
		refreshInterval: interval,
	}
}

// SetNotifySubsystem sets the callback for subsystem change notifications
// The callback will be invoked when player or playlist state changes
func (p *Player) SetNotifySubsystem(callback func(subsystem string)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notifySubsystem = callback
}

// Start attaches to the target and begins polling it. Starting a started
// player does nothing.
func (p *Player) Start() error {
	p.mu.Lock()
	if p.refreshCancel != nil {
		p.mu.Unlock()
		return nil
	}
	if err := p.connectLocked(); err != nil {
		p.mu.Unlock()
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	p.refreshCancel = cancel
	p.refreshDone = done
	p.hasLast = false
	p.mu.Unlock()

	go p.refreshLoop(ctx, done)
	p.log.Info("player started")
	return nil
}

// Stop ends polling and detaches. Stopping a stopped player does nothing.
func (p *Player) Stop() error {
	p.mu.Lock()
	cancel, done := p.refreshCancel, p.refreshDone
	p.refreshCancel, p.refreshDone = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	<-done

	err := p.Disconnect()
	p.log.Info("player stopped")
	return err
}

// Stopped reports whether the player is stopped.
func (p *Player) Stopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.refreshCancel == nil
}

// do runs fn against the attached session. A session that reports itself
// detached is dropped so the next Connect attaches afresh.
func (p *Player) do(fn func(Controller) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doLocked(fn)
}

func (p *Player) doLocked(fn func(Controller) error) error {
	if p.ctl == nil {
		return ErrNotConnected
	}
	err := fn(p.ctl)
	if errors.Is(err, winamp.ErrDetached) {
		p.log.Warn("session detached underneath the player")
		p.ctl = nil
		return ErrNotConnected
	}
	return err
}

// notify calls the notification callback for each subsystem. Must be
// called without mu held.
func (p *Player) notify(subsystems ...string) {
	p.mu.Lock()
	cb := p.notifySubsystem
	p.mu.Unlock()

	if cb == nil {
		return
	}
	for _, s := range subsystems {
		cb(s)
	}
}
