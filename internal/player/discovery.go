package player

import (
	"errors"
	"fmt"

	"github.com/famish99/winampmpd/internal/winamp"
)

// ErrNotConnected is returned by operations while no session is attached.
var ErrNotConnected = errors.New("not connected to winamp")

// Controller is the part of a winamp session the player drives.
// *winamp.Session implements it.
type Controller interface {
	Status() (winamp.PlaybackStatus, error)
	Play() error
	Pause() error
	Stop() error
	Next() error
	Previous() error
	Seek(ms int) error
	TrackLength() (int, error)
	TrackPosition() (int, error)
	Volume() (int, error)
	SetVolume(v int) error
	Shuffle() (bool, error)
	SetShuffle(on bool) error
	Repeat() (bool, error)
	SetRepeat(on bool) error

	ListLength() (int, error)
	ListPosition() (int, error)
	SetListPosition(pos int) error
	PlaylistFiles() ([]string, error)
	PlaylistTitles() ([]string, error)
	Enqueue(filename string) error
	ClearPlaylist() error
	RemoveAt(pos int) error

	Query(filter string, maxResults int) ([]winamp.Item, error)
	QueryKeyword(keyword string, maxResults int) ([]winamp.Item, error)
	ListChildren(path []string) ([]winamp.CatalogItem, error)
	ExtendedFileInfo(filename, field string, capacity int) (string, error)

	Detach() error
}

// AttachFunc opens a new session to the target.
type AttachFunc func() (Controller, error)

// Attacher returns an AttachFunc for the window class title.
func Attacher(sys winamp.System, title string, opts ...winamp.Option) AttachFunc {
	return func() (Controller, error) {
		s, err := winamp.Attach(sys, title, opts...)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// Connect attaches to the target unless already attached.
func (p *Player) Connect() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connectLocked()
}

func (p *Player) connectLocked() error {
	if p.ctl != nil {
		return nil
	}
	ctl, err := p.attach()
	if err != nil {
		return fmt.Errorf("failed to attach to winamp: %w", err)
	}
	p.ctl = ctl
	p.log.Info("connected to winamp")
	return nil
}

// Disconnect detaches the session. It is a no-op when not connected.
func (p *Player) Disconnect() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.disconnectLocked()
}

func (p *Player) disconnectLocked() error {
	if p.ctl == nil {
		return nil
	}
	err := p.ctl.Detach()
	p.ctl = nil
	p.log.Info("disconnected from winamp")
	return err
}

// Connected reports whether a session is attached.
func (p *Player) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctl != nil
}
