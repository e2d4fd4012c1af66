package player

import (
	"fmt"

	"github.com/famish99/winampmpd/internal/playlist"
	"github.com/famish99/winampmpd/internal/winamp"
)

// Playlist rereads the target's playlist and returns the snapshot.
func (p *Player) Playlist() (*playlist.Playlist, error) {
	p.mu.Lock()
	var changed []string
	err := p.doLocked(func(c Controller) error {
		var err error
		_, changed, err = p.refreshLocked(c, true)
		return err
	})
	p.mu.Unlock()

	p.notify(changed...)
	if err != nil {
		return nil, err
	}
	return p.pl, nil
}

// Add appends uri to the target's playlist and returns the new entry.
func (p *Player) Add(uri string) (playlist.Track, error) {
	p.mu.Lock()
	var track playlist.Track
	var changed []string
	err := p.doLocked(func(c Controller) error {
		if err := c.Enqueue(uri); err != nil {
			return err
		}
		var err error
		if _, changed, err = p.refreshLocked(c, true); err != nil {
			return err
		}
		n := p.pl.Length()
		if n == 0 {
			return fmt.Errorf("%s was not added to the playlist", uri)
		}
		t, err := p.pl.Get(n - 1)
		if err != nil {
			return err
		}
		track = *t
		return nil
	})
	p.mu.Unlock()

	if err != nil {
		return track, err
	}
	p.log.Info("added to playlist", "uri", uri, "id", track.ID)
	p.notify(withSubsystem(changed, "playlist")...)
	return track, nil
}

// Clear empties the target's playlist.
func (p *Player) Clear() error {
	return p.edit(func(c Controller) error { return c.ClearPlaylist() })
}

// Delete removes the entry at pos.
func (p *Player) Delete(pos int) error {
	return p.edit(func(c Controller) error {
		n, err := c.ListLength()
		if err != nil {
			return err
		}
		if pos < 0 || pos >= n {
			return fmt.Errorf("%w: playlist position %d of %d", winamp.ErrInvalidArgument, pos, n)
		}
		return c.RemoveAt(pos)
	})
}

// DeleteID removes the entry with the given playlist ID.
func (p *Player) DeleteID(id int) error {
	pos := p.pl.FindByID(id)
	if pos < 0 {
		return fmt.Errorf("%w: no song with id %d", winamp.ErrInvalidArgument, id)
	}
	return p.Delete(pos)
}

func (p *Player) edit(fn func(Controller) error) error {
	p.mu.Lock()
	var changed []string
	err := p.doLocked(func(c Controller) error {
		if err := fn(c); err != nil {
			return err
		}
		var err error
		_, changed, err = p.refreshLocked(c, true)
		return err
	})
	p.mu.Unlock()

	if err == nil {
		p.notify(withSubsystem(changed, "playlist")...)
	}
	return err
}

func withSubsystem(changed []string, s string) []string {
	for _, c := range changed {
		if c == s {
			return changed
		}
	}
	return append(changed, s)
}
