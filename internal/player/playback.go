package player

import (
	"fmt"

	"github.com/famish99/winampmpd/internal/winamp"
)

// Play starts playback of the current entry, or resumes when paused.
func (p *Player) Play() error {
	return p.transport("play", func(c Controller) error { return c.Play() })
}

// PlayAt makes pos the current entry and plays it.
func (p *Player) PlayAt(pos int) error {
	return p.transport("play", func(c Controller) error {
		n, err := c.ListLength()
		if err != nil {
			return err
		}
		if pos < 0 || pos >= n {
			return fmt.Errorf("%w: playlist position %d of %d", winamp.ErrInvalidArgument, pos, n)
		}
		if err := c.SetListPosition(pos); err != nil {
			return err
		}
		return c.Play()
	})
}

// PlayID plays the entry with the given playlist ID.
func (p *Player) PlayID(id int) error {
	pos := p.pl.FindByID(id)
	if pos < 0 {
		return fmt.Errorf("%w: no song with id %d", winamp.ErrInvalidArgument, id)
	}
	return p.PlayAt(pos)
}

// Pause pauses playback. It does nothing unless playing; the target's
// pause button toggles.
func (p *Player) Pause() error {
	return p.transport("pause", func(c Controller) error {
		st, err := c.Status()
		if err != nil {
			return err
		}
		if st != winamp.StatusPlaying {
			return nil
		}
		return c.Pause()
	})
}

// Resume continues paused playback and does nothing otherwise.
func (p *Player) Resume() error {
	return p.transport("resume", func(c Controller) error {
		st, err := c.Status()
		if err != nil {
			return err
		}
		if st != winamp.StatusPaused {
			return nil
		}
		return c.Pause()
	})
}

// StopPlayback stops playback. Stop is the lifecycle counterpart of Start.
func (p *Player) StopPlayback() error {
	return p.transport("stop", func(c Controller) error { return c.Stop() })
}

// Next skips to the next entry.
func (p *Player) Next() error {
	return p.transport("next", func(c Controller) error { return c.Next() })
}

// Previous goes back to the previous entry.
func (p *Player) Previous() error {
	return p.transport("previous", func(c Controller) error { return c.Previous() })
}

// Seek jumps to seconds into the current track.
func (p *Player) Seek(seconds float64) error {
	if seconds < 0 {
		return fmt.Errorf("%w: negative seek position", winamp.ErrInvalidArgument)
	}
	return p.transport("seek", func(c Controller) error {
		return c.Seek(int(seconds * 1000))
	})
}

// SeekRelative moves delta seconds from the current position, clamped to
// the start of the track.
func (p *Player) SeekRelative(delta float64) error {
	return p.transport("seek", func(c Controller) error {
		ms, err := c.TrackPosition()
		if err != nil {
			return err
		}
		if ms < 0 {
			return winamp.ErrNotPlaying
		}
		target := ms + int(delta*1000)
		if target < 0 {
			target = 0
		}
		return c.Seek(target)
	})
}

// SetVolume sets the volume in percent.
func (p *Player) SetVolume(percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("%w: volume %d out of range 0-100", winamp.ErrInvalidArgument, percent)
	}
	err := p.do(func(c Controller) error { return c.SetVolume(fromPercent(percent)) })
	if err == nil {
		p.notify("mixer")
	}
	return err
}

// SetRandom turns shuffle on or off.
func (p *Player) SetRandom(on bool) error {
	return p.option(func(c Controller) error { return c.SetShuffle(on) })
}

// SetRepeat turns repeat on or off.
func (p *Player) SetRepeat(on bool) error {
	return p.option(func(c Controller) error { return c.SetRepeat(on) })
}

func (p *Player) option(fn func(Controller) error) error {
	err := p.do(fn)
	if err == nil {
		p.notify("options")
	}
	return err
}

func (p *Player) transport(op string, fn func(Controller) error) error {
	if err := p.do(fn); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	p.log.Debug("transport", "op", op)
	p.notify("player")
	return nil
}
