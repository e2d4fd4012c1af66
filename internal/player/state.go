package player

import (
	"github.com/famish99/winampmpd/internal/playlist"
	"github.com/famish99/winampmpd/internal/winamp"
)

// PlaybackState represents the current playback state
type PlaybackState int

const (
	StateStopped PlaybackState = iota
	StatePlaying
	StatePaused
)

func (s PlaybackState) String() string {
	switch s {
	case StatePlaying:
		return "play"
	case StatePaused:
		return "pause"
	default:
		return "stop"
	}
}

func stateOf(st winamp.PlaybackStatus) PlaybackState {
	switch st {
	case winamp.StatusPlaying:
		return StatePlaying
	case winamp.StatusPaused:
		return StatePaused
	default:
		return StateStopped
	}
}

// Status is one snapshot of the target's state.
type Status struct {
	State  PlaybackState
	Volume int // percent
	Random bool
	Repeat bool

	// Song is the current playlist position, -1 when the playlist is empty.
	Song   int
	SongID int
	Length int

	Elapsed  float64 // seconds
	Duration int     // seconds, -1 when unknown

	PlaylistVersion uint32
}

// toPercent maps a target volume (0-255) to MPD's 0-100.
func toPercent(v int) int {
	return (v*100 + 127) / 255
}

// fromPercent maps an MPD volume (0-100) to the target's 0-255.
func fromPercent(p int) int {
	return (p*255 + 50) / 100
}

// GetState returns the current playback state
func (p *Player) GetState() (PlaybackState, error) {
	var state PlaybackState
	err := p.do(func(c Controller) error {
		st, err := c.Status()
		state = stateOf(st)
		return err
	})
	return state, err
}

// Volume returns the volume in percent.
func (p *Player) Volume() (int, error) {
	var vol int
	err := p.do(func(c Controller) error {
		v, err := c.Volume()
		vol = toPercent(v)
		return err
	})
	return vol, err
}

// Status reads a fresh snapshot from the target and notifies subsystems
// that changed since the previous one.
func (p *Player) Status() (Status, error) {
	p.mu.Lock()
	var st Status
	var changed []string
	err := p.doLocked(func(c Controller) error {
		var err error
		st, changed, err = p.refreshLocked(c, false)
		return err
	})
	p.mu.Unlock()

	p.notify(changed...)
	return st, err
}

// refreshLocked reads the status and, when the playlist length moved or
// full is set, the playlist. It returns the subsystems that changed.
func (p *Player) refreshLocked(c Controller, full bool) (Status, []string, error) {
	st, err := readStatus(c)
	if err != nil {
		return st, nil, err
	}

	var changed []string
	if full || st.Length != p.pl.Length() || st.Song != p.pl.CurrentIndex() {
		plChanged, err := p.reloadPlaylistLocked(c, st.Song)
		if err != nil {
			return st, nil, err
		}
		if plChanged {
			changed = append(changed, "playlist")
		}
	}
	st.PlaylistVersion = p.pl.Version()
	st.SongID = -1
	if t, err := p.pl.Get(st.Song); err == nil {
		st.SongID = t.ID
	}

	if p.hasLast {
		last := p.last
		if st.State != last.State || st.SongID != last.SongID {
			changed = append(changed, "player")
		}
		if st.Volume != last.Volume {
			changed = append(changed, "mixer")
		}
		if st.Random != last.Random || st.Repeat != last.Repeat {
			changed = append(changed, "options")
		}
	}
	p.last, p.hasLast = st, true
	return st, changed, nil
}

func readStatus(c Controller) (Status, error) {
	st := Status{Song: -1, Duration: -1}

	ps, err := c.Status()
	if err != nil {
		return st, err
	}
	st.State = stateOf(ps)

	vol, err := c.Volume()
	if err != nil {
		return st, err
	}
	st.Volume = toPercent(vol)

	if st.Random, err = c.Shuffle(); err != nil {
		return st, err
	}
	if st.Repeat, err = c.Repeat(); err != nil {
		return st, err
	}

	if st.Length, err = c.ListLength(); err != nil {
		return st, err
	}
	if st.Length > 0 {
		pos, err := c.ListPosition()
		if err != nil {
			return st, err
		}
		if pos >= 0 && pos < st.Length {
			st.Song = pos
		}
	}

	if st.State != StateStopped {
		ms, err := c.TrackPosition()
		if err != nil {
			return st, err
		}
		if ms > 0 {
			st.Elapsed = float64(ms) / 1000
		}
		secs, err := c.TrackLength()
		if err != nil {
			return st, err
		}
		if secs >= 0 {
			st.Duration = secs
		}
	}
	return st, nil
}

func (p *Player) reloadPlaylistLocked(c Controller, current int) (bool, error) {
	files, err := c.PlaylistFiles()
	if err != nil {
		return false, err
	}
	titles, err := c.PlaylistTitles()
	if err != nil {
		return false, err
	}

	tracks := make([]playlist.Track, len(files))
	for i, f := range files {
		tracks[i] = playlist.Track{URI: f, Title: f, Length: -1}
		if i < len(titles) && titles[i] != "" {
			tracks[i].Title = titles[i]
		}
	}
	return p.pl.Replace(tracks, current), nil
}
