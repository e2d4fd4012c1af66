package playlist

import (
	"fmt"
	"sync"
)

// Track represents a single playlist entry of the target
type Track struct {
	URI    string
	Title  string
	Length int // seconds, -1 when unknown
	Index  int

	// ID stays the same while the entry keeps its position and URI.
	ID int
	// Version is the playlist version that last changed this entry.
	Version uint32
}

// Playlist is a versioned snapshot of the target's playlist. The target
// owns the real list; the snapshot exists so clients can ask what changed
// since a version they saw.
type Playlist struct {
	mu      sync.RWMutex
	tracks  []Track
	current int
	version uint32
	nextID  int
}

// NewPlaylist creates a new empty playlist
func NewPlaylist() *Playlist {
	return &Playlist{
		tracks:  make([]Track, 0),
		current: -1,
		version: 1,
	}
}

// Replace installs a fresh snapshot. Entries whose URI or title differ
// from the previous snapshot at the same position get a new ID and are
// stamped with the new version. It reports whether anything changed.
func (p *Playlist) Replace(tracks []Track, current int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	changed := len(tracks) != len(p.tracks)
	next := p.version + 1

	out := make([]Track, len(tracks))
	for i, t := range tracks {
		t.Index = i
		if i < len(p.tracks) && p.tracks[i].URI == t.URI && p.tracks[i].Title == t.Title {
			t.ID = p.tracks[i].ID
			t.Version = p.tracks[i].Version
		} else {
			p.nextID++
			t.ID = p.nextID
			t.Version = next
			changed = true
		}
		out[i] = t
	}

	if current < -1 || current >= len(out) {
		current = -1
	}
	p.tracks = out
	p.current = current

	if changed {
		p.version = next
	}
	return changed
}

// ChangesSince returns the entries changed after version, in order.
func (p *Playlist) ChangesSince(version uint32) []Track {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var out []Track
	for _, t := range p.tracks {
		if t.Version > version {
			out = append(out, t)
		}
	}
	return out
}

// Version returns the snapshot's version
func (p *Playlist) Version() uint32 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.version
}

// Current returns the current track
func (p *Playlist) Current() (*Track, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.current < 0 || p.current >= len(p.tracks) {
		return nil, fmt.Errorf("no current track")
	}

	t := p.tracks[p.current]
	return &t, nil
}

// Get returns the track at index
func (p *Playlist) Get(index int) (*Track, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if index < 0 || index >= len(p.tracks) {
		return nil, fmt.Errorf("invalid track index: %d", index)
	}
	t := p.tracks[index]
	return &t, nil
}

// FindByID returns the position of the entry with the given ID, or -1.
func (p *Playlist) FindByID(id int) int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for i, t := range p.tracks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Length returns the number of tracks
func (p *Playlist) Length() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.tracks)
}

// GetAll returns all tracks
func (p *Playlist) GetAll() []Track {
	p.mu.RLock()
	defer p.mu.RUnlock()

	// Return a copy to prevent external modification
	tracks := make([]Track, len(p.tracks))
	copy(tracks, p.tracks)
	return tracks
}

// CurrentIndex returns the current track index
func (p *Playlist) CurrentIndex() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}
