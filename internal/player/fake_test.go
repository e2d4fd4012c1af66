package player

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/famish99/winampmpd/internal/winamp"
)

// fakeController is an in-memory Winamp.
type fakeController struct {
	status  winamp.PlaybackStatus
	volume  int
	shuffle bool
	repeat  bool
	files   []string
	titles  []string
	pos     int
	posMS   int
	lengthS int

	info      map[string]string // field -> value, missing fields unsupported
	items     []winamp.Item
	catalog   []winamp.CatalogItem
	lastQuery string

	calls    []string
	detached int
	fail     error
}

func newFake() *fakeController {
	return &fakeController{
		volume:  255,
		posMS:   -1,
		lengthS: -1,
		info:    map[string]string{},
	}
}

func (f *fakeController) call(name string) error {
	f.calls = append(f.calls, name)
	return f.fail
}

func (f *fakeController) called(name string) int {
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeController) Status() (winamp.PlaybackStatus, error) {
	return f.status, f.call("status")
}

func (f *fakeController) Play() error {
	f.status = winamp.StatusPlaying
	f.posMS = 0
	return f.call("play")
}

func (f *fakeController) Pause() error {
	switch f.status {
	case winamp.StatusPlaying:
		f.status = winamp.StatusPaused
	case winamp.StatusPaused:
		f.status = winamp.StatusPlaying
	}
	return f.call("pause")
}

func (f *fakeController) Stop() error {
	f.status = winamp.StatusStopped
	return f.call("stop")
}

func (f *fakeController) Next() error {
	if f.pos+1 < len(f.files) {
		f.pos++
	}
	return f.call("next")
}

func (f *fakeController) Previous() error {
	if f.pos > 0 {
		f.pos--
	}
	return f.call("previous")
}

func (f *fakeController) Seek(ms int) error {
	if f.status == winamp.StatusStopped {
		return winamp.ErrNotPlaying
	}
	f.posMS = ms
	return f.call(fmt.Sprintf("seek %d", ms))
}

func (f *fakeController) TrackLength() (int, error)   { return f.lengthS, f.call("length") }
func (f *fakeController) TrackPosition() (int, error) { return f.posMS, f.call("position") }
func (f *fakeController) Volume() (int, error)        { return f.volume, f.call("volume") }

func (f *fakeController) SetVolume(v int) error {
	f.volume = v
	return f.call("setvolume")
}

func (f *fakeController) Shuffle() (bool, error) { return f.shuffle, f.call("shuffle") }

func (f *fakeController) SetShuffle(on bool) error {
	f.shuffle = on
	return f.call("setshuffle")
}

func (f *fakeController) Repeat() (bool, error) { return f.repeat, f.call("repeat") }

func (f *fakeController) SetRepeat(on bool) error {
	f.repeat = on
	return f.call("setrepeat")
}

func (f *fakeController) ListLength() (int, error)   { return len(f.files), f.call("listlength") }
func (f *fakeController) ListPosition() (int, error) { return f.pos, f.call("listposition") }

func (f *fakeController) SetListPosition(pos int) error {
	f.pos = pos
	return f.call(fmt.Sprintf("setpos %d", pos))
}

func (f *fakeController) PlaylistFiles() ([]string, error) {
	return append([]string(nil), f.files...), f.call("files")
}

func (f *fakeController) PlaylistTitles() ([]string, error) {
	return append([]string(nil), f.titles...), f.call("titles")
}

func (f *fakeController) Enqueue(filename string) error {
	if err := f.call("enqueue"); err != nil {
		return err
	}
	f.files = append(f.files, filename)
	title := filename[strings.LastIndex(filename, `\`)+1:]
	f.titles = append(f.titles, title)
	return nil
}

func (f *fakeController) ClearPlaylist() error {
	f.files, f.titles, f.pos = nil, nil, 0
	return f.call("clear")
}

func (f *fakeController) RemoveAt(pos int) error {
	f.files = append(f.files[:pos], f.files[pos+1:]...)
	f.titles = append(f.titles[:pos], f.titles[pos+1:]...)
	return f.call(fmt.Sprintf("remove %d", pos))
}

func (f *fakeController) Query(filter string, max int) ([]winamp.Item, error) {
	f.lastQuery = filter
	return f.items, f.call("query")
}

func (f *fakeController) QueryKeyword(keyword string, max int) ([]winamp.Item, error) {
	f.lastQuery = keyword
	return f.items, f.call("keyword")
}

func (f *fakeController) ListChildren(path []string) ([]winamp.CatalogItem, error) {
	if len(path) > 0 {
		return nil, &winamp.CatalogNotFoundError{Label: path[0]}
	}
	return f.catalog, f.call("children")
}

func (f *fakeController) ExtendedFileInfo(filename, field string, capacity int) (string, error) {
	if err := f.call("info " + field); err != nil {
		return "", err
	}
	v, ok := f.info[field]
	if !ok {
		return "", &winamp.UnsupportedError{Op: field}
	}
	return v, nil
}

func (f *fakeController) Detach() error {
	f.detached++
	return f.call("detach")
}

// recorder collects subsystem notifications.
type recorder struct {
	mu   sync.Mutex
	subs []string
}

func (r *recorder) notify(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = append(r.subs, s)
}

func (r *recorder) take() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.subs
	r.subs = nil
	return out
}

func (r *recorder) has(s string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.subs {
		if x == s {
			return true
		}
	}
	return false
}

// connected returns a player attached to f, with notifications recorded.
func connected(t *testing.T, f *fakeController) (*Player, *recorder) {
	t.Helper()
	p := NewPlayer(func() (Controller, error) { return f, nil }, Options{})
	if err := p.Connect(); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	rec := &recorder{}
	p.SetNotifySubsystem(rec.notify)
	f.calls = nil
	return p, rec
}
