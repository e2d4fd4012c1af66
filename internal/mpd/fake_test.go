package mpd

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/famish99/winampmpd/internal/player"
	"github.com/famish99/winampmpd/internal/playlist"
	"github.com/famish99/winampmpd/internal/winamp"
)

// fakePlayer records what the server asks of the player.
type fakePlayer struct {
	mu        sync.Mutex
	status    player.Status
	statusErr error
	pl        *playlist.Playlist
	calls     []string

	items      []winamp.Item
	lastFind   string
	lastSearch string
	catalog    map[string][]winamp.CatalogItem // keyed by /-joined path
	tags       map[string]string
	art        string
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{
		status: player.Status{Song: -1, SongID: -1, Duration: -1, Volume: 100},
		pl:     playlist.NewPlaylist(),
	}
}

func (f *fakePlayer) record(format string, a ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, a...))
}

func (f *fakePlayer) called(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (f *fakePlayer) SetNotifySubsystem(func(string)) {}

func (f *fakePlayer) Status() (player.Status, error) { return f.status, f.statusErr }

func (f *fakePlayer) Playlist() (*playlist.Playlist, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return f.pl, nil
}

func (f *fakePlayer) Play() error             { f.record("play"); return nil }
func (f *fakePlayer) PlayAt(pos int) error    { f.record("playat %d", pos); return nil }
func (f *fakePlayer) PlayID(id int) error     { f.record("playid %d", id); return nil }
func (f *fakePlayer) Pause() error            { f.record("pause"); return nil }
func (f *fakePlayer) Resume() error           { f.record("resume"); return nil }
func (f *fakePlayer) StopPlayback() error     { f.record("stop"); return nil }
func (f *fakePlayer) Next() error             { f.record("next"); return nil }
func (f *fakePlayer) Previous() error         { f.record("previous"); return nil }
func (f *fakePlayer) SetRandom(on bool) error { f.record("random %v", on); return nil }
func (f *fakePlayer) SetRepeat(on bool) error { f.record("repeat %v", on); return nil }

func (f *fakePlayer) Seek(seconds float64) error {
	f.record("seek %g", seconds)
	return nil
}

func (f *fakePlayer) SeekRelative(delta float64) error {
	f.record("seekrel %g", delta)
	return nil
}

func (f *fakePlayer) SetVolume(percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("%w: volume %d", winamp.ErrInvalidArgument, percent)
	}
	f.record("setvol %d", percent)
	return nil
}

func (f *fakePlayer) Add(uri string) (playlist.Track, error) {
	f.record("add %s", uri)
	tracks := f.pl.GetAll()
	tracks = append(tracks, playlist.Track{URI: uri, Title: uri, Length: -1})
	f.pl.Replace(tracks, f.pl.CurrentIndex())
	t, err := f.pl.Get(len(tracks) - 1)
	if err != nil {
		return playlist.Track{}, err
	}
	return *t, nil
}

func (f *fakePlayer) Clear() error          { f.record("clear"); return nil }
func (f *fakePlayer) Delete(pos int) error  { f.record("delete %d", pos); return nil }
func (f *fakePlayer) DeleteID(id int) error { f.record("deleteid %d", id); return nil }

func (f *fakePlayer) Find(filter string) ([]winamp.Item, error) {
	f.lastFind = filter
	return f.items, nil
}

func (f *fakePlayer) Search(keyword string) ([]winamp.Item, error) {
	f.lastSearch = keyword
	return f.items, nil
}

func (f *fakePlayer) Browse(path []string) ([]winamp.CatalogItem, error) {
	key := strings.Join(path, "/")
	items, ok := f.catalog[key]
	if !ok {
		return nil, &winamp.CatalogNotFoundError{Label: path[len(path)-1]}
	}
	if len(items) == 0 {
		return nil, &winamp.NoChildrenError{Label: path[len(path)-1]}
	}
	return items, nil
}

func (f *fakePlayer) Tags(uri string) (map[string]string, error) {
	out := make(map[string]string, len(f.tags))
	for k, v := range f.tags {
		out[k] = v
	}
	return out, nil
}

func (f *fakePlayer) Art(uri string) (string, bool) { return f.art, f.art != "" }

// client is the test end of a piped MPD connection.
type client struct {
	t    *testing.T
	conn net.Conn
	r    *bufio.Reader
}

// dial connects a client to s over an in-memory pipe and reads the greeting.
func dial(t *testing.T, s *Server) *client {
	t.Helper()
	c, srv := net.Pipe()
	go s.handleConnection(srv)
	t.Cleanup(func() { c.Close() })

	cl := &client{t: t, conn: c, r: bufio.NewReader(c)}
	if line := cl.line(); line != strings.TrimSpace(greeting) {
		t.Fatalf("greeting = %q", line)
	}
	return cl
}

func (c *client) send(line string) {
	c.t.Helper()
	c.conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
	if _, err := io.WriteString(c.conn, line+"\n"); err != nil {
		c.t.Fatalf("send %q: %v", line, err)
	}
}

func (c *client) line() string {
	c.t.Helper()
	c.conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	line, err := c.r.ReadString('\n')
	if err != nil {
		c.t.Fatalf("read: %v", err)
	}
	return strings.TrimSuffix(line, "\n")
}

// response reads lines up to and including OK or ACK.
func (c *client) response() []string {
	c.t.Helper()
	var lines []string
	for {
		l := c.line()
		lines = append(lines, l)
		if l == "OK" || strings.HasPrefix(l, "ACK ") {
			return lines
		}
	}
}

// do sends line and returns the response.
func (c *client) do(line string) []string {
	c.t.Helper()
	c.send(line)
	return c.response()
}

func contains(lines []string, want string) bool {
	for _, l := range lines {
		if l == want {
			return true
		}
	}
	return false
}

func newTestServer() (*Server, *fakePlayer) {
	f := newFakePlayer()
	return NewServer("127.0.0.1:0", f, nil), f
}
