package mpd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"

	"github.com/famish99/winampmpd/internal/player"
	"github.com/famish99/winampmpd/internal/playlist"
	"github.com/famish99/winampmpd/internal/winamp"
)

// Player is what the server needs from the player. *player.Player
// implements it.
type Player interface {
	SetNotifySubsystem(callback func(subsystem string))

	Status() (player.Status, error)
	Playlist() (*playlist.Playlist, error)

	Play() error
	PlayAt(pos int) error
	PlayID(id int) error
	Pause() error
	Resume() error
	StopPlayback() error
	Next() error
	Previous() error
	Seek(seconds float64) error
	SeekRelative(delta float64) error
	SetVolume(percent int) error
	SetRandom(on bool) error
	SetRepeat(on bool) error

	Add(uri string) (playlist.Track, error)
	Clear() error
	Delete(pos int) error
	DeleteID(id int) error

	Find(filter string) ([]winamp.Item, error)
	Search(keyword string) ([]winamp.Item, error)
	Browse(path []string) ([]winamp.CatalogItem, error)
	Tags(uri string) (map[string]string, error)
	Art(uri string) (string, bool)
}

// Server implements MPD protocol server
type Server struct {
	mu          sync.Mutex
	listener    net.Listener
	player      Player
	addr        string
	running     bool
	log         *slog.Logger
	enabledTags map[string]bool // Track which tag types are enabled
	tagTypesMu  sync.RWMutex    // Protects enabledTags

	// Idle connection management
	idleMu sync.RWMutex
	idlers map[*idleWatcher]struct{}
}

// NewServer creates a new MPD protocol server
func NewServer(addr string, p Player, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	// Initialize with all tags enabled by default
	enabledTags := make(map[string]bool, len(metadataFields))
	for _, f := range metadataFields {
		enabledTags[f.tag] = true
	}

	s := &Server{
		addr:        addr,
		player:      p,
		log:         log,
		enabledTags: enabledTags,
		idlers:      make(map[*idleWatcher]struct{}),
	}

	// Set up player notification callback for idle connections
	p.SetNotifySubsystem(s.NotifySubsystemChange)

	return s
}

// Start starts the MPD server
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("server already running")
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to start MPD server: %w", err)
	}

	s.listener = listener
	s.running = true

	s.log.Info("MPD server listening", "addr", listener.Addr().String())

	go s.acceptLoop(listener)

	return nil
}

// Addr returns the listening address, or nil when not running.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop stops the MPD server
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	s.running = false
	err := s.listener.Close()
	s.listener = nil
	return err
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop(listener net.Listener) {
	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.log.Warn("accept error", "error", err)
			continue
		}

		go s.handleConnection(conn)
	}
}
