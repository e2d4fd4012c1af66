package winamp

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Session is one attachment to a running target. It owns the process
// handle and the window set; sessions to different targets are fully
// independent.
//
// A Session is not safe for concurrent use. The target's message queue is
// single-threaded and interleaved calls from several goroutines can
// reorder unpredictably, so callers that share a session must serialize
// every call themselves.
type Session struct {
	id      string
	title   string
	proc    *ProcessHandle
	channel *MessageChannel
	marsh   *Marshaler
	windows Windows
	log     *slog.Logger
}

type options struct {
	log   *slog.Logger
	codec *Codec
}

// Option configures Attach.
type Option func(*options)

// WithLogger sets the logger. The session adds its own id and pid.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithCodec sets the codec used for target strings.
func WithCodec(c *Codec) Option {
	return func(o *options) { o.codec = c }
}

// Attach finds the target's main window by its exact registered name,
// opens the owning process and discovers the playlist editor and media
// library windows. It fails with an *AttachError; errors.Is(err,
// ErrTargetNotFound) reports that the target is not running.
func Attach(sys System, title string, opts ...Option) (*Session, error) {
	o := options{log: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.codec == nil {
		c, err := NewCodec("")
		if err != nil {
			return nil, err
		}
		o.codec = c
	}

	main, err := sys.FindWindow(title)
	if err != nil {
		if errors.Is(err, ErrTargetNotFound) {
			return nil, &AttachError{Title: title, Reason: ReasonNotFound}
		}
		return nil, &AttachError{Title: title, Reason: ReasonOS, Err: err}
	}

	pid, err := sys.WindowProcessID(main)
	if err != nil {
		return nil, &AttachError{Title: title, Reason: ReasonOS, Err: fmt.Errorf("window process id: %w", err)}
	}

	id := uuid.New().String()
	log := o.log.With("session_id", id, "pid", pid)

	proc, err := openProcess(sys, pid, log)
	if err != nil {
		return nil, &AttachError{Title: title, Reason: ReasonOS, Err: fmt.Errorf("open process: %w", err)}
	}

	s := &Session{
		id:      id,
		title:   title,
		windows: Windows{Main: main},
		proc:    proc,
		channel: &MessageChannel{sys: sys, windows: Windows{Main: main}, log: log},
		marsh:   &Marshaler{proc: proc, codec: o.codec, log: log},
		log:     log,
	}

	if err := s.discoverWindows(); err != nil {
		_ = s.Detach()
		return nil, &AttachError{Title: title, Reason: ReasonOS, Err: err}
	}

	log.Info("attached to target", "title", title,
		"main", s.windows.Main, "playlist", s.windows.Playlist, "library", s.windows.Library)
	return s, nil
}

// discoverWindows finds the playlist editor through the documented
// IPC_GETWND call and the media library through the registered
// "LibraryGetWnd" message.
func (s *Session) discoverWindows() (err error) {
	pl, err := s.channel.ipc(MainWindow, getWndPlaylist, ipcGetWnd)
	if err != nil {
		return err
	}

	name, err := s.marsh.WriteString(libraryWindowMessage)
	if err != nil {
		return fmt.Errorf("register library message: %w", err)
	}
	defer release(name, &err)

	msgID, err := s.channel.ipc(MainWindow, uintptr(name.Addr), ipcRegisterWinampIPCMessage)
	if err != nil {
		return err
	}
	lib, err := s.channel.ipc(MainWindow, 0, int(msgID))
	if err != nil {
		return err
	}

	s.windows.Playlist = HWND(uint32(pl))
	s.windows.Library = HWND(uint32(lib))
	s.channel.windows = s.windows
	return nil
}

// Detach closes the process handle. Later calls on the session fail with
// ErrDetached; calling Detach again is a no-op.
func (s *Session) Detach() error {
	if s.channel.closed {
		return nil
	}
	s.channel.closed = true
	if err := s.proc.Close(); err != nil {
		return fmt.Errorf("close process handle: %w", err)
	}
	s.log.Info("detached from target")
	return nil
}

// ID returns the session's unique id, used to correlate log entries.
func (s *Session) ID() string { return s.id }

// PID returns the target's process id.
func (s *Session) PID() uint32 { return s.proc.PID() }

// Windows returns the window set discovered at attach.
func (s *Session) Windows() Windows { return s.windows }

// Marshaler exposes the session's memory channel.
func (s *Session) Marshaler() *Marshaler { return s.marsh }

// Channel exposes the session's message channel.
func (s *Session) Channel() *MessageChannel { return s.channel }

// Running reports whether a target window with the given name exists.
func Running(sys System, title string) bool {
	_, err := sys.FindWindow(title)
	return err == nil
}
