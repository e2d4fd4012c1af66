package winamp

import (
	"fmt"
)

// PlaybackStatus is the target's playback state.
type PlaybackStatus int

const (
	StatusStopped PlaybackStatus = 0
	StatusPlaying PlaybackStatus = 1
	StatusPaused  PlaybackStatus = 3
)

func (s PlaybackStatus) String() string {
	switch s {
	case StatusStopped:
		return "stopped"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Status returns whether the target is stopped, playing or paused.
func (s *Session) Status() (PlaybackStatus, error) {
	rc, err := s.channel.ipc(MainWindow, 0, ipcIsPlaying)
	if err != nil {
		return StatusStopped, err
	}
	switch st := PlaybackStatus(rc); st {
	case StatusStopped, StatusPlaying, StatusPaused:
		return st, nil
	default:
		return StatusStopped, &ReplyError{Op: "playback status", Code: rc}
	}
}

// Play starts, resumes or restarts playback. Button commands are
// fire-and-forget: the reply is not checked.
func (s *Session) Play() error { return s.channel.command(MainWindow, buttonPlay) }

// Pause toggles pause.
func (s *Session) Pause() error { return s.channel.command(MainWindow, buttonPause) }

// Stop stops playback.
func (s *Session) Stop() error { return s.channel.command(MainWindow, buttonStop) }

// Next moves to the next playlist entry.
func (s *Session) Next() error { return s.channel.command(MainWindow, buttonNext) }

// Previous moves to the previous playlist entry.
func (s *Session) Previous() error { return s.channel.command(MainWindow, buttonPrevious) }

// TrackLength returns the length of the playing track in seconds, or -1
// when nothing is playing.
func (s *Session) TrackLength() (int, error) {
	rc, err := s.channel.ipc(MainWindow, outputTimeLength, ipcGetOutputTime)
	return int(rc), err
}

// TrackPosition returns the playback position in milliseconds, or -1 when
// nothing is playing.
func (s *Session) TrackPosition() (int, error) {
	rc, err := s.channel.ipc(MainWindow, outputTimePosition, ipcGetOutputTime)
	return int(rc), err
}

// Seek jumps to ms milliseconds into the playing track. A reply of -1
// means the target is not playing; any other negative reply is an
// unspecified failure. A reply of 1 (seek past end of file) is accepted.
func (s *Session) Seek(ms int) error {
	rc, err := s.channel.ipc(MainWindow, signed(ms), ipcJumpToTime)
	if err != nil {
		return err
	}
	switch {
	case rc == -1:
		return ErrNotPlaying
	case rc < 0:
		return &ReplyError{Op: "seek", Code: rc}
	}
	return nil
}

// Volume returns the volume in [0,255].
func (s *Session) Volume() (int, error) {
	rc, err := s.channel.ipc(MainWindow, signed(volumeQuery), ipcSetVolume)
	return int(rc), err
}

// SetVolume sets the volume. v must be in [0,255]; out-of-range values are
// rejected without contacting the target.
func (s *Session) SetVolume(v int) error {
	if v < 0 || v > 255 {
		return fmt.Errorf("%w: volume %d outside [0,255]", ErrInvalidArgument, v)
	}
	_, err := s.channel.ipc(MainWindow, uintptr(v), ipcSetVolume)
	return err
}

// Shuffle reports whether shuffle is on.
func (s *Session) Shuffle() (bool, error) {
	rc, err := s.channel.ipc(MainWindow, 0, ipcGetShuffle)
	return rc != 0, err
}

// SetShuffle turns shuffle on or off.
func (s *Session) SetShuffle(on bool) error {
	_, err := s.channel.ipc(MainWindow, boolParam(on), ipcSetShuffle)
	return err
}

// Repeat reports whether repeat is on.
func (s *Session) Repeat() (bool, error) {
	rc, err := s.channel.ipc(MainWindow, 0, ipcGetRepeat)
	return rc != 0, err
}

// SetRepeat turns repeat on or off.
func (s *Session) SetRepeat(on bool) error {
	_, err := s.channel.ipc(MainWindow, boolParam(on), ipcSetRepeat)
	return err
}

// Rating returns the rating of the current item: 0 for none, 1-5 stars.
func (s *Session) Rating() (int, error) {
	rc, err := s.channel.ipc(MainWindow, 0, ipcGetRating)
	return int(rc), err
}

// SetRating sets the rating of the current item, r in [0,5].
//
// The target silently ignores this when its local media library component
// is not loaded and its reply does not tell the two cases apart. A nil
// error only means the message was delivered.
func (s *Session) SetRating(r int) error {
	if r < 0 || r > 5 {
		return fmt.Errorf("%w: rating %d outside [0,5]", ErrInvalidArgument, r)
	}
	_, err := s.channel.ipc(MainWindow, uintptr(r), ipcSetRating)
	return err
}

// CurrentInfo reports a property of the playing track, e.g. its bitrate.
func (s *Session) CurrentInfo(mode InfoMode) (int, error) {
	rc, err := s.channel.ipc(MainWindow, uintptr(mode), ipcGetInfo)
	return int(rc), err
}

// PlayingTitle returns the title of the playing track.
func (s *Session) PlayingTitle() (string, error) {
	rc, err := s.channel.ipc(MainWindow, 0, ipcGetPlayingTitle)
	if err != nil {
		return "", err
	}
	if rc == 0 {
		return "", nil
	}
	return s.marsh.ReadString(Address(uint32(rc)), BoundedString{Max: maxPath * 2, Wide: true})
}

// Fullscreen reports whether video or visualization is fullscreen.
func (s *Session) Fullscreen() (bool, error) {
	rc, err := s.channel.ipc(MainWindow, 0, ipcIsFullscreen)
	return rc != 0, err
}

// ToggleFullscreen toggles fullscreen video or visualization.
func (s *Session) ToggleFullscreen() (err error) {
	cmd := NewRecord(WindowCommandShape)
	cmd.SetInt32("cmd", vidCmdFullscreen)

	buf, err := s.marsh.WriteRecord(cmd)
	if err != nil {
		return fmt.Errorf("toggle fullscreen: %w", err)
	}
	defer release(buf, &err)

	_, err = s.channel.ipc(MainWindow, uintptr(buf.Addr), ipcVidCmd)
	return err
}

// DefaultInfoCapacity is the return buffer size ExtendedFileInfo uses when
// the caller passes zero.
const DefaultInfoCapacity = 4096

// ExtendedFileInfo asks the target's input plugin for a metadata field of
// filename ("artist", "album", "year", "composer", ...). The reply buffer
// holds up to capacity bytes. It fails with *UnsupportedError when the
// plugin does not answer. All four remote buffers are freed on every path.
func (s *Session) ExtendedFileInfo(filename, field string, capacity int) (value string, err error) {
	if capacity <= 0 {
		capacity = DefaultInfoCapacity
	}

	name, err := s.marsh.WriteString(filename)
	if err != nil {
		return "", fmt.Errorf("extended file info: %w", err)
	}
	defer release(name, &err)

	meta, err := s.marsh.WriteString(field)
	if err != nil {
		return "", fmt.Errorf("extended file info: %w", err)
	}
	defer release(meta, &err)

	ret, err := s.marsh.WriteZeroed(capacity)
	if err != nil {
		return "", fmt.Errorf("extended file info: %w", err)
	}
	defer release(ret, &err)

	xfi := NewRecord(ExtendedFileInfoShape)
	xfi.SetPointer("filename", name.Addr)
	xfi.SetPointer("metadata", meta.Addr)
	xfi.SetPointer("ret", ret.Addr)
	xfi.SetUint32("retlen", uint32(capacity))

	env, err := s.marsh.WriteRecord(xfi)
	if err != nil {
		return "", fmt.Errorf("extended file info: %w", err)
	}
	defer release(env, &err)

	rc, err := s.channel.ipc(MainWindow, uintptr(env.Addr), ipcGetExtendedFileInfo)
	if err != nil {
		return "", err
	}
	if rc != 1 {
		return "", &UnsupportedError{Op: field}
	}

	value, err = s.marsh.ReadString(ret.Addr, BoundedString{Max: capacity})
	if err != nil {
		return "", fmt.Errorf("extended file info: %w", err)
	}
	return value, nil
}

func boolParam(on bool) uintptr {
	if on {
		return 1
	}
	return 0
}
