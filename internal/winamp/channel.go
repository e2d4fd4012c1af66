package winamp

import "log/slog"

// Window selects one of the three target windows known to a session.
type Window int

const (
	MainWindow Window = iota
	PlaylistWindow
	LibraryWindow
)

func (w Window) String() string {
	switch w {
	case MainWindow:
		return "main"
	case PlaylistWindow:
		return "playlist"
	case LibraryWindow:
		return "library"
	default:
		return "unknown"
	}
}

// Windows is the target's window set, discovered once at attach.
type Windows struct {
	Main     HWND
	Playlist HWND
	Library  HWND
}

func (ws Windows) handle(w Window) HWND {
	switch w {
	case PlaylistWindow:
		return ws.Playlist
	case LibraryWindow:
		return ws.Library
	default:
		return ws.Main
	}
}

// MessageChannel delivers commands to the target's windows. Every call
// blocks until the target's message handler returns, so it inherits the
// target's responsiveness; there is no queue, timeout or retry.
type MessageChannel struct {
	sys     System
	windows Windows
	closed  bool
	log     *slog.Logger
}

// Send posts msg to window w and returns the target's reply as the signed
// 32-bit value the target computed.
func (c *MessageChannel) Send(w Window, msg uint32, wParam, lParam uintptr) (int32, error) {
	if c.closed {
		return 0, ErrDetached
	}
	hwnd := c.windows.handle(w)
	rc := c.sys.SendMessage(hwnd, msg, wParam, lParam)
	c.log.Debug("message", "window", w, "msg", msg, "wparam", wParam, "lparam", lParam, "reply", int32(uint32(rc)))
	return int32(uint32(rc)), nil
}

// ipc sends a WM_WA_IPC command. The command code travels in lParam.
func (c *MessageChannel) ipc(w Window, wParam uintptr, code int) (int32, error) {
	return c.Send(w, wmWaIPC, wParam, uintptr(code))
}

// library sends a media library command to the library window on its own
// message id, never on WM_WA_IPC.
func (c *MessageChannel) library(param uintptr, code int) (int32, error) {
	return c.Send(LibraryWindow, wmMlIPC, param, uintptr(code))
}

// command sends a WM_COMMAND, as if the user pressed a button.
func (c *MessageChannel) command(w Window, id int) error {
	_, err := c.Send(w, wmCommand, uintptr(id), 0)
	return err
}

// copyData hands data to the target through WM_COPYDATA. The OS copies the
// payload across the process boundary; no remote buffer is involved.
func (c *MessageChannel) copyData(w Window, id int, data []byte) (int32, error) {
	if c.closed {
		return 0, ErrDetached
	}
	rc := c.sys.SendCopyData(c.windows.handle(w), uintptr(id), data)
	c.log.Debug("copydata", "window", w, "id", id, "size", len(data))
	return int32(uint32(rc)), nil
}

// signed widens a possibly negative parameter for wParam.
func signed(v int) uintptr {
	return uintptr(int32(v))
}
