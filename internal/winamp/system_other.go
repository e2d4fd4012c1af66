//go:build !windows

package winamp

// Native is a stand-in System for platforms without window messages. Every
// lookup fails, so Attach reports the target as unreachable rather than
// absent.
type Native struct{}

// NewSystem returns the OS binding for this platform.
func NewSystem() System { return Native{} }

func (Native) FindWindow(string) (HWND, error) { return 0, ErrUnsupportedPlatform }

func (Native) WindowProcessID(HWND) (uint32, error) { return 0, ErrUnsupportedPlatform }

func (Native) OpenProcess(uint32) (Memory, error) { return nil, ErrUnsupportedPlatform }

func (Native) SendMessage(HWND, uint32, uintptr, uintptr) uintptr { return 0 }

func (Native) SendCopyData(HWND, uintptr, []byte) uintptr { return 0 }
