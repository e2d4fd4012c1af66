package winamp

import "fmt"

// HWND identifies a window of the target.
type HWND uintptr

// Address is a location in the target's address space. The supported
// target generation is 32-bit, so addresses and embedded pointers are
// always four bytes wide.
type Address uint32

func (a Address) String() string {
	return fmt.Sprintf("0x%08x", uint32(a))
}

// PointerWidth is the size of an embedded pointer in target records.
const PointerWidth = 4

// pageSize is the target's memory page granularity.
const pageSize = 0x1000

// System is the set of OS services a session needs. The Windows build
// provides the real implementation; tests provide a fake target.
type System interface {
	// FindWindow returns the top-level window registered under name.
	// It returns ErrTargetNotFound when there is none.
	FindWindow(name string) (HWND, error)

	// WindowProcessID returns the id of the process owning hwnd.
	WindowProcessID(hwnd HWND) (uint32, error)

	// OpenProcess opens pid with rights to allocate, read and write its
	// memory, and nothing else.
	OpenProcess(pid uint32) (Memory, error)

	// SendMessage delivers msg to hwnd and blocks until the target's
	// window procedure returns.
	SendMessage(hwnd HWND, msg uint32, wParam, lParam uintptr) uintptr

	// SendCopyData delivers a WM_COPYDATA message carrying data, tagged
	// with id, to hwnd.
	SendCopyData(hwnd HWND, id uintptr, data []byte) uintptr
}

// Memory is an open handle on the target's address space.
type Memory interface {
	Alloc(size int) (Address, error)
	Free(addr Address) error
	// ReadAt fills buf from addr. A read that would touch unmapped memory
	// fails as a whole.
	ReadAt(addr Address, buf []byte) error
	WriteAt(addr Address, data []byte) error
	Close() error
}
