//go:build windows

package winamp

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procFindWindowW    = user32.NewProc("FindWindowW")
	procSendMessageW   = user32.NewProc("SendMessageW")
	procVirtualAllocEx = kernel32.NewProc("VirtualAllocEx")
	procVirtualFreeEx  = kernel32.NewProc("VirtualFreeEx")
)

type copyDataStruct struct {
	dwData uintptr
	cbData uint32
	lpData unsafe.Pointer
}

// Native is the System backed by the Windows API.
type Native struct{}

// NewSystem returns the OS binding for this platform.
func NewSystem() System { return Native{} }

func (Native) FindWindow(name string) (HWND, error) {
	class, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return 0, fmt.Errorf("%w: window name %q", ErrInvalidArgument, name)
	}
	r, _, callErr := procFindWindowW.Call(uintptr(unsafe.Pointer(class)), 0)
	if r != 0 {
		return HWND(r), nil
	}
	if errors.Is(callErr, windows.ERROR_SUCCESS) || callErr == nil {
		return 0, ErrTargetNotFound
	}
	return 0, fmt.Errorf("FindWindowW: %w", callErr)
}

func (Native) WindowProcessID(hwnd HWND) (uint32, error) {
	var pid uint32
	if _, err := windows.GetWindowThreadProcessId(windows.HWND(hwnd), &pid); err != nil {
		return 0, fmt.Errorf("GetWindowThreadProcessId: %w", err)
	}
	return pid, nil
}

func (Native) OpenProcess(pid uint32) (Memory, error) {
	access := uint32(windows.PROCESS_VM_OPERATION | windows.PROCESS_VM_READ | windows.PROCESS_VM_WRITE)
	h, err := windows.OpenProcess(access, false, pid)
	if err != nil {
		return nil, fmt.Errorf("OpenProcess %d: %w", pid, err)
	}
	return &processMemory{h: h}, nil
}

func (Native) SendMessage(hwnd HWND, msg uint32, wParam, lParam uintptr) uintptr {
	r, _, _ := procSendMessageW.Call(uintptr(hwnd), uintptr(msg), wParam, lParam)
	return r
}

func (Native) SendCopyData(hwnd HWND, id uintptr, data []byte) uintptr {
	cds := copyDataStruct{dwData: id, cbData: uint32(len(data))}
	if len(data) > 0 {
		cds.lpData = unsafe.Pointer(&data[0])
	}
	r, _, _ := procSendMessageW.Call(uintptr(hwnd), wmCopyData, 0, uintptr(unsafe.Pointer(&cds)))
	runtime.KeepAlive(data)
	return r
}

type processMemory struct {
	h windows.Handle
}

func (m *processMemory) Alloc(size int) (Address, error) {
	r, _, err := procVirtualAllocEx.Call(uintptr(m.h), 0, uintptr(size),
		windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if r == 0 {
		return 0, fmt.Errorf("VirtualAllocEx: %w", err)
	}
	return Address(r), nil
}

func (m *processMemory) Free(addr Address) error {
	r, _, err := procVirtualFreeEx.Call(uintptr(m.h), uintptr(addr), 0, windows.MEM_RELEASE)
	if r == 0 {
		return fmt.Errorf("VirtualFreeEx: %w", err)
	}
	return nil
}

func (m *processMemory) ReadAt(addr Address, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	var n uintptr
	if err := windows.ReadProcessMemory(m.h, uintptr(addr), &buf[0], uintptr(len(buf)), &n); err != nil {
		return err
	}
	if int(n) != len(buf) {
		return fmt.Errorf("short read: %d of %d bytes", n, len(buf))
	}
	return nil
}

func (m *processMemory) WriteAt(addr Address, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	var n uintptr
	if err := windows.WriteProcessMemory(m.h, uintptr(addr), &data[0], uintptr(len(data)), &n); err != nil {
		return err
	}
	if int(n) != len(data) {
		return fmt.Errorf("short write: %d of %d bytes", n, len(data))
	}
	return nil
}

func (m *processMemory) Close() error {
	return windows.CloseHandle(m.h)
}
