package winamp

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"log/slog"
	"testing"
)

var errUnmapped = errors.New("access to unmapped page")

type memOp struct {
	addr Address
	n    int
}

// fakeMemory is a paged 32-bit address space. Each allocation is followed
// by an unmapped guard page, so reads past an allocation's last page fail
// like they would against a real process.
type fakeMemory struct {
	pages  map[uint32][]byte
	next   uint32
	allocs map[Address]int

	reads      []memOp
	writes     []memOp
	allocCount int
	freeCount  int
	closeCount int
	freeErr    error
}

func newFakeMemory() *fakeMemory {
	return &fakeMemory{
		pages:  make(map[uint32][]byte),
		next:   0x00100000,
		allocs: make(map[Address]int),
	}
}

func (m *fakeMemory) mapPages(size int) Address {
	n := (size + pageSize - 1) / pageSize
	if n == 0 {
		n = 1
	}
	base := m.next
	for i := 0; i < n; i++ {
		m.pages[(base>>12)+uint32(i)] = make([]byte, pageSize)
	}
	m.next += uint32(n+1) * pageSize
	return Address(base)
}

func (m *fakeMemory) Alloc(size int) (Address, error) {
	addr := m.mapPages(size)
	m.allocs[addr] = size
	m.allocCount++
	return addr, nil
}

func (m *fakeMemory) Free(addr Address) error {
	if m.freeErr != nil {
		return m.freeErr
	}
	size, ok := m.allocs[addr]
	if !ok {
		return errors.New("free of unallocated address")
	}
	delete(m.allocs, addr)
	for p := uint32(addr) >> 12; p <= (uint32(addr)+uint32(size)-1)>>12; p++ {
		delete(m.pages, p)
	}
	m.freeCount++
	return nil
}

func (m *fakeMemory) each(addr Address, n int, fn func(page []byte, off int, i int)) error {
	for i := 0; i < n; i++ {
		a := uint32(addr) + uint32(i)
		if _, ok := m.pages[a>>12]; !ok {
			return errUnmapped
		}
	}
	for i := 0; i < n; i++ {
		a := uint32(addr) + uint32(i)
		fn(m.pages[a>>12], int(a&(pageSize-1)), i)
	}
	return nil
}

func (m *fakeMemory) ReadAt(addr Address, buf []byte) error {
	m.reads = append(m.reads, memOp{addr, len(buf)})
	return m.each(addr, len(buf), func(page []byte, off, i int) { buf[i] = page[off] })
}

func (m *fakeMemory) WriteAt(addr Address, data []byte) error {
	m.writes = append(m.writes, memOp{addr, len(data)})
	return m.each(addr, len(data), func(page []byte, off, i int) { page[off] = data[i] })
}

func (m *fakeMemory) Close() error {
	m.closeCount++
	return nil
}

// place maps data into target-owned memory, outside the controller's
// allocations.
func (m *fakeMemory) place(data []byte) Address {
	addr := m.mapPages(len(data))
	if err := m.each(addr, len(data), func(page []byte, off, i int) { page[off] = data[i] }); err != nil {
		panic(err)
	}
	return addr
}

func (m *fakeMemory) placeString(s string) Address {
	return m.place(append([]byte(s), 0))
}

// peek reads without recording the access.
func (m *fakeMemory) peek(addr Address, n int) []byte {
	buf := make([]byte, n)
	if err := m.each(addr, n, func(page []byte, off, i int) { buf[i] = page[off] }); err != nil {
		panic(err)
	}
	return buf
}

func (m *fakeMemory) poke(addr Address, data []byte) {
	if err := m.each(addr, len(data), func(page []byte, off, i int) { page[off] = data[i] }); err != nil {
		panic(err)
	}
}

func (m *fakeMemory) peekString(addr Address) string {
	var b []byte
	for a := addr; ; a++ {
		c := m.peek(a, 1)[0]
		if c == 0 {
			return string(b)
		}
		b = append(b, c)
	}
}

func (m *fakeMemory) live() int { return len(m.allocs) }

type sentMessage struct {
	hwnd   HWND
	msg    uint32
	wParam uintptr
	lParam uintptr
}

type sentCopy struct {
	hwnd HWND
	id   uintptr
	data []byte
}

const (
	fakeMain     HWND = 0x1001
	fakePlaylist HWND = 0x1002
	fakeLibrary  HWND = 0x1003

	fakePID          = 4242
	fakeLibraryMsgID = 0xC0DE
)

type treeNode struct {
	label       string
	next, child uint32
}

// fakeTarget plays the target process: one main window, a playlist
// editor, a media library window and a memory space.
type fakeTarget struct {
	mem     *fakeMemory
	windows map[string]HWND
	openErr error

	ipc     map[int]func(wParam uintptr) uintptr
	library map[int]func(param uintptr) uintptr

	sent   []sentMessage
	copies []sentCopy

	root uint32
	tree map[uint32]treeNode
}

func newFakeTarget() *fakeTarget {
	f := &fakeTarget{
		mem:     newFakeMemory(),
		windows: map[string]HWND{DefaultWindow: fakeMain},
		ipc:     make(map[int]func(uintptr) uintptr),
		library: make(map[int]func(uintptr) uintptr),
		tree:    make(map[uint32]treeNode),
	}

	f.ipc[ipcGetWnd] = func(w uintptr) uintptr {
		if w == getWndPlaylist {
			return uintptr(fakePlaylist)
		}
		return 0
	}
	f.ipc[ipcRegisterWinampIPCMessage] = func(w uintptr) uintptr {
		if f.mem.peekString(Address(w)) == libraryWindowMessage {
			return fakeLibraryMsgID
		}
		return 0
	}
	f.ipc[fakeLibraryMsgID] = func(uintptr) uintptr { return uintptr(fakeLibrary) }

	f.library[mlIPCTreeItemGetRoot] = func(uintptr) uintptr { return uintptr(f.root) }
	f.library[mlIPCTreeItemGetNext] = func(h uintptr) uintptr { return uintptr(f.tree[uint32(h)].next) }
	f.library[mlIPCTreeItemGetChild] = func(h uintptr) uintptr { return uintptr(f.tree[uint32(h)].child) }
	f.library[mlIPCTreeItemGetInfo] = func(p uintptr) uintptr {
		info := recordFrom(TreeItemInfoShape, f.mem.peek(Address(p), TreeItemInfoShape.Size()))
		node, ok := f.tree[info.Uint32("handle")]
		if !ok || info.Uint32("mask") != mltiText {
			return 0
		}
		f.mem.poke(info.Pointer("item.title"), append([]byte(node.label), 0))
		return 1
	}
	return f
}

func (f *fakeTarget) FindWindow(name string) (HWND, error) {
	if h, ok := f.windows[name]; ok {
		return h, nil
	}
	return 0, ErrTargetNotFound
}

func (f *fakeTarget) WindowProcessID(HWND) (uint32, error) { return fakePID, nil }

func (f *fakeTarget) OpenProcess(uint32) (Memory, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return f.mem, nil
}

func (f *fakeTarget) SendMessage(hwnd HWND, msg uint32, wParam, lParam uintptr) uintptr {
	f.sent = append(f.sent, sentMessage{hwnd, msg, wParam, lParam})
	switch {
	case msg == wmWaIPC && hwnd == fakeMain:
		if fn, ok := f.ipc[int(lParam)]; ok {
			return fn(wParam)
		}
	case msg == wmMlIPC && hwnd == fakeLibrary:
		if fn, ok := f.library[int(lParam)]; ok {
			return fn(wParam)
		}
	}
	return 0
}

func (f *fakeTarget) SendCopyData(hwnd HWND, id uintptr, data []byte) uintptr {
	f.copies = append(f.copies, sentCopy{hwnd, id, bytes.Clone(data)})
	return 1
}

// count returns how many messages with the given code in lParam were sent.
func (f *fakeTarget) count(msg uint32, code int) int {
	n := 0
	for _, m := range f.sent {
		if m.msg == msg && m.lParam == uintptr(code) {
			n++
		}
	}
	return n
}

// reply encodes a signed reply the way the OS widens it.
func reply(v int32) uintptr { return uintptr(v) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func attachFake(t *testing.T, f *fakeTarget) *Session {
	t.Helper()
	s, err := Attach(f, DefaultWindow, WithLogger(discardLogger()))
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	f.sent = nil
	f.mem.reads = nil
	f.mem.writes = nil
	f.mem.allocCount = 0
	return s
}

// itemRecord lays out one itemRecord in target-owned memory.
func (f *fakeTarget) itemRecord(filename, title, artist string, year int32) []byte {
	r := NewRecord(ItemRecordShape)
	r.SetPointer("filename", f.mem.placeString(filename))
	if title != "" {
		r.SetPointer("title", f.mem.placeString(title))
	}
	if artist != "" {
		r.SetPointer("artist", f.mem.placeString(artist))
	}
	r.SetInt32("year", year)
	r.SetInt32("track", -1)
	r.SetInt32("length", 215)
	return r.Bytes()
}

// serveQuery answers code with the given item records, filling the
// envelope's result list in place.
func (f *fakeTarget) serveQuery(code int, items ...[]byte) {
	f.library[code] = func(p uintptr) uintptr {
		env := recordFrom(QueryShape, f.mem.peek(Address(p), QueryShape.Size()))
		var arr Address
		if len(items) > 0 {
			arr = f.mem.place(bytes.Join(items, nil))
		}
		env.SetPointer("results.items", arr)
		env.SetInt32("results.size", int32(len(items)))
		env.SetInt32("results.alloc", int32(len(items)))
		f.mem.poke(Address(p), env.Bytes())
		return 1
	}
}

func le32(v uint32) []byte {
	return binary.LittleEndian.AppendUint32(nil, v)
}
