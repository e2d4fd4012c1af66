package winamp

import (
	"errors"
	"testing"
)

func TestAllocateFree(t *testing.T) {
	mem := newFakeMemory()
	proc := &ProcessHandle{mem: mem, pid: fakePID, log: discardLogger()}

	for _, n := range []int{1, 4, 40, 259, pageSize - 1, pageSize, pageSize + 1, 32 << 10, 64 << 10} {
		buf, err := proc.Allocate(n)
		if err != nil {
			t.Fatalf("Allocate(%d) failed: %v", n, err)
		}
		if buf.Len != n {
			t.Errorf("Allocate(%d).Len = %d", n, buf.Len)
		}
		if err := buf.Free(); err != nil {
			t.Fatalf("Free after Allocate(%d) failed: %v", n, err)
		}
	}
	if mem.live() != 0 {
		t.Errorf("%d allocations still live", mem.live())
	}
}

func TestAllocateRejectsEmpty(t *testing.T) {
	proc := &ProcessHandle{mem: newFakeMemory(), log: discardLogger()}

	_, err := proc.Allocate(0)
	var ae *AllocError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *AllocError, got %v", err)
	}
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestFreeTwiceIsNoop(t *testing.T) {
	mem := newFakeMemory()
	proc := &ProcessHandle{mem: mem, log: discardLogger()}

	buf, err := proc.Allocate(16)
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	if err := buf.Free(); err != nil {
		t.Fatalf("first Free failed: %v", err)
	}
	if err := buf.Free(); err != nil {
		t.Errorf("second Free returned %v, want nil", err)
	}
	if mem.freeCount != 1 {
		t.Errorf("freeCount = %d, want 1", mem.freeCount)
	}
}

func TestFreeWrapsOSError(t *testing.T) {
	mem := newFakeMemory()
	proc := &ProcessHandle{mem: mem, log: discardLogger()}

	buf, err := proc.Allocate(16)
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	osErr := errors.New("invalid handle")
	mem.freeErr = osErr

	err = buf.Free()
	var fe *FreeError
	if !errors.As(err, &fe) || fe.Addr != buf.Addr {
		t.Fatalf("expected *FreeError at %s, got %v", buf.Addr, err)
	}
	if !errors.Is(err, osErr) {
		t.Errorf("FreeError does not wrap the OS error: %v", err)
	}
}

func TestClosedHandle(t *testing.T) {
	mem := newFakeMemory()
	proc := &ProcessHandle{mem: mem, log: discardLogger()}
	buf, err := proc.Allocate(8)
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}

	if err := proc.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := proc.Close(); err != nil {
		t.Errorf("second Close returned %v", err)
	}
	if mem.closeCount != 1 {
		t.Errorf("closeCount = %d, want 1", mem.closeCount)
	}

	if _, err := proc.Allocate(8); !errors.Is(err, ErrDetached) {
		t.Errorf("Allocate after Close = %v, want ErrDetached", err)
	}
	if err := proc.read(buf.Addr, make([]byte, 4)); !errors.Is(err, ErrDetached) {
		t.Errorf("read after Close = %v, want ErrDetached", err)
	}
	if err := buf.Free(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Free after Close = %v, want ErrInvalidState", err)
	}
}

func TestRelease(t *testing.T) {
	mem := newFakeMemory()
	proc := &ProcessHandle{mem: mem, log: discardLogger()}
	buf, err := proc.Allocate(8)
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	mem.freeErr = errors.New("boom")

	callErr := errors.New("call failed")
	err = callErr
	release(buf, &err)

	if !errors.Is(err, callErr) {
		t.Errorf("release dropped the original error: %v", err)
	}
	var fe *FreeError
	if !errors.As(err, &fe) {
		t.Errorf("release did not add the free failure: %v", err)
	}
}
