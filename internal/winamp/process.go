package winamp

import (
	"errors"
	"log/slog"
)

// ProcessHandle owns the open handle on the target process. It is the only
// owner of that OS resource and is closed exactly once.
type ProcessHandle struct {
	mem    Memory
	pid    uint32
	closed bool
	log    *slog.Logger
}

func openProcess(sys System, pid uint32, log *slog.Logger) (*ProcessHandle, error) {
	mem, err := sys.OpenProcess(pid)
	if err != nil {
		return nil, err
	}
	return &ProcessHandle{mem: mem, pid: pid, log: log}, nil
}

// PID returns the target's process id.
func (p *ProcessHandle) PID() uint32 {
	return p.pid
}

// Allocate reserves size bytes of read/write memory inside the target.
// The caller owns the returned buffer and must Free it on every path.
func (p *ProcessHandle) Allocate(size int) (*RemoteBuffer, error) {
	if p.closed {
		return nil, ErrDetached
	}
	if size <= 0 {
		return nil, &AllocError{Size: size, Err: ErrInvalidArgument}
	}

	addr, err := p.mem.Alloc(size)
	if err != nil {
		return nil, &AllocError{Size: size, Err: err}
	}
	p.log.Debug("remote alloc", "addr", addr, "size", size)

	return &RemoteBuffer{Addr: addr, Len: size, proc: p}, nil
}

func (p *ProcessHandle) read(addr Address, buf []byte) error {
	if p.closed {
		return ErrDetached
	}
	if err := p.mem.ReadAt(addr, buf); err != nil {
		return &ReadError{Addr: addr, Err: err}
	}
	return nil
}

func (p *ProcessHandle) write(addr Address, data []byte) error {
	if p.closed {
		return ErrDetached
	}
	if err := p.mem.WriteAt(addr, data); err != nil {
		return &WriteError{Addr: addr, Err: err}
	}
	return nil
}

// Close releases the OS handle. Calling it again is a no-op.
func (p *ProcessHandle) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	return p.mem.Close()
}

// RemoteBuffer is one allocation inside the target's address space.
// It is never held across calls and never touched after Free, since the
// target may reuse the memory immediately.
type RemoteBuffer struct {
	Addr Address
	Len  int

	proc  *ProcessHandle
	freed bool
}

// Free releases the allocation. A second call does nothing.
func (b *RemoteBuffer) Free() error {
	if b.freed {
		return nil
	}
	if b.proc.closed {
		return ErrDetached
	}
	b.freed = true

	if err := b.proc.mem.Free(b.Addr); err != nil {
		return &FreeError{Addr: b.Addr, Err: err}
	}
	b.proc.log.Debug("remote free", "addr", b.Addr, "size", b.Len)
	return nil
}

// release frees buf and folds any failure into *errp. Meant for defer.
func release(buf *RemoteBuffer, errp *error) {
	if err := buf.Free(); err != nil {
		*errp = errors.Join(*errp, err)
	}
}
