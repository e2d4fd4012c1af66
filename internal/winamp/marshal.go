package winamp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
)

// Marshaler moves records between the controller and target memory.
//
// Writes copy the local bytes verbatim: embedded pointers are not
// rewritten, so only fields holding target addresses or scalars should be
// populated in a record the target will consume. Reads copy bytes out and
// reinterpret them according to a Shape.
type Marshaler struct {
	proc  *ProcessHandle
	codec *Codec
	log   *slog.Logger
}

// Write allocates a buffer of len(data) bytes in the target and copies data
// into it. On failure nothing stays allocated.
func (m *Marshaler) Write(data []byte) (*RemoteBuffer, error) {
	buf, err := m.proc.Allocate(len(data))
	if err != nil {
		return nil, err
	}
	if err := m.proc.write(buf.Addr, data); err != nil {
		return nil, errors.Join(err, buf.Free())
	}
	return buf, nil
}

// WriteRecord writes the record's fixed layout into a new buffer.
func (m *Marshaler) WriteRecord(r *Record) (*RemoteBuffer, error) {
	return m.Write(r.Bytes())
}

// WriteString writes s as a NUL-terminated narrow string.
func (m *Marshaler) WriteString(s string) (*RemoteBuffer, error) {
	b, err := m.codec.Encode(s)
	if err != nil {
		return nil, err
	}
	return m.Write(b)
}

// WriteZeroed writes n zero bytes, for buffers the target fills in.
func (m *Marshaler) WriteZeroed(n int) (*RemoteBuffer, error) {
	return m.Write(make([]byte, n))
}

// Read reads a value of the given shape at addr: Scalar yields []byte,
// *Struct yields *Record (pointers unresolved), BoundedString yields string.
func (m *Marshaler) Read(addr Address, shape Shape) (any, error) {
	switch s := shape.(type) {
	case Scalar:
		return m.ReadBytes(addr, s.Width)
	case *Struct:
		return m.ReadRecord(addr, s)
	case BoundedString:
		return m.ReadString(addr, s)
	default:
		return nil, fmt.Errorf("%w: unknown shape %T", ErrInvalidArgument, shape)
	}
}

// ReadBytes copies n bytes from addr.
func (m *Marshaler) ReadBytes(addr Address, n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := m.proc.read(addr, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadRecord copies one record of the given shape from addr without
// following its pointers.
func (m *Marshaler) ReadRecord(addr Address, shape *Struct) (*Record, error) {
	raw, err := m.ReadBytes(addr, shape.Size())
	if err != nil {
		return nil, err
	}
	return recordFrom(shape, raw), nil
}

// ReadString reads a string of unknown length at addr. The read is first
// attempted at the full bound. If that fails and the bound crosses a page
// boundary, the next page is probably unmapped, so a second read stops at
// the end of addr's page.
func (m *Marshaler) ReadString(addr Address, s BoundedString) (string, error) {
	buf := make([]byte, s.Max)
	err := m.proc.read(addr, buf)
	if err != nil {
		if errors.Is(err, ErrDetached) {
			return "", err
		}
		pageEnd := uint64(addr)&^(pageSize-1) + pageSize
		n := int(pageEnd - uint64(addr))
		if n >= len(buf) {
			return "", err
		}
		m.log.Debug("string read crossed page, retrying to page end", "addr", addr, "bytes", n)
		buf = buf[:n]
		if err := m.proc.read(addr, buf); err != nil {
			return "", err
		}
	}

	out, err := m.codec.Decode(buf, s.Wide)
	if err != nil {
		return "", &ReadError{Addr: addr, Err: err}
	}
	return out, nil
}

// ResolvePointers follows every string and opaque-pointer field of r,
// walking fields in declared order with cumulative offsets and recursing
// into inline structs. Null pointers are left absent and never read.
func (m *Marshaler) ResolvePointers(r *Record) error {
	return m.resolve(r, r.Shape, 0, "")
}

func (m *Marshaler) resolve(r *Record, s *Struct, base int, prefix string) error {
	off := base
	for _, f := range s.Fields {
		path := prefix + f.Name

		switch f.Kind {
		case KindString, KindPointer:
			addr := Address(binary.LittleEndian.Uint32(r.raw[off : off+PointerWidth]))
			if addr != 0 {
				v, err := m.Read(addr, f.Target)
				if err != nil {
					return fmt.Errorf("resolve %s.%s: %w", r.Shape.Name, path, err)
				}
				r.resolved[path] = v
			}
		case KindInline:
			if err := m.resolve(r, f.Target.(*Struct), off, path+"."); err != nil {
				return err
			}
		}

		off += f.Width
	}
	return nil
}
