package winamp

import (
	"encoding/binary"
	"fmt"
)

// Record is the local copy of a fixed-layout target structure. The raw
// bytes are kept exactly as the target laid them out; pointer fields that
// were followed with ResolvePointers are stored alongside, keyed by field
// path.
type Record struct {
	Shape *Struct

	raw      []byte
	resolved map[string]any
}

// NewRecord returns a zero-filled record of the given shape.
func NewRecord(shape *Struct) *Record {
	return &Record{
		Shape:    shape,
		raw:      make([]byte, shape.Size()),
		resolved: make(map[string]any),
	}
}

// recordFrom copies raw into a new record. raw must hold at least
// shape.Size() bytes.
func recordFrom(shape *Struct, raw []byte) *Record {
	r := NewRecord(shape)
	copy(r.raw, raw)
	return r
}

// Bytes returns the record's local byte representation.
func (r *Record) Bytes() []byte {
	return r.raw
}

func (r *Record) field(path string) (int, Field) {
	off, f, err := r.Shape.locate(path)
	if err != nil {
		panic("winamp: " + err.Error())
	}
	return off, f
}

func (r *Record) word(path string) []byte {
	off, f := r.field(path)
	if f.Width != 4 {
		panic(fmt.Sprintf("winamp: %s.%s is %d bytes wide", r.Shape.Name, path, f.Width))
	}
	return r.raw[off : off+4]
}

// Uint32 returns the 4-byte field at path.
func (r *Record) Uint32(path string) uint32 {
	return binary.LittleEndian.Uint32(r.word(path))
}

// Int32 returns the 4-byte field at path as a signed value.
func (r *Record) Int32(path string) int32 {
	return int32(r.Uint32(path))
}

// Pointer returns the target address stored at path.
func (r *Record) Pointer(path string) Address {
	return Address(r.Uint32(path))
}

// SetUint32 stores v at path.
func (r *Record) SetUint32(path string, v uint32) {
	binary.LittleEndian.PutUint32(r.word(path), v)
}

// SetInt32 stores v at path.
func (r *Record) SetInt32(path string, v int32) {
	r.SetUint32(path, uint32(v))
}

// SetPointer stores a target address at path. Only addresses that are
// valid inside the target make sense here.
func (r *Record) SetPointer(path string, addr Address) {
	r.SetUint32(path, uint32(addr))
}

// Value returns the resolved value of a pointer field. ok is false when the
// pointer was null or was never resolved.
func (r *Record) Value(path string) (v any, ok bool) {
	v, ok = r.resolved[path]
	return v, ok
}

// Text returns the resolved string of a string field.
func (r *Record) Text(path string) (string, bool) {
	v, ok := r.resolved[path]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// StringOr returns the resolved string at path, or def when absent.
func (r *Record) StringOr(path, def string) string {
	if s, ok := r.Text(path); ok {
		return s
	}
	return def
}
