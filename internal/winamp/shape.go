package winamp

import (
	"fmt"
	"strings"
)

// Shape describes how to read a value out of target memory. It is one of
// Scalar, *Struct or BoundedString, dispatched once by Marshaler.Read.
type Shape interface {
	// Size is the number of bytes a read of this shape requests.
	Size() int
	isShape()
}

// Scalar is an opaque run of Width bytes.
type Scalar struct {
	Width int
}

func (s Scalar) Size() int { return s.Width }
func (Scalar) isShape()    {}

// BoundedString is a NUL-terminated string of unknown length, read up to
// Max bytes. Wide strings are UTF-16LE.
type BoundedString struct {
	Max  int
	Wide bool
}

func (s BoundedString) Size() int { return s.Max }
func (BoundedString) isShape()    {}

// Kind classifies a record field.
type Kind int

const (
	// KindScalar fields are read in place.
	KindScalar Kind = iota
	// KindString fields hold a pointer to a string in target memory.
	KindString
	// KindPointer fields hold a pointer to an opaque value of Target's shape.
	KindPointer
	// KindInline fields embed the Target struct in place.
	KindInline
)

// Field is one member of a fixed-layout record.
type Field struct {
	Name   string
	Width  int
	Kind   Kind
	Target Shape
}

// Struct is a fixed-layout record. Field order and widths must match the
// target's native layout exactly: offsets are cumulative, so one wrong
// width shifts every following field.
type Struct struct {
	Name   string
	Fields []Field
}

func (s *Struct) Size() int {
	n := 0
	for _, f := range s.Fields {
		n += f.Width
	}
	return n
}

func (*Struct) isShape() {}

// locate resolves a dotted field path ("results.size") to its byte offset
// and field definition.
func (s *Struct) locate(path string) (int, Field, error) {
	name, rest, nested := strings.Cut(path, ".")

	offset := 0
	for _, f := range s.Fields {
		if f.Name != name {
			offset += f.Width
			continue
		}
		if !nested {
			return offset, f, nil
		}
		inner, ok := f.Target.(*Struct)
		if f.Kind != KindInline || !ok {
			return 0, Field{}, fmt.Errorf("%s.%s is not an inline struct", s.Name, name)
		}
		off, field, err := inner.locate(rest)
		if err != nil {
			return 0, Field{}, err
		}
		return offset + off, field, nil
	}
	return 0, Field{}, fmt.Errorf("%s has no field %q", s.Name, path)
}

func scalar(name string) Field {
	return Field{Name: name, Width: 4, Kind: KindScalar}
}

func str(name string) Field {
	return Field{Name: name, Width: PointerWidth, Kind: KindString, Target: BoundedString{Max: maxPath}}
}

func inline(name string, s *Struct) Field {
	return Field{Name: name, Width: s.Size(), Kind: KindInline, Target: s}
}

// Record shapes of the target's native structures.
var (
	// itemRecordList: { itemRecord *Items; int Size; int Alloc; }
	// items is the address of the result array, read in bulk by Query.
	ItemRecordListShape = &Struct{
		Name: "itemRecordList",
		Fields: []Field{
			scalar("items"),
			scalar("size"),
			scalar("alloc"),
		},
	}

	// itemRecord, one media library entry.
	ItemRecordShape = &Struct{
		Name: "itemRecord",
		Fields: []Field{
			str("filename"),
			str("title"),
			str("album"),
			str("artist"),
			str("comment"),
			str("genre"),
			scalar("year"),
			scalar("track"),
			scalar("length"),
			{Name: "extended_info", Width: PointerWidth, Kind: KindPointer, Target: Scalar{Width: PointerWidth}},
		},
	}

	// mlQueryStruct: { char *query; int max_results; itemRecordList results; }
	QueryShape = &Struct{
		Name: "mlQueryStruct",
		Fields: []Field{
			str("query"),
			scalar("max_results"),
			inline("results", ItemRecordListShape),
		},
	}

	// extendedFileInfoStruct
	ExtendedFileInfoShape = &Struct{
		Name: "extendedFileInfoStruct",
		Fields: []Field{
			str("filename"),
			str("metadata"),
			str("ret"),
			scalar("retlen"),
		},
	}

	// MLTREEITEM
	TreeItemShape = &Struct{
		Name: "MLTREEITEM",
		Fields: []Field{
			scalar("size"),
			scalar("id"),
			scalar("parent_id"),
			str("title"),
			scalar("title_len"),
			scalar("has_children"),
			scalar("image_index"),
		},
	}

	// MLTREEITEMINFO
	TreeItemInfoShape = &Struct{
		Name: "MLTREEITEMINFO",
		Fields: []Field{
			inline("item", TreeItemShape),
			scalar("mask"),
			scalar("handle"),
		},
	}

	// windowCommand, the parameter of IPC_VIDCMD
	WindowCommandShape = &Struct{
		Name: "windowCommand",
		Fields: []Field{
			scalar("cmd"),
			scalar("x"),
			scalar("y"),
			scalar("align"),
		},
	}
)
