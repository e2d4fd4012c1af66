package winamp

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Codec converts between Go strings and the target's string encodings.
// Narrow strings use the target's ANSI code page, wide strings UTF-16LE.
type Codec struct {
	name   string
	narrow encoding.Encoding
	wide   encoding.Encoding
}

// NewCodec returns a codec for the named ANSI code page.
func NewCodec(codepage string) (*Codec, error) {
	var narrow encoding.Encoding
	switch strings.ToLower(codepage) {
	case "", "windows-1252", "cp1252":
		narrow = charmap.Windows1252
	case "iso-8859-1", "latin1":
		narrow = charmap.ISO8859_1
	case "iso-8859-15", "latin9":
		narrow = charmap.ISO8859_15
	case "windows-1250", "cp1250":
		narrow = charmap.Windows1250
	case "windows-1251", "cp1251":
		narrow = charmap.Windows1251
	case "utf-8", "utf8":
		narrow = unicode.UTF8
	default:
		return nil, fmt.Errorf("%w: unknown code page %q", ErrInvalidArgument, codepage)
	}
	return &Codec{
		name:   codepage,
		narrow: narrow,
		wide:   unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	}, nil
}

// Encode returns s as a NUL-terminated narrow string.
func (c *Codec) Encode(s string) ([]byte, error) {
	b, err := c.narrow.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %q not representable in %s: %v", ErrInvalidArgument, s, c.name, err)
	}
	return append(b, 0), nil
}

// Decode interprets raw up to its first terminator.
func (c *Codec) Decode(raw []byte, wide bool) (string, error) {
	if !wide {
		if i := bytes.IndexByte(raw, 0); i >= 0 {
			raw = raw[:i]
		}
		b, err := c.narrow.NewDecoder().Bytes(raw)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	raw = raw[:len(raw)&^1]
	for i := 0; i < len(raw); i += 2 {
		if raw[i] == 0 && raw[i+1] == 0 {
			raw = raw[:i]
			break
		}
	}
	b, err := c.wide.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
