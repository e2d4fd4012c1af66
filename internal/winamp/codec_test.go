package winamp

import (
	"bytes"
	"errors"
	"testing"
)

func TestNewCodec(t *testing.T) {
	for _, name := range []string{"", "windows-1252", "CP1252", "iso-8859-1", "latin9", "windows-1251", "utf-8"} {
		if _, err := NewCodec(name); err != nil {
			t.Errorf("NewCodec(%q) failed: %v", name, err)
		}
	}
	if _, err := NewCodec("ebcdic"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NewCodec(ebcdic) = %v, want ErrInvalidArgument", err)
	}
}

func TestCodecEncode(t *testing.T) {
	c, _ := NewCodec("windows-1252")

	got, err := c.Encode("Sigur Rós")
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := []byte{'S', 'i', 'g', 'u', 'r', ' ', 'R', 0xf3, 's', 0}
	if !bytes.Equal(got, want) {
		t.Errorf("Encode = %x, want %x", got, want)
	}

	u, _ := NewCodec("utf-8")
	got, err = u.Encode("日本")
	if err != nil {
		t.Fatalf("utf-8 Encode failed: %v", err)
	}
	if string(got) != "日本\x00" {
		t.Errorf("utf-8 Encode = %q", got)
	}
}

func TestCodecDecode(t *testing.T) {
	c, _ := NewCodec("")

	tests := []struct {
		name string
		raw  []byte
		wide bool
		want string
	}{
		{"narrow stops at NUL", []byte("abc\x00garbage"), false, "abc"},
		{"narrow without NUL", []byte("abc"), false, "abc"},
		{"narrow code page", []byte{0xe9, 't', 0xe9, 0}, false, "été"},
		{"wide stops at aligned NUL", []byte{'h', 0, 'i', 0, 0, 0, 'x', 0}, true, "hi"},
		{"wide odd length", []byte{'h', 0, 'i'}, true, "h"},
		{"wide non-latin", []byte{0xe5, 0x65, 0x2c, 0x67, 0, 0}, true, "日本"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Decode(tt.raw, tt.wide)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Decode = %q, want %q", got, tt.want)
			}
		})
	}
}
