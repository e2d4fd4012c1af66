package winamp

import (
	"errors"
	"testing"
)

func TestQuery(t *testing.T) {
	f := newFakeTarget()
	s := attachFake(t, f)
	f.serveQuery(mlIPCDBRunQuery,
		f.itemRecord(`C:\Music\Blur\02 Song 2.mp3`, "Song 2", "Blur", 1997),
		f.itemRecord(`C:\Music\Blur\10 Beetlebum.mp3`, "", "Blur", -1),
	)

	var gotQuery string
	var gotMax int32
	serve := f.library[mlIPCDBRunQuery]
	f.library[mlIPCDBRunQuery] = func(p uintptr) uintptr {
		env := recordFrom(QueryShape, f.mem.peek(Address(p), QueryShape.Size()))
		gotQuery = f.mem.peekString(env.Pointer("query"))
		gotMax = env.Int32("max_results")
		return serve(p)
	}

	items, err := s.Query(`artist has "Blur"`, 50)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if gotQuery != `artist has "Blur"` || gotMax != 50 {
		t.Errorf("target saw query %q max %d", gotQuery, gotMax)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	first := items[0]
	if first.Filename != `C:\Music\Blur\02 Song 2.mp3` || first.Title != "Song 2" ||
		first.Artist != "Blur" || first.Year != 1997 || first.Length != 215 || first.Track != -1 {
		t.Errorf("first item = %+v", first)
	}
	if first.Album != "" {
		t.Errorf("null album resolved to %q", first.Album)
	}
	if got := items[1].DisplayTitle(); got != `C:\Music\Blur\10 Beetlebum.mp3` {
		t.Errorf("DisplayTitle without title = %q", got)
	}

	if n := f.count(wmMlIPC, mlIPCDBFreeQueryResults); n != 1 {
		t.Errorf("free-results sent %d times, want 1", n)
	}
	// Only the envelope stays allocated; the query string is freed.
	if f.mem.live() != 1 {
		t.Errorf("%d allocations live, want 1", f.mem.live())
	}
}

func TestQueryNoResults(t *testing.T) {
	f := newFakeTarget()
	s := attachFake(t, f)
	f.serveQuery(mlIPCDBRunQuery)

	items, err := s.Query(`artist has "X"`, 0)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("Query = %#v, want empty slice", items)
	}

	var envelope uintptr
	for _, m := range f.sent {
		if m.lParam == mlIPCDBRunQuery {
			envelope = m.wParam
		}
	}
	if n := f.count(wmMlIPC, mlIPCDBFreeQueryResults); n != 1 {
		t.Fatalf("free-results sent %d times, want 1", n)
	}
	last := f.sent[len(f.sent)-1]
	if last.lParam != mlIPCDBFreeQueryResults || last.wParam != envelope || last.hwnd != fakeLibrary {
		t.Errorf("free-results = %+v, want envelope %#x on the library window", last, envelope)
	}
}

func TestQueryKeyword(t *testing.T) {
	f := newFakeTarget()
	s := attachFake(t, f)
	f.serveQuery(mlIPCDBRunQuerySearch, f.itemRecord(`D:\alice.ogg`, "Alice", "", 2001))

	items, err := s.QueryKeyword("alice", 0)
	if err != nil {
		t.Fatalf("QueryKeyword failed: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Alice" {
		t.Errorf("QueryKeyword = %+v", items)
	}
	if f.count(wmMlIPC, mlIPCDBRunQuery) != 0 {
		t.Error("keyword search sent the filter query command")
	}
	if f.count(wmMlIPC, mlIPCDBFreeQueryResults) != 1 {
		t.Error("keyword search did not free its results")
	}
}

func TestQueryFreesResultsOnReadFailure(t *testing.T) {
	f := newFakeTarget()
	s := attachFake(t, f)
	f.library[mlIPCDBRunQuery] = func(p uintptr) uintptr {
		env := recordFrom(QueryShape, f.mem.peek(Address(p), QueryShape.Size()))
		env.SetPointer("results.items", 0x7ff00000)
		env.SetInt32("results.size", 3)
		f.mem.poke(Address(p), env.Bytes())
		return 1
	}

	_, err := s.Query("x", 0)
	var re *ReadError
	if !errors.As(err, &re) {
		t.Fatalf("expected *ReadError, got %v", err)
	}
	if n := f.count(wmMlIPC, mlIPCDBFreeQueryResults); n != 1 {
		t.Errorf("free-results sent %d times, want 1", n)
	}
}

func TestQueryRejectsNegativeMax(t *testing.T) {
	f := newFakeTarget()
	s := attachFake(t, f)

	if _, err := s.Query("x", -1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Query with max -1 = %v, want ErrInvalidArgument", err)
	}
	if len(f.sent) != 0 {
		t.Error("rejected query reached the target")
	}
}

func TestQuoteQuery(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Parklife", `"Parklife"`},
		{`C:\Music\a.mp3`, `"C:\Music\a.mp3"`},
		{`The "Best" Of`, `"The \"Best\" Of"`},
	}
	for _, tt := range tests {
		if got := QuoteQuery(tt.in); got != tt.want {
			t.Errorf("QuoteQuery(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
