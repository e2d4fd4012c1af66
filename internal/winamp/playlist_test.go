package winamp

import (
	"errors"
	"reflect"
	"testing"
)

// fakePlaylistEditor keeps a playlist in target memory and answers the
// playlist commands against it.
func fakePlaylistEditor(f *fakeTarget, files ...string) *[]string {
	list := append([]string(nil), files...)
	pos := 0

	f.ipc[ipcGetListLength] = func(uintptr) uintptr { return uintptr(len(list)) }
	f.ipc[ipcGetListPos] = func(uintptr) uintptr { return uintptr(pos) }
	f.ipc[ipcSetPlaylistPos] = func(w uintptr) uintptr { pos = int(w); return 0 }
	f.ipc[ipcDelete] = func(uintptr) uintptr { list = nil; return 0 }
	f.ipc[ipcGetPlaylistFile] = func(w uintptr) uintptr {
		if int(w) >= len(list) {
			return 0
		}
		return uintptr(f.mem.placeString(list[w]))
	}
	f.ipc[ipcGetPlaylistTitle] = func(w uintptr) uintptr {
		if int(w) >= len(list) {
			return 0
		}
		return uintptr(f.mem.placeString("title of " + list[w]))
	}
	return &list
}

func TestPlaylistReads(t *testing.T) {
	f := newFakeTarget()
	fakePlaylistEditor(f, "a.mp3", "b.mp3")
	s := attachFake(t, f)

	files, err := s.PlaylistFiles()
	if err != nil {
		t.Fatalf("PlaylistFiles failed: %v", err)
	}
	if !reflect.DeepEqual(files, []string{"a.mp3", "b.mp3"}) {
		t.Errorf("PlaylistFiles = %q", files)
	}

	titles, err := s.PlaylistTitles()
	if err != nil {
		t.Fatalf("PlaylistTitles failed: %v", err)
	}
	if len(titles) != 2 {
		t.Fatalf("PlaylistTitles = %q, want 2 titles", titles)
	}
	if titles[1] != "title of b.mp3" {
		t.Errorf("PlaylistTitles = %q", titles)
	}

	_, err = s.PlaylistFile(5)
	var re *ReplyError
	if !errors.As(err, &re) {
		t.Errorf("PlaylistFile out of range = %v, want *ReplyError", err)
	}

	if err := s.SetListPosition(1); err != nil {
		t.Fatalf("SetListPosition failed: %v", err)
	}
	if p, _ := s.ListPosition(); p != 1 {
		t.Errorf("ListPosition = %d, want 1", p)
	}
}

func TestEnqueueUsesCopyData(t *testing.T) {
	f := newFakeTarget()
	s := attachFake(t, f)

	if err := s.Enqueue(`C:\Music\Ab\café.mp3`); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	if len(f.copies) != 1 {
		t.Fatalf("sent %d copies, want 1", len(f.copies))
	}
	c := f.copies[0]
	want := append([]byte(`C:\Music\Ab\caf`), 0xe9, '.', 'm', 'p', '3', 0)
	if c.hwnd != fakeMain || c.id != ipcEnqueueFile || !reflect.DeepEqual(c.data, want) {
		t.Errorf("copy = %+v, want id %d data %q", c, ipcEnqueueFile, want)
	}
	if f.mem.allocCount != 0 {
		t.Error("Enqueue allocated remote memory")
	}
}

func TestEnqueueUnrepresentable(t *testing.T) {
	f := newFakeTarget()
	s := attachFake(t, f)

	if err := s.Enqueue("日本.mp3"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Enqueue = %v, want ErrInvalidArgument", err)
	}
	if len(f.copies) != 0 {
		t.Error("unrepresentable path reached the target")
	}
}

func TestReplacePlaylist(t *testing.T) {
	f := newFakeTarget()
	list := fakePlaylistEditor(f, "old.mp3")
	s := attachFake(t, f)

	if err := s.ReplacePlaylist([]string{"x.mp3", "y.mp3"}); err != nil {
		t.Fatalf("ReplacePlaylist failed: %v", err)
	}
	if len(*list) != 0 {
		t.Errorf("playlist not cleared: %q", *list)
	}
	if len(f.copies) != 2 || string(f.copies[1].data) != "y.mp3\x00" {
		t.Errorf("enqueued %+v", f.copies)
	}
}

func TestRemoveAtAndSort(t *testing.T) {
	f := newFakeTarget()
	s := attachFake(t, f)

	if err := s.RemoveAt(3); err != nil {
		t.Fatalf("RemoveAt failed: %v", err)
	}
	if err := s.SortPlaylist(); err != nil {
		t.Fatalf("SortPlaylist failed: %v", err)
	}

	want := []sentMessage{
		{fakePlaylist, wmWaIPC, ipcPEDeleteIndex, 3},
		{fakePlaylist, wmCommand, idPESortPath, 0},
	}
	if !reflect.DeepEqual(f.sent, want) {
		t.Errorf("sent %+v, want %+v", f.sent, want)
	}
}

func TestPlayAlbum(t *testing.T) {
	f := newFakeTarget()
	fakePlaylistEditor(f)
	s := attachFake(t, f)
	f.serveQuery(mlIPCDBRunQuery,
		f.itemRecord("2.mp3", "Two", "", 0),
		f.itemRecord("1.mp3", "One", "", 0),
	)

	if err := s.PlayAlbum("Parklife"); err != nil {
		t.Fatalf("PlayAlbum failed: %v", err)
	}
	if len(f.copies) != 2 {
		t.Fatalf("enqueued %d files, want 2", len(f.copies))
	}

	var tail []int
	for _, m := range f.sent {
		if m.msg == wmCommand {
			tail = append(tail, int(m.wParam))
		}
	}
	if !reflect.DeepEqual(tail, []int{buttonStop, idPESortPath, buttonPlay}) {
		t.Errorf("commands = %v", tail)
	}
	if p, _ := s.ListPosition(); p != 0 {
		t.Errorf("ListPosition = %d, want 0", p)
	}
}
