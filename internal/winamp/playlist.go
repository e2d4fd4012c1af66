package winamp

import "fmt"

// Enqueue appends filename to the playlist. The path travels in a
// WM_COPYDATA message, so the OS copies it and no remote buffer is used.
func (s *Session) Enqueue(filename string) error {
	b, err := s.marsh.codec.Encode(filename)
	if err != nil {
		return fmt.Errorf("enqueue: %w", err)
	}
	_, err = s.channel.copyData(MainWindow, ipcEnqueueFile, b)
	return err
}

// ClearPlaylist empties the playlist.
func (s *Session) ClearPlaylist() error {
	_, err := s.channel.ipc(MainWindow, 0, ipcDelete)
	return err
}

// ListLength returns the number of playlist entries.
func (s *Session) ListLength() (int, error) {
	rc, err := s.channel.ipc(MainWindow, 0, ipcGetListLength)
	return int(rc), err
}

// ListPosition returns the zero-based position of the current entry.
func (s *Session) ListPosition() (int, error) {
	rc, err := s.channel.ipc(MainWindow, 0, ipcGetListPos)
	return int(rc), err
}

// SetListPosition moves the playlist marker to pos without starting
// playback.
func (s *Session) SetListPosition(pos int) error {
	if pos < 0 {
		return fmt.Errorf("%w: playlist position %d", ErrInvalidArgument, pos)
	}
	_, err := s.channel.ipc(MainWindow, uintptr(pos), ipcSetPlaylistPos)
	return err
}

// PlaylistFile returns the filename of entry pos.
func (s *Session) PlaylistFile(pos int) (string, error) {
	return s.playlistString(pos, ipcGetPlaylistFile)
}

// PlaylistTitle returns the display title of entry pos.
func (s *Session) PlaylistTitle(pos int) (string, error) {
	return s.playlistString(pos, ipcGetPlaylistTitle)
}

// playlistString sends code for entry pos; the reply is the address of a
// string inside the target, or zero when pos is out of range.
func (s *Session) playlistString(pos, code int) (string, error) {
	if pos < 0 {
		return "", fmt.Errorf("%w: playlist position %d", ErrInvalidArgument, pos)
	}
	rc, err := s.channel.ipc(MainWindow, uintptr(pos), code)
	if err != nil {
		return "", err
	}
	if rc == 0 {
		return "", &ReplyError{Op: fmt.Sprintf("playlist entry %d", pos), Code: rc}
	}
	return s.marsh.ReadString(Address(uint32(rc)), BoundedString{Max: maxPath})
}

// PlaylistFiles returns the filenames of all playlist entries.
func (s *Session) PlaylistFiles() ([]string, error) {
	return s.playlistStrings(s.PlaylistFile)
}

// PlaylistTitles returns the titles of all playlist entries.
func (s *Session) PlaylistTitles() ([]string, error) {
	return s.playlistStrings(s.PlaylistTitle)
}

func (s *Session) playlistStrings(get func(int) (string, error)) ([]string, error) {
	n, err := s.ListLength()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		v, err := get(i)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ReplacePlaylist clears the playlist and enqueues filenames in order.
func (s *Session) ReplacePlaylist(filenames []string) error {
	if err := s.ClearPlaylist(); err != nil {
		return err
	}
	for _, f := range filenames {
		if err := s.Enqueue(f); err != nil {
			return err
		}
	}
	return nil
}

// RemoveAt deletes playlist entry pos. The playlist editor takes the
// command in wParam and the position in lParam.
func (s *Session) RemoveAt(pos int) error {
	if pos < 0 {
		return fmt.Errorf("%w: playlist position %d", ErrInvalidArgument, pos)
	}
	_, err := s.channel.Send(PlaylistWindow, wmWaIPC, ipcPEDeleteIndex, uintptr(pos))
	return err
}

// SortPlaylist sorts the playlist by path and filename.
func (s *Session) SortPlaylist() error {
	return s.channel.command(PlaylistWindow, idPESortPath)
}

// PlayAlbum replaces the playlist with every library item of album, sorted
// by path, and plays it from the top.
func (s *Session) PlayAlbum(album string) error {
	items, err := s.Query("album = "+QuoteQuery(album), 0)
	if err != nil {
		return err
	}
	files := make([]string, len(items))
	for i, it := range items {
		files[i] = it.Filename
	}

	if err := s.ReplacePlaylist(files); err != nil {
		return err
	}
	if err := s.Stop(); err != nil {
		return err
	}
	if err := s.SortPlaylist(); err != nil {
		return err
	}
	if err := s.SetListPosition(0); err != nil {
		return err
	}
	return s.Play()
}
