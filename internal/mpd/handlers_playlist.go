package mpd

import (
	"fmt"
	"strconv"
	"strings"
)

// cmdAdd handles the 'add' command
func (s *Server) cmdAdd(args []string) string {
	if len(args) == 0 {
		return ack(ackErrorArg, "add", "missing URI")
	}
	if _, err := s.player.Add(args[0]); err != nil {
		return ackErr("add", err)
	}
	return "OK\n"
}

// cmdAddID handles the 'addid' command
// Like 'add' but returns the song ID of the added track. Winamp only
// appends, so a position argument is logged and ignored.
func (s *Server) cmdAddID(args []string) string {
	if len(args) == 0 {
		return ack(ackErrorArg, "addid", "missing URI")
	}

	track, err := s.player.Add(args[0])
	if err != nil {
		return ackErr("addid", err)
	}

	if len(args) > 1 {
		pos, err := parseInt(args[1])
		if err != nil || pos != track.Index {
			s.log.Warn("addid position ignored, entry appended", "requested", args[1], "pos", track.Index)
		}
	}

	// Return the ID of the added song
	return fmt.Sprintf("Id: %d\nOK\n", track.ID)
}

// cmdClear handles the 'clear' command
func (s *Server) cmdClear(_ []string) string {
	if err := s.player.Clear(); err != nil {
		return ackErr("clear", err)
	}
	return "OK\n"
}

// cmdDelete handles the 'delete' command
// delete POS - remove the song at POS
func (s *Server) cmdDelete(args []string) string {
	if len(args) == 0 {
		return ack(ackErrorArg, "delete", "missing position")
	}
	pos, err := parseInt(args[0])
	if err != nil {
		return ack(ackErrorArg, "delete", "%v", err)
	}
	if err := s.player.Delete(pos); err != nil {
		return ackErr("delete", err)
	}
	return "OK\n"
}

// cmdDeleteID handles the 'deleteid' command
func (s *Server) cmdDeleteID(args []string) string {
	if len(args) == 0 {
		return ack(ackErrorArg, "deleteid", "missing id")
	}
	id, err := parseInt(args[0])
	if err != nil {
		return ack(ackErrorArg, "deleteid", "%v", err)
	}
	if err := s.player.DeleteID(id); err != nil {
		return ackErr("deleteid", err)
	}
	return "OK\n"
}

// cmdPlaylistInfo handles the 'playlistinfo' command
// playlistinfo [POS] - all songs, or the one at POS
func (s *Server) cmdPlaylistInfo(args []string) string {
	pl, err := s.player.Playlist()
	if err != nil {
		return ackErr("playlistinfo", err)
	}
	tracks := pl.GetAll()

	if len(args) > 0 {
		pos, err := parseInt(args[0])
		if err != nil {
			return ack(ackErrorArg, "playlistinfo", "%v", err)
		}
		if pos < 0 || pos >= len(tracks) {
			return ack(ackErrorArg, "playlistinfo", "Bad song index")
		}
		tracks = tracks[pos : pos+1]
	}

	var info strings.Builder
	for i := range tracks {
		info.WriteString(s.formatTrackInfo(&tracks[i], nil))
	}
	info.WriteString("OK\n")

	return info.String()
}

// cmdPlChanges handles the 'plchanges' command
// Returns changed songs in playlist since given version
func (s *Server) cmdPlChanges(args []string) string {
	if len(args) == 0 {
		return ack(ackErrorArg, "plchanges", "missing playlist version argument")
	}

	version64, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return ack(ackErrorArg, "plchanges", "invalid playlist version number")
	}

	pl, err := s.player.Playlist()
	if err != nil {
		return ackErr("plchanges", err)
	}

	var info strings.Builder
	for _, track := range pl.ChangesSince(uint32(version64)) {
		info.WriteString(s.formatTrackInfo(&track, nil))
	}
	info.WriteString("OK\n")

	return info.String()
}
