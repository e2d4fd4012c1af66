package mpd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/famish99/winampmpd/internal/player"
)

// offlineStatus is reported while Winamp is not running, so clients keep
// polling instead of failing.
const offlineStatus = "volume: -1\nrepeat: 0\nrandom: 0\nsingle: 0\nconsume: 0\n" +
	"playlist: 0\nplaylistlength: 0\nstate: stop\nOK\n"

// cmdStatus handles the 'status' command
func (s *Server) cmdStatus(_ []string) string {
	st, err := s.player.Status()
	if errors.Is(err, player.ErrNotConnected) {
		return offlineStatus
	}
	if err != nil {
		return ackErr("status", err)
	}

	var status strings.Builder
	fmt.Fprintf(&status, "volume: %d\n", st.Volume)
	fmt.Fprintf(&status, "repeat: %d\n", boolInt(st.Repeat))
	fmt.Fprintf(&status, "random: %d\n", boolInt(st.Random))
	status.WriteString("single: 0\n")
	status.WriteString("consume: 0\n")
	fmt.Fprintf(&status, "playlist: %d\n", st.PlaylistVersion)
	fmt.Fprintf(&status, "playlistlength: %d\n", st.Length)
	fmt.Fprintf(&status, "state: %s\n", st.State)

	if st.Song >= 0 {
		fmt.Fprintf(&status, "song: %d\n", st.Song)
		fmt.Fprintf(&status, "songid: %d\n", st.SongID)
	}

	if st.State != player.StateStopped {
		elapsed := st.Elapsed
		if st.Duration >= 0 {
			// Add legacy "time" field for compatibility (format: elapsed:total)
			fmt.Fprintf(&status, "time: %d:%d\n", int(elapsed), st.Duration)
		}
		fmt.Fprintf(&status, "elapsed: %.3f\n", elapsed)
		if st.Duration >= 0 {
			fmt.Fprintf(&status, "duration: %.3f\n", float64(st.Duration))
		}
	}

	status.WriteString("OK\n")
	return status.String()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// cmdCurrentSong handles the 'currentsong' command
func (s *Server) cmdCurrentSong(_ []string) string {
	pl, err := s.player.Playlist()
	if errors.Is(err, player.ErrNotConnected) {
		return "OK\n"
	}
	if err != nil {
		return ackErr("currentsong", err)
	}
	track, err := pl.Current()
	if err != nil {
		return "OK\n" // No current song
	}

	tags, err := s.player.Tags(track.URI)
	if err != nil {
		s.log.Debug("no tags for current song", "uri", track.URI, "error", err)
		tags = nil
	}

	return s.formatTrackInfo(track, tags) + "OK\n"
}

// cmdOutputs handles the 'outputs' command
// Winamp's output plugin is the single output
func (s *Server) cmdOutputs(_ []string) string {
	var response strings.Builder
	response.WriteString("outputid: 0\n")
	response.WriteString("outputname: Winamp\n")
	response.WriteString("plugin: winamp\n")
	response.WriteString("outputenabled: 1\n")
	response.WriteString("OK\n")
	return response.String()
}
