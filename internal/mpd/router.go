package mpd

import (
	"strings"
)

// handler serves one command. args excludes the command name.
type handler func(s *Server, args []string) string

var commands = map[string]handler{
	"ping": func(*Server, []string) string { return "OK\n" },

	// playback
	"play":     (*Server).cmdPlay,
	"playid":   (*Server).cmdPlayID,
	"pause":    (*Server).cmdPause,
	"stop":     (*Server).cmdStop,
	"next":     (*Server).cmdNext,
	"previous": (*Server).cmdPrevious,
	"seek":     (*Server).cmdSeek,
	"seekid":   (*Server).cmdSeekID,
	"seekcur":  (*Server).cmdSeekCur,
	"setvol":   (*Server).cmdSetVol,
	"single":   (*Server).cmdSingle,
	"consume":  (*Server).cmdConsume,
	"repeat":   (*Server).cmdRepeat,
	"random":   (*Server).cmdRandom,

	// status
	"status":      (*Server).cmdStatus,
	"currentsong": (*Server).cmdCurrentSong,
	"outputs":     (*Server).cmdOutputs,
	"tagtypes":    (*Server).cmdTagTypes,

	// playlist
	"add":          (*Server).cmdAdd,
	"addid":        (*Server).cmdAddID,
	"clear":        (*Server).cmdClear,
	"delete":       (*Server).cmdDelete,
	"deleteid":     (*Server).cmdDeleteID,
	"playlistinfo": (*Server).cmdPlaylistInfo,
	"plchanges":    (*Server).cmdPlChanges,

	// library
	"search":   (*Server).cmdSearch,
	"find":     (*Server).cmdFind,
	"lsinfo":   (*Server).cmdLsInfo,
	"albumart": (*Server).cmdAlbumArt,
}

// handleCommand processes a single MPD command
func (s *Server) handleCommand(line string) string {
	parts, err := splitArgs(line)
	if err != nil {
		return ack(ackErrorArg, "", "%v", err)
	}
	if len(parts) == 0 {
		return "OK\n"
	}

	command := strings.ToLower(parts[0])
	h, ok := commands[command]
	if !ok {
		return ack(ackErrorUnknown, "", "unknown command \"%s\"", command)
	}
	return h(s, parts[1:])
}
