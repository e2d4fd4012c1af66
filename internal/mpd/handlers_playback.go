package mpd

import (
	"strconv"

	"github.com/famish99/winampmpd/internal/player"
)

// cmdPlay handles the 'play' command
// play [POS] - start playback at optional position
func (s *Server) cmdPlay(args []string) string {
	var err error
	if len(args) > 0 {
		pos, perr := parseInt(args[0])
		if perr != nil {
			return ack(ackErrorArg, "play", "%v", perr)
		}
		err = s.player.PlayAt(pos)
	} else {
		err = s.resumeOrPlay()
	}

	if err != nil {
		return ackErr("play", err)
	}
	return "OK\n"
}

// resumeOrPlay continues a paused track, starts a stopped one and leaves
// a playing one alone.
func (s *Server) resumeOrPlay() error {
	st, err := s.player.Status()
	if err != nil {
		return err
	}
	switch st.State {
	case player.StatePlaying:
		return nil
	case player.StatePaused:
		return s.player.Resume()
	default:
		return s.player.Play()
	}
}

// cmdPlayID handles the 'playid' command
// playid [ID] - start playback of the song with ID
func (s *Server) cmdPlayID(args []string) string {
	var err error
	if len(args) > 0 {
		id, perr := parseInt(args[0])
		if perr != nil {
			return ack(ackErrorArg, "playid", "%v", perr)
		}
		err = s.player.PlayID(id)
	} else {
		err = s.resumeOrPlay()
	}

	if err != nil {
		return ackErr("playid", err)
	}
	return "OK\n"
}

// cmdPause handles the 'pause' command
// pause 0 = resume, pause 1 = pause, no arg = toggle
func (s *Server) cmdPause(args []string) string {
	var shouldPause bool

	if len(args) > 0 {
		on, err := parseBool(args[0])
		if err != nil {
			return ack(ackErrorArg, "pause", "%v", err)
		}
		shouldPause = on
	} else {
		// No argument - toggle pause state
		st, err := s.player.Status()
		if err != nil {
			return ackErr("pause", err)
		}
		shouldPause = st.State != player.StatePaused
	}

	// Execute pause or resume
	var err error
	if shouldPause {
		err = s.player.Pause()
	} else {
		err = s.player.Resume()
	}

	if err != nil {
		return ackErr("pause", err)
	}
	return "OK\n"
}

// cmdStop handles the 'stop' command
func (s *Server) cmdStop(_ []string) string {
	if err := s.player.StopPlayback(); err != nil {
		return ackErr("stop", err)
	}
	return "OK\n"
}

// cmdNext handles the 'next' command
func (s *Server) cmdNext(_ []string) string {
	if err := s.player.Next(); err != nil {
		return ackErr("next", err)
	}
	return "OK\n"
}

// cmdPrevious handles the 'previous' command
func (s *Server) cmdPrevious(_ []string) string {
	if err := s.player.Previous(); err != nil {
		return ackErr("previous", err)
	}
	return "OK\n"
}

// cmdSeek handles the 'seek' command
// seek {SONGPOS} {TIME} - seek to TIME (in seconds) within song SONGPOS
func (s *Server) cmdSeek(args []string) string {
	if len(args) < 2 {
		return ack(ackErrorArg, "seek", "missing arguments")
	}
	pos, err := parseInt(args[0])
	if err != nil {
		return ack(ackErrorArg, "seek", "%v", err)
	}
	return s.seekSong("seek", func(st player.Status) bool { return st.Song == pos }, args[1])
}

// cmdSeekID handles the 'seekid' command
// seekid {SONGID} {TIME} - seek to TIME within the song with SONGID
func (s *Server) cmdSeekID(args []string) string {
	if len(args) < 2 {
		return ack(ackErrorArg, "seekid", "missing arguments")
	}
	id, err := parseInt(args[0])
	if err != nil {
		return ack(ackErrorArg, "seekid", "%v", err)
	}
	return s.seekSong("seekid", func(st player.Status) bool { return st.SongID == id }, args[1])
}

// seekSong seeks within the current song. Winamp can only seek in the
// track it is playing, so other songs are rejected.
func (s *Server) seekSong(cmd string, current func(player.Status) bool, timeArg string) string {
	seconds, err := strconv.ParseFloat(timeArg, 64)
	if err != nil {
		return ack(ackErrorArg, cmd, "invalid time: %s", timeArg)
	}

	st, err := s.player.Status()
	if err != nil {
		return ackErr(cmd, err)
	}
	if !current(st) {
		return ack(ackErrorArg, cmd, "can only seek within the current song")
	}

	if err := s.player.Seek(seconds); err != nil {
		return ackErr(cmd, err)
	}
	return "OK\n"
}

// cmdSeekCur handles the 'seekcur' command
// seekcur {TIME} - seek to TIME within the current song
// TIME can be:
//   - absolute: "120" = seek to 120 seconds
//   - relative positive: "+10" = seek forward 10 seconds
//   - relative negative: "-10" = seek backward 10 seconds
func (s *Server) cmdSeekCur(args []string) string {
	if len(args) < 1 {
		return ack(ackErrorArg, "seekcur", "missing argument")
	}

	timeArg := args[0]
	isRelative := len(timeArg) > 0 && (timeArg[0] == '+' || timeArg[0] == '-')

	seconds, err := strconv.ParseFloat(timeArg, 64)
	if err != nil {
		return ack(ackErrorArg, "seekcur", "invalid time: %s", timeArg)
	}

	if isRelative {
		err = s.player.SeekRelative(seconds)
	} else {
		err = s.player.Seek(seconds)
	}
	if err != nil {
		return ackErr("seekcur", err)
	}
	return "OK\n"
}

// cmdSetVol handles the 'setvol' command
func (s *Server) cmdSetVol(args []string) string {
	if len(args) < 1 {
		return ack(ackErrorArg, "setvol", "missing argument")
	}
	vol, err := parseInt(args[0])
	if err != nil {
		return ack(ackErrorArg, "setvol", "%v", err)
	}
	if err := s.player.SetVolume(vol); err != nil {
		return ackErr("setvol", err)
	}
	return "OK\n"
}

// cmdRepeat handles the 'repeat' command
func (s *Server) cmdRepeat(args []string) string {
	return s.toggle("repeat", args, s.player.SetRepeat)
}

// cmdRandom handles the 'random' command
func (s *Server) cmdRandom(args []string) string {
	return s.toggle("random", args, s.player.SetRandom)
}

// cmdSingle handles the 'single' command. Winamp has no single mode, so
// only turning it off is accepted.
func (s *Server) cmdSingle(args []string) string {
	return s.toggle("single", args, unsupportedMode("single"))
}

// cmdConsume handles the 'consume' command. Winamp has no consume mode,
// so only turning it off is accepted.
func (s *Server) cmdConsume(args []string) string {
	return s.toggle("consume", args, unsupportedMode("consume"))
}

func (s *Server) toggle(cmd string, args []string, set func(bool) error) string {
	if len(args) < 1 {
		return ack(ackErrorArg, cmd, "missing argument")
	}
	on, err := parseBool(args[0])
	if err != nil {
		return ack(ackErrorArg, cmd, "%v", err)
	}
	if err := set(on); err != nil {
		return ackErr(cmd, err)
	}
	return "OK\n"
}

func unsupportedMode(name string) func(bool) error {
	return func(on bool) error {
		if on {
			return errUnsupportedMode(name)
		}
		return nil
	}
}
