package mpd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/famish99/winampmpd/internal/player"
	"github.com/famish99/winampmpd/internal/winamp"
)

// MPD ACK error codes
const (
	ackErrorArg        = 2
	ackErrorUnknown    = 5
	ackErrorNoExist    = 50
	ackErrorSystem     = 52
	ackErrorPlayerSync = 55
)

func ack(code int, cmd, format string, a ...any) string {
	return fmt.Sprintf("ACK [%d@0] {%s} %s\n", code, cmd, fmt.Sprintf(format, a...))
}

// ackErr maps a player error onto an MPD error code.
func ackErr(cmd string, err error) string {
	var notFound *winamp.CatalogNotFoundError
	switch {
	case errors.Is(err, winamp.ErrInvalidArgument):
		return ack(ackErrorArg, cmd, "%v", err)
	case errors.As(err, &notFound):
		return ack(ackErrorNoExist, cmd, "%v", err)
	case errors.Is(err, winamp.ErrNotPlaying):
		return ack(ackErrorPlayerSync, cmd, "%v", err)
	case errors.Is(err, player.ErrNotConnected), errors.Is(err, winamp.ErrTargetNotFound):
		return ack(ackErrorSystem, cmd, "winamp is not running")
	default:
		return ack(ackErrorSystem, cmd, "%v", err)
	}
}

// splitArgs splits a command line into words. Double-quoted words may
// contain spaces, and a backslash inside quotes escapes the next byte.
func splitArgs(line string) ([]string, error) {
	var args []string
	i := 0
	for {
		for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
		if i >= len(line) {
			return args, nil
		}

		if line[i] != '"' {
			start := i
			for i < len(line) && line[i] != ' ' && line[i] != '\t' {
				i++
			}
			args = append(args, line[start:i])
			continue
		}

		var b strings.Builder
		for i++; ; i++ {
			if i >= len(line) {
				return nil, errors.New("missing closing quote")
			}
			c := line[i]
			if c == '"' {
				i++
				break
			}
			if c == '\\' {
				i++
				if i >= len(line) {
					return nil, errors.New("missing closing quote")
				}
				c = line[i]
			}
			b.WriteByte(c)
		}
		args = append(args, b.String())
	}
}

// parseBool parses MPD's "0" or "1".
func parseBool(arg string) (bool, error) {
	switch arg {
	case "0":
		return false, nil
	case "1":
		return true, nil
	}
	return false, fmt.Errorf("boolean (0/1) expected: %s", arg)
}

func parseInt(arg string) (int, error) {
	n, err := strconv.ParseInt(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("integer expected: %s", arg)
	}
	return int(n), nil
}

func errUnsupportedMode(name string) error {
	return fmt.Errorf("%w: %s mode is not supported by winamp", winamp.ErrInvalidArgument, name)
}
