package mpd

import (
	"bufio"
	"fmt"
	"net"
	"strings"
)

// greeting is sent to every new client
const greeting = "OK MPD 0.23.0\n"

// readLines feeds lines from conn until it fails or done is closed.
func readLines(conn net.Conn, done <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
	}()
	return lines
}

// handleConnection handles a single MPD client connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	log := s.log.With("client", conn.RemoteAddr().String())
	log.Info("MPD client connected")
	defer log.Info("MPD client disconnected")

	done := make(chan struct{})
	defer close(done)
	lines := readLines(conn, done)

	// Send MPD greeting
	if _, err := fmt.Fprint(conn, greeting); err != nil {
		return
	}

	inCommandList := false
	commandListOk := false // Track if we need list_OK after each command
	commandListFailed := false
	var commandListResponses strings.Builder

	for raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		log.Debug("MPD command", "line", line)

		// Handle command list mode
		switch line {
		case "command_list_begin", "command_list_ok_begin":
			inCommandList = true
			commandListOk = line == "command_list_ok_begin"
			commandListFailed = false
			commandListResponses.Reset()
			continue

		case "command_list_end":
			if inCommandList {
				// Send all buffered responses
				if !commandListFailed {
					commandListResponses.WriteString("OK\n")
				}
				fmt.Fprint(conn, commandListResponses.String())
				inCommandList = false
				commandListResponses.Reset()
			}
			continue
		}

		if inCommandList && commandListFailed {
			// the rest of a failed list is skipped
			continue
		}

		var response string
		cmd := strings.ToLower(strings.Fields(line)[0])

		switch cmd {
		case "close":
			return

		case "idle":
			if inCommandList {
				response = ack(ackErrorArg, cmd, "idle is not allowed in command lists")
				break
			}
			args, err := splitArgs(line)
			if err != nil {
				response = ack(ackErrorArg, cmd, "%v", err)
				break
			}
			var ok bool
			response, ok = s.idle(args[1:], lines)
			if !ok {
				return
			}

		case "noidle":
			// not idling, nothing to cancel
			response = "OK\n"

		default:
			// Normal command processing
			response = s.handleCommand(line)
		}

		if inCommandList {
			if strings.HasPrefix(response, "ACK ") {
				commandListResponses.WriteString(response)
				commandListFailed = true
				continue
			}
			// Buffer response (strip the final OK)
			commandListResponses.WriteString(strings.TrimSuffix(response, "OK\n"))

			// For command_list_ok_begin, add list_OK after each command
			if commandListOk {
				commandListResponses.WriteString("list_OK\n")
			}
		} else {
			// Send response immediately
			if _, err := fmt.Fprint(conn, response); err != nil {
				log.Debug("write failed", "error", err)
				return
			}
		}
	}
}

// idle waits for a change in one of subsystems, or any subsystem when none
// are named. A noidle line from the client ends the wait early. It reports
// false when the client went away or sent anything else.
func (s *Server) idle(subsystems []string, lines <-chan string) (string, bool) {
	w, err := newIdleWatcher(subsystems)
	if err != nil {
		return ack(ackErrorArg, "idle", "%v", err), true
	}
	defer s.watch(w)()

	select {
	case subsystem := <-w.changes:
		changed := []string{subsystem}
	drain:
		for {
			select {
			case sub := <-w.changes:
				changed = append(changed, sub)
			default:
				break drain
			}
		}
		return formatChanged(changed), true

	case line, ok := <-lines:
		if !ok || strings.TrimSpace(line) != "noidle" {
			return "", false
		}
		return "OK\n", true
	}
}
