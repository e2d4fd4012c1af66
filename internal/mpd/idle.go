package mpd

import (
	"fmt"
	"strings"
)

// idleSubsystems are the names idle accepts. Only player, playlist, mixer
// and options are ever reported by this server.
var idleSubsystems = map[string]bool{
	"database":        true,
	"update":          true,
	"stored_playlist": true,
	"playlist":        true,
	"player":          true,
	"mixer":           true,
	"output":          true,
	"options":         true,
	"partition":       true,
	"sticker":         true,
	"subscription":    true,
	"message":         true,
	"neighbor":        true,
	"mount":           true,
}

// idleWatcher is one client blocked in idle.
type idleWatcher struct {
	filter  map[string]bool // nil watches everything
	changes chan string
}

func newIdleWatcher(names []string) (*idleWatcher, error) {
	w := &idleWatcher{changes: make(chan string, 16)}
	for _, name := range names {
		name = strings.ToLower(name)
		if !idleSubsystems[name] {
			return nil, fmt.Errorf("unrecognized idle event: %s", name)
		}
		if w.filter == nil {
			w.filter = make(map[string]bool)
		}
		w.filter[name] = true
	}
	return w, nil
}

func (w *idleWatcher) wants(subsystem string) bool {
	return w.filter == nil || w.filter[subsystem]
}

// watch adds w to the notified set until the returned func is called.
func (s *Server) watch(w *idleWatcher) (unwatch func()) {
	s.idleMu.Lock()
	s.idlers[w] = struct{}{}
	n := len(s.idlers)
	s.idleMu.Unlock()
	s.log.Debug("client idling", "watchers", n)

	return func() {
		s.idleMu.Lock()
		delete(s.idlers, w)
		n := len(s.idlers)
		s.idleMu.Unlock()
		s.log.Debug("client left idle", "watchers", n)
	}
}

// NotifySubsystemChange wakes every idle client watching subsystem. It
// never blocks: a client whose queue is full misses the event.
func (s *Server) NotifySubsystemChange(subsystem string) {
	s.idleMu.RLock()
	defer s.idleMu.RUnlock()

	for w := range s.idlers {
		if !w.wants(subsystem) {
			continue
		}
		select {
		case w.changes <- subsystem:
		default:
			s.log.Warn("dropped idle event, client queue full", "subsystem", subsystem)
		}
	}
}

// formatChanged lists each subsystem once, in first-seen order.
func formatChanged(subsystems []string) string {
	var b strings.Builder
	seen := make(map[string]bool)
	for _, sub := range subsystems {
		if seen[sub] {
			continue
		}
		seen[sub] = true
		fmt.Fprintf(&b, "changed: %s\n", sub)
	}
	b.WriteString("OK\n")
	return b.String()
}
