package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/famish99/winampmpd/internal/winamp"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A78BFA"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")).Italic(true)
	currentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981"))

	stateStyles = map[winamp.PlaybackStatus]lipgloss.Style{
		winamp.StatusPlaying: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981")),
		winamp.StatusPaused:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B")),
		winamp.StatusStopped: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#9CA3AF")),
	}
)

// styled reports whether stdout is a terminal. Piped output stays plain.
var styled = term.IsTerminal(int(os.Stdout.Fd()))

func render(s lipgloss.Style, text string) string {
	if !styled {
		return text
	}
	return s.Render(text)
}

// lineWidth is the terminal width, or 0 when output is not a terminal.
func lineWidth() int {
	if !styled {
		return 0
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w
	}
	return 0
}

// fit truncates text to the terminal width.
func fit(text string, width int) string {
	if width <= 0 {
		return text
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(text)
}

func field(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%s %s\n", render(labelStyle, fmt.Sprintf("%-10s", label+":")), value)
}

// clock formats ms as m:ss. Negative values mean unknown.
func clock(ms int) string {
	if ms < 0 {
		return "-:--"
	}
	s := ms / 1000
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
