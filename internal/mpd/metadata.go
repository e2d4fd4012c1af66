package mpd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/famish99/winampmpd/internal/player"
	"github.com/famish99/winampmpd/internal/playlist"
	"github.com/famish99/winampmpd/internal/winamp"
)

type metadataField struct {
	tag  string // lower-case tag type, as used by tagtypes
	name string // MPD field name
}

// metadataFields lists the tags the server can report, in output order
var metadataFields = func() []metadataField {
	out := make([]metadataField, len(player.TagFields))
	for i, f := range player.TagFields {
		out[i] = metadataField{tag: strings.ToLower(f.Tag), name: f.Tag}
	}
	return out
}()

// writeTags writes the enabled tags present in tags, keyed by MPD name.
func (s *Server) writeTags(b *strings.Builder, tags map[string]string) {
	s.tagTypesMu.RLock()
	defer s.tagTypesMu.RUnlock()

	for _, f := range metadataFields {
		if !s.enabledTags[f.tag] {
			continue
		}
		if v := tags[f.name]; v != "" {
			fmt.Fprintf(b, "%s: %s\n", f.name, v)
		}
	}
}

// formatTrackInfo formats a playlist entry. tags may be nil, in which case
// only the playlist title is reported.
func (s *Server) formatTrackInfo(track *playlist.Track, tags map[string]string) string {
	var info strings.Builder

	// Required fields
	fmt.Fprintf(&info, "file: %s\n", track.URI)

	if tags == nil {
		tags = map[string]string{}
	}
	if tags["Title"] == "" && track.Title != "" && track.Title != track.URI {
		tags["Title"] = track.Title
	}
	s.writeTags(&info, tags)

	if track.Length >= 0 {
		fmt.Fprintf(&info, "Time: %d\n", track.Length)
		fmt.Fprintf(&info, "duration: %.3f\n", float64(track.Length))
	}

	// Position and ID - always output
	fmt.Fprintf(&info, "Pos: %d\n", track.Index)
	fmt.Fprintf(&info, "Id: %d\n", track.ID)

	return info.String()
}

// formatItem formats a media library query result.
func (s *Server) formatItem(it winamp.Item) string {
	var info strings.Builder
	fmt.Fprintf(&info, "file: %s\n", it.Filename)

	tags := map[string]string{
		"Title":   it.Title,
		"Artist":  it.Artist,
		"Album":   it.Album,
		"Genre":   it.Genre,
		"Comment": it.Comment,
	}
	if it.Year > 0 {
		tags["Date"] = strconv.Itoa(it.Year)
	}
	if it.Track > 0 {
		tags["Track"] = strconv.Itoa(it.Track)
	}
	s.writeTags(&info, tags)

	if it.Length >= 0 {
		fmt.Fprintf(&info, "Time: %d\n", it.Length)
		fmt.Fprintf(&info, "duration: %.3f\n", float64(it.Length))
	}
	return info.String()
}

// cmdTagTypes handles the 'tagtypes' command
// Controls which metadata tags are returned in responses
func (s *Server) cmdTagTypes(args []string) string {
	if len(args) == 0 {
		// List all enabled tag types
		s.tagTypesMu.RLock()
		defer s.tagTypesMu.RUnlock()

		var response strings.Builder
		for _, f := range metadataFields {
			if s.enabledTags[f.tag] {
				fmt.Fprintf(&response, "tagtype: %s\n", f.name)
			}
		}
		response.WriteString("OK\n")
		return response.String()
	}

	s.tagTypesMu.Lock()
	defer s.tagTypesMu.Unlock()

	switch subcommand := strings.ToLower(args[0]); subcommand {
	case "clear":
		// Disable all tag types
		for tag := range s.enabledTags {
			s.enabledTags[tag] = false
		}

	case "all":
		// Enable all tag types
		for tag := range s.enabledTags {
			s.enabledTags[tag] = true
		}

	case "enable", "disable":
		for _, tag := range args[1:] {
			tag = strings.ToLower(tag)
			if _, ok := s.enabledTags[tag]; !ok {
				return ack(ackErrorArg, "tagtypes", "unknown tag type: %s", tag)
			}
			s.enabledTags[tag] = subcommand == "enable"
		}

	default:
		return ack(ackErrorArg, "tagtypes", "unknown subcommand: %s", subcommand)
	}
	return "OK\n"
}
