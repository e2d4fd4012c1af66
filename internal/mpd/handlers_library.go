package mpd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/famish99/winampmpd/internal/winamp"
)

// artChunkSize is the largest albumart chunk sent per request
const artChunkSize = 8192

// cmdSearch handles the 'search' command: case-insensitive substring
// matches against the media library.
func (s *Server) cmdSearch(args []string) string {
	return s.query("search", args, "has")
}

// cmdFind handles the 'find' command: exact matches.
func (s *Server) cmdFind(args []string) string {
	return s.query("find", args, "=")
}

func (s *Server) query(cmd string, args []string, op string) string {
	terms, err := parseFilter(args, op)
	if err != nil {
		return ack(ackErrorArg, cmd, "%v", err)
	}
	q, keyword, err := libraryQuery(terms)
	if err != nil {
		return ack(ackErrorArg, cmd, "%v", err)
	}

	var items []winamp.Item
	if keyword {
		items, err = s.player.Search(q)
	} else {
		items, err = s.player.Find(q)
	}
	if err != nil {
		return ackErr(cmd, err)
	}
	s.log.Debug("library query", "cmd", cmd, "query", q, "keyword", keyword, "results", len(items))

	var response strings.Builder
	for _, it := range items {
		response.WriteString(s.formatItem(it))
	}
	response.WriteString("OK\n")
	return response.String()
}

// cmdLsInfo handles the 'lsinfo' command
// lsinfo [PATH] - list the media library tree below PATH, where PATH is
// a /-separated chain of tree labels
func (s *Server) cmdLsInfo(args []string) string {
	var path []string
	if len(args) > 0 {
		for _, label := range strings.Split(args[0], "/") {
			if label != "" {
				path = append(path, label)
			}
		}
	}

	children, err := s.player.Browse(path)
	var noChildren *winamp.NoChildrenError
	var notFound *winamp.CatalogNotFoundError
	switch {
	case errors.As(err, &noChildren):
		return "OK\n"
	case errors.As(err, &notFound):
		return ack(ackErrorNoExist, "lsinfo", "No such directory")
	case err != nil:
		return ackErr("lsinfo", err)
	}

	prefix := strings.Join(path, "/")
	if prefix != "" {
		prefix += "/"
	}
	var response strings.Builder
	for _, c := range children {
		fmt.Fprintf(&response, "directory: %s%s\n", prefix, c.Label)
	}
	response.WriteString("OK\n")
	return response.String()
}

// cmdAlbumArt handles the 'albumart' command
// albumart URI OFFSET - send a chunk of the cover image for URI
func (s *Server) cmdAlbumArt(args []string) string {
	if len(args) < 2 {
		return ack(ackErrorArg, "albumart", "missing arguments")
	}
	offset, err := parseInt(args[1])
	if err != nil || offset < 0 {
		return ack(ackErrorArg, "albumart", "invalid offset: %s", args[1])
	}

	path, ok := s.player.Art(args[0])
	if !ok {
		return ack(ackErrorNoExist, "albumart", "No file exists")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		s.log.Warn("failed to read album art", "path", path, "error", err)
		return ack(ackErrorNoExist, "albumart", "No file exists")
	}
	if offset > len(data) {
		return ack(ackErrorArg, "albumart", "Offset too large")
	}

	end := min(offset+artChunkSize, len(data))
	chunk := data[offset:end]

	var response strings.Builder
	fmt.Fprintf(&response, "size: %d\n", len(data))
	fmt.Fprintf(&response, "binary: %d\n", len(chunk))
	response.Write(chunk)
	response.WriteString("\nOK\n")
	return response.String()
}
