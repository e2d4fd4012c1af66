package player

import (
	"errors"

	"github.com/famish99/winampmpd/internal/winamp"
)

// TagFields are the extended file info fields read for a playlist entry,
// keyed by MPD tag name.
var TagFields = []struct{ Tag, Field string }{
	{"Artist", "artist"},
	{"Album", "album"},
	{"AlbumArtist", "albumartist"},
	{"Title", "title"},
	{"Track", "track"},
	{"Genre", "genre"},
	{"Date", "year"},
	{"Composer", "composer"},
	{"Comment", "comment"},
}

// Find runs a media library query, e.g. `artist = "Ween"`.
func (p *Player) Find(filter string) ([]winamp.Item, error) {
	var items []winamp.Item
	err := p.do(func(c Controller) error {
		var err error
		items, err = c.Query(filter, p.maxResults)
		return err
	})
	return items, err
}

// Search runs a media library keyword search.
func (p *Player) Search(keyword string) ([]winamp.Item, error) {
	var items []winamp.Item
	err := p.do(func(c Controller) error {
		var err error
		items, err = c.QueryKeyword(keyword, p.maxResults)
		return err
	})
	return items, err
}

// Browse lists the library catalog below path.
func (p *Player) Browse(path []string) ([]winamp.CatalogItem, error) {
	var items []winamp.CatalogItem
	err := p.do(func(c Controller) error {
		var err error
		items, err = c.ListChildren(path)
		return err
	})
	return items, err
}

// Tags reads the extended file info of uri. Fields the target does not
// support, or that are empty, are left out.
func (p *Player) Tags(uri string) (map[string]string, error) {
	tags := make(map[string]string)
	err := p.do(func(c Controller) error {
		for _, f := range TagFields {
			v, err := c.ExtendedFileInfo(uri, f.Field, p.infoCapacity)
			var unsupported *winamp.UnsupportedError
			if errors.As(err, &unsupported) {
				continue
			}
			if err != nil {
				return err
			}
			if v != "" {
				tags[f.Tag] = v
			}
		}
		return nil
	})
	return tags, err
}

// Art returns a local image file for uri. It does not need a session.
func (p *Player) Art(uri string) (string, bool) {
	if p.art == nil {
		return "", false
	}
	return p.art.Find(uri)
}
