// Package art finds cover images for local media files, either next to the
// file or in a freedesktop-style thumbnail directory.
package art

import (
	"crypto/md5"
	"encoding/hex"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// thumbnail subdirectories, best first
var thumbnailSizes = []string{"large", "normal"}

// Name patterns for art files, tried in order against lower-cased names.
var tiers = []glob.Glob{
	glob.MustCompile("{front,album,cover,folder,art}.{png,jpeg,jpg}"),
	glob.MustCompile("*{front,album,cover,folder,art}*.{png,jpeg,jpg}"),
	glob.MustCompile("*.{png,jpeg,jpg}"),
}

// Finder looks up art for a media resource.
type Finder struct {
	ThumbnailDir    string
	PreferThumbnail bool
	Log             *slog.Logger
}

// Find returns the path of an image for resource, which may be a local
// path or a file URI. Remote resources never have art.
func (f *Finder) Find(resource string) (string, bool) {
	if resource == "" {
		return "", false
	}
	uri, path, ok := fileURI(resource)
	if !ok {
		f.debug("resource is not local, ignore", "resource", resource)
		return "", false
	}

	if f.PreferThumbnail {
		if p, ok := f.thumbnail(uri); ok {
			return p, true
		}
	}
	if p, ok := f.inFolder(filepath.Dir(path)); ok {
		return p, true
	}
	if !f.PreferThumbnail {
		return f.thumbnail(uri)
	}
	return "", false
}

func (f *Finder) inFolder(dir string) (string, bool) {
	f.debug("looking for art image", "dir", dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}

	for _, g := range tiers {
		for _, name := range names {
			if g.Match(strings.ToLower(name)) {
				return filepath.Join(dir, name), true
			}
		}
	}
	return "", false
}

func (f *Finder) thumbnail(uri string) (string, bool) {
	if f.ThumbnailDir == "" {
		return "", false
	}
	if st, err := os.Stat(f.ThumbnailDir); err != nil || !st.IsDir() {
		return "", false
	}
	f.debug("looking for art image", "dir", f.ThumbnailDir)

	sum := md5.Sum([]byte(uri))
	name := hex.EncodeToString(sum[:]) + ".png"
	for _, size := range thumbnailSizes {
		p := filepath.Join(f.ThumbnailDir, size, name)
		if st, err := os.Stat(p); err == nil && st.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}

func (f *Finder) debug(msg string, args ...any) {
	if f.Log != nil {
		f.Log.Debug(msg, args...)
	}
}

// fileURI converts resource to a file URI and a local path. A resource with
// a scheme other than file is not local. A single-letter scheme is a drive
// letter, not a scheme.
func fileURI(resource string) (uri, path string, ok bool) {
	u, err := url.Parse(resource)
	if err == nil && u.Scheme == "file" {
		p := u.Path
		if len(p) > 2 && p[0] == '/' && p[2] == ':' {
			p = p[1:]
		}
		return resource, filepath.FromSlash(p), true
	}
	if err == nil && len(u.Scheme) > 1 {
		return "", "", false
	}

	p := filepath.ToSlash(resource)
	if len(p) > 1 && p[1] == ':' {
		p = "/" + strings.ReplaceAll(p, `\`, "/")
	}
	return (&url.URL{Scheme: "file", Path: p}).String(), resource, true
}
