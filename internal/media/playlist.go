package media

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Playlist is a local playlist reduced to the tracks that can be played.
type Playlist struct {
	Name    string
	Tracks  []string
	Skipped []Skip
}

// Skip records a playlist line that will not be played.
type Skip struct {
	Line   int
	Entry  string
	Reason string
}

func (s Skip) String() string {
	return fmt.Sprintf("line %d: %s: %s", s.Line, s.Entry, s.Reason)
}

// entryFunc extracts the track reference from one playlist line.
type entryFunc func(line string) (string, bool)

// LoadPlaylist reads an .m3u, .m3u8 or .pls file. Entries are resolved
// against the playlist's directory; missing, unsupported, remote and
// repeated entries are reported in Skipped. It fails when no track is left.
func LoadPlaylist(path string) (*Playlist, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var entry entryFunc
	switch ext {
	case ".m3u", ".m3u8":
		entry = m3uEntry
	case ".pls":
		entry = plsEntry
	default:
		return nil, fmt.Errorf("unsupported playlist format %s", ext)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("reading playlist: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\uFEFF"))
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("playlist %s is not valid UTF-8", filepath.Base(path))
	}

	base := filepath.Base(abs)
	pl := &Playlist{Name: strings.TrimSuffix(base, filepath.Ext(base))}
	dir := filepath.Dir(abs)
	seen := make(map[string]int)

	for i, line := range strings.Split(string(data), "\n") {
		raw, ok := entry(strings.TrimSpace(line))
		if !ok {
			continue
		}
		lineNo := i + 1
		track, reason := resolveEntry(raw, dir)
		if reason == "" {
			if first, dup := seen[track]; dup {
				reason = "repeats line " + strconv.Itoa(first)
			} else {
				seen[track] = lineNo
			}
		}
		if reason != "" {
			pl.Skipped = append(pl.Skipped, Skip{Line: lineNo, Entry: raw, Reason: reason})
			continue
		}
		pl.Tracks = append(pl.Tracks, track)
	}

	if len(pl.Tracks) == 0 {
		return nil, fmt.Errorf("playlist %s has no playable entries (supported: %s)", base, SupportedExtsList())
	}
	return pl, nil
}

func m3uEntry(line string) (string, bool) {
	if line == "" || strings.HasPrefix(line, "#") {
		return "", false
	}
	return line, true
}

// plsEntry accepts FileN=value lines only.
func plsEntry(line string) (string, bool) {
	key, val, ok := strings.Cut(line, "=")
	if !ok {
		return "", false
	}
	key, val = strings.TrimSpace(key), strings.TrimSpace(val)
	n, found := strings.CutPrefix(key, "File")
	if !found || val == "" {
		return "", false
	}
	if _, err := strconv.ParseUint(n, 10, 32); err != nil {
		return "", false
	}
	return val, true
}

// resolveEntry turns a raw entry into a clean absolute path, or returns
// why it cannot be played.
func resolveEntry(raw, dir string) (string, string) {
	p := raw
	if u, err := url.Parse(raw); err == nil && len(u.Scheme) > 1 {
		if u.Scheme != "file" {
			return "", "remote " + u.Scheme + " stream"
		}
		p = u.Path
	}
	p = filepath.Clean(p)
	if !filepath.IsAbs(p) {
		p = filepath.Join(dir, p)
	}

	if !IsSupportedExt(filepath.Ext(p)) {
		return "", "unsupported format"
	}
	info, err := os.Stat(p)
	switch {
	case err != nil:
		return "", "not found"
	case info.IsDir():
		return "", "is a directory"
	}
	return p, ""
}
