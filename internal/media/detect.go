package media

import (
	"path/filepath"
	"strings"
)

var audioExts = []string{".mp3", ".wav", ".flac", ".ogg"}

var playlistExts = []string{".m3u", ".m3u8", ".pls"}

func hasExt(list []string, ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range list {
		if e == ext {
			return true
		}
	}
	return false
}

// IsSupportedExt reports whether files with this extension can be decoded.
func IsSupportedExt(ext string) bool {
	return hasExt(audioExts, ext)
}

// IsPlaylistExt reports whether the extension is a local playlist format.
func IsPlaylistExt(ext string) bool {
	return hasExt(playlistExts, ext)
}

// IsPlaylist reports whether path names a playlist file.
func IsPlaylist(path string) bool {
	return IsPlaylistExt(filepath.Ext(path))
}

// SupportedExtsList returns the decodable extensions for error messages.
func SupportedExtsList() string {
	return strings.Join(audioExts, ", ")
}
