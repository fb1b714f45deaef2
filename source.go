package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/olivier-w/glitchwave/internal/audio"
	"github.com/olivier-w/glitchwave/internal/config"
	"github.com/olivier-w/glitchwave/internal/media"
)

// validateArg checks the file argument before the TUI starts.
func validateArg(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !media.IsSupportedExt(ext) && !media.IsPlaylistExt(ext) {
		return fmt.Errorf("unsupported format %s (supported: %s)", ext, media.SupportedExtsList())
	}
	return nil
}

// openSource opens the microphone, a playlist or a single file. The title
// is the HUD fallback for sources without their own.
func openSource(cfg config.Config, arg string) (audio.Source, string, error) {
	opts := audio.FileOptions{Mute: cfg.Mute, Loop: cfg.Loop}

	switch {
	case arg == "":
		log.Printf("source: microphone")
		src, err := audio.OpenCapture()
		if err != nil {
			return nil, "", err
		}
		return src, "microphone", nil

	case media.IsPlaylist(arg):
		pl, err := media.LoadPlaylist(arg)
		if err != nil {
			return nil, "", err
		}
		log.Printf("source: playlist %s (%d tracks, %d skipped)", arg, len(pl.Tracks), len(pl.Skipped))
		for _, skip := range pl.Skipped {
			log.Printf("playlist: skipping %s", skip)
		}
		src, err := audio.NewPlaylist(pl.Tracks, opts, audio.OpenTrack)
		if err != nil {
			return nil, "", err
		}
		return src, pl.Name, nil

	default:
		log.Printf("source: file %s", arg)
		src, err := audio.OpenFile(arg, opts)
		if err != nil {
			return nil, "", err
		}
		return src, src.Title(), nil
	}
}

// sourceHolder owns whichever source the startup screen opened, so main
// can release it on every exit path.
type sourceHolder struct {
	mu     sync.Mutex
	src    audio.Source
	closed bool
}

// set stores src. If the holder was already closed, src is closed at once
// and set reports false.
func (h *sourceHolder) set(src audio.Source) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		src.Close()
		return false
	}
	h.src = src
	return true
}

func (h *sourceHolder) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	if h.src == nil {
		return nil
	}
	err := h.src.Close()
	h.src = nil
	return err
}
