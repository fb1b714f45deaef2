package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"
)

// Track is a finite source that reports playback progress.
type Track interface {
	Source
	Title() string
	Position() time.Duration
	Duration() time.Duration
}

// Opener opens one playlist entry.
type Opener func(path string, opts FileOptions) (Track, error)

// OpenTrack opens a file as a Track.
func OpenTrack(path string, opts FileOptions) (Track, error) {
	return OpenFile(path, opts)
}

// PlaylistSource plays files in order. With Loop it starts over after the
// last one; otherwise it returns io.EOF.
type PlaylistSource struct {
	paths []string
	opts  FileOptions
	open  Opener

	mu  sync.Mutex
	idx int
	cur Track
}

// NewPlaylist creates a source over paths. The first file is opened
// eagerly so a broken entry fails at start-up.
func NewPlaylist(paths []string, opts FileOptions, open Opener) (*PlaylistSource, error) {
	if len(paths) == 0 {
		return nil, errors.New("empty playlist")
	}
	if open == nil {
		open = OpenTrack
	}
	p := &PlaylistSource{paths: paths, opts: opts, open: open}
	if err := p.openCurrent(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *PlaylistSource) openCurrent() error {
	opts := p.opts
	opts.Loop = false
	t, err := p.open(p.paths[p.idx], opts)
	if err != nil {
		return fmt.Errorf("opening playlist entry %d: %w", p.idx+1, err)
	}
	p.cur = t
	log.Printf("playlist: track %d/%d %s", p.idx+1, len(p.paths), t.Title())
	return nil
}

// Next returns the next frame of the current track, moving on at its end.
func (p *PlaylistSource) Next(ctx context.Context) (Frame, error) {
	p.mu.Lock()
	cur := p.cur
	p.mu.Unlock()
	if cur == nil {
		return Frame{}, errSourceClosed
	}

	f, err := cur.Next(ctx)
	if !errors.Is(err, io.EOF) {
		return f, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cur != cur {
		return Frame{}, errSourceClosed
	}
	cur.Close()
	p.cur = nil
	p.idx++
	if p.idx == len(p.paths) {
		if !p.opts.Loop {
			return Frame{}, io.EOF
		}
		p.idx = 0
	}
	if err := p.openCurrent(); err != nil {
		return Frame{}, err
	}
	return newFrame(make([]int16, BufferFrames)), nil
}

func (p *PlaylistSource) current() Track {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cur
}

// Title is the current track's label.
func (p *PlaylistSource) Title() string {
	if t := p.current(); t != nil {
		return t.Title()
	}
	return ""
}

// Position is the position within the current track.
func (p *PlaylistSource) Position() time.Duration {
	if t := p.current(); t != nil {
		return t.Position()
	}
	return 0
}

// Duration is the current track's length.
func (p *PlaylistSource) Duration() time.Duration {
	if t := p.current(); t != nil {
		return t.Duration()
	}
	return 0
}

// Close closes the current track.
func (p *PlaylistSource) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cur == nil {
		return nil
	}
	err := p.cur.Close()
	p.cur = nil
	return err
}
