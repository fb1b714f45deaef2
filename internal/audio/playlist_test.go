package audio

import (
	"context"
	"errors"
	"io"
	"testing"
)

func stubOpener(tracks map[string]*stubTrack, opened *[]string) Opener {
	return func(path string, opts FileOptions) (Track, error) {
		if opts.Loop {
			return nil, errors.New("entries must not loop on their own")
		}
		*opened = append(*opened, path)
		t, ok := tracks[path]
		if !ok {
			return nil, ErrUnsupportedFormat
		}
		t.served = 0
		return t, nil
	}
}

func TestPlaylistAdvancesAndEnds(t *testing.T) {
	a := &stubTrack{title: "a", frames: 1}
	b := &stubTrack{title: "b", frames: 2}
	var opened []string
	p, err := NewPlaylist([]string{"a", "b"}, FileOptions{}, stubOpener(map[string]*stubTrack{"a": a, "b": b}, &opened))
	if err != nil {
		t.Fatalf("NewPlaylist() error = %v", err)
	}
	defer p.Close()

	ctx := context.Background()
	if p.Title() != "a" {
		t.Fatalf("Title() = %q, want a", p.Title())
	}
	// a: one frame, then the switch to b yields a silent frame.
	for i := range 4 {
		if _, err := p.Next(ctx); err != nil {
			t.Fatalf("Next() #%d error = %v", i, err)
		}
	}
	if p.Title() != "b" {
		t.Fatalf("Title() = %q, want b", p.Title())
	}
	if !a.closed {
		t.Fatal("finished track was not closed")
	}
	if _, err := p.Next(ctx); !errors.Is(err, io.EOF) {
		t.Fatalf("Next() at end error = %v, want io.EOF", err)
	}
	if len(opened) != 2 {
		t.Fatalf("opened %v, want [a b]", opened)
	}
}

func TestPlaylistLoopsBackToFirst(t *testing.T) {
	a := &stubTrack{title: "a", frames: 1}
	var opened []string
	p, err := NewPlaylist([]string{"a"}, FileOptions{Loop: true}, stubOpener(map[string]*stubTrack{"a": a}, &opened))
	if err != nil {
		t.Fatalf("NewPlaylist() error = %v", err)
	}
	defer p.Close()

	for i := range 5 {
		if _, err := p.Next(context.Background()); err != nil {
			t.Fatalf("Next() #%d error = %v", i, err)
		}
	}
	if len(opened) < 3 {
		t.Fatalf("opened %d times, want at least 3", len(opened))
	}
}

func TestPlaylistOpenErrors(t *testing.T) {
	var opened []string
	if _, err := NewPlaylist(nil, FileOptions{}, nil); err == nil {
		t.Fatal("expected an error for an empty playlist")
	}
	_, err := NewPlaylist([]string{"missing"}, FileOptions{}, stubOpener(nil, &opened))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("NewPlaylist() error = %v, want wrapped ErrUnsupportedFormat", err)
	}
}
