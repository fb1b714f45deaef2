package audio

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMutedFileSourceDeliversFramesThenEOF(t *testing.T) {
	src := &stubDecoder{data: stereoConst(2*BufferFrames, 1000), rate: SampleRate, channels: 2}
	norm, err := newNormalizer(src)
	if err != nil {
		t.Fatalf("newNormalizer() error = %v", err)
	}
	s := newFileSource(norm, nil, false, nil)
	defer s.Close()

	ctx := context.Background()
	for i := range 2 {
		f, err := s.Next(ctx)
		if err != nil {
			t.Fatalf("Next() #%d error = %v", i, err)
		}
		if len(f.Samples) != BufferFrames || f.SampleRate != SampleRate || f.Channels != 1 {
			t.Fatalf("frame #%d = %d samples @ %d Hz x%d", i, len(f.Samples), f.SampleRate, f.Channels)
		}
		for j, v := range f.Samples {
			if v != 1000 {
				t.Fatalf("frame #%d sample %d = %d, want 1000", i, j, v)
			}
		}
	}

	if _, err := s.Next(ctx); !errors.Is(err, io.EOF) {
		t.Fatalf("Next() at end error = %v, want io.EOF", err)
	}
	want := 2 * FrameInterval
	if got := s.Position(); (got - want).Abs() > time.Microsecond {
		t.Fatalf("Position() = %v, want about %v", got, want)
	}
	if got := s.Duration(); (got - want).Abs() > time.Microsecond {
		t.Fatalf("Duration() = %v, want about %v", got, want)
	}
}

func TestMutedFileSourceLoops(t *testing.T) {
	src := &stubDecoder{data: stereoConst(BufferFrames, 7), rate: SampleRate, channels: 2}
	norm, err := newNormalizer(src)
	if err != nil {
		t.Fatalf("newNormalizer() error = %v", err)
	}
	s := newFileSource(norm, nil, true, nil)
	defer s.Close()

	for i := range 3 {
		if _, err := s.Next(context.Background()); err != nil {
			t.Fatalf("Next() #%d error = %v", i, err)
		}
	}
	if src.rewinds < 2 {
		t.Fatalf("decoder rewound %d times, want at least 2", src.rewinds)
	}
}

func TestFileSourceEmptyLoopEnds(t *testing.T) {
	norm, err := newNormalizer(&stubDecoder{rate: SampleRate, channels: 2})
	if err != nil {
		t.Fatalf("newNormalizer() error = %v", err)
	}
	s := newFileSource(norm, nil, true, nil)
	defer s.Close()

	if _, err := s.Next(context.Background()); !errors.Is(err, io.EOF) {
		t.Fatalf("Next() on empty looping file error = %v, want io.EOF", err)
	}
}

func TestFileSourceHonorsContextAndClose(t *testing.T) {
	norm, err := newNormalizer(&stubDecoder{data: stereoConst(BufferFrames, 1), rate: SampleRate, channels: 2})
	if err != nil {
		t.Fatalf("newNormalizer() error = %v", err)
	}
	s := newFileSource(norm, nil, false, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Next(ctx); err == nil {
		// The tick may win the race against the cancelled context; a
		// second call must still not block forever.
		ctx2, cancel2 := context.WithTimeout(context.Background(), time.Second)
		defer cancel2()
		_, _ = s.Next(ctx2)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if _, err := s.Next(context.Background()); !errors.Is(err, errSourceClosed) {
		t.Fatalf("Next() after Close error = %v, want errSourceClosed", err)
	}
}

func TestOpenFileTitleFallsBackToFileName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "night drive.wav")
	if err := os.WriteFile(path, wavFile(SampleRate, 2, 100, -100, 200, -200), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	s, err := OpenFile(path, FileOptions{Mute: true})
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer s.Close()

	if got := s.Title(); got != "night drive" {
		t.Fatalf("Title() = %q, want %q", got, "night drive")
	}
	var tr Track = s
	if got := tr.Title(); got != "night drive" {
		t.Fatalf("Track.Title() = %q", got)
	}
}
