package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

var errSourceClosed = errors.New("audio source closed")

// FileOptions controls file playback.
type FileOptions struct {
	// Mute skips playback; the decoder is read at the frame cadence.
	Mute bool
	// Loop restarts the file at EOF instead of ending.
	Loop bool
}

var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
)

func initOto() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: playbackChannels,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return globalOtoCtx, otoInitErr
}

// tapStream is the PCM stream handed to oto. Everything it yields is
// downmixed into the ring buffer, so frames follow what is played.
type tapStream struct {
	mu     sync.Mutex
	src    *normalizer
	loop   bool
	tap    monoTap
	ring   *RingBuffer
	played int64 // bytes since the last rewind
	done   bool
	err    error
}

func (s *tapStream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return 0, io.EOF
	}

	n, err := s.src.Read(p)
	if err == io.EOF && s.loop {
		switch {
		case n > 0:
			err = nil
		case s.played > 0:
			if rerr := s.src.Rewind(); rerr != nil {
				s.done, s.err = true, rerr
				return 0, rerr
			}
			s.tap.reset()
			s.played = 0
			n, err = s.src.Read(p)
			if err == io.EOF && n > 0 {
				err = nil
			}
		}
	}

	if n > 0 {
		s.ring.Write(s.tap.push(p[:n]))
		s.played += int64(n)
	}
	if err != nil {
		s.done = true
		if err != io.EOF {
			s.err = err
		}
	}
	return n, err
}

func (s *tapStream) state() (played int64, done bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.played, s.done, s.err
}

// FileSource plays an audio file and delivers the played samples as frames.
type FileSource struct {
	stream  *tapStream
	file    io.Closer
	player  *oto.Player
	length  int64
	ticker  *time.Ticker
	done    chan struct{}
	muteBuf []byte
	title   string

	mu     sync.Mutex
	closed bool
}

// OpenFile opens an mp3, wav, flac or ogg file and starts playback unless
// opts.Mute is set.
func OpenFile(path string, opts FileOptions) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening audio file: %w", err)
	}

	dec, err := newDecoder(f, filepath.Ext(path))
	if err != nil {
		f.Close()
		return nil, err
	}
	norm, err := newNormalizer(dec)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("preparing %s: %w", filepath.Base(path), err)
	}

	var otoCtx *oto.Context
	if !opts.Mute {
		otoCtx, err = initOto()
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("initializing audio output: %w", err)
		}
	}
	s := newFileSource(norm, f, opts.Loop, otoCtx)
	s.title = ReadMetadata(path).Label()
	return s, nil
}

// newFileSource starts the source. A nil otoCtx means muted.
func newFileSource(norm *normalizer, file io.Closer, loop bool, otoCtx *oto.Context) *FileSource {
	s := &FileSource{
		stream: &tapStream{
			src:  norm,
			loop: loop,
			ring: NewRingBuffer(SampleRate),
		},
		file:   file,
		length: norm.Length(),
		ticker: time.NewTicker(FrameInterval),
		done:   make(chan struct{}),
	}
	if otoCtx != nil {
		s.player = otoCtx.NewPlayer(s.stream)
		s.player.Play()
	} else {
		s.muteBuf = make([]byte, BufferFrames*playbackFrameSize)
	}
	return s
}

// Next waits for the next frame tick and returns the latest played samples.
func (s *FileSource) Next(ctx context.Context) (Frame, error) {
	select {
	case <-ctx.Done():
		return Frame{}, ctx.Err()
	case <-s.done:
		return Frame{}, errSourceClosed
	case <-s.ticker.C:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Frame{}, errSourceClosed
	}

	if s.player == nil {
		return s.nextMuted()
	}

	_, done, err := s.stream.state()
	if done && !s.player.IsPlaying() {
		if err != nil {
			return Frame{}, fmt.Errorf("decoding audio: %w", err)
		}
		if perr := s.player.Err(); perr != nil {
			return Frame{}, fmt.Errorf("playing audio: %w", perr)
		}
		return Frame{}, io.EOF
	}

	// oto reads ahead of the speaker; skip what is still queued.
	lag := s.player.BufferedSize() / playbackFrameSize
	return newFrame(s.stream.ring.Window(BufferFrames, lag)), nil
}

func (s *FileSource) nextMuted() (Frame, error) {
	n, err := io.ReadFull(s.stream, s.muteBuf)
	if n == 0 {
		if _, _, serr := s.stream.state(); serr != nil {
			return Frame{}, fmt.Errorf("decoding audio: %w", serr)
		}
		if err == nil || err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return Frame{}, err
	}
	return newFrame(s.stream.ring.Latest(BufferFrames)), nil
}

// Title is the track label shown in the HUD.
func (s *FileSource) Title() string { return s.title }

// Position returns how far into the file playback is.
func (s *FileSource) Position() time.Duration {
	played, _, _ := s.stream.state()
	if s.player != nil {
		played -= int64(s.player.BufferedSize())
	}
	return bytesToDuration(max(played, 0))
}

// Duration returns the file length, or 0 when the decoder cannot tell.
func (s *FileSource) Duration() time.Duration {
	return bytesToDuration(s.length)
}

func bytesToDuration(n int64) time.Duration {
	return time.Duration(n) * time.Second / bytesPerSecond
}

// Close stops playback and closes the file.
func (s *FileSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	close(s.done)
	s.ticker.Stop()
	if s.player != nil {
		s.player.Pause()
	}
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}
