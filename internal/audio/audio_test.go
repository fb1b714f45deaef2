package audio

import (
	"context"
	"encoding/binary"
	"io"
	"time"
)

// stubDecoder serves fixed s16le PCM.
type stubDecoder struct {
	data     []byte
	pos      int
	rate     int
	channels int
	rewinds  int
	chunk    int // max bytes per Read, 0 = unlimited
}

func (d *stubDecoder) Read(p []byte) (int, error) {
	if d.pos >= len(d.data) {
		return 0, io.EOF
	}
	if d.chunk > 0 && len(p) > d.chunk {
		p = p[:d.chunk]
	}
	n := copy(p, d.data[d.pos:])
	d.pos += n
	return n, nil
}

func (d *stubDecoder) Rewind() error {
	d.pos = 0
	d.rewinds++
	return nil
}

func (d *stubDecoder) Length() int64     { return int64(len(d.data)) }
func (d *stubDecoder) SampleRate() int   { return d.rate }
func (d *stubDecoder) ChannelCount() int { return d.channels }

func pcm(samples ...int16) []byte {
	b := make([]byte, 0, len(samples)*2)
	for _, s := range samples {
		b = binary.LittleEndian.AppendUint16(b, uint16(s))
	}
	return b
}

func decodePCM(b []byte) []int16 {
	out := make([]int16, len(b)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(b[i*2:]))
	}
	return out
}

// stereoConst returns frames stereo frames with both channels at v.
func stereoConst(frames int, v int16) []byte {
	s := make([]int16, frames*2)
	for i := range s {
		s[i] = v
	}
	return pcm(s...)
}

// stubTrack is a finite Source yielding a fixed number of frames.
type stubTrack struct {
	title  string
	frames int
	served int
	closed bool
}

func (s *stubTrack) Next(ctx context.Context) (Frame, error) {
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}
	if s.served >= s.frames {
		return Frame{}, io.EOF
	}
	s.served++
	return newFrame(make([]int16, BufferFrames)), nil
}

func (s *stubTrack) Close() error {
	s.closed = true
	return nil
}

func (s *stubTrack) Title() string           { return s.title }
func (s *stubTrack) Position() time.Duration { return time.Duration(s.served) * FrameInterval }
func (s *stubTrack) Duration() time.Duration { return time.Duration(s.frames) * FrameInterval }
