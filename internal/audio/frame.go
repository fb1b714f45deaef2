package audio

import (
	"context"
	"errors"
	"time"
)

const (
	// SampleRate is the rate every Source delivers, in Hz.
	SampleRate = 44100
	// BufferFrames is the number of mono samples in one Frame.
	BufferFrames = 1024
)

// FrameInterval is the wall-clock duration of one Frame.
const FrameInterval = time.Duration(BufferFrames) * time.Second / SampleRate

// ErrUnsupportedFormat is returned for files no decoder handles.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Frame is one fixed-size mono buffer of signed 16-bit samples.
type Frame struct {
	Samples    []int16
	SampleRate int
	Channels   int
}

func newFrame(samples []int16) Frame {
	return Frame{Samples: samples, SampleRate: SampleRate, Channels: 1}
}

// Source delivers frames at the buffer cadence.
type Source interface {
	// Next blocks until the next frame is ready. It returns io.EOF when a
	// finite source is exhausted.
	Next(ctx context.Context) (Frame, error)
	// Close releases the device or file. It is safe to call more than once.
	Close() error
}
