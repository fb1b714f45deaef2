package audio

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// CaptureSource reads mono buffers from the default input device.
type CaptureSource struct {
	stream *portaudio.Stream
	buf    []int16

	mu     sync.Mutex
	closed bool
}

// OpenCapture initializes PortAudio and starts a blocking input stream on
// the default microphone.
func OpenCapture() (*CaptureSource, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initializing portaudio: %w", err)
	}

	dev, err := portaudio.DefaultInputDevice()
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("finding input device: %w", err)
	}

	params := portaudio.HighLatencyParameters(dev, nil)
	params.Input.Channels = 1
	params.SampleRate = SampleRate
	params.FramesPerBuffer = BufferFrames

	buf := make([]int16, BufferFrames)
	stream, err := portaudio.OpenStream(params, buf)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("opening input stream on %s: %w", dev.Name, err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("starting input stream: %w", err)
	}

	log.Printf("capturing from %s", dev.Name)
	return &CaptureSource{stream: stream, buf: buf}, nil
}

// Next blocks until the device delivers the next buffer.
func (c *CaptureSource) Next(ctx context.Context) (Frame, error) {
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return Frame{}, errSourceClosed
	}

	if err := c.stream.Read(); err != nil {
		// An overflow only means older input was dropped; the buffer
		// still holds fresh samples.
		if !errors.Is(err, portaudio.InputOverflowed) {
			return Frame{}, fmt.Errorf("reading input stream: %w", err)
		}
		log.Printf("capture: %v", err)
	}
	return newFrame(append([]int16(nil), c.buf...)), nil
}

// Close stops the stream and terminates PortAudio.
func (c *CaptureSource) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	var errs []error
	if err := c.stream.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("stopping input stream: %w", err))
	}
	if err := c.stream.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing input stream: %w", err))
	}
	if err := portaudio.Terminate(); err != nil {
		errs = append(errs, fmt.Errorf("terminating portaudio: %w", err))
	}
	return errors.Join(errs...)
}
