package audio

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	playbackChannels  = 2
	playbackFrameSize = playbackChannels * 2
	bytesPerSecond    = SampleRate * playbackFrameSize
	decodeChunkFrames = 2048
)

// normalizer presents any pcmDecoder as 44.1 kHz stereo s16le. Mono input
// is duplicated to both channels; other rates are resampled linearly.
type normalizer struct {
	src         pcmDecoder
	passthrough bool
	srcRate     int
	srcChannels int
	length      int64

	// phase is the source position scaled by SampleRate.
	phase  int64
	window []int16 // stereo source frames starting at base
	base   int64
	carry  []byte
	srcEOF bool
	srcErr error

	buf     pending
	scratch []byte
}

func newNormalizer(src pcmDecoder) (*normalizer, error) {
	rate := src.SampleRate()
	if rate <= 0 {
		return nil, fmt.Errorf("unsupported sample rate: %d", rate)
	}
	channels := src.ChannelCount()
	if channels < 1 || channels > playbackChannels {
		return nil, fmt.Errorf("unsupported channel count: %d", channels)
	}

	n := &normalizer{
		src:         src,
		passthrough: rate == SampleRate && channels == playbackChannels,
		srcRate:     rate,
		srcChannels: channels,
	}
	if l := src.Length(); l > 0 {
		srcFrames := l / int64(channels*2)
		n.length = srcFrames * SampleRate / int64(rate) * playbackFrameSize
	}
	return n, nil
}

// Length is the normalized size in bytes, 0 when unknown.
func (n *normalizer) Length() int64 { return n.length }

// Rewind restarts the stream from the first sample.
func (n *normalizer) Rewind() error {
	if err := n.src.Rewind(); err != nil {
		return fmt.Errorf("rewinding decoder: %w", err)
	}
	n.phase = 0
	n.window = n.window[:0]
	n.base = 0
	n.carry = n.carry[:0]
	n.srcEOF = false
	n.srcErr = nil
	n.buf = n.buf[:0]
	return nil
}

func (n *normalizer) Read(p []byte) (int, error) {
	if n.passthrough {
		return n.src.Read(p)
	}
	if len(n.buf) > 0 {
		return n.buf.drain(p), nil
	}

	frames := (len(p) + playbackFrameSize - 1) / playbackFrameSize
	raw := n.generate(max(frames, 1))
	if len(raw) == 0 {
		if n.srcErr != nil {
			return 0, n.srcErr
		}
		return 0, io.EOF
	}
	return n.buf.fill(p, raw), nil
}

func (n *normalizer) generate(frames int) []byte {
	out := n.scratch[:0]
	for range frames {
		idx := n.phase / SampleRate
		frac := n.phase % SampleRate

		l0, r0, ok := n.frameAt(idx)
		if !ok {
			break
		}
		l1, r1, ok := n.frameAt(idx + 1)
		if !ok {
			l1, r1 = l0, r0
		}
		out = binary.LittleEndian.AppendUint16(out, uint16(lerp(l0, l1, frac)))
		out = binary.LittleEndian.AppendUint16(out, uint16(lerp(r0, r1, frac)))

		n.phase += int64(n.srcRate)
		n.discardBefore(idx)
	}
	n.scratch = out
	return out
}

func lerp(a, b int16, frac int64) int16 {
	return int16(int64(a) + (int64(b)-int64(a))*frac/SampleRate)
}

// frameAt returns source frame idx, decoding more input as needed.
func (n *normalizer) frameAt(idx int64) (int16, int16, bool) {
	for idx >= n.base+int64(len(n.window)/2) {
		if n.srcEOF {
			return 0, 0, false
		}
		n.decode()
	}
	i := (idx - n.base) * 2
	return n.window[i], n.window[i+1], true
}

func (n *normalizer) discardBefore(idx int64) {
	drop := int(idx-n.base) * 2
	if drop <= 0 || drop < len(n.window)/2 {
		return
	}
	n.window = append(n.window[:0], n.window[drop:]...)
	n.base = idx
}

func (n *normalizer) decode() {
	frameSize := n.srcChannels * 2
	chunk := make([]byte, decodeChunkFrames*frameSize)
	got, err := n.src.Read(chunk)
	if got == 0 && err == nil {
		err = io.EOF
	}

	data := append(n.carry, chunk[:got]...)
	whole := len(data) - len(data)%frameSize
	for off := 0; off < whole; off += frameSize {
		l := int16(binary.LittleEndian.Uint16(data[off:]))
		r := l
		if n.srcChannels == 2 {
			r = int16(binary.LittleEndian.Uint16(data[off+2:]))
		}
		n.window = append(n.window, l, r)
	}
	n.carry = append(n.carry[:0], data[whole:]...)

	if err != nil {
		n.srcEOF = true
		if err != io.EOF {
			n.srcErr = err
		}
	}
}
