package audio

import "sync"

// RingBuffer keeps the most recent mono samples written by the playback
// thread so the frame loop can pick up the latest buffer.
type RingBuffer struct {
	buf  []int16
	size int
	w    int // write position
	len  int // current fill level
	mu   sync.Mutex
}

// NewRingBuffer creates a ring buffer holding up to size samples.
func NewRingBuffer(size int) *RingBuffer {
	return &RingBuffer{
		buf:  make([]int16, size),
		size: size,
	}
}

// Write appends samples, overwriting the oldest ones when full.
func (rb *RingBuffer) Write(p []int16) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	for _, s := range p {
		rb.buf[rb.w] = s
		rb.w = (rb.w + 1) % rb.size
	}
	rb.len += len(p)
	if rb.len > rb.size {
		rb.len = rb.size
	}
}

// Latest returns exactly n samples: the most recent ones, left-padded with
// silence when fewer have been written.
func (rb *RingBuffer) Latest(n int) []int16 {
	return rb.Window(n, 0)
}

// Window returns n samples ending lag samples before the newest one. The
// missing part is filled with silence.
func (rb *RingBuffer) Window(n, lag int) []int16 {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	out := make([]int16, n)
	lag = min(max(lag, 0), rb.len)
	avail := min(n, rb.len-lag)
	end := (rb.w - lag + rb.size) % rb.size
	start := (end - avail + rb.size) % rb.size
	pad := n - avail
	for i := range avail {
		out[pad+i] = rb.buf[(start+i)%rb.size]
	}
	return out
}

// Len returns the number of buffered samples.
func (rb *RingBuffer) Len() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.len
}

// Clear resets the buffer.
func (rb *RingBuffer) Clear() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.w = 0
	rb.len = 0
}
