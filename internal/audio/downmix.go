package audio

import "encoding/binary"

// monoTap turns interleaved stereo s16le bytes into mono samples. Byte
// chunks may split a frame; the remainder is carried to the next call.
type monoTap struct {
	carry []byte
	out   []int16
}

func (t *monoTap) push(p []byte) []int16 {
	t.out = t.out[:0]
	if len(t.carry) > 0 {
		need := playbackFrameSize - len(t.carry)
		if len(p) < need {
			t.carry = append(t.carry, p...)
			return t.out
		}
		t.carry = append(t.carry, p[:need]...)
		t.out = append(t.out, mixFrame(t.carry))
		t.carry = t.carry[:0]
		p = p[need:]
	}

	whole := len(p) - len(p)%playbackFrameSize
	for off := 0; off < whole; off += playbackFrameSize {
		t.out = append(t.out, mixFrame(p[off:]))
	}
	t.carry = append(t.carry, p[whole:]...)
	return t.out
}

func (t *monoTap) reset() {
	t.carry = t.carry[:0]
}

func mixFrame(b []byte) int16 {
	l := int32(int16(binary.LittleEndian.Uint16(b)))
	r := int32(int16(binary.LittleEndian.Uint16(b[2:])))
	return int16((l + r) / 2)
}
