package audio

import (
	"reflect"
	"testing"
)

func TestRingBufferLatestPadsWithSilence(t *testing.T) {
	rb := NewRingBuffer(8)
	rb.Write([]int16{1, 2, 3})

	got := rb.Latest(5)
	if want := []int16{0, 0, 1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Latest(5) = %v, want %v", got, want)
	}
}

func TestRingBufferOverwritesOldest(t *testing.T) {
	rb := NewRingBuffer(4)
	rb.Write([]int16{1, 2, 3})
	rb.Write([]int16{4, 5, 6})

	if rb.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", rb.Len())
	}
	if got, want := rb.Latest(4), []int16{3, 4, 5, 6}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Latest(4) = %v, want %v", got, want)
	}
}

func TestRingBufferWindowSkipsLag(t *testing.T) {
	rb := NewRingBuffer(6)
	rb.Write([]int16{1, 2, 3, 4, 5, 6, 7, 8})

	if got, want := rb.Window(3, 2), []int16{4, 5, 6}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Window(3, 2) = %v, want %v", got, want)
	}
	if got, want := rb.Window(4, 4), []int16{0, 0, 3, 4}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Window(4, 4) = %v, want %v", got, want)
	}
	if got, want := rb.Window(2, 100), []int16{0, 0}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Window(2, 100) = %v, want %v", got, want)
	}
}

func TestRingBufferClear(t *testing.T) {
	rb := NewRingBuffer(4)
	rb.Write([]int16{9, 9})
	rb.Clear()
	if rb.Len() != 0 {
		t.Fatalf("Len() after Clear = %d", rb.Len())
	}
	if got, want := rb.Latest(2), []int16{0, 0}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Latest(2) after Clear = %v, want %v", got, want)
	}
}
