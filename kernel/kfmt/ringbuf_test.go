package kfmt

import (
	"io"
	"testing"
)

func TestRingBufferRoundTrip(t *testing.T) {
	var rb ringBuffer

	payload := []byte("the quick brown fox jumps over the lazy dog")
	if n, err := rb.Write(payload); n != len(payload) || err != nil {
		t.Fatalf("expected to write %d bytes without error; got n=%d err=%v", len(payload), n, err)
	}

	got := make([]byte, len(payload))
	if n, err := rb.Read(got); n != len(payload) || err != nil {
		t.Fatalf("expected to read %d bytes without error; got n=%d err=%v", len(payload), n, err)
	}
	if string(got) != string(payload) {
		t.Fatalf("expected to read back %q; got %q", payload, got)
	}

	if _, err := rb.Read(got); err != io.EOF {
		t.Fatalf("expected EOF after the buffer is drained; got %v", err)
	}
}

func TestRingBufferOverwritesOldestData(t *testing.T) {
	var rb ringBuffer

	for i := 0; i < ringBufferSize+10; i++ {
		rb.Write([]byte{byte(i)})
	}

	buf := make([]byte, 1)
	if _, err := rb.Read(buf); err != nil {
		t.Fatal(err)
	}

	// The first 11 writes were overwritten (one extra slot is consumed by
	// the full/empty disambiguation).
	if exp := byte(11); buf[0] != exp {
		t.Fatalf("expected oldest surviving byte to be %d; got %d", exp, buf[0])
	}
}
