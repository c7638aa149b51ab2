package edge

import (
	"bytes"
	"errors"
	"testing"
)

func TestParseTextFrame(t *testing.T) {
	frame, err := ParseTextFrame([]byte("X-RequestId:abc\r\nPath:turn.end\r\n\r\n{}"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frame.Path() != "turn.end" {
		t.Fatalf("expected Path turn.end, got %q", frame.Path())
	}
	if id, ok := frame.Header("X-RequestId"); !ok || id != "abc" {
		t.Fatalf("expected X-RequestId abc, got %q (%v)", id, ok)
	}
	if string(frame.Body) != "{}" {
		t.Fatalf("expected body {}, got %q", frame.Body)
	}
}

func TestParseTextFrameNoSeparator(t *testing.T) {
	_, err := ParseTextFrame([]byte("Path:turn.end\r\n"))
	if !errors.Is(err, ErrMalformedFrame) {
		t.Fatalf("expected ErrMalformedFrame, got %v", err)
	}
}

func TestParseTextFrameValueWithColon(t *testing.T) {
	frame, err := ParseTextFrame([]byte("Content-Type:audio/mpeg; rate:24000\r\n\r\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := frame.Header("Content-Type"); v != "audio/mpeg; rate:24000" {
		t.Fatalf("value split at the wrong colon: %q", v)
	}
}

func TestParseBinaryFrame(t *testing.T) {
	head := "Path:audio\r\nX-RequestId:abc\r\n"
	payload := []byte{0xff, 0x01, 0x02}
	data := append([]byte{0, byte(len(head))}, head...)
	data = append(data, payload...)

	frame, err := ParseBinaryFrame(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frame.Path() != "audio" {
		t.Fatalf("expected Path audio, got %q", frame.Path())
	}
	if !bytes.Equal(frame.Body, payload) {
		t.Fatalf("expected payload %v, got %v", payload, frame.Body)
	}
}

func TestParseBinaryFrameTruncated(t *testing.T) {
	// Declares 16 header bytes but carries only "Path:".
	data := []byte{0x00, 0x10, 'P', 'a', 't', 'h', ':'}
	_, err := ParseBinaryFrame(data)
	if !errors.Is(err, ErrMalformedFrame) {
		t.Fatalf("expected ErrMalformedFrame, got %v", err)
	}
}

func TestParseBinaryFrameNoLengthPrefix(t *testing.T) {
	_, err := ParseBinaryFrame([]byte{0x00})
	if !errors.Is(err, ErrMalformedFrame) {
		t.Fatalf("expected ErrMalformedFrame, got %v", err)
	}
}

func TestParseBinaryFrameLossyHeader(t *testing.T) {
	head := []byte("Path:audio\r\nX-Note:\xff\xfe\r\n")
	data := append([]byte{0, byte(len(head))}, head...)
	frame, err := ParseBinaryFrame(data)
	if err != nil {
		t.Fatalf("invalid header encoding should not fail the frame: %v", err)
	}
	if frame.Path() != "audio" {
		t.Fatalf("expected Path audio, got %q", frame.Path())
	}
}

func TestHeaderFirstMatchWins(t *testing.T) {
	frame, err := ParseTextFrame([]byte("Path:turn.start\r\nPath:turn.end\r\n\r\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frame.Path() != "turn.start" {
		t.Fatalf("expected first Path value, got %q", frame.Path())
	}
}
