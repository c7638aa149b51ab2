package edge

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Header is a single name/value pair from a frame's header block.
type Header struct {
	Name  string
	Value string
}

// Frame is one parsed inbound protocol unit. Headers preserve wire order;
// lookups return the first occurrence of a name.
type Frame struct {
	Headers []Header
	Body    []byte
}

// Header returns the value of the first header with the given name.
func (f Frame) Header(name string) (string, bool) {
	for _, h := range f.Headers {
		if h.Name == name {
			return h.Value, true
		}
	}
	return "", false
}

// Path returns the value of the Path header, or "" when absent.
func (f Frame) Path() string {
	v, _ := f.Header(headerPath)
	return v
}

// parseHeaderBlock splits a CRLF-delimited header block into pairs. The
// value is everything after the first colon; lines without a colon yield an
// empty value. Both text and binary frames share this routine so the two
// framings cannot drift apart.
func parseHeaderBlock(block string) []Header {
	var headers []Header
	for _, line := range strings.Split(block, "\r\n") {
		if line == "" {
			continue
		}
		name, value, _ := strings.Cut(line, ":")
		headers = append(headers, Header{Name: name, Value: value})
	}
	return headers
}

// ParseTextFrame parses a text message: header block, a blank line, then an
// optional body.
func ParseTextFrame(payload []byte) (Frame, error) {
	head, body, ok := strings.Cut(string(payload), "\r\n\r\n")
	if !ok {
		return Frame{}, fmt.Errorf("%w: text frame has no header separator (%d bytes)", ErrMalformedFrame, len(payload))
	}
	return Frame{Headers: parseHeaderBlock(head), Body: []byte(body)}, nil
}

// ParseBinaryFrame parses a binary message: a big-endian 16-bit header
// block length, the header block, then the raw payload. The header block is
// decoded permissively; invalid UTF-8 in it does not fail the frame.
func ParseBinaryFrame(data []byte) (Frame, error) {
	if len(data) < 2 {
		return Frame{}, fmt.Errorf("%w: binary frame of %d bytes lacks a length prefix", ErrMalformedFrame, len(data))
	}
	headerLen := int(binary.BigEndian.Uint16(data[:2]))
	if len(data) < headerLen+2 {
		return Frame{}, fmt.Errorf("%w: binary frame of %d bytes declares %d header bytes", ErrMalformedFrame, len(data), headerLen)
	}
	return Frame{
		Headers: parseHeaderBlock(string(data[2 : 2+headerLen])),
		Body:    data[2+headerLen:],
	}, nil
}
