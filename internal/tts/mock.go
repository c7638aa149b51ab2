package tts

import (
	"context"
	"time"
)

type mockSynth struct {
	format string
}

// NewMockSynth returns a synthesizer that emits one empty final chunk
// after a short delay, for offline development and tests.
func NewMockSynth(format string) Synthesizer {
	return &mockSynth{format: format}
}

func (m *mockSynth) Synthesize(ctx context.Context, req SynthRequest) (<-chan SynthChunk, <-chan error) {
	chunks := make(chan SynthChunk, 1)
	errs := make(chan error, 1)
	go func() {
		defer close(chunks)
		defer close(errs)
		select {
		case <-ctx.Done():
			errs <- ctx.Err()
			return
		case <-time.After(50 * time.Millisecond):
		}
		format := req.OutputFormat
		if format == "" {
			format = m.format
		}
		chunks <- SynthChunk{
			SessionID: req.SessionID,
			Sequence:  0,
			Format:    format,
			Audio:     []byte{},
			Final:     true,
		}
	}()
	return chunks, errs
}
