package tts

import "context"

// SynthRequest contains parameters to synthesize speech.
type SynthRequest struct {
	SessionID    string
	Text         string
	Voice        string
	Pitch        string
	Rate         string
	Volume       string
	OutputFormat string
}

// SynthChunk contains encoded audio.
type SynthChunk struct {
	SessionID string
	Sequence  int
	Format    string
	Audio     []byte
	Final     bool
}

// Synthesizer is the contract for producing audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, req SynthRequest) (<-chan SynthChunk, <-chan error)
}
