package protocol

import "time"

// SynthesisRequest asks the TTS service to speak a text. Empty voice or
// prosody fields fall back to the service's configured defaults.
type SynthesisRequest struct {
	SessionID    string `json:"session_id"`
	Target       string `json:"target,omitempty"`
	Text         string `json:"text"`
	Voice        string `json:"voice,omitempty"`
	Pitch        string `json:"pitch,omitempty"`
	Rate         string `json:"rate,omitempty"`
	Volume       string `json:"volume,omitempty"`
	OutputFormat string `json:"output_format,omitempty"`
}

// AudioChunk carries encoded audio produced for a session.
type AudioChunk struct {
	SessionID string `json:"session_id"`
	Target    string `json:"target,omitempty"`
	Sequence  int    `json:"sequence"`
	Format    string `json:"format"`
	Audio     []byte `json:"audio"`
	Final     bool   `json:"final"`
}

// SynthesisStatus reports completion or failure of a synthesis.
type SynthesisStatus struct {
	SessionID string    `json:"session_id"`
	Target    string    `json:"target,omitempty"`
	Completed bool      `json:"completed"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	SubjectTTSRequest = "tts.request"
	SubjectTTSAudio   = "tts.audio"
	SubjectTTSDone    = "tts.done"
)
