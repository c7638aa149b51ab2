package tts

import (
	"context"
	"log/slog"
	"time"

	edgevoice "github.com/ambiware-labs/edgevoice"
	"github.com/ambiware-labs/edgevoice/internal/config"
)

type edgeSynth struct {
	client *edgevoice.Client
	cfg    config.TTSConfig
}

// NewEdgeSynth returns a synthesizer backed by the read-aloud streaming
// protocol. Each request opens its own connection; the whole utterance is
// delivered as a single final chunk once the service ends the turn.
func NewEdgeSynth(cfg config.TTSConfig, log *slog.Logger) Synthesizer {
	opts := []edgevoice.Option{
		edgevoice.WithLogger(log),
		edgevoice.WithHandshakeTimeout(time.Duration(cfg.HandshakeTimeoutMS) * time.Millisecond),
	}
	if cfg.Proxy != "" {
		opts = append(opts, edgevoice.WithProxy(cfg.Proxy))
	}
	return &edgeSynth{client: edgevoice.New(opts...), cfg: cfg}
}

func (e *edgeSynth) Synthesize(ctx context.Context, req SynthRequest) (<-chan SynthChunk, <-chan error) {
	chunks := make(chan SynthChunk, 1)
	errs := make(chan error, 1)
	go func() {
		defer close(chunks)
		defer close(errs)

		format := req.OutputFormat
		if format == "" {
			format = e.cfg.OutputFormat
		}
		audio, err := e.client.Synthesize(ctx, edgevoice.Request{
			Text:         req.Text,
			Voice:        fallback(req.Voice, e.cfg.Voice),
			Pitch:        fallback(req.Pitch, e.cfg.Pitch),
			Rate:         fallback(req.Rate, e.cfg.Rate),
			Volume:       fallback(req.Volume, e.cfg.Volume),
			OutputFormat: format,
		})
		if err != nil {
			errs <- err
			return
		}
		chunks <- SynthChunk{
			SessionID: req.SessionID,
			Sequence:  0,
			Format:    format,
			Audio:     audio,
			Final:     true,
		}
	}()
	return chunks, errs
}

func fallback(value, def string) string {
	if value != "" {
		return value
	}
	return def
}
