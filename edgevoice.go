// Package edgevoice synthesizes speech through the Edge read-aloud
// streaming service. Callers build a speech markup document with BuildSSML
// (or supply their own) and receive the encoded audio for one utterance as
// a single byte slice. Each synthesis occupies its own websocket
// connection; concurrent syntheses use independent calls.
package edgevoice

import (
	"context"
	"log/slog"
	"time"

	"github.com/ambiware-labs/edgevoice/internal/edge"
)

// Caller-facing defaults. The output format string passes through to the
// service uninterpreted; the service's documented format list applies.
const (
	DefaultVoice        = "en-US-AriaNeural"
	DefaultPitch        = "default"
	DefaultRate         = "default"
	DefaultVolume       = "default"
	DefaultOutputFormat = "audio-24khz-48kbitrate-mono-mp3"
)

// Request describes one utterance to synthesize. Zero fields other than
// Text fall back to the package defaults. Prosody fields take the keyword
// values of the speech markup prosody element; they are not validated
// locally.
type Request struct {
	Text         string
	Voice        string
	Pitch        string
	Rate         string
	Volume       string
	OutputFormat string
}

func (r *Request) applyDefaults() {
	if r.Voice == "" {
		r.Voice = DefaultVoice
	}
	if r.Pitch == "" {
		r.Pitch = DefaultPitch
	}
	if r.Rate == "" {
		r.Rate = DefaultRate
	}
	if r.Volume == "" {
		r.Volume = DefaultVolume
	}
	if r.OutputFormat == "" {
		r.OutputFormat = DefaultOutputFormat
	}
}

// BuildSSML produces the speech markup document for a text, voice, and
// prosody combination. Reserved characters are escaped; the builder never
// fails and is byte-deterministic.
func BuildSSML(text, voice, pitch, rate, volume string) string {
	return edge.BuildSSML(text, voice, pitch, rate, volume)
}

// Client synthesizes speech against a fixed endpoint. The zero-argument
// New targets the production service; options substitute the endpoint,
// route through a SOCKS5 proxy, or adjust timeouts. A Client is stateless
// across calls and safe for concurrent use.
type Client struct {
	endpoint         Endpoint
	proxyAddr        string
	handshakeTimeout time.Duration
	logger           *slog.Logger
}

func New(opts ...Option) *Client {
	c := &Client{
		endpoint:         DefaultEndpoint(),
		handshakeTimeout: 10 * time.Second,
		logger:           slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Synthesize builds markup from the request and returns the encoded audio.
func (c *Client) Synthesize(ctx context.Context, req Request) ([]byte, error) {
	req.applyDefaults()
	ssml := edge.BuildSSML(req.Text, req.Voice, req.Pitch, req.Rate, req.Volume)
	return c.SynthesizeSSML(ctx, ssml, req.OutputFormat)
}

// SynthesizeSSML sends a caller-built markup document and returns the
// encoded audio. Cancelling the context closes the connection, which
// aborts the in-flight session; there is no other cancellation path, and
// no read deadline is enforced beyond the context.
func (c *Client) SynthesizeSSML(ctx context.Context, ssml, outputFormat string) ([]byte, error) {
	if outputFormat == "" {
		outputFormat = DefaultOutputFormat
	}

	conn, err := c.dial(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	sess, err := edge.NewSession(conn, outputFormat)
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	start := time.Now()
	audio, err := sess.Run(ssml)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	c.logger.Debug("synthesis complete",
		slog.String("request_id", sess.RequestID()),
		slog.Int("audio_bytes", len(audio)),
		slog.Duration("elapsed", time.Since(start)))
	return audio, nil
}

// Synthesize sends a markup document to the production endpoint and
// returns the encoded audio.
func Synthesize(ssml, outputFormat string) ([]byte, error) {
	return New().SynthesizeSSML(context.Background(), ssml, outputFormat)
}

// SynthesizeViaProxy is Synthesize tunneled through a SOCKS5 proxy,
// e.g. "127.0.0.1:1080".
func SynthesizeViaProxy(ssml, outputFormat, proxyAddr string) ([]byte, error) {
	return New(WithProxy(proxyAddr)).SynthesizeSSML(context.Background(), ssml, outputFormat)
}
