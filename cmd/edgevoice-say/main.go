// edgevoice-say synthesizes one utterance and writes the encoded audio to
// a file, e.g.:
//
//	edgevoice-say -text "hello there" -voice en-US-AriaNeural -out hello.mp3
package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	edgevoice "github.com/ambiware-labs/edgevoice"
)

func main() {
	var (
		text    string
		voice   string
		pitch   string
		rate    string
		volume  string
		format  string
		proxy   string
		out     string
		timeout time.Duration
		verbose bool
	)

	flag.StringVar(&text, "text", "", "Text to synthesize (reads stdin when empty)")
	flag.StringVar(&voice, "voice", edgevoice.DefaultVoice, "Voice short name")
	flag.StringVar(&pitch, "pitch", edgevoice.DefaultPitch, "Prosody pitch (x-low..x-high, default)")
	flag.StringVar(&rate, "rate", edgevoice.DefaultRate, "Prosody rate (x-slow..x-fast, default)")
	flag.StringVar(&volume, "volume", edgevoice.DefaultVolume, "Prosody volume (silent..x-loud, default)")
	flag.StringVar(&format, "format", edgevoice.DefaultOutputFormat, "Output audio format string")
	flag.StringVar(&proxy, "proxy", "", "SOCKS5 proxy address, e.g. 127.0.0.1:1080")
	flag.StringVar(&out, "out", "out.mp3", "Output file")
	flag.DurationVar(&timeout, "timeout", 45*time.Second, "Overall synthesis timeout")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if text == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			logger.Error("failed to read stdin", slog.String("error", err.Error()))
			os.Exit(1)
		}
		text = strings.TrimSpace(string(data))
	}
	if text == "" {
		logger.Error("nothing to synthesize: pass -text or pipe text on stdin")
		os.Exit(1)
	}

	opts := []edgevoice.Option{edgevoice.WithLogger(logger)}
	if proxy != "" {
		opts = append(opts, edgevoice.WithProxy(proxy))
	}
	client := edgevoice.New(opts...)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	audio, err := client.Synthesize(ctx, edgevoice.Request{
		Text:         text,
		Voice:        voice,
		Pitch:        pitch,
		Rate:         rate,
		Volume:       volume,
		OutputFormat: format,
	})
	if err != nil {
		logger.Error("synthesis failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := os.WriteFile(out, audio, 0o644); err != nil {
		logger.Error("failed to write output", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("audio written", slog.String("file", out), slog.Int("bytes", len(audio)))
}
