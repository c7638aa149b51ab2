package tts

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ambiware-labs/edgevoice/internal/bus"
	"github.com/ambiware-labs/edgevoice/internal/config"
	"github.com/ambiware-labs/edgevoice/internal/protocol"
)

// Service serves synthesis requests from the bus: it consumes
// protocol.SubjectTTSRequest, synthesizes with the configured backend, and
// publishes audio chunks and a completion status.
type Service struct {
	cfg       config.TTSConfig
	bus       *bus.Client
	synth     Synthesizer
	sub       *nats.Subscription
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	logger    *slog.Logger
	requests  metric.Int64Counter
	synthTime metric.Float64Histogram
}

func NewService(parent context.Context, cfg config.TTSConfig, busClient *bus.Client, synth Synthesizer, log *slog.Logger) *Service {
	ctx, cancel := context.WithCancel(parent)

	meter := otel.Meter("edgevoice/tts")
	requests, _ := meter.Int64Counter("tts.requests",
		metric.WithDescription("Synthesis requests handled, by outcome"))
	synthTime, _ := meter.Float64Histogram("tts.synthesis.duration",
		metric.WithDescription("Time to synthesize one utterance"),
		metric.WithUnit("s"))

	return &Service{
		cfg:       cfg,
		bus:       busClient,
		synth:     synth,
		ctx:       ctx,
		cancel:    cancel,
		logger:    log.With(slog.String("component", "tts-service")),
		requests:  requests,
		synthTime: synthTime,
	}
}

func (s *Service) Start() error {
	sub, err := s.bus.Conn().Subscribe(protocol.SubjectTTSRequest, s.handleRequest)
	if err != nil {
		return err
	}
	s.sub = sub
	return nil
}

func (s *Service) Close() {
	s.cancel()
	if s.sub != nil {
		_ = s.sub.Drain()
	}
	s.wg.Wait()
}

func (s *Service) Healthy() bool { return s.sub != nil }

func (s *Service) handleRequest(msg *nats.Msg) {
	var req protocol.SynthesisRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		s.logger.Warn("failed to decode synthesis request", slogError(err))
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(s.ctx, time.Duration(s.cfg.RequestTimeoutMS)*time.Millisecond)
		defer cancel()

		start := time.Now()
		chunks, errs := s.synth.Synthesize(ctx, SynthRequest{
			SessionID:    req.SessionID,
			Text:         req.Text,
			Voice:        req.Voice,
			Pitch:        req.Pitch,
			Rate:         req.Rate,
			Volume:       req.Volume,
			OutputFormat: req.OutputFormat,
		})

		sequence := 0
		outcome := "ok"
		for {
			select {
			case chunk, ok := <-chunks:
				if !ok {
					// Fall through to the termination check: errs may
					// already be drained, and skipping the check here
					// would leave the loop selecting on nil channels
					// until the request timeout.
					chunks = nil
					break
				}
				chunk.Sequence = sequence
				sequence++
				s.publishChunk(req, chunk)
			case err, ok := <-errs:
				if ok && err != nil {
					s.logger.Warn("synthesis error", slogError(err), slog.String("session_id", req.SessionID))
					s.publishStatus(req, false, err)
					outcome = "error"
				}
				errs = nil
			case <-ctx.Done():
				s.logger.Warn("synthesis cancelled", slogError(ctx.Err()), slog.String("session_id", req.SessionID))
				s.publishStatus(req, false, ctx.Err())
				s.record(ctx, "cancelled", start)
				return
			}
			if chunks == nil && errs == nil {
				s.record(context.Background(), outcome, start)
				return
			}
		}
	}()
}

func (s *Service) record(ctx context.Context, outcome string, start time.Time) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	s.requests.Add(ctx, 1, attrs)
	s.synthTime.Record(ctx, time.Since(start).Seconds(), attrs)
}

func (s *Service) publishChunk(req protocol.SynthesisRequest, chunk SynthChunk) {
	packet := protocol.AudioChunk{
		SessionID: req.SessionID,
		Target:    req.Target,
		Sequence:  chunk.Sequence,
		Format:    chunk.Format,
		Audio:     chunk.Audio,
		Final:     chunk.Final,
	}
	data, err := json.Marshal(packet)
	if err != nil {
		s.logger.Warn("failed to marshal audio chunk", slogError(err))
		return
	}
	if err := s.bus.Conn().Publish(protocol.SubjectTTSAudio, data); err != nil {
		s.logger.Warn("failed to publish audio chunk", slogError(err))
	}
	if chunk.Final {
		s.publishStatus(req, true, nil)
	}
}

func (s *Service) publishStatus(req protocol.SynthesisRequest, completed bool, cause error) {
	status := protocol.SynthesisStatus{
		SessionID: req.SessionID,
		Target:    req.Target,
		Completed: completed,
		Timestamp: time.Now().UTC(),
	}
	if cause != nil {
		status.Error = cause.Error()
	}
	if data, err := json.Marshal(status); err == nil {
		_ = s.bus.Conn().Publish(protocol.SubjectTTSDone, data)
	}
}

func slogError(err error) slog.Attr {
	return slog.String("error", err.Error())
}
