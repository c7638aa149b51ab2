package edge

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
)

const (
	headerPath      = "Path"
	headerRequestID = "X-RequestId"

	pathTurnEnd = "turn.end"
	pathAudio   = "audio"
)

// State is the lifecycle phase of a Session.
type State int

const (
	StateHandshaking State = iota
	StateStreaming
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateHandshaking:
		return "handshaking"
	case StateStreaming:
		return "streaming"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Conn is the discrete-message channel a Session runs over. The method set
// matches *websocket.Conn so the gorilla connection satisfies it directly;
// tests substitute scripted implementations.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Session drives one synthesis over one connection: it sends the two
// handshake messages, then consumes interleaved control and audio frames
// until the service signals the end of the turn. A Session is single use
// and not safe for concurrent access; concurrent syntheses need separate
// connections and sessions.
type Session struct {
	conn         Conn
	requestID    string
	outputFormat string
	state        State
	audio        bytes.Buffer
}

// NewSession creates a session with a fresh random request id over an
// established connection. The session does not take ownership of the
// connection; the caller closes it.
func NewSession(conn Conn, outputFormat string) (*Session, error) {
	id, err := newRequestID()
	if err != nil {
		return nil, err
	}
	return &Session{
		conn:         conn,
		requestID:    id,
		outputFormat: outputFormat,
		state:        StateHandshaking,
	}, nil
}

// newRequestID returns 128 random bits as 32 lower-case hex characters.
func newRequestID() (string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("generate request id: %w", err)
	}
	return hex.EncodeToString(buf[:]), nil
}

// RequestID returns the identity that tags this session's frames.
func (s *Session) RequestID() string { return s.requestID }

// State returns the session's current lifecycle phase.
func (s *Session) State() State { return s.state }

// speech.config payload. Word boundary metadata is requested even though
// the session discards metadata frames; the service behaves differently
// with it disabled.
type speechConfig struct {
	Context struct {
		Synthesis struct {
			Audio struct {
				MetadataOptions struct {
					SentenceBoundaryEnabled bool `json:"sentenceBoundaryEnabled"`
					WordBoundaryEnabled     bool `json:"wordBoundaryEnabled"`
				} `json:"metadataoptions"`
				OutputFormat string `json:"outputFormat"`
			} `json:"audio"`
		} `json:"synthesis"`
	} `json:"context"`
}

// Run performs the handshake and consumes the stream to a terminal state.
// On success it returns the complete audio in arrival order. On any error
// the accumulated audio is discarded.
func (s *Session) Run(ssml string) ([]byte, error) {
	if err := s.handshake(ssml); err != nil {
		s.state = StateFailed
		return nil, err
	}
	for {
		messageType, data, err := s.conn.ReadMessage()
		if err != nil {
			s.state = StateFailed
			return nil, fmt.Errorf("read frame: %w", err)
		}
		done, err := s.step(messageType, data)
		if err != nil {
			s.state = StateFailed
			return nil, err
		}
		if done {
			s.state = StateCompleted
			return s.audio.Bytes(), nil
		}
	}
}

// handshake sends speech.config then ssml, in that order, without waiting
// for acknowledgement between them.
func (s *Session) handshake(ssml string) error {
	var cfg speechConfig
	cfg.Context.Synthesis.Audio.MetadataOptions.WordBoundaryEnabled = true
	cfg.Context.Synthesis.Audio.OutputFormat = s.outputFormat
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode speech config: %w", err)
	}

	configMsg := "Content-Type:application/json; charset=utf-8\r\nPath:speech.config\r\n\r\n" + string(cfgJSON)
	if err := s.conn.WriteMessage(websocket.TextMessage, []byte(configMsg)); err != nil {
		return fmt.Errorf("send speech config: %w", err)
	}

	ssmlMsg := "X-RequestId:" + s.requestID + "\r\nContent-Type:application/ssml+xml\r\nPath:ssml\r\n\r\n" + ssml
	if err := s.conn.WriteMessage(websocket.TextMessage, []byte(ssmlMsg)); err != nil {
		return fmt.Errorf("send ssml: %w", err)
	}

	s.state = StateStreaming
	return nil
}

// step classifies one inbound message and advances the session. It reports
// done=true when the matching turn.end arrives. step performs no I/O, so
// the state machine is testable without a transport.
func (s *Session) step(messageType int, data []byte) (done bool, err error) {
	switch messageType {
	case websocket.TextMessage:
		frame, err := ParseTextFrame(data)
		if err != nil {
			return false, err
		}
		if frame.Path() != pathTurnEnd {
			return false, nil
		}
		if err := s.matchIdentity(frame); err != nil {
			return false, err
		}
		return true, nil

	case websocket.BinaryMessage:
		frame, err := ParseBinaryFrame(data)
		if err != nil {
			return false, err
		}
		if frame.Path() != pathAudio {
			return false, nil
		}
		if err := s.matchIdentity(frame); err != nil {
			return false, err
		}
		s.audio.Write(frame.Body)
		return false, nil
	}

	// Control messages of the underlying transport.
	return false, nil
}

func (s *Session) matchIdentity(frame Frame) error {
	id, ok := frame.Header(headerRequestID)
	if !ok {
		return fmt.Errorf("%w: %s frame has no %s header", ErrIdentityMismatch, frame.Path(), headerRequestID)
	}
	if id != s.requestID {
		return fmt.Errorf("%w: %s frame tagged %s, session is %s", ErrIdentityMismatch, frame.Path(), id, s.requestID)
	}
	return nil
}
