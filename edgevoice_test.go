package edgevoice_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	edgevoice "github.com/ambiware-labs/edgevoice"
)

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func textFrame(headers string) []byte {
	return []byte(headers + "\r\n\r\n")
}

func audioFrame(requestID string, payload []byte) []byte {
	head := "Path:audio\r\nX-RequestId:" + requestID + "\r\nContent-Type:audio/mpeg\r\n"
	data := append([]byte{0, byte(len(head))}, head...)
	return append(data, payload...)
}

// requestIDFromSSML pulls the X-RequestId header out of the second
// handshake message.
func requestIDFromSSML(t *testing.T, msg string) string {
	t.Helper()
	for _, line := range strings.Split(msg, "\r\n") {
		if id, ok := strings.CutPrefix(line, "X-RequestId:"); ok {
			return id
		}
	}
	t.Fatalf("ssml message has no X-RequestId:\n%s", msg)
	return ""
}

// newFakeService runs a read-aloud endpoint stand-in. It validates the
// connection parameters and the two handshake messages, then hands the
// connection and the client's request id to serve.
func newFakeService(t *testing.T, serve func(conn *websocket.Conn, requestID string)) edgevoice.Endpoint {
	t.Helper()

	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("TrustedClientToken") != "test-token" {
			t.Errorf("missing trusted client token, query: %s", r.URL.RawQuery)
		}
		if got := q.Get("Sec-MS-GEC"); len(got) != 64 {
			t.Errorf("expected 64-char Sec-MS-GEC, got %q", got)
		}
		if q.Get("Sec-MS-GEC-Version") != "1-test" {
			t.Errorf("unexpected Sec-MS-GEC-Version %q", q.Get("Sec-MS-GEC-Version"))
		}
		if _, err := uuid.Parse(q.Get("ConnectionId")); err != nil {
			t.Errorf("ConnectionId is not a UUID: %q", q.Get("ConnectionId"))
		}
		if r.Header.Get("Origin") != "chrome-extension://test" {
			t.Errorf("unexpected Origin %q", r.Header.Get("Origin"))
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		_, config, err := conn.ReadMessage()
		if err != nil {
			t.Errorf("read speech.config: %v", err)
			return
		}
		if !strings.Contains(string(config), "Path:speech.config") {
			t.Errorf("first message is not speech.config:\n%s", config)
		}
		_, ssml, err := conn.ReadMessage()
		if err != nil {
			t.Errorf("read ssml: %v", err)
			return
		}
		if !strings.Contains(string(ssml), "Path:ssml") {
			t.Errorf("second message is not ssml:\n%s", ssml)
		}

		serve(conn, requestIDFromSSML(t, string(ssml)))
	}))
	t.Cleanup(srv.Close)

	return edgevoice.Endpoint{
		URL:                "ws" + strings.TrimPrefix(srv.URL, "http") + "?TrustedClientToken=test-token",
		TrustedClientToken: "test-token",
		SecMSGECVersion:    "1-test",
		UserAgent:          "edgevoice-test",
		Origin:             "chrome-extension://test",
		AcceptLanguage:     "en-US",
		AcceptEncoding:     "gzip",
	}
}

func TestClientSynthesize(t *testing.T) {
	ep := newFakeService(t, func(conn *websocket.Conn, requestID string) {
		_ = conn.WriteMessage(websocket.TextMessage, textFrame("Path:turn.start\r\nX-RequestId:"+requestID))
		_ = conn.WriteMessage(websocket.BinaryMessage, audioFrame(requestID, []byte("AB")))
		_ = conn.WriteMessage(websocket.BinaryMessage, audioFrame(requestID, []byte("CD")))
		_ = conn.WriteMessage(websocket.TextMessage, textFrame("Path:turn.end\r\nX-RequestId:"+requestID))
	})

	client := edgevoice.New(edgevoice.WithEndpoint(ep), edgevoice.WithLogger(newLogger()))
	audio, err := client.Synthesize(context.Background(), edgevoice.Request{Text: "hello <world>"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(audio, []byte("ABCD")) {
		t.Fatalf("expected ABCD, got %q", audio)
	}
}

func TestClientForeignIdentity(t *testing.T) {
	ep := newFakeService(t, func(conn *websocket.Conn, requestID string) {
		_ = conn.WriteMessage(websocket.BinaryMessage, audioFrame("ffffffffffffffffffffffffffffffff", []byte("AB")))
	})

	client := edgevoice.New(edgevoice.WithEndpoint(ep), edgevoice.WithLogger(newLogger()))
	audio, err := client.Synthesize(context.Background(), edgevoice.Request{Text: "hello"})
	if !errors.Is(err, edgevoice.ErrIdentityMismatch) {
		t.Fatalf("expected ErrIdentityMismatch, got %v", err)
	}
	if audio != nil {
		t.Fatal("expected no audio on identity mismatch")
	}
}

func TestClientPeerCloseWithoutTurnEnd(t *testing.T) {
	ep := newFakeService(t, func(conn *websocket.Conn, requestID string) {
		_ = conn.WriteMessage(websocket.BinaryMessage, audioFrame(requestID, []byte("AB")))
		// Close without turn.end.
	})

	client := edgevoice.New(edgevoice.WithEndpoint(ep), edgevoice.WithLogger(newLogger()))
	if _, err := client.Synthesize(context.Background(), edgevoice.Request{Text: "hello"}); err == nil {
		t.Fatal("expected an error when the peer closes before turn.end")
	}
}

func TestClientContextCancel(t *testing.T) {
	release := make(chan struct{})
	ep := newFakeService(t, func(conn *websocket.Conn, requestID string) {
		_ = conn.WriteMessage(websocket.BinaryMessage, audioFrame(requestID, []byte("AB")))
		<-release
	})
	// Registered after newFakeService so the handler unblocks before the
	// test server shuts down.
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	client := edgevoice.New(edgevoice.WithEndpoint(ep), edgevoice.WithLogger(newLogger()))
	_, err := client.Synthesize(ctx, edgevoice.Request{Text: "hello"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context deadline, got %v", err)
	}
}

func TestBuildSSMLPublic(t *testing.T) {
	doc := edgevoice.BuildSSML("a & b", "en-US-AriaNeural", "default", "default", "default")
	if !strings.Contains(doc, ">a &amp; b</prosody>") {
		t.Fatalf("text not escaped:\n%s", doc)
	}
}
