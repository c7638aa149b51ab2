package edgevoice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/net/proxy"

	"github.com/ambiware-labs/edgevoice/internal/edge"
)

// connectURL appends the per-connection query parameters: the time-bucketed
// Sec-MS-GEC token, its version literal, and a fresh connection id.
func connectURL(ep Endpoint, now time.Time) string {
	return fmt.Sprintf("%s&Sec-MS-GEC=%s&Sec-MS-GEC-Version=%s&ConnectionId=%s",
		ep.URL, edge.SecMSGEC(ep.TrustedClientToken, now), ep.SecMSGECVersion, uuid.NewString())
}

func connectHeaders(ep Endpoint) http.Header {
	h := http.Header{}
	if ep.AcceptEncoding != "" {
		h.Set("Accept-Encoding", ep.AcceptEncoding)
	}
	if ep.AcceptLanguage != "" {
		h.Set("Accept-Language", ep.AcceptLanguage)
	}
	if ep.UserAgent != "" {
		h.Set("User-Agent", ep.UserAgent)
	}
	if ep.Origin != "" {
		h.Set("Origin", ep.Origin)
	}
	return h
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: c.handshakeTimeout}

	if c.proxyAddr != "" {
		socks, err := proxy.SOCKS5("tcp", c.proxyAddr, nil, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("socks5 proxy %s: %w", c.proxyAddr, err)
		}
		dialer.NetDialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			if cd, ok := socks.(proxy.ContextDialer); ok {
				return cd.DialContext(ctx, network, addr)
			}
			return socks.Dial(network, addr)
		}
	}

	conn, resp, err := dialer.DialContext(ctx, connectURL(c.endpoint, time.Now()), connectHeaders(c.endpoint))
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("connect synthesis endpoint: %w (handshake status %s)", err, resp.Status)
		}
		return nil, fmt.Errorf("connect synthesis endpoint: %w", err)
	}
	return conn, nil
}
