package edgevoice

import (
	"log/slog"
	"time"
)

// Option configures a Client.
type Option func(*Client)

// WithEndpoint replaces the production endpoint, including its pinned
// connection constants.
func WithEndpoint(ep Endpoint) Option {
	return func(c *Client) { c.endpoint = ep }
}

// WithProxy routes the connection through a SOCKS5 proxy ("host:port").
// TLS is still negotiated end to end with the service.
func WithProxy(addr string) Option {
	return func(c *Client) { c.proxyAddr = addr }
}

// WithHandshakeTimeout bounds the websocket handshake. It does not bound
// the synthesis itself; use the context for that.
func WithHandshakeTimeout(d time.Duration) Option {
	return func(c *Client) { c.handshakeTimeout = d }
}

// WithLogger sets the logger for debug-level synthesis reporting.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.logger = log }
}
