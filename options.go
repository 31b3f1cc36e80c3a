// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stomp

import (
	"context"
	"log/slog"
	"net"
	"time"
)

// Dialer opens a connection to a broker address, honoring ctx cancellation
// for the dial itself. It is the sole hook this package exposes onto DNS
// resolution and socket creation: swap in a TLS-aware DialContext, a
// SOCKS-proxied dialer, or a test double without this package importing
// crypto/tls or doing its own lookups.
type Dialer func(ctx context.Context, network, addr string) (net.Conn, error)

// Options configures a Session. See the With* functions below.
type Options struct {
	Dialer         Dialer
	ConnectTimeout time.Duration
	Logger         *slog.Logger

	// Context is passed to Dialer on every Connect call, so a caller can
	// cancel or time out the dial itself independent of ConnectTimeout.
	Context context.Context

	// RequestedClientHeartBeat / RequestedBrokerHeartBeat are the default
	// "heart-beat" header values Connect sends when the caller's headers
	// don't already set one, in milliseconds.
	RequestedClientHeartBeat int
	RequestedBrokerHeartBeat int

	AcceptVersions []Version

	// StompCommand, when true, makes Connect emit "STOMP" instead of
	// "CONNECT" — the 1.1+ synonym some brokers expect.
	StompCommand bool

	// Nonblock marks the underlying net.Conn as non-blocking-aware: reads
	// and writes that return iox.ErrWouldBlock are treated as resumable
	// rather than fatal (see netopts.go).
	Nonblock bool
}

var defaultOptions = Options{
	Dialer:         (&net.Dialer{}).DialContext,
	ConnectTimeout: 10 * time.Second,
	Logger:         slog.Default(),
	Context:        context.Background(),
	AcceptVersions: []Version{Version1_0, Version1_1, Version1_2},
}

// Option configures a Session at construction time.
type Option func(*Options)

// WithDialer overrides how Connect opens the TCP connection to the
// broker. Use it to dial over TLS or through a proxy.
func WithDialer(d Dialer) Option {
	return func(o *Options) { o.Dialer = d }
}

// WithConnectTimeout bounds how long Connect spends writing the CONNECT
// frame once the connection is dialed. It does not bound the dial itself;
// the dial is limited only by the context set with WithContext.
func WithConnectTimeout(d time.Duration) Option {
	return func(o *Options) { o.ConnectTimeout = d }
}

// WithContext sets the context passed to Dialer on every Connect call.
// The zero value is context.Background().
func WithContext(ctx context.Context) Option {
	return func(o *Options) { o.Context = ctx }
}

// WithLogger sets the structured logger the session and event loop use
// for diagnostic output. The zero value falls back to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithHeartBeat sets the default requested heart-beat pair, in
// milliseconds, used by Connect when the caller's headers omit
// "heart-beat".
func WithHeartBeat(clientMs, brokerMs int) Option {
	return func(o *Options) {
		o.RequestedClientHeartBeat = clientMs
		o.RequestedBrokerHeartBeat = brokerMs
	}
}

// WithVersions sets the versions offered in Connect's "accept-version"
// header when the caller doesn't supply one explicitly.
func WithVersions(versions ...Version) Option {
	return func(o *Options) { o.AcceptVersions = versions }
}

// WithStompCommand makes Connect emit the "STOMP" command instead of
// "CONNECT" (STOMP 1.1+ treats them as synonyms).
func WithStompCommand() Option {
	return func(o *Options) { o.StompCommand = true }
}

// WithNonblock marks the session's connection as non-blocking-aware: see
// Options.Nonblock.
func WithNonblock() Option {
	return func(o *Options) { o.Nonblock = true }
}
