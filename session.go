// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stomp

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// ConnectedFrame is delivered to the connected callback when the broker
// accepts a session.
type ConnectedFrame struct{ Header Header }

// ErrorFrame is delivered to the error callback on a broker ERROR frame.
type ErrorFrame struct {
	Header Header
	Body   []byte
}

// MessageFrame is delivered to the message callback on a broker MESSAGE
// frame.
type MessageFrame struct {
	Header Header
	Body   []byte
}

// ReceiptFrame is delivered to the receipt callback on a broker RECEIPT
// frame.
type ReceiptFrame struct{ Header Header }

// Session owns a single TCP connection to a STOMP broker: one negotiated
// protocol version, one negotiated heart-beat pair, one inbound frame
// decoder, and the callback table the event loop dispatches into. Each
// outbound command builds and writes its own Frame. A Session is confined to a single goroutine by contract: all
// methods, including those invoked from within a callback, must run on
// the goroutine that calls Run, or before Run starts.
type Session struct {
	opts Options

	conn *conn

	version Version

	// clientHB / brokerHB hold the requested heart-beat pair (set by
	// Connect) until the CONNECTED frame arrives, at which point they are
	// overwritten in place with the negotiated effective values — the
	// same destructive reuse the original stomp_session_t performs on
	// s->client_hb / s->broker_hb.
	clientHB int
	brokerHB int

	lastRead       time.Time
	lastWrite      time.Time
	brokerTimeouts int

	subID int32

	dec decoder

	onConnected func(*Session, ConnectedFrame)
	onError     func(*Session, ErrorFrame)
	onMessage   func(*Session, MessageFrame)
	onReceipt   func(*Session, ReceiptFrame)
	onTick      func(*Session)

	running atomic.Bool

	// UserData is an opaque slot for application state, the Go analogue
	// of stomp_session_t's void *ctx session context pointer.
	UserData any
}

// NewSession allocates a Session in its idle state. Call Connect before
// any other command operation, and Run to enter the event loop.
func NewSession(opts ...Option) *Session {
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Context == nil {
		o.Context = context.Background()
	}
	return &Session{opts: o}
}

func (s *Session) logger() *slog.Logger { return s.opts.Logger }

// Version reports the protocol version negotiated at CONNECTED time, or
// the zero Version before that.
func (s *Session) Version() Version { return s.version }

// OnConnected registers the callback invoked when the broker sends
// CONNECTED. Passing nil unregisters it.
func (s *Session) OnConnected(cb func(*Session, ConnectedFrame)) { s.onConnected = cb }

// OnError registers the callback invoked when the broker sends ERROR.
func (s *Session) OnError(cb func(*Session, ErrorFrame)) { s.onError = cb }

// OnMessage registers the callback invoked when the broker sends MESSAGE.
func (s *Session) OnMessage(cb func(*Session, MessageFrame)) { s.onMessage = cb }

// OnReceipt registers the callback invoked when the broker sends RECEIPT.
func (s *Session) OnReceipt(cb func(*Session, ReceiptFrame)) { s.onReceipt = cb }

// OnTick registers the callback invoked once per event-loop pass,
// regardless of whether a frame was read in that pass.
func (s *Session) OnTick(cb func(*Session)) { s.onTick = cb }

// Stop clears the running flag; the event loop exits after completing its
// current pass. It is the idiomatic replacement for writing to
// stomp_session_t.run directly from a callback.
func (s *Session) Stop() { s.running.Store(false) }

func (s *Session) escapeHeaders() bool { return s.version != Version1_0 }

// writeFrame stamps f with the negotiated escaping mode and writes it to
// the connection via Frame.WriteTo, stamping lastWrite on success. It is
// the single choke point every command operation funnels through,
// mirroring frame_reset + frame_cmd_set/frame_hdr_add/frame_body_set +
// frame_write.
func (s *Session) writeFrame(op string, f *Frame) error {
	f.Escape = s.escapeHeaders()
	if _, err := f.WriteTo(s.conn); err != nil {
		s.running.Store(false)
		return newError(op, Io, err)
	}
	s.lastWrite = time.Now()
	return nil
}

func (s *Session) closeConn() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// Close closes the underlying connection without sending DISCONNECT. Use
// Disconnect for a graceful shutdown handshake.
func (s *Session) Close() error {
	s.running.Store(false)
	return s.closeConn()
}

func invalidArgument(op string, format string, args ...any) error {
	return newError(op, InvalidArgument, fmt.Errorf(format, args...))
}
