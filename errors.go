// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stomp

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the failure reported by an Error. Every Session
// operation that can fail, other than Close, returns a *Error with one of
// these kinds so callers can branch on errors.Is / errors.As instead of
// parsing strings. Close and Frame.WriteTo return the underlying
// connection's or writer's error as is.
type ErrorKind uint8

const (
	// InvalidArgument reports a missing required header, malformed
	// heart-beat or content-length value, an illegal ack mode, or a
	// command disallowed by the negotiated protocol version (e.g. NACK on
	// 1.0). The socket is never touched when this kind is returned.
	InvalidArgument ErrorKind = iota

	// ConnectFailed reports that dialing the broker did not yield a usable
	// connection.
	ConnectFailed

	// Io reports a short read that could not progress, a write error, or
	// an unexpected end of stream.
	Io

	// ProtocolError reports that the incremental parser entered its error
	// state, or that an inbound command token was not one of the four
	// recognized values.
	ProtocolError

	// Timeout reports that the broker heart-beat deadline was missed more
	// than the allowed number of consecutive windows.
	Timeout
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid argument"
	case ConnectFailed:
		return "connect failed"
	case Io:
		return "i/o error"
	case ProtocolError:
		return "protocol error"
	case Timeout:
		return "timed out"
	default:
		return "unknown error"
	}
}

// Error is the structured error type returned by every fallible Session
// operation other than Close. Op names the operation that failed (e.g. "subscribe"),
// and Err, when present, wraps the underlying cause (a net.Error, an
// io.Reader error, etc).
//
// All other kinds besides InvalidArgument are fatal for the owning
// Session: Run stops, the connection is closed, and there is no
// in-library retry or reconnect.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("stomp: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("stomp: %s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Kind, so callers
// can write errors.Is(err, stomp.ErrTimeout) against the sentinels below
// regardless of the Op/Err payload carried by the concrete error value.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Kind == t.Kind
}

func newError(op string, kind ErrorKind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// These sentinels let callers match on kind with errors.Is without
// constructing an *Error, carrying a richer payload underneath than a
// plain sentinel value (see DESIGN.md, "Ambient stack", Errors).
var (
	ErrInvalidArgument = &Error{Kind: InvalidArgument, Op: "stomp"}
	ErrConnectFailed   = &Error{Kind: ConnectFailed, Op: "stomp"}
	ErrIo              = &Error{Kind: Io, Op: "stomp"}
	ErrProtocol        = &Error{Kind: ProtocolError, Op: "stomp"}
	ErrTimeout         = &Error{Kind: Timeout, Op: "stomp"}
)

// Kind reports the ErrorKind wrapped anywhere in err's chain, or false if
// err is nil or does not carry one.
func Kind(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
