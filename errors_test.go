// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stomp

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorIsMatchesByKindOnly(t *testing.T) {
	e1 := newError("send", InvalidArgument, fmt.Errorf("missing destination"))
	e2 := newError("ack", InvalidArgument, nil)
	if !errors.Is(e1, e2) {
		t.Fatal("errors with the same Kind should match via errors.Is")
	}
	if errors.Is(e1, ErrTimeout) {
		t.Fatal("errors with different Kind should not match")
	}
}

func TestErrorIsSentinels(t *testing.T) {
	err := newError("run", Timeout, nil)
	if !errors.Is(err, ErrTimeout) {
		t.Fatal("expected errors.Is(err, ErrTimeout) to hold")
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := newError("connect", ConnectFailed, cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected Unwrap chain to reach the underlying cause")
	}
}

func TestErrorKindHelper(t *testing.T) {
	err := newError("subscribe", InvalidArgument, nil)
	kind, ok := Kind(err)
	if !ok || kind != InvalidArgument {
		t.Fatalf("Kind(err) = %v, %v, want InvalidArgument, true", kind, ok)
	}

	if _, ok := Kind(errors.New("plain")); ok {
		t.Fatal("Kind of a non-*Error should report false")
	}
}

func TestErrorStringIncludesOpAndKind(t *testing.T) {
	err := newError("subscribe", InvalidArgument, fmt.Errorf("missing destination"))
	got := err.Error()
	want := "stomp: subscribe: invalid argument: missing destination"
	if got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestErrorKindString(t *testing.T) {
	cases := map[ErrorKind]string{
		InvalidArgument: "invalid argument",
		ConnectFailed:   "connect failed",
		Io:              "i/o error",
		ProtocolError:   "protocol error",
		Timeout:         "timed out",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", k, got, want)
		}
	}
}
