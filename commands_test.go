// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stomp

import (
	"bufio"
	"context"
	"errors"
	"net"
	"testing"
	"time"
)

func TestParseHeartBeat(t *testing.T) {
	cases := []struct {
		in         string
		wantX      int
		wantY      int
		wantValid  bool
	}{
		{"0,0", 0, 0, true},
		{"1000,2000", 1000, 2000, true},
		{"1000", 0, 0, false},
		{"x,1000", 0, 0, false},
		{"-1,1000", 0, 0, false},
		{"1000,1000,1000", 0, 0, false},
	}
	for _, c := range cases {
		x, y, ok := parseHeartBeat(c.in)
		if ok != c.wantValid {
			t.Errorf("parseHeartBeat(%q) ok = %v, want %v", c.in, ok, c.wantValid)
			continue
		}
		if ok && (x != c.wantX || y != c.wantY) {
			t.Errorf("parseHeartBeat(%q) = %d,%d, want %d,%d", c.in, x, y, c.wantX, c.wantY)
		}
	}
}

func TestFormatHeartBeat(t *testing.T) {
	if got := formatHeartBeat(1000, 2000); got != "1000,2000" {
		t.Fatalf("formatHeartBeat(1000,2000) = %q, want 1000,2000", got)
	}
}

func TestConnectMalformedHeartBeatHeader(t *testing.T) {
	s, _ := newTestSession(t)
	err := s.Connect("ignored:0", NewHeader(headerHeartBeat, "bogus"))
	if err == nil {
		t.Fatal("expected error for malformed heart-beat header")
	}
	if kind, ok := Kind(err); !ok || kind != InvalidArgument {
		t.Fatalf("Kind(err) = %v, %v, want InvalidArgument, true", kind, ok)
	}
}

func TestConnectDialFailure(t *testing.T) {
	wantErr := errors.New("boom")
	s := NewSession(WithDialer(func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, wantErr
	}))

	err := s.Connect("unreachable:0", nil)
	if err == nil {
		t.Fatal("expected error from a failing dialer")
	}
	if kind, ok := Kind(err); !ok || kind != ConnectFailed {
		t.Fatalf("Kind(err) = %v, %v, want ConnectFailed, true", kind, ok)
	}
	if !errors.Is(err, wantErr) {
		t.Fatalf("error chain does not wrap the dialer's error: %v", err)
	}
}

func TestConnectUsesStompCommandWhenConfigured(t *testing.T) {
	s, broker := newTestSession(t, WithStompCommand(), WithVersions())
	br := bufio.NewReader(broker)

	go func() { _ = s.Connect("ignored:0", nil) }()

	line, err := br.ReadString('\n')
	if err != nil {
		t.Fatalf("ReadString error: %v", err)
	}
	if line != "STOMP\n" {
		t.Fatalf("command line = %q, want STOMP", line)
	}
}

func TestDisconnectWithReceiptAddsHeader(t *testing.T) {
	s, broker := newTestSession(t)
	go func() { _ = s.Connect("ignored:0", nil) }()
	_, _ = bufio.NewReader(broker).ReadString(0)

	idc := make(chan string, 1)
	go func() {
		id, _ := s.DisconnectWithReceipt(nil)
		idc <- id
	}()

	br := bufio.NewReader(broker)
	line1, err := br.ReadString('\n')
	if err != nil {
		t.Fatalf("ReadString error: %v", err)
	}
	if line1 != "DISCONNECT\n" {
		t.Fatalf("command line = %q, want DISCONNECT", line1)
	}
	id := <-idc
	if id == "" {
		t.Fatal("expected non-empty receipt id")
	}
	line2, err := br.ReadString('\n')
	if err != nil {
		t.Fatalf("ReadString error: %v", err)
	}
	if line2 != "receipt:"+id+"\n" {
		t.Fatalf("header line = %q, want receipt:%s", line2, id)
	}
}

func TestSendWithReceiptReturnsID(t *testing.T) {
	s, broker := newTestSession(t)
	go func() { _ = s.Connect("ignored:0", nil) }()
	_, _ = bufio.NewReader(broker).ReadString(0)

	resc := make(chan struct {
		id  string
		err error
	}, 1)
	go func() {
		id, err := s.SendWithReceipt(NewHeader(headerDestination, "/q"), []byte("x"))
		resc <- struct {
			id  string
			err error
		}{id, err}
	}()

	buf := make([]byte, 1)
	_ = broker.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		n, err := broker.Read(buf)
		if err != nil || n == 0 {
			break
		}
		if buf[0] == 0 {
			break
		}
	}

	r := <-resc
	if r.err != nil {
		t.Fatalf("SendWithReceipt error: %v", r.err)
	}
	if r.id == "" {
		t.Fatal("expected non-empty receipt id")
	}
}

func TestSendTextSetsContentType(t *testing.T) {
	s, broker := newTestSession(t)
	go func() { _ = s.Connect("ignored:0", nil) }()
	_, _ = bufio.NewReader(broker).ReadString(0)

	go func() { _ = s.SendText("/q", "hi") }()

	wire := "SEND\ncontent-length:2\ndestination:/q\ncontent-type:text/plain\n\nhi\x00"
	buf := make([]byte, len(wire))
	if _, err := readFullBytes(broker, buf); err != nil {
		t.Fatalf("read error: %v", err)
	}
	if string(buf) != wire {
		t.Fatalf("wire = %q, want %q", buf, wire)
	}
}
