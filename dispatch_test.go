// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stomp

import "testing"

// TestNegotiateHeartBeat covers the heart-beat negotiation formula:
// clientHB' = 0 if clientHB==0 or y==0 else max(clientHB, y);
// brokerHB' = 0 if brokerHB==0 or x==0 else max(brokerHB, x), where (x, y)
// is the CONNECTED frame's advertised heart-beat pair.
func TestNegotiateHeartBeat(t *testing.T) {
	cases := []struct {
		name                   string
		clientHB, brokerHB     int // our requested pair, before negotiation
		x, y                   int // advertised pair from CONNECTED
		wantClient, wantBroker int
	}{
		{"both agree, higher wins each side", 1000, 1000, 500, 2000, 2000, 1000},
		{"broker declines its send side", 1000, 1000, 0, 2000, 2000, 0},
		{"we declined our send side", 0, 1000, 500, 2000, 0, 1000},
		{"both decline", 0, 0, 0, 0, 0, 0},
		{"broker requests a larger read interval", 1000, 1000, 3000, 500, 1000, 3000},
	}
	for _, c := range cases {
		s := &Session{clientHB: c.clientHB, brokerHB: c.brokerHB}
		s.negotiateHeartBeat(c.x, c.y)
		if s.clientHB != c.wantClient || s.brokerHB != c.wantBroker {
			t.Errorf("%s: negotiateHeartBeat(%d,%d) on (clientHB=%d,brokerHB=%d) = (%d,%d), want (%d,%d)",
				c.name, c.x, c.y, c.clientHB, c.brokerHB, s.clientHB, s.brokerHB, c.wantClient, c.wantBroker)
		}
	}
}

func TestOnConnectedFrameParsesVersionAndHeartBeat(t *testing.T) {
	s := &Session{clientHB: 1000, brokerHB: 1000}
	var gotHeader Header
	s.OnConnected(func(_ *Session, e ConnectedFrame) { gotHeader = e.Header })

	f := &Frame{
		Command: cmdConnected,
		Header:  NewHeader(headerVersion, "1.2", headerHeartBeat, "500,2000"),
	}
	s.onConnectedFrame(f)

	if s.version != Version1_2 {
		t.Fatalf("version = %q, want 1.2", s.version)
	}
	if s.clientHB != 2000 || s.brokerHB != 1000 {
		t.Fatalf("clientHB=%d brokerHB=%d, want 2000,1000", s.clientHB, s.brokerHB)
	}
	if gotHeader.Contains(headerVersion) == false {
		t.Fatal("callback did not receive CONNECTED headers")
	}
}

func TestOnConnectedFrameDefaultsVersionWhenAbsent(t *testing.T) {
	s := &Session{}
	s.onConnectedFrame(&Frame{Command: cmdConnected})
	if s.version != Version1_0 {
		t.Fatalf("version = %q, want 1.0", s.version)
	}
	if s.clientHB != 0 || s.brokerHB != 0 {
		t.Fatalf("clientHB=%d brokerHB=%d, want 0,0", s.clientHB, s.brokerHB)
	}
}

// TestDispatchHeartbeatIsNoOp confirms no callback fires for a heartbeat.
func TestDispatchHeartbeatIsNoOp(t *testing.T) {
	s := &Session{}
	fired := false
	s.OnMessage(func(*Session, MessageFrame) { fired = true })
	if err := s.dispatch(nil); err != nil {
		t.Fatalf("dispatch(nil) error: %v", err)
	}
	if fired {
		t.Fatal("a callback fired for a heartbeat")
	}
}

func TestDispatchMessageInvokesCallback(t *testing.T) {
	s := &Session{}
	var got MessageFrame
	s.OnMessage(func(_ *Session, e MessageFrame) { got = e })

	f := &Frame{Command: cmdMessage, Header: NewHeader(headerDestination, "/q"), Body: []byte("hello")}
	if err := s.dispatch(f); err != nil {
		t.Fatalf("dispatch error: %v", err)
	}
	if string(got.Body) != "hello" {
		t.Fatalf("Body = %q, want hello", got.Body)
	}
}

func TestDispatchUnknownCommandIsProtocolError(t *testing.T) {
	s := &Session{}
	err := s.dispatch(&Frame{Command: "BOGUS"})
	if err == nil {
		t.Fatal("expected error")
	}
	if kind, ok := Kind(err); !ok || kind != ProtocolError {
		t.Fatalf("Kind(err) = %v, %v, want ProtocolError, true", kind, ok)
	}
}
