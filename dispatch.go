// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stomp

// dispatch classifies an inbound frame by command and invokes the
// matching registered callback, mirroring on_server_cmd's if/else chain
// in the original source. f is nil for a heartbeat: last-read bookkeeping
// happens in the event loop regardless, so there is nothing further to
// do here.
func (s *Session) dispatch(f *Frame) error {
	if f == nil {
		return nil // heartbeat
	}

	switch f.Command {
	case cmdConnected:
		s.onConnectedFrame(f)
	case cmdMessage:
		if s.onMessage != nil {
			s.onMessage(s, MessageFrame{Header: f.Header, Body: f.Body})
		}
	case cmdReceipt:
		if s.onReceipt != nil {
			s.onReceipt(s, ReceiptFrame{Header: f.Header})
		}
	case cmdError:
		if s.onError != nil {
			s.onError(s, ErrorFrame{Header: f.Header, Body: f.Body})
		}
	default:
		// readFrame's isInboundCommand gate means this is unreachable in
		// practice, but an unrecognized inbound command is fatal.
		return newError("dispatch", ProtocolError, nil)
	}
	return nil
}

// onConnectedFrame negotiates the protocol version and heart-beat
// intervals from the broker's CONNECTED frame, then invokes the connected
// callback.
func (s *Session) onConnectedFrame(f *Frame) {
	if v, ok := f.Header.Get(headerVersion); ok {
		s.version = parseVersion(v)
	} else {
		s.version = Version1_0
	}

	if hb, ok := f.Header.Get(headerHeartBeat); ok {
		if x, y, valid := parseHeartBeat(hb); valid {
			s.negotiateHeartBeat(x, y)
		} else {
			s.clientHB, s.brokerHB = 0, 0
		}
	} else {
		s.clientHB, s.brokerHB = 0, 0
	}

	if s.onConnected != nil {
		s.onConnected(s, ConnectedFrame{Header: f.Header})
	}
}

// negotiateHeartBeat computes the effective heart-beat pair: given our
// requested pair (clientHB, brokerHB) and the broker's advertised pair
// (x, y) from the CONNECTED frame, the effective intervals are the max of
// the two sides unless either side declines (0) to participate.
func (s *Session) negotiateHeartBeat(x, y int) {
	if s.clientHB == 0 || y == 0 {
		s.clientHB = 0
	} else if y > s.clientHB {
		s.clientHB = y
	}

	if s.brokerHB == 0 || x == 0 {
		s.brokerHB = 0
	} else if x > s.brokerHB {
		s.brokerHB = x
	}
}
