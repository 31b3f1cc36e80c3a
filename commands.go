// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stomp

import (
	"strconv"
	"strings"
	"time"
)

// parseHeartBeat parses a "heart-beat" header value of the form "x,y"
// where x and y are non-negative decimal integers.
func parseHeartBeat(s string) (x, y int, ok bool) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	xi, err := strconv.Atoi(parts[0])
	if err != nil || xi < 0 {
		return 0, 0, false
	}
	yi, err := strconv.Atoi(parts[1])
	if err != nil || yi < 0 {
		return 0, 0, false
	}
	return xi, yi, true
}

// Connect dials addr, sends the CONNECT (or STOMP, see WithStompCommand)
// frame with the given headers, and leaves the session awaiting
// CONNECTED — register OnConnected and call Run to observe it.
//
// If headers contains "heart-beat" it is parsed as the requested
// (client_hb, broker_hb) pair in milliseconds; otherwise the values from
// WithHeartBeat (zero by default) are used and, if either is non-zero, a
// "heart-beat" header is added so the broker can negotiate.
func (s *Session) Connect(addr string, headers Header) error {
	const op = "connect"

	clientHB := s.opts.RequestedClientHeartBeat
	brokerHB := s.opts.RequestedBrokerHeartBeat
	if hb, ok := headers.Get(headerHeartBeat); ok {
		x, y, valid := parseHeartBeat(hb)
		if !valid {
			return invalidArgument(op, "malformed heart-beat header %q", hb)
		}
		clientHB, brokerHB = x, y
	}

	nc, err := s.opts.Dialer(s.opts.Context, "tcp", addr)
	if err != nil {
		return newError(op, ConnectFailed, err)
	}
	if s.opts.ConnectTimeout > 0 {
		_ = nc.SetDeadline(time.Now().Add(s.opts.ConnectTimeout))
		defer nc.SetDeadline(time.Time{})
	}

	s.conn = newConn(nc, s.opts.Nonblock)
	s.clientHB = clientHB
	s.brokerHB = brokerHB
	s.running.Store(true)

	cmd := cmdConnect
	if s.opts.StompCommand {
		cmd = cmdStomp
	}
	f := &Frame{Command: cmd, Header: headers}
	needCopy := !headers.Contains(headerHeartBeat) && (clientHB != 0 || brokerHB != 0) ||
		!headers.Contains(headerAcceptVersion) && len(s.opts.AcceptVersions) > 0
	if needCopy {
		f.Header = append(Header{}, headers...)
		if !headers.Contains(headerAcceptVersion) && len(s.opts.AcceptVersions) > 0 {
			f.Header.Add(headerAcceptVersion, formatAcceptVersion(s.opts.AcceptVersions))
		}
		if !headers.Contains(headerHeartBeat) && (clientHB != 0 || brokerHB != 0) {
			f.Header.Add(headerHeartBeat, formatHeartBeat(clientHB, brokerHB))
		}
	}

	if err := s.writeFrame(op, f); err != nil {
		return err
	}
	s.lastRead = time.Now()
	return nil
}

func formatHeartBeat(x, y int) string {
	return strconv.Itoa(x) + "," + strconv.Itoa(y)
}

func formatAcceptVersion(versions []Version) string {
	parts := make([]string, len(versions))
	for i, v := range versions {
		parts[i] = string(v)
	}
	return strings.Join(parts, ",")
}

// Disconnect sends a DISCONNECT frame. It does not close the connection;
// call Close (directly, or from an OnReceipt callback matching a
// "receipt" header set on the DISCONNECT) once the broker's response has
// been observed.
func (s *Session) Disconnect(headers Header) error {
	return s.writeFrame("disconnect", &Frame{Command: cmdDisconnect, Header: headers})
}

// DisconnectWithReceipt is a convenience wrapper that adds a "receipt"
// header with a generated id before sending DISCONNECT, and returns that
// id so the caller can match it against the broker's RECEIPT frame.
func (s *Session) DisconnectWithReceipt(headers Header) (receiptID string, err error) {
	id := s.nextReceiptID()
	h := append(Header{}, headers...)
	h.Add(headerReceipt, id)
	return id, s.Disconnect(h)
}

func (s *Session) nextReceiptID() string {
	return "r-" + strconv.Itoa(int(s.nextID()))
}

func validAckMode(mode string) bool {
	switch mode {
	case "auto", "client", "client-individual":
		return true
	default:
		return false
	}
}

// Subscribe sends a SUBSCRIBE frame. headers must contain "destination".
// If "ack" is present it must be one of auto/client/client-individual; if
// absent, "ack:auto" is added. If "id" is absent, a unique positive id is
// generated and returned; if the caller supplied "id" explicitly, 0 is
// returned (see DESIGN.md, "subscribe return semantics").
func (s *Session) Subscribe(headers Header) (int, error) {
	const op = "subscribe"
	if !headers.Contains(headerDestination) {
		return 0, invalidArgument(op, "missing required header %q", headerDestination)
	}
	if ack, ok := headers.Get(headerAck); ok && !validAckMode(ack) {
		return 0, invalidArgument(op, "invalid ack mode %q", ack)
	}

	f := &Frame{Command: cmdSubscribe}
	var id int
	if !headers.Contains(headerID) {
		id = int(s.nextID())
		f.Header.Add(headerID, strconv.Itoa(id))
	}
	if !headers.Contains(headerAck) {
		f.Header.Add(headerAck, "auto")
	}
	f.Header = append(f.Header, headers...)

	if err := s.writeFrame(op, f); err != nil {
		return 0, err
	}
	return id, nil
}

// nextID returns the next subscription id, wrapping from math.MaxInt32
// back to 1, matching the original client_id counter's int overflow
// behavior.
func (s *Session) nextID() int32 {
	if s.subID == 1<<31-1 {
		s.subID = 0
	}
	s.subID++
	return s.subID
}

// Unsubscribe sends an UNSUBSCRIBE frame. For 1.0, at least one of
// "destination", "id" (in headers), or clientID must identify the
// subscription; for 1.1+, "id" or clientID is required. A non-zero
// clientID overrides any "id" header already present.
func (s *Session) Unsubscribe(clientID int, headers Header) error {
	const op = "unsubscribe"
	_, hasID := headers.Get(headerID)
	hasDestination := headers.Contains(headerDestination)

	if s.version == Version1_0 {
		if !hasDestination && !hasID && clientID == 0 {
			return invalidArgument(op, "need one of destination, id, or a client id")
		}
	} else if !hasID && clientID == 0 {
		return invalidArgument(op, "need id or a client id")
	}

	f := &Frame{Command: cmdUnsubscribe}
	if clientID != 0 {
		f.Header.Add(headerID, strconv.Itoa(clientID))
	}
	f.Header = append(f.Header, headers...)

	return s.writeFrame(op, f)
}

func (s *Session) transactionCommand(op, cmd string, headers Header) error {
	if !headers.Contains(headerTransaction) {
		return invalidArgument(op, "missing required header %q", headerTransaction)
	}
	return s.writeFrame(op, &Frame{Command: cmd, Header: headers})
}

// Begin sends a BEGIN frame. headers must contain "transaction".
func (s *Session) Begin(headers Header) error { return s.transactionCommand("begin", cmdBegin, headers) }

// Abort sends an ABORT frame. headers must contain "transaction".
func (s *Session) Abort(headers Header) error { return s.transactionCommand("abort", cmdAbort, headers) }

// Commit sends a COMMIT frame. headers must contain "transaction".
func (s *Session) Commit(headers Header) error {
	return s.transactionCommand("commit", cmdCommit, headers)
}

// Ack sends an ACK frame. Required headers depend on the negotiated
// version: 1.2 requires "id"; 1.1 requires "message-id" and
// "subscription"; 1.0 requires "message-id".
func (s *Session) Ack(headers Header) error {
	const op = "ack"
	if err := s.validateAckNack(op, headers, true); err != nil {
		return err
	}
	return s.writeFrame(op, &Frame{Command: cmdAck, Header: headers})
}

// Nack sends a NACK frame. Required headers mirror Ack, except NACK is
// not a legal command for a session negotiated at 1.0.
func (s *Session) Nack(headers Header) error {
	const op = "nack"
	if err := s.validateAckNack(op, headers, false); err != nil {
		return err
	}
	return s.writeFrame(op, &Frame{Command: cmdNack, Header: headers})
}

func (s *Session) validateAckNack(op string, headers Header, allow10 bool) error {
	switch s.version {
	case Version1_2:
		if !headers.Contains(headerID) {
			return invalidArgument(op, "missing required header %q", headerID)
		}
	case Version1_1:
		if !headers.Contains(headerMessageID) {
			return invalidArgument(op, "missing required header %q", headerMessageID)
		}
		if !headers.Contains(headerSubscription) {
			return invalidArgument(op, "missing required header %q", headerSubscription)
		}
	default: // Version1_0
		if !allow10 {
			return invalidArgument(op, "not allowed on protocol version 1.0")
		}
		if !headers.Contains(headerMessageID) {
			return invalidArgument(op, "missing required header %q", headerMessageID)
		}
	}
	return nil
}

// Send sends a SEND frame with the given body. headers must contain
// "destination". If "content-length" is absent, one is injected equal to
// len(body).
func (s *Session) Send(headers Header, body []byte) error {
	const op = "send"
	if !headers.Contains(headerDestination) {
		return invalidArgument(op, "missing required header %q", headerDestination)
	}

	f := &Frame{Command: cmdSend, Body: body}
	if !headers.Contains(headerContentLength) {
		f.Header.Add(headerContentLength, strconv.Itoa(len(body)))
	}
	f.Header = append(f.Header, headers...)

	return s.writeFrame(op, f)
}

// SendText is a convenience wrapper that sends a UTF-8 body with
// "content-type: text/plain" pre-filled.
func (s *Session) SendText(destination, text string) error {
	h := NewHeader(headerDestination, destination)
	h.Add("content-type", "text/plain")
	return s.Send(h, []byte(text))
}

// SendWithReceipt mirrors DisconnectWithReceipt for SEND.
func (s *Session) SendWithReceipt(headers Header, body []byte) (receiptID string, err error) {
	id := s.nextReceiptID()
	h := append(Header{}, headers...)
	h.Add(headerReceipt, id)
	return id, s.Send(h, body)
}
