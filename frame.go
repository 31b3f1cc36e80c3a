// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stomp

import (
	"bytes"
	"errors"
	"io"

	"code.hybscloud.com/iox"
)

// Outbound command tokens, one of which begins any frame this library
// writes.
const (
	cmdConnect     = "CONNECT"
	cmdStomp       = "STOMP"
	cmdDisconnect  = "DISCONNECT"
	cmdSubscribe   = "SUBSCRIBE"
	cmdUnsubscribe = "UNSUBSCRIBE"
	cmdBegin       = "BEGIN"
	cmdAbort       = "ABORT"
	cmdCommit      = "COMMIT"
	cmdAck         = "ACK"
	cmdNack        = "NACK"
	cmdSend        = "SEND"
)

// Inbound command tokens, the only four a broker may legally send.
const (
	cmdConnected = "CONNECTED"
	cmdMessage   = "MESSAGE"
	cmdReceipt   = "RECEIPT"
	cmdError     = "ERROR"
)

func isInboundCommand(cmd string) bool {
	switch cmd {
	case cmdConnected, cmdMessage, cmdReceipt, cmdError:
		return true
	default:
		return false
	}
}

// Frame is a logical STOMP record: a command token, an ordered sequence
// of headers, and an optional body. A Frame produced by the incremental
// parser carries its own copies of the Header and Body slices, taken out
// of the session's inbound scratch state when the frame completes, so the
// data handed to a callback is not reused by the next read.
type Frame struct {
	Command string
	Header  Header
	Body    []byte

	// Escape selects 1.1+ header escaping for WriteTo. A Session sets it
	// from its negotiated version before writing; callers serializing a
	// Frame directly choose it themselves.
	Escape bool
}

// buflen reports the escaped wire length of a run of bytes for the
// version-gated escaping rule: \r \n : \ each expand to two bytes.
func buflen(s string, escape bool) int {
	if !escape {
		return len(s)
	}
	n := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\r', '\n', ':', '\\':
			n += 2
		default:
			n++
		}
	}
	return n
}

// appendEscaped writes s to buf, escaping \r \n : \ when escape is true.
// 1.0 frames are written verbatim (see DESIGN.md, "1.0 vs 1.1+ header
// encoding").
func appendEscaped(buf *bytes.Buffer, s string, escape bool) {
	if !escape {
		buf.WriteString(s)
		return
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\r':
			buf.WriteString(`\r`)
		case '\n':
			buf.WriteString(`\n`)
		case ':':
			buf.WriteString(`\c`)
		case '\\':
			buf.WriteString(`\\`)
		default:
			buf.WriteByte(s[i])
		}
	}
}

// encodeTo serializes f onto buf in STOMP wire format, escaping headers
// when escape is true. It mirrors frame_cmd_set / frame_hdr_add /
// frame_body_set / frame_write from the original C source, folded into a
// single pass since the Go scratch buffer is a bytes.Buffer rather than a
// manually managed realloc'd region.
func (f *Frame) encodeTo(buf *bytes.Buffer, escape bool) {
	// Size hint mirrors the source's BUFINCLEN/HDRINCLEN growth-by-chunk
	// policy closely enough to keep allocation counts comparable without
	// hand-rolling a realloc loop Go's bytes.Buffer already does better.
	hint := len(f.Command) + 1
	for _, h := range f.Header {
		hint += buflen(h.Key, escape) + buflen(h.Value, escape) + 2
	}
	hint += len(f.Body) + 2
	if buf.Cap()-buf.Len() < hint {
		buf.Grow(((hint / 512) + 1) * 512)
	}

	buf.WriteString(f.Command)
	buf.WriteByte('\n')
	for _, h := range f.Header {
		appendEscaped(buf, h.Key, escape)
		buf.WriteByte(':')
		appendEscaped(buf, h.Value, escape)
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	if len(f.Body) > 0 {
		buf.Write(f.Body)
	}
	buf.WriteByte(0)
}

// WriteTo serializes f, honoring f.Escape, and writes it to w, retrying a
// partial write the way frame_write's while-loop does. A write that
// reports progress alongside iox.ErrWouldBlock or iox.ErrMore is resumed
// from where it left off rather than treated as fatal, so a non-blocking
// w can be passed here directly. It satisfies io.WriterTo.
func (f *Frame) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	f.encodeTo(&buf, f.Escape)

	raw := buf.Bytes()
	var total int64
	for len(raw) > 0 {
		n, err := w.Write(raw)
		total += int64(n)
		raw = raw[n:]
		if err != nil {
			if errors.Is(err, iox.ErrWouldBlock) || errors.Is(err, iox.ErrMore) {
				if len(raw) == 0 {
					return total, nil
				}
				continue
			}
			return total, err
		}
	}
	return total, nil
}
