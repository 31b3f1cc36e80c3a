// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stomp

import (
	"bufio"
	"bytes"
	"errors"
	"strconv"

	"code.hybscloud.com/iox"
)

// parserState is one of the seven states of the incremental frame reader.
// The zero value, stateInit, is the state a fresh decoder starts in.
type parserState uint8

const (
	stateInit parserState = iota
	stateCmd
	stateHdr
	stateHdrEsc
	stateBody
	stateDone
	stateErr
)

// decoder is a byte-driven state machine that parses one STOMP frame at a
// time from an io.ByteReader. It is reused across frames the way the
// original frame_t scratch buffer is reused: reset() clears per-frame
// state but keeps the underlying byte slices' capacity.
type decoder struct {
	state parserState

	cmd bytes.Buffer

	// Per-header-line scratch: segBuf accumulates the bytes of whichever
	// segment (key or value) is currently being read; segKey holds the
	// finalized key once a ':' has been seen on the current line.
	segBuf     bytes.Buffer
	segKey     string
	segHasColon bool

	header Header
	body   bytes.Buffer

	haveContentLength bool
	contentLength     int

	heartbeat bool
}

func (d *decoder) reset() {
	d.state = stateInit
	d.cmd.Reset()
	d.segBuf.Reset()
	d.segKey = ""
	d.segHasColon = false
	d.header = d.header[:0]
	d.body.Reset()
	d.haveContentLength = false
	d.contentLength = 0
	d.heartbeat = false
}

func parseContentLength(s string) (int, bool) {
	n, err := strconv.ParseUint(s, 10, 31)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

// feed advances the state machine by one byte. It is the Go analogue of
// frame_read_init / frame_read_cmd / frame_read_hdr / frame_read_hdr_esc /
// frame_read_body in the original source, collapsed into one method.
func (d *decoder) feed(c byte) parserState {
	switch d.state {
	case stateInit:
		switch c {
		case 'C', 'E', 'R', 'M':
			d.cmd.WriteByte(c)
			d.state = stateCmd
		case '\n':
			d.heartbeat = true
			d.state = stateDone
		default:
			// tolerate preceding CR and anything else before a frame starts
		}
	case stateCmd:
		switch c {
		case '\r':
		case 0:
			d.state = stateErr
		case '\n':
			if isInboundCommand(d.cmd.String()) {
				d.state = stateHdr
			} else {
				d.state = stateErr
			}
		default:
			d.cmd.WriteByte(c)
		}
	case stateHdr:
		switch c {
		case 0:
			d.state = stateErr
		case '\r':
		case ':':
			d.segKey = d.segBuf.String()
			d.segHasColon = true
			d.segBuf.Reset()
		case '\n':
			if d.segHasColon && len(d.segKey) > 0 {
				d.header.Add(d.segKey, d.segBuf.String())
				d.segKey = ""
				d.segHasColon = false
				d.segBuf.Reset()
			} else {
				d.beginBody()
				d.state = stateBody
				break
			}
		case '\\':
			d.state = stateHdrEsc
		default:
			d.segBuf.WriteByte(c)
		}
	case stateHdrEsc:
		switch c {
		case 'r':
			d.segBuf.WriteByte('\r')
		case 'n':
			d.segBuf.WriteByte('\n')
		case 'c':
			d.segBuf.WriteByte(':')
		case '\\':
			d.segBuf.WriteByte('\\')
		default:
			d.state = stateErr
			return d.state
		}
		d.state = stateHdr
	case stateBody:
		if c == 0 {
			done := true
			if d.haveContentLength && d.body.Len() < d.contentLength {
				done = false
			}
			if done {
				d.state = stateDone
			} else {
				d.body.WriteByte(c)
			}
		} else {
			d.body.WriteByte(c)
		}
	}
	return d.state
}

// beginBody runs once, at the HDR -> BODY transition, to latch the
// content-length declared for this frame (if any and well-formed).
func (d *decoder) beginBody() {
	if v, ok := d.header.Get(headerContentLength); ok {
		if n, ok := parseContentLength(v); ok {
			d.haveContentLength = true
			d.contentLength = n
			return
		}
	}
	d.haveContentLength = false
}

// result materializes the parsed frame once state is stateDone. A
// heartbeat (a lone \n with no command) yields a nil Frame.
func (d *decoder) result() *Frame {
	if d.heartbeat {
		return nil
	}
	f := &Frame{Command: d.cmd.String()}
	if len(d.header) > 0 {
		f.Header = append(Header(nil), d.header...)
	}
	if d.body.Len() > 0 {
		f.Body = append([]byte(nil), d.body.Bytes()...)
	}
	return f
}

// readFrame drives d to completion against r, one byte at a time: buffering
// is supplied by bufio.Reader, the one-byte-at-a-time interface by
// ReadByte, while the state machine's semantics stay unchanged regardless
// of how bytes arrive off the wire.
//
// When iox.ErrWouldBlock is returned (only possible when r wraps a
// non-blocking connection, see netopts.go), d retains its partial state so
// the caller can invoke readFrame again to resume the same frame.
func readFrame(r *bufio.Reader, d *decoder) (*Frame, error) {
	for d.state != stateDone && d.state != stateErr {
		c, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, iox.ErrWouldBlock) || errors.Is(err, iox.ErrMore) {
				return nil, err
			}
			return nil, newError("read frame", Io, err)
		}
		d.feed(c)
	}
	if d.state == stateErr {
		d.reset()
		return nil, newError("read frame", ProtocolError, nil)
	}
	f := d.result()
	d.reset()
	return f, nil
}
