// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stomp

import (
	"bufio"
	"errors"
	"io"
	"net"

	"code.hybscloud.com/iox"
)

// conn wraps the dialed net.Conn together with the buffered reader the
// incremental parser feeds from. It is the single place that knows how
// each connection mode (blocking vs. non-blocking) maps onto read/write
// behavior, so a Session turns raw bytes into frames and back without
// that decision scattered across the event loop.
type conn struct {
	net.Conn
	br       *bufio.Reader
	nonblock bool
}

func newConn(nc net.Conn, nonblock bool) *conn {
	return &conn{Conn: nc, br: bufio.NewReader(nc), nonblock: nonblock}
}

// Read satisfies io.Reader for the decoder's bufio.Reader to sit on top
// of. In blocking mode this is a direct passthrough; in non-blocking mode
// an iox.ErrWouldBlock or iox.ErrMore from the underlying connection is
// propagated unchanged so readFrame can resume later, mirroring the
// teacher's waitOnceOnWouldBlock contract instead of spinning here.
func (c *conn) Read(p []byte) (int, error) {
	n, err := c.Conn.Read(p)
	if err != nil && c.nonblock && (errors.Is(err, iox.ErrWouldBlock) || errors.Is(err, iox.ErrMore)) {
		return n, err
	}
	return n, err
}

// writeFull drains buf to the connection, retrying short writes the way
// frame_write's while-loop does. In non-blocking mode a write that
// reports partial progress with iox.ErrWouldBlock is retried from where
// it left off rather than treated as fatal.
func (c *conn) writeFull(buf []byte) error {
	for len(buf) > 0 {
		n, err := c.Conn.Write(buf)
		buf = buf[n:]
		if err != nil {
			if c.nonblock && (errors.Is(err, iox.ErrWouldBlock) || errors.Is(err, iox.ErrMore)) {
				if len(buf) == 0 {
					return nil
				}
				continue
			}
			return err
		}
	}
	return nil
}

// readFrame reads the next complete frame from the connection, or nil for
// a heartbeat. It returns io.EOF unchanged so callers can tell a clean
// broker-initiated close apart from a mid-frame failure.
func (c *conn) readFrame(d *decoder) (*Frame, error) {
	f, err := readFrame(c.br, d)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, err
	}
	return f, nil
}
