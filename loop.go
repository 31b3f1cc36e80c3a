// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stomp

import (
	"errors"
	"io"
	"os"
	"time"

	"code.hybscloud.com/iox"
)

// maxBrokerTimeouts is the number of consecutive missed broker heart-beat
// windows tolerated before Run fails with Timeout — MAXBROKERTMOUTS in
// the original source.
const maxBrokerTimeouts = 5

// passTimeout computes the per-pass read deadline: 1 second if neither
// heart-beat is negotiated, otherwise the smaller of the two nonzero
// intervals (or the one nonzero interval, if only one side negotiated).
func (s *Session) passTimeout() time.Duration {
	switch {
	case s.clientHB == 0 && s.brokerHB == 0:
		return time.Second
	case s.clientHB != 0 && s.brokerHB != 0:
		if s.clientHB < s.brokerHB {
			return time.Duration(s.clientHB) * time.Millisecond
		}
		return time.Duration(s.brokerHB) * time.Millisecond
	case s.clientHB != 0:
		return time.Duration(s.clientHB) * time.Millisecond
	default:
		return time.Duration(s.brokerHB) * time.Millisecond
	}
}

// Run enters the event loop and does not return until Stop is called
// (typically from within a callback), the connection fails, or the
// broker heart-beat deadline is missed maxBrokerTimeouts times in a row.
// The underlying connection is closed on every exit path.
func (s *Session) Run() error {
	defer s.closeConn()

	for s.running.Load() {
		t := s.passTimeout()
		if err := s.conn.SetReadDeadline(time.Now().Add(t)); err != nil {
			s.running.Store(false)
			return newError("run", Io, err)
		}

		f, err := s.conn.readFrame(&s.dec)
		switch {
		case err == nil:
			s.lastRead = time.Now()
			s.brokerTimeouts = 0
			s.logger().Debug("stomp: frame received", "command", frameCommand(f))
			if derr := s.dispatch(f); derr != nil {
				s.running.Store(false)
				return derr
			}
		case isDeadlineExceeded(err):
			// Read timed out with nothing to process — not fatal, the
			// same way EINTR with no readable data isn't fatal in the
			// original select() loop.
		case errors.Is(err, iox.ErrWouldBlock) || errors.Is(err, iox.ErrMore):
			// A non-blocking connection has no more bytes yet: s.dec keeps
			// the partial frame and the next pass resumes it.
		case errors.Is(err, io.EOF):
			s.running.Store(false)
			return newError("run", Io, io.EOF)
		default:
			s.running.Store(false)
			return err
		}

		if s.onTick != nil {
			s.onTick(s)
		}

		if s.clientHB != 0 || s.brokerHB != 0 {
			if err := s.checkHeartBeats(); err != nil {
				s.running.Store(false)
				return err
			}
		}
	}
	return nil
}

func frameCommand(f *Frame) string {
	if f == nil {
		return "<heartbeat>"
	}
	return f.Command
}

func isDeadlineExceeded(err error) bool {
	return errors.Is(err, os.ErrDeadlineExceeded)
}

// checkHeartBeats enforces the broker-read deadline and sends a
// keep-alive heartbeat on the write side.
func (s *Session) checkHeartBeats() error {
	now := time.Now()

	if s.brokerHB > 0 {
		elapsed := now.Sub(s.lastRead)
		if elapsed > time.Duration(s.brokerHB)*time.Millisecond {
			s.lastRead = now
			s.brokerTimeouts++
			s.logger().Warn("stomp: missed broker heart-beat", "count", s.brokerTimeouts)
		}
		if s.brokerTimeouts > maxBrokerTimeouts {
			return newError("run", Timeout, nil)
		}
	}

	if s.clientHB > 0 {
		elapsed := now.Sub(s.lastWrite)
		if elapsed > time.Duration(s.clientHB)*time.Millisecond {
			s.lastWrite = now
			if err := s.conn.writeFull([]byte{'\n'}); err != nil {
				return newError("run", Io, err)
			}
		}
	}

	return nil
}
