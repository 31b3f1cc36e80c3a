// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command publisher connects to a STOMP broker, sends a single message
// to a destination, and exits once the broker has acknowledged the
// connection attempt.
package main

import (
	"fmt"
	"os"

	"code.hybscloud.com/stomp"
)

func dumpHdrs(h stomp.Header) {
	for _, f := range h {
		fmt.Printf("%s:%s\n", f.Key, f.Value)
	}
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <destination>\n", os.Args[0])
		os.Exit(1)
	}
	destination := os.Args[1]

	s := stomp.NewSession(stomp.WithVersions(stomp.Version1_2))

	s.OnConnected(func(s *stomp.Session, e stomp.ConnectedFrame) {
		dumpHdrs(e.Header)
		fmt.Println("connected: ")

		sendHdrs := stomp.NewHeader(
			"destination", destination,
			"content-type", "text/plain",
		)
		if err := s.Send(sendHdrs, []byte("hello message from the publisher")); err != nil {
			fmt.Fprintln(os.Stderr, "stomp:", err)
		}
		s.Stop()
	})
	s.OnError(func(s *stomp.Session, e stomp.ErrorFrame) {
		dumpHdrs(e.Header)
		fmt.Fprintf(os.Stderr, "err: %s\n", e.Body)
	})
	s.OnMessage(func(s *stomp.Session, e stomp.MessageFrame) {
		dumpHdrs(e.Header)
		fmt.Printf("message: %s\n", e.Body)
	})
	s.OnReceipt(func(s *stomp.Session, e stomp.ReceiptFrame) {
		dumpHdrs(e.Header)
		fmt.Println("receipt: ")
	})

	connHdrs := stomp.NewHeader(
		"login", "admin",
		"passcode", "password",
	)
	if err := s.Connect("127.0.0.1:61613", connHdrs); err != nil {
		fmt.Fprintln(os.Stderr, "stomp:", err)
		os.Exit(1)
	}

	if err := s.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "stomp:", err)
		os.Exit(1)
	}
}
