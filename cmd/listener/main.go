// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command listener connects to a STOMP broker, subscribes to a
// destination, and prints every MESSAGE, ERROR, and RECEIPT frame it
// receives until the connection fails.
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

	s := stomp.NewSession(
		stomp.WithVersions(stomp.Version1_2),
		stomp.WithHeartBeat(1000, 1000),
	)

	s.OnConnected(func(s *stomp.Session, e stomp.ConnectedFrame) {
		if _, err := s.Subscribe(stomp.NewHeader("destination", destination)); err != nil {
			fmt.Fprintln(os.Stderr, "stomp:", err)
		}
	})
	s.OnMessage(func(s *stomp.Session, e stomp.MessageFrame) {
		dumpHdrs(e.Header)
		fmt.Printf("message: %s\n", e.Body)
	})
	s.OnError(func(s *stomp.Session, e stomp.ErrorFrame) {
		dumpHdrs(e.Header)
		fmt.Fprintf(os.Stderr, "err: %s\n", e.Body)
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
