// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package stomp is a client library for the Simple/Streaming Text
// Oriented Messaging Protocol, versions 1.0, 1.1, and 1.2.
//
// A Session owns one TCP connection to a broker. Application code
// registers callbacks for the broker's CONNECTED, MESSAGE, RECEIPT, and
// ERROR frames, calls Connect, then blocks in Run — the single-threaded,
// cooperative event loop that reads frames, dispatches callbacks, and
// maintains the bidirectional heart-beat contract negotiated at connect
// time. All other Session methods (Subscribe, Send, Ack, ...) are safe to
// call either before Run starts or from within a callback Run invokes;
// there is no internal synchronization and no support for calling into a
// Session from more than one goroutine at a time.
//
// Wire format (stream mode):
//
//	COMMAND\n
//	key1:value1\n
//	key2:value2\n
//	\n
//	<body bytes>
//	\0
//
// Outbound header escaping applies on 1.1 and 1.2 connections only: \r,
// \n, :, and \ each become a two-byte escape sequence on the wire. The
// inbound parser decodes these escape sequences whatever the negotiated
// version. A
// bare \n (optionally preceded by \r) in place of a frame is a heartbeat.
package stomp
