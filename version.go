// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stomp

// Version identifies a negotiated STOMP protocol revision.
type Version string

const (
	Version1_0 Version = "1.0"
	Version1_1 Version = "1.1"
	Version1_2 Version = "1.2"
)

// parseVersion maps a CONNECTED "version" header value to a Version,
// falling back to 1.0 for anything unrecognized — the original
// parse_version never rejects a CONNECTED frame over an unknown version
// string, it just assumes the least capable dialect.
func parseVersion(s string) Version {
	switch Version(s) {
	case Version1_2:
		return Version1_2
	case Version1_1:
		return Version1_1
	default:
		return Version1_0
	}
}
