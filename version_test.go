// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stomp

import "testing"

func TestParseVersion(t *testing.T) {
	cases := map[string]Version{
		"1.0":     Version1_0,
		"1.1":     Version1_1,
		"1.2":     Version1_2,
		"":        Version1_0,
		"bogus":   Version1_0,
		"1.3":     Version1_0,
	}
	for in, want := range cases {
		if got := parseVersion(in); got != want {
			t.Errorf("parseVersion(%q) = %q, want %q", in, got, want)
		}
	}
}
