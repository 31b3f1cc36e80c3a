// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stomp

// HeaderField is a single (key, value) pair as it appears on the wire. Both
// strings are opaque byte sequences excluding NUL; they may contain the
// frame delimiters \r, \n, :, and \, which Frame.WriteTo escapes on 1.1+
// and the incremental parser unescapes on every version.
type HeaderField struct {
	Key   string
	Value string
}

// Header is an ordered, append-only sequence of header fields. Keys need
// not be unique: on Get, the first occurrence wins, matching the STOMP
// wire semantics and the original frame_hdr_get lookup.
type Header []HeaderField

// Add appends a (key, value) pair to the end of the header list.
func (h *Header) Add(key, value string) {
	*h = append(*h, HeaderField{Key: key, Value: value})
}

// Set appends a (key, value) pair to the end of the header list, exactly
// like Add. It never overwrites or removes an existing field with the
// same key: since Get resolves duplicates by first occurrence, an earlier
// field for key still wins unless the caller removes it first. Set exists
// as a spelling some callers expect from header types; its append-only
// behavior is deliberate so "first occurrence wins" lookup semantics
// never change out from under a caller who reaches for Set by habit.
func (h *Header) Set(key, value string) {
	h.Add(key, value)
}

// Get returns the value of the first header field with the given key, and
// whether one was found. Lookup is case-sensitive.
func (h Header) Get(key string) (string, bool) {
	for _, f := range h {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Contains reports whether key is present in h.
func (h Header) Contains(key string) bool {
	_, ok := h.Get(key)
	return ok
}

// Clone returns an independent copy of h, safe to retain past the
// lifetime of a borrowed callback view.
func (h Header) Clone() Header {
	if h == nil {
		return nil
	}
	out := make(Header, len(h))
	copy(out, h)
	return out
}

// NewHeader builds a Header from an even number of alternating key/value
// strings, convenient for call sites that would otherwise repeat Add.
func NewHeader(kv ...string) Header {
	h := make(Header, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		h.Add(kv[i], kv[i+1])
	}
	return h
}

// Well-known header keys used throughout the session engine.
const (
	headerAcceptVersion = "accept-version"
	headerHost          = "host"
	headerHeartBeat     = "heart-beat"
	headerVersion       = "version"
	headerDestination   = "destination"
	headerAck           = "ack"
	headerID            = "id"
	headerTransaction   = "transaction"
	headerMessageID     = "message-id"
	headerSubscription  = "subscription"
	headerContentLength = "content-length"
	headerReceipt       = "receipt"
)
