package http

import (
	"fmt"
	"strconv"
)

// HeaderValue is a validated HTTP header field value.
//
// In practice header values are usually visible ASCII, but the protocol
// historically allows opaque bytes (obs-text) as well, so a HeaderValue is a
// byte sequence rather than text. Use Text to get a string representation,
// which fails when the value contains non-visible bytes.
//
// The bytes are immutable after construction and may be shared freely across
// owners. The sensitive flag affects only diagnostic rendering; it never
// participates in equality.
type HeaderValue struct {
	val       string
	sensitive bool
}

// ParseHeaderValue validates a header value from a string.
//
// Valid bytes are 0x20-0xFF excluding DEL (0x7F), plus horizontal tab. CR, LF
// and NUL are always rejected; a validated value can never corrupt a line- or
// frame-oriented transmission.
func ParseHeaderValue(s string) (HeaderValue, error) {
	for i := 0; i < len(s); i++ {
		if !isValidValueByte(s[i]) {
			return HeaderValue{}, Newf(ErrInvalidHeaderValue, "invalid byte 0x%02x in header value", s[i])
		}
	}
	return HeaderValue{val: s}, nil
}

// HeaderValueFromBytes validates a header value from a byte slice. The bytes
// are copied; the caller keeps ownership of the slice.
func HeaderValueFromBytes(b []byte) (HeaderValue, error) {
	return ParseHeaderValue(string(b))
}

// HeaderValueFromName converts a HeaderName into a HeaderValue. Every valid
// name is a valid value, so this cannot fail.
func HeaderValueFromName(n HeaderName) HeaderValue {
	return HeaderValue{val: n.val}
}

// HeaderValueFromInt renders an integer as a header value, e.g. for
// Content-Length.
func HeaderValueFromInt(n int64) HeaderValue {
	return HeaderValue{val: strconv.FormatInt(n, 10)}
}

// HeaderValueUnchecked wraps s without validating it. Reserved for trusted
// compile-time literals; handing it bytes containing CR, LF or NUL breaks the
// map's wire-safety guarantee.
func HeaderValueUnchecked(s string) HeaderValue {
	return HeaderValue{val: s}
}

// MustHeaderValue is for compile-time literals. It panics on invalid input.
func MustHeaderValue(s string) HeaderValue {
	v, err := ParseHeaderValue(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Bytes returns a copy of the value's bytes.
func (v HeaderValue) Bytes() []byte {
	return []byte(v.val)
}

// Text returns the value as a string if it contains only visible ASCII
// characters (including tab). This is stricter than construction validity:
// a value holding obs-text bytes is structurally valid but fails here.
func (v HeaderValue) Text() (string, error) {
	for i := 0; i < len(v.val); i++ {
		if !isVisibleASCII(v.val[i]) {
			return "", Newf(ErrTextConversion, "non-visible byte 0x%02x at offset %d", v.val[i], i)
		}
	}
	return v.val, nil
}

// Len returns the length of the value in bytes.
func (v HeaderValue) Len() int {
	return len(v.val)
}

// Equal reports whether two values hold the same bytes. Sensitivity is not
// factored in.
func (v HeaderValue) Equal(other HeaderValue) bool {
	return v.val == other.val
}

// EqualString reports whether the value's bytes equal s.
func (v HeaderValue) EqualString(s string) bool {
	return v.val == s
}

// WithSensitive returns a copy of the value with the sensitive marker set.
// Sensitive values could be passwords or other data that should not be stored
// on disk or in logs; diagnostic rendering masks them.
func (v HeaderValue) WithSensitive(sensitive bool) HeaderValue {
	v.sensitive = sensitive
	return v
}

// IsSensitive reports whether the value carries the sensitive marker.
func (v HeaderValue) IsSensitive() bool {
	return v.sensitive
}

// String renders the value for diagnostics. Sensitive values are masked, and
// bytes outside visible ASCII are escaped.
func (v HeaderValue) String() string {
	if v.sensitive {
		return "Sensitive"
	}

	buf := make([]byte, 0, len(v.val)+2)
	buf = append(buf, '"')
	for i := 0; i < len(v.val); i++ {
		b := v.val[i]
		switch {
		case b == '"':
			buf = append(buf, '\\', '"')
		case isVisibleASCII(b):
			buf = append(buf, b)
		default:
			buf = append(buf, fmt.Sprintf("\\x%02x", b)...)
		}
	}
	buf = append(buf, '"')
	return string(buf)
}

func isVisibleASCII(b byte) bool {
	return b >= 32 && b < 127 || b == '\t'
}

func isValidValueByte(b byte) bool {
	return b >= 32 && b != 127 || b == '\t'
}
