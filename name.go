package http

// HeaderName is a validated HTTP header field name.
//
// Names are compared and hashed case-insensitively; the canonical internal
// form is lowercase, so two HeaderNames built from "Content-Type" and
// "content-type" are equal under ==. The zero value is not a valid name and
// must not be handed to a HeaderMap.
type HeaderName struct {
	val string
}

// Longest accepted header name. Anything beyond this is rejected rather than
// stored, so a hostile peer cannot make the map retain megabyte keys.
const maxHeaderNameLen = 1<<16 - 1

// headerChars maps an input byte to its canonical (lowercased) form, or 0 if
// the byte is not a valid token character per RFC 9110 field-name grammar:
//
//	tchar = "!" / "#" / "$" / "%" / "&" / "'" / "*" / "+" / "-" / "." /
//	        "^" / "_" / "`" / "|" / "~" / DIGIT / ALPHA
var headerChars = [256]byte{
	'!': '!', '#': '#', '$': '$', '%': '%', '&': '&', '\'': '\'',
	'*': '*', '+': '+', '-': '-', '.': '.', '^': '^', '_': '_',
	'`': '`', '|': '|', '~': '~',

	'0': '0', '1': '1', '2': '2', '3': '3', '4': '4',
	'5': '5', '6': '6', '7': '7', '8': '8', '9': '9',

	'a': 'a', 'b': 'b', 'c': 'c', 'd': 'd', 'e': 'e', 'f': 'f',
	'g': 'g', 'h': 'h', 'i': 'i', 'j': 'j', 'k': 'k', 'l': 'l',
	'm': 'm', 'n': 'n', 'o': 'o', 'p': 'p', 'q': 'q', 'r': 'r',
	's': 's', 't': 't', 'u': 'u', 'v': 'v', 'w': 'w', 'x': 'x',
	'y': 'y', 'z': 'z',

	'A': 'a', 'B': 'b', 'C': 'c', 'D': 'd', 'E': 'e', 'F': 'f',
	'G': 'g', 'H': 'h', 'I': 'i', 'J': 'j', 'K': 'k', 'L': 'l',
	'M': 'm', 'N': 'n', 'O': 'o', 'P': 'p', 'Q': 'q', 'R': 'r',
	'S': 's', 'T': 't', 'U': 'u', 'V': 'v', 'W': 'w', 'X': 'x',
	'Y': 'y', 'Z': 'z',
}

// ParseHeaderName validates and canonicalizes a header name.
//
// Well-known names hit the intern table and return without validating or
// allocating. Everything else is checked against the token grammar and folded
// to lowercase.
func ParseHeaderName(s string) (HeaderName, error) {
	if n, ok := stdHeaderNames[s]; ok {
		return n, nil
	}

	if len(s) == 0 {
		return HeaderName{}, New(ErrInvalidHeaderName, "header name is empty")
	}
	if len(s) > maxHeaderNameLen {
		return HeaderName{}, Newf(ErrInvalidHeaderName, "header name exceeds %d bytes", maxHeaderNameLen)
	}

	// Common case: the input is already canonical, no copy needed.
	lower := true
	for i := 0; i < len(s); i++ {
		c := headerChars[s[i]]
		if c == 0 {
			return HeaderName{}, Newf(ErrInvalidHeaderName, "invalid byte %q in header name", s[i])
		}
		if c != s[i] {
			lower = false
		}
	}
	if lower {
		return HeaderName{val: s}, nil
	}

	buf := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		buf[i] = headerChars[s[i]]
	}
	folded := string(buf)
	if n, ok := stdHeaderNames[folded]; ok {
		return n, nil
	}
	return HeaderName{val: folded}, nil
}

// HeaderNameFromBytes validates and canonicalizes a header name from a byte
// slice. The bytes are copied; the caller keeps ownership of the slice.
func HeaderNameFromBytes(b []byte) (HeaderName, error) {
	if n, ok := stdHeaderNames[string(b)]; ok {
		return n, nil
	}
	return ParseHeaderName(string(b))
}

// MustHeaderName is for compile-time literals. It panics on invalid input.
func MustHeaderName(s string) HeaderName {
	n, err := ParseHeaderName(s)
	if err != nil {
		panic(err)
	}
	return n
}

// String returns the canonical (lowercase) form of the name.
func (n HeaderName) String() string {
	return n.val
}

// IsZero reports whether the name is the invalid zero value.
func (n HeaderName) IsZero() bool {
	return n.val == ""
}
