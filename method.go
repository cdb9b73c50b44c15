package http

// Method is an HTTP request method.
//
// The nine registered methods have package-level constants; any other token
// per RFC 9110 section 9.1 is accepted as an extension method. Methods are
// case-sensitive.
type Method struct {
	s string
}

var (
	MethodGet     = Method{s: "GET"}
	MethodPost    = Method{s: "POST"}
	MethodPut     = Method{s: "PUT"}
	MethodDelete  = Method{s: "DELETE"}
	MethodHead    = Method{s: "HEAD"}
	MethodOptions = Method{s: "OPTIONS"}
	MethodConnect = Method{s: "CONNECT"}
	MethodPatch   = Method{s: "PATCH"}
	MethodTrace   = Method{s: "TRACE"}
)

// ParseMethod converts a string to a Method, recognizing the registered
// methods without allocation and validating extensions against the token
// grammar.
func ParseMethod(s string) (Method, error) {
	switch len(s) {
	case 0:
		return Method{}, New(ErrInvalidMethod, "method is empty")
	case 3:
		if s == "GET" {
			return MethodGet, nil
		}
		if s == "PUT" {
			return MethodPut, nil
		}
	case 4:
		if s == "POST" {
			return MethodPost, nil
		}
		if s == "HEAD" {
			return MethodHead, nil
		}
	case 5:
		if s == "PATCH" {
			return MethodPatch, nil
		}
		if s == "TRACE" {
			return MethodTrace, nil
		}
	case 6:
		if s == "DELETE" {
			return MethodDelete, nil
		}
	case 7:
		if s == "OPTIONS" {
			return MethodOptions, nil
		}
		if s == "CONNECT" {
			return MethodConnect, nil
		}
	}

	// Extension method: same tchar set as header names, but case is
	// significant and preserved.
	for i := 0; i < len(s); i++ {
		if headerChars[s[i]] == 0 {
			return Method{}, Newf(ErrInvalidMethod, "invalid byte %q in method", s[i])
		}
	}
	return Method{s: s}, nil
}

// MethodFromBytes validates a method from a byte slice. The bytes are copied.
func MethodFromBytes(b []byte) (Method, error) {
	return ParseMethod(string(b))
}

// IsSafe reports whether the method is read-only per RFC 9110 section 9.2.1.
func (m Method) IsSafe() bool {
	switch m.s {
	case "GET", "HEAD", "OPTIONS", "TRACE":
		return true
	}
	return false
}

// IsIdempotent reports whether repeating the request has the same effect as
// issuing it once, per RFC 9110 section 9.2.2.
func (m Method) IsIdempotent() bool {
	switch m.s {
	case "PUT", "DELETE":
		return true
	}
	return m.IsSafe()
}

func (m Method) String() string {
	return m.s
}

// IsZero reports whether the method is the invalid zero value.
func (m Method) IsZero() bool {
	return m.s == ""
}
