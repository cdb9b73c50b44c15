package http

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/form/v4"
)

// URI is the request target of an HTTP message, split into its components.
//
// Accepted forms are the absolute form ("https://example.com/a?b=c"), the
// origin form ("/a?b=c"), the authority form ("example.com:443") and the
// asterisk form ("*"). Fragments are accepted on input and discarded; they
// are never transmitted. The component bytes round-trip exactly as given.
type URI struct {
	scheme    string
	authority string
	path      string
	query     string
}

var queryDecoder = form.NewDecoder()

// ParseURI parses a request target.
func ParseURI(s string) (URI, error) {
	if s == "" {
		return URI{}, New(ErrInvalidURI, "URI is empty")
	}
	if s == "*" {
		return URI{path: "*"}, nil
	}

	for i := 0; i < len(s); i++ {
		if s[i] < 0x21 || s[i] == 0x7f {
			return URI{}, Newf(ErrInvalidURI, "invalid byte 0x%02x in URI", s[i])
		}
	}

	var u URI
	rest := s

	if i := strings.Index(rest, "://"); i >= 0 {
		scheme := rest[:i]
		if !validScheme(scheme) {
			return URI{}, Newf(ErrInvalidURI, "invalid scheme %q", scheme)
		}
		u.scheme = scheme
		rest = rest[i+3:]

		end := strings.IndexAny(rest, "/?#")
		if end < 0 {
			end = len(rest)
		}
		u.authority = rest[:end]
		if u.authority == "" {
			return URI{}, New(ErrInvalidURI, "URI has a scheme but no authority")
		}
		rest = rest[end:]
	} else if rest[0] != '/' {
		// Authority form: no scheme, no path, e.g. CONNECT targets.
		if strings.ContainsAny(rest, "/?#") {
			return URI{}, New(ErrInvalidURI, "relative URIs without a leading slash are not supported")
		}
		u.authority = rest
		return u, nil
	}

	if i := strings.IndexByte(rest, '#'); i >= 0 {
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		u.path = rest[:i]
		u.query = rest[i+1:]
	} else {
		u.path = rest
	}
	return u, nil
}

// MustURI is for compile-time literals. It panics on invalid input.
func MustURI(s string) URI {
	u, err := ParseURI(s)
	if err != nil {
		panic(err)
	}
	return u
}

func validScheme(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}

// Scheme returns the URI scheme, or an empty string when absent.
func (u URI) Scheme() string {
	return u.scheme
}

// Authority returns the authority component (userinfo, host and port), or an
// empty string when absent.
func (u URI) Authority() string {
	return u.authority
}

// Host returns the host portion of the authority, without userinfo or port.
func (u URI) Host() string {
	host := u.authority
	if i := strings.LastIndexByte(host, '@'); i >= 0 {
		host = host[i+1:]
	}
	if strings.HasPrefix(host, "[") {
		// IPv6 literal
		if i := strings.IndexByte(host, ']'); i >= 0 {
			return host[:i+1]
		}
		return host
	}
	if i := strings.LastIndexByte(host, ':'); i >= 0 {
		return host[:i]
	}
	return host
}

// Port returns the explicit port of the authority, if one is present.
func (u URI) Port() (int, bool) {
	host := u.authority
	if i := strings.LastIndexByte(host, '@'); i >= 0 {
		host = host[i+1:]
	}
	i := strings.LastIndexByte(host, ':')
	if i < 0 || strings.HasSuffix(host, "]") {
		return 0, false
	}
	port, err := strconv.Atoi(host[i+1:])
	if err != nil || port < 0 || port > 65535 {
		return 0, false
	}
	return port, true
}

// Path returns the URI path. For URIs with an authority and no explicit path
// this is "/".
func (u URI) Path() string {
	if u.path == "" && u.authority != "" {
		return "/"
	}
	return u.path
}

// Query returns the query string without the leading '?', or an empty string
// when absent.
func (u URI) Query() string {
	return u.query
}

// PathAndQuery returns the path joined with the query string.
func (u URI) PathAndQuery() string {
	if u.query == "" {
		return u.Path()
	}
	return u.Path() + "?" + u.query
}

// DecodeQuery parses the query string and decodes it into dst, which must be
// a pointer to a struct tagged for query fields.
func (u URI) DecodeQuery(dst interface{}) error {
	values, err := url.ParseQuery(u.query)
	if err != nil {
		return Wrap(err, ErrInvalidURI, "malformed query string")
	}
	if err := queryDecoder.Decode(dst, values); err != nil {
		return Wrap(err, ErrInvalidURI, "cannot decode query")
	}
	return nil
}

func (u URI) String() string {
	var b strings.Builder
	if u.scheme != "" {
		b.WriteString(u.scheme)
		b.WriteString("://")
	}
	b.WriteString(u.authority)
	b.WriteString(u.path)
	if u.query != "" {
		b.WriteByte('?')
		b.WriteString(u.query)
	}
	return b.String()
}

// URIBuilder assembles a URI from parts, deferring errors to Build so calls
// can chain.
type URIBuilder struct {
	u   URI
	err error
}

func NewURI() *URIBuilder {
	return &URIBuilder{}
}

// Scheme sets the URI scheme.
func (b *URIBuilder) Scheme(s string) *URIBuilder {
	if b.err != nil {
		return b
	}
	if !validScheme(s) {
		b.err = Newf(ErrInvalidURI, "invalid scheme %q", s)
		return b
	}
	b.u.scheme = s
	return b
}

// Authority sets the authority component.
func (b *URIBuilder) Authority(s string) *URIBuilder {
	if b.err != nil {
		return b
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 0x21 || s[i] == 0x7f || s[i] == '/' || s[i] == '?' || s[i] == '#' {
			b.err = Newf(ErrInvalidURI, "invalid byte 0x%02x in authority", s[i])
			return b
		}
	}
	b.u.authority = s
	return b
}

// PathAndQuery sets the path and optional query, e.g. "/hello?foo=bar".
func (b *URIBuilder) PathAndQuery(s string) *URIBuilder {
	if b.err != nil {
		return b
	}
	if s != "" && s != "*" && s[0] != '/' {
		b.err = New(ErrInvalidURI, "path must start with a slash")
		return b
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 0x21 || s[i] == 0x7f {
			b.err = Newf(ErrInvalidURI, "invalid byte 0x%02x in path", s[i])
			return b
		}
	}
	if i := strings.IndexByte(s, '?'); i >= 0 {
		b.u.path = s[:i]
		b.u.query = s[i+1:]
	} else {
		b.u.path = s
		b.u.query = ""
	}
	return b
}

// Build returns the assembled URI, or the first error recorded by a part
// setter.
func (b *URIBuilder) Build() (URI, error) {
	if b.err != nil {
		return URI{}, b.err
	}
	if b.u.scheme != "" && b.u.authority == "" {
		return URI{}, New(ErrInvalidURI, "URI has a scheme but no authority")
	}
	return b.u, nil
}
