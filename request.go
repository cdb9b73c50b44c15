package http

import "github.com/bytedance/sonic"

// Request is an HTTP request head plus an optional body. All header
// manipulation goes through Headers.
type Request struct {
	Method  Method
	URI     URI
	Version Version
	Headers HeaderMap
	Body    []byte
}

// RequestBuilder assembles a Request, deferring errors to Build so calls can
// chain. The first error wins.
type RequestBuilder struct {
	req Request
	err error
}

// NewRequest starts a builder with method GET and version HTTP/1.1.
func NewRequest() *RequestBuilder {
	return &RequestBuilder{
		req: Request{
			Method:  MethodGet,
			Version: VersionHTTP11,
			Headers: NewHeaderMap(),
		},
	}
}

// Get starts a GET request builder for the given URI.
func Get(uri string) *RequestBuilder {
	return NewRequest().URI(uri)
}

// Post starts a POST request builder for the given URI.
func Post(uri string) *RequestBuilder {
	return NewRequest().Method(MethodPost).URI(uri)
}

// Method sets the request method.
func (b *RequestBuilder) Method(m Method) *RequestBuilder {
	if b.err == nil {
		b.req.Method = m
	}
	return b
}

// MethodString parses and sets the request method.
func (b *RequestBuilder) MethodString(s string) *RequestBuilder {
	if b.err != nil {
		return b
	}
	m, err := ParseMethod(s)
	if err != nil {
		b.err = err
		return b
	}
	b.req.Method = m
	return b
}

// URI parses and sets the request target.
func (b *RequestBuilder) URI(s string) *RequestBuilder {
	if b.err != nil {
		return b
	}
	u, err := ParseURI(s)
	if err != nil {
		b.err = err
		return b
	}
	b.req.URI = u
	return b
}

// Version sets the protocol version.
func (b *RequestBuilder) Version(v Version) *RequestBuilder {
	if b.err == nil {
		b.req.Version = v
	}
	return b
}

// Header parses name and value and appends them to the request headers,
// keeping any values already present for the name.
func (b *RequestBuilder) Header(name, value string) *RequestBuilder {
	if b.err != nil {
		return b
	}
	n, err := ParseHeaderName(name)
	if err != nil {
		b.err = err
		return b
	}
	v, err := ParseHeaderValue(value)
	if err != nil {
		b.err = err
		return b
	}
	b.req.Headers.Append(n, v)
	return b
}

// Body sets the request body.
func (b *RequestBuilder) Body(body []byte) *RequestBuilder {
	if b.err == nil {
		b.req.Body = body
	}
	return b
}

// Build returns the assembled request, or the first error recorded by a
// setter.
func (b *RequestBuilder) Build() (*Request, error) {
	if b.err != nil {
		return nil, b.err
	}
	req := b.req
	return &req, nil
}

// MarshalJSON renders the request head for diagnostics. The body is elided
// and sensitive header values are masked.
func (r *Request) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(struct {
		Method  string     `json:"method"`
		URI     string     `json:"uri"`
		Version string     `json:"version"`
		Headers *HeaderMap `json:"headers"`
	}{
		Method:  r.Method.String(),
		URI:     r.URI.String(),
		Version: r.Version.String(),
		Headers: &r.Headers,
	})
}
