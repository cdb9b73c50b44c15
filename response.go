package http

import "github.com/bytedance/sonic"

// Response is an HTTP response head plus an optional body. All header
// manipulation goes through Headers.
type Response struct {
	Status  StatusCode
	Version Version
	Headers HeaderMap
	Body    []byte
}

// ResponseBuilder assembles a Response, deferring errors to Build so calls
// can chain. The first error wins.
type ResponseBuilder struct {
	resp Response
	err  error
}

// NewResponse starts a builder with status 200 and version HTTP/1.1.
func NewResponse() *ResponseBuilder {
	return &ResponseBuilder{
		resp: Response{
			Status:  StatusOK,
			Version: VersionHTTP11,
			Headers: NewHeaderMap(),
		},
	}
}

// Status sets the response status code.
func (b *ResponseBuilder) Status(s StatusCode) *ResponseBuilder {
	if b.err == nil {
		b.resp.Status = s
	}
	return b
}

// StatusInt validates and sets the response status code from an integer.
func (b *ResponseBuilder) StatusInt(code int) *ResponseBuilder {
	if b.err != nil {
		return b
	}
	s, err := NewStatusCode(code)
	if err != nil {
		b.err = err
		return b
	}
	b.resp.Status = s
	return b
}

// Version sets the protocol version.
func (b *ResponseBuilder) Version(v Version) *ResponseBuilder {
	if b.err == nil {
		b.resp.Version = v
	}
	return b
}

// Header parses name and value and appends them to the response headers,
// keeping any values already present for the name.
func (b *ResponseBuilder) Header(name, value string) *ResponseBuilder {
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
	b.resp.Headers.Append(n, v)
	return b
}

// Body sets the response body.
func (b *ResponseBuilder) Body(body []byte) *ResponseBuilder {
	if b.err == nil {
		b.resp.Body = body
	}
	return b
}

// Build returns the assembled response, or the first error recorded by a
// setter.
func (b *ResponseBuilder) Build() (*Response, error) {
	if b.err != nil {
		return nil, b.err
	}
	resp := b.resp
	return &resp, nil
}

// MarshalJSON renders the response head for diagnostics. The body is elided
// and sensitive header values are masked.
func (r *Response) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(struct {
		Status  int        `json:"status"`
		Version string     `json:"version"`
		Headers *HeaderMap `json:"headers"`
	}{
		Status:  r.Status.Int(),
		Version: r.Version.String(),
		Headers: &r.Headers,
	})
}
