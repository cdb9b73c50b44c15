package http

import "testing"

func TestRequestBuilderDefaults(t *testing.T) {
	req, err := NewRequest().URI("/").Build()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if req.Method != MethodGet {
		t.Errorf("Expected default method GET, got %s", req.Method)
	}
	if req.Version != VersionHTTP11 {
		t.Errorf("Expected default version HTTP/1.1, got %s", req.Version)
	}
	if req.Headers.Len() != 0 {
		t.Errorf("Expected no default headers, got %d", req.Headers.Len())
	}
}

func TestRequestBuilderChain(t *testing.T) {
	req, err := Post("https://example.com/submit?draft=1").
		Version(VersionHTTP2).
		Header("Content-Type", "application/json").
		Header("X-Request-Id", "abc-123").
		Body([]byte(`{"ok":true}`)).
		Build()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if req.Method != MethodPost {
		t.Errorf("Expected POST, got %s", req.Method)
	}
	if req.URI.Host() != "example.com" {
		t.Errorf("Expected host 'example.com', got '%s'", req.URI.Host())
	}
	if req.URI.Query() != "draft=1" {
		t.Errorf("Expected query 'draft=1', got '%s'", req.URI.Query())
	}
	if req.Version != VersionHTTP2 {
		t.Errorf("Expected HTTP/2.0, got %s", req.Version)
	}
	if v, ok := req.Headers.Get(HeaderContentType); !ok || !v.EqualString("application/json") {
		t.Errorf("Expected content-type header, got ok=%v v=%s", ok, v)
	}
	if string(req.Body) != `{"ok":true}` {
		t.Errorf("Expected body preserved, got %s", req.Body)
	}
}

func TestRequestBuilderHeaderAppends(t *testing.T) {
	req, err := Get("/").
		Header("Accept", "text/html").
		Header("accept", "application/json").
		Build()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	vals := req.Headers.GetAll(HeaderAccept).Collect()
	if len(vals) != 2 || !vals[0].EqualString("text/html") || !vals[1].EqualString("application/json") {
		t.Errorf("Expected both accept values in order, got %v", vals)
	}
}

func TestRequestBuilderDefersErrors(t *testing.T) {
	_, err := Get("/").Header("bad header", "x").Build()
	if !Is(err, ErrInvalidHeaderName) {
		t.Errorf("Expected ErrInvalidHeaderName, got %v", err)
	}

	_, err = Get("/").Header("x-ok", "bad\rvalue").Build()
	if !Is(err, ErrInvalidHeaderValue) {
		t.Errorf("Expected ErrInvalidHeaderValue, got %v", err)
	}

	_, err = Get("not a uri").Build()
	if !Is(err, ErrInvalidURI) {
		t.Errorf("Expected ErrInvalidURI, got %v", err)
	}

	_, err = NewRequest().MethodString("GE T").URI("/").Build()
	if !Is(err, ErrInvalidMethod) {
		t.Errorf("Expected ErrInvalidMethod, got %v", err)
	}

	// The first error is preserved through later valid calls.
	_, err = Get("://nope").Header("Accept", "text/html").Build()
	if !Is(err, ErrInvalidURI) {
		t.Errorf("Expected the first error to win, got %v", err)
	}
}
