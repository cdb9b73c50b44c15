package http

import (
	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
)

// Diagnostic rendering of header collections. Sensitive values are always
// masked here; callers that need the raw bytes go through HeaderValue
// directly.

type headerPair struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// MarshalJSON renders the map as an ordered array of name/value pairs. A name
// with several values contributes one pair per value.
func (m *HeaderMap) MarshalJSON() ([]byte, error) {
	pairs := make([]headerPair, 0, m.vals)
	it := m.Iter()
	for {
		name, value, ok := it.Next()
		if !ok {
			break
		}
		pairs = append(pairs, headerPair{Name: name.String(), Value: renderValue(value)})
	}
	return sonic.Marshal(pairs)
}

// MarshalZerologObject lets callers attach a header map to a log event:
//
//	logger.Info().Object("headers", &headers).Msg("request accepted")
func (m *HeaderMap) MarshalZerologObject(e *zerolog.Event) {
	it := m.Iter()
	for {
		name, value, ok := it.Next()
		if !ok {
			return
		}
		e.Str(name.String(), renderValue(value))
	}
}

// renderValue produces a log-safe representation: masked when sensitive,
// plain text when visible ASCII, escaped otherwise.
func renderValue(v HeaderValue) string {
	if v.IsSensitive() {
		return "Sensitive"
	}
	if text, err := v.Text(); err == nil {
		return text
	}
	return v.String()
}
