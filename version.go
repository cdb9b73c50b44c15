package http

// Version is the HTTP protocol version of a message.
type Version uint8

const (
	VersionHTTP09 Version = iota
	VersionHTTP10
	VersionHTTP11
	VersionHTTP2
	VersionHTTP3
)

// ParseVersion converts a protocol identifier such as "HTTP/1.1" to a
// Version.
func ParseVersion(s string) (Version, error) {
	switch s {
	case "HTTP/0.9":
		return VersionHTTP09, nil
	case "HTTP/1.0":
		return VersionHTTP10, nil
	case "HTTP/1.1":
		return VersionHTTP11, nil
	case "HTTP/2.0", "HTTP/2":
		return VersionHTTP2, nil
	case "HTTP/3.0", "HTTP/3":
		return VersionHTTP3, nil
	}
	return 0, Newf(ErrInvalidVersion, "unknown protocol version %q", s)
}

func (v Version) String() string {
	switch v {
	case VersionHTTP09:
		return "HTTP/0.9"
	case VersionHTTP10:
		return "HTTP/1.0"
	case VersionHTTP11:
		return "HTTP/1.1"
	case VersionHTTP2:
		return "HTTP/2.0"
	case VersionHTTP3:
		return "HTTP/3.0"
	}
	return "HTTP/?"
}
