package http

// Well-known header names, pre-canonicalized for zero-allocation header
// operations. Using these skips byte validation entirely.
var (
	// Content negotiation and representation
	HeaderAccept          = HeaderName{val: "accept"}
	HeaderAcceptCharset   = HeaderName{val: "accept-charset"}
	HeaderAcceptEncoding  = HeaderName{val: "accept-encoding"}
	HeaderAcceptLanguage  = HeaderName{val: "accept-language"}
	HeaderAcceptRanges    = HeaderName{val: "accept-ranges"}
	HeaderContentEncoding = HeaderName{val: "content-encoding"}
	HeaderContentLanguage = HeaderName{val: "content-language"}
	HeaderContentLength   = HeaderName{val: "content-length"}
	HeaderContentLocation = HeaderName{val: "content-location"}
	HeaderContentRange    = HeaderName{val: "content-range"}
	HeaderContentType     = HeaderName{val: "content-type"}

	// CORS
	HeaderAccessControlAllowCredentials = HeaderName{val: "access-control-allow-credentials"}
	HeaderAccessControlAllowHeaders     = HeaderName{val: "access-control-allow-headers"}
	HeaderAccessControlAllowMethods     = HeaderName{val: "access-control-allow-methods"}
	HeaderAccessControlAllowOrigin      = HeaderName{val: "access-control-allow-origin"}
	HeaderAccessControlExposeHeaders    = HeaderName{val: "access-control-expose-headers"}
	HeaderAccessControlMaxAge           = HeaderName{val: "access-control-max-age"}
	HeaderAccessControlRequestHeaders   = HeaderName{val: "access-control-request-headers"}
	HeaderAccessControlRequestMethod    = HeaderName{val: "access-control-request-method"}

	// Caching and conditionals
	HeaderAge               = HeaderName{val: "age"}
	HeaderCacheControl      = HeaderName{val: "cache-control"}
	HeaderETag              = HeaderName{val: "etag"}
	HeaderExpires           = HeaderName{val: "expires"}
	HeaderIfMatch           = HeaderName{val: "if-match"}
	HeaderIfModifiedSince   = HeaderName{val: "if-modified-since"}
	HeaderIfNoneMatch       = HeaderName{val: "if-none-match"}
	HeaderIfRange           = HeaderName{val: "if-range"}
	HeaderIfUnmodifiedSince = HeaderName{val: "if-unmodified-since"}
	HeaderLastModified      = HeaderName{val: "last-modified"}
	HeaderPragma            = HeaderName{val: "pragma"}
	HeaderVary              = HeaderName{val: "vary"}

	// Request context
	HeaderAuthorization      = HeaderName{val: "authorization"}
	HeaderCookie             = HeaderName{val: "cookie"}
	HeaderExpect             = HeaderName{val: "expect"}
	HeaderForwarded          = HeaderName{val: "forwarded"}
	HeaderFrom               = HeaderName{val: "from"}
	HeaderHost               = HeaderName{val: "host"}
	HeaderMaxForwards        = HeaderName{val: "max-forwards"}
	HeaderOrigin             = HeaderName{val: "origin"}
	HeaderProxyAuthorization = HeaderName{val: "proxy-authorization"}
	HeaderRange              = HeaderName{val: "range"}
	HeaderReferer            = HeaderName{val: "referer"}
	HeaderTE                 = HeaderName{val: "te"}
	HeaderUserAgent          = HeaderName{val: "user-agent"}

	// Response context
	HeaderAllow              = HeaderName{val: "allow"}
	HeaderContentDisposition = HeaderName{val: "content-disposition"}
	HeaderDate               = HeaderName{val: "date"}
	HeaderLocation           = HeaderName{val: "location"}
	HeaderProxyAuthenticate  = HeaderName{val: "proxy-authenticate"}
	HeaderRetryAfter         = HeaderName{val: "retry-after"}
	HeaderServer             = HeaderName{val: "server"}
	HeaderSetCookie          = HeaderName{val: "set-cookie"}
	HeaderWWWAuthenticate    = HeaderName{val: "www-authenticate"}

	// Connection management
	HeaderConnection       = HeaderName{val: "connection"}
	HeaderTrailer          = HeaderName{val: "trailer"}
	HeaderTransferEncoding = HeaderName{val: "transfer-encoding"}
	HeaderUpgrade          = HeaderName{val: "upgrade"}
	HeaderVia              = HeaderName{val: "via"}

	// Security
	HeaderContentSecurityPolicy   = HeaderName{val: "content-security-policy"}
	HeaderStrictTransportSecurity = HeaderName{val: "strict-transport-security"}
	HeaderXContentTypeOptions     = HeaderName{val: "x-content-type-options"}
	HeaderXFrameOptions           = HeaderName{val: "x-frame-options"}
	HeaderXXSSProtection          = HeaderName{val: "x-xss-protection"}

	// Websockets
	HeaderSecWebSocketAccept     = HeaderName{val: "sec-websocket-accept"}
	HeaderSecWebSocketExtensions = HeaderName{val: "sec-websocket-extensions"}
	HeaderSecWebSocketKey        = HeaderName{val: "sec-websocket-key"}
	HeaderSecWebSocketProtocol   = HeaderName{val: "sec-websocket-protocol"}
	HeaderSecWebSocketVersion    = HeaderName{val: "sec-websocket-version"}

	// Proxying
	HeaderXForwardedFor   = HeaderName{val: "x-forwarded-for"}
	HeaderXForwardedHost  = HeaderName{val: "x-forwarded-host"}
	HeaderXForwardedProto = HeaderName{val: "x-forwarded-proto"}
	HeaderXRealIP         = HeaderName{val: "x-real-ip"}
	HeaderXRequestID      = HeaderName{val: "x-request-id"}
	HeaderXCorrelationID  = HeaderName{val: "x-correlation-id"}
)

// stdHeaderNames interns the names above by their canonical form. Built once
// at init and never mutated afterwards.
var stdHeaderNames map[string]HeaderName

func init() {
	all := []HeaderName{
		HeaderAccept, HeaderAcceptCharset, HeaderAcceptEncoding,
		HeaderAcceptLanguage, HeaderAcceptRanges, HeaderContentEncoding,
		HeaderContentLanguage, HeaderContentLength, HeaderContentLocation,
		HeaderContentRange, HeaderContentType,
		HeaderAccessControlAllowCredentials, HeaderAccessControlAllowHeaders,
		HeaderAccessControlAllowMethods, HeaderAccessControlAllowOrigin,
		HeaderAccessControlExposeHeaders, HeaderAccessControlMaxAge,
		HeaderAccessControlRequestHeaders, HeaderAccessControlRequestMethod,
		HeaderAge, HeaderCacheControl, HeaderETag, HeaderExpires,
		HeaderIfMatch, HeaderIfModifiedSince, HeaderIfNoneMatch,
		HeaderIfRange, HeaderIfUnmodifiedSince, HeaderLastModified,
		HeaderPragma, HeaderVary,
		HeaderAuthorization, HeaderCookie, HeaderExpect, HeaderForwarded,
		HeaderFrom, HeaderHost, HeaderMaxForwards, HeaderOrigin,
		HeaderProxyAuthorization, HeaderRange, HeaderReferer, HeaderTE,
		HeaderUserAgent,
		HeaderAllow, HeaderContentDisposition, HeaderDate, HeaderLocation,
		HeaderProxyAuthenticate, HeaderRetryAfter, HeaderServer,
		HeaderSetCookie, HeaderWWWAuthenticate,
		HeaderConnection, HeaderTrailer, HeaderTransferEncoding,
		HeaderUpgrade, HeaderVia,
		HeaderContentSecurityPolicy, HeaderStrictTransportSecurity,
		HeaderXContentTypeOptions, HeaderXFrameOptions, HeaderXXSSProtection,
		HeaderSecWebSocketAccept, HeaderSecWebSocketExtensions,
		HeaderSecWebSocketKey, HeaderSecWebSocketProtocol,
		HeaderSecWebSocketVersion,
		HeaderXForwardedFor, HeaderXForwardedHost, HeaderXForwardedProto,
		HeaderXRealIP, HeaderXRequestID, HeaderXCorrelationID,
	}

	stdHeaderNames = make(map[string]HeaderName, len(all))
	for _, n := range all {
		stdHeaderNames[n.val] = n
	}
}
