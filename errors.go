package http

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Unique identifier for categorizing errors on both producer and consumer sides
type ErrorCode string

const (
	// Common errors
	ErrUnknown  ErrorCode = "err_unknown_error"
	ErrInternal ErrorCode = "err_internal_error"

	// Header construction errors
	ErrInvalidHeaderName  ErrorCode = "err_invalid_header_name"
	ErrInvalidHeaderValue ErrorCode = "err_invalid_header_value"
	ErrTextConversion     ErrorCode = "err_text_conversion"

	// Map errors
	ErrCapacityOverflow ErrorCode = "err_capacity_overflow"

	// Metadata parsing errors
	ErrInvalidMethod     ErrorCode = "err_invalid_method"
	ErrInvalidStatusCode ErrorCode = "err_invalid_status_code"
	ErrInvalidVersion    ErrorCode = "err_invalid_version"
	ErrInvalidURI        ErrorCode = "err_invalid_uri"
)

// Standardized error type with rich context for debugging
type Error struct {
	Original error     // The underlying error being wrapped
	Code     ErrorCode // Stable error code
	Message  string    // Human-readable error message

	// Debug information automatically captured
	file     string
	line     int
	function string
}

var predefinedErrors = map[ErrorCode]string{
	ErrUnknown:            "Unknown error",
	ErrInternal:           "Internal error",
	ErrInvalidHeaderName:  "Invalid header name",
	ErrInvalidHeaderValue: "Invalid header value",
	ErrTextConversion:     "Header value is not visible ASCII",
	ErrCapacityOverflow:   "Requested capacity exceeds the maximum",
	ErrInvalidMethod:      "Invalid HTTP method",
	ErrInvalidStatusCode:  "Invalid status code",
	ErrInvalidVersion:     "Invalid HTTP version",
	ErrInvalidURI:         "Invalid URI",
}

func (e *Error) Error() string {
	base := fmt.Sprintf("[http:%s] %s", e.Code, e.Message)
	if e.Original != nil {
		return fmt.Sprintf("%s: %v", base, e.Original)
	}
	return base
}

func (e *Error) Unwrap() error {
	return e.Original
}

func New(code ErrorCode, msg string) *Error {
	if msg == "" {
		def, ok := predefinedErrors[code]
		if !ok {
			def = predefinedErrors[ErrUnknown]
		}
		msg = def
	}

	err := &Error{
		Code:    code,
		Message: msg,
	}

	// Automatically capture caller information for debugging
	if pc, file, line, ok := runtime.Caller(1); ok {
		err.file = file
		err.line = line
		if fn := runtime.FuncForPC(pc); fn != nil {
			err.function = fn.Name()
		}
	}

	return err
}

func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

func Wrap(err error, code ErrorCode, msg string) *Error {
	if err == nil {
		return nil
	}

	// If already an Error, update its fields instead of creating a new one
	if herr, ok := err.(*Error); ok {
		if code != "" {
			herr.Code = code
		}

		if msg != "" {
			herr.Message = msg
		}

		if pc, file, line, ok := runtime.Caller(1); ok {
			herr.file = file
			herr.line = line
			if fn := runtime.FuncForPC(pc); fn != nil {
				herr.function = fn.Name()
			}
		}

		return herr
	}

	herr := New(code, msg)
	herr.Original = err

	if pc, file, line, ok := runtime.Caller(1); ok {
		herr.file = file
		herr.line = line
		if fn := runtime.FuncForPC(pc); fn != nil {
			herr.function = fn.Name()
		}
	}

	return herr
}

func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *Error {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	var herr *Error
	if errors.As(err, &herr) {
		return herr.Code == code
	}

	return false
}

// Logs errors with appropriate context
func LogError(logger *zerolog.Logger, err error) {
	if err == nil || logger == nil {
		return
	}

	event := logger.Error().Err(err)

	if herr, ok := err.(*Error); ok {
		event = event.
			Str("error_code", string(herr.Code)).
			Str("file", herr.file).
			Int("line", herr.line).
			Str("function", herr.function)
	} else if pc, file, line, ok := runtime.Caller(1); ok {
		shortFile := file
		if idx := strings.LastIndex(file, "/"); idx >= 0 {
			shortFile = file[idx+1:]
		}

		funcName := "unknown"
		if fn := runtime.FuncForPC(pc); fn != nil {
			funcName = fn.Name()
			if idx := strings.LastIndex(funcName, "."); idx >= 0 {
				funcName = funcName[idx+1:]
			}
		}

		event = event.Str("file", shortFile).Int("line", line).Str("function", funcName)
	}

	event.Msg("[http-error] Error occurred")
}
