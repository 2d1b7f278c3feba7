package jsonrpc2

import (
	"fmt"

	"golang.org/x/xerrors"
)

// Error represents a JSON-RPC error envelope, both in memory and on the
// wire. Data is optional and, when present, is opaque to the framework.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Data    *Value `json:"data,omitempty"`

	// frame captures the call site for development-time diagnostics
	// (%+v). It is never marshaled to the wire.
	frame xerrors.Frame
}

var _ error = (*Error)(nil)

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// Format implements fmt.Formatter so that %+v prints a call-site-annotated
// message, mirroring the xerrors.Frame idiom.
func (e *Error) Format(s fmt.State, c rune) { xerrors.FormatError(e, s, c) }

// FormatError implements xerrors.Formatter.
func (e *Error) FormatError(p xerrors.Printer) (next error) {
	if e.Message == "" {
		p.Printf("jsonrpc2 error code=%d", e.Code)
	} else {
		p.Printf("%s (code=%d)", e.Message, e.Code)
	}
	e.frame.Format(p)
	return nil
}

// NewError builds an Error from a fixed code, using the canonical message
// for that code when one exists.
func NewError(code Code) *Error {
	return &Error{Code: code, Message: CanonicalMessage(code), frame: xerrors.Caller(1)}
}

// Errorf builds an Error with a formatted message, for handler- or
// server-defined errors that don't have a canonical message.
func Errorf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), frame: xerrors.Caller(1)}
}

// WithData attaches a data payload to the error and returns it, for
// chaining at the call site: Errorf(...).WithData(v).
func (e *Error) WithData(v Value) *Error {
	e.Data = &v
	return e
}

// AsError extracts a *Error from err, whether err already is one or wraps
// one. ok is false when err carries no error code at all, in which case the
// caller should treat it as an opaque InternalError.
func AsError(err error) (rpcErr *Error, ok bool) {
	if err == nil {
		return nil, false
	}
	var target *Error
	if xerrors.As(err, &target) {
		return target, true
	}
	return nil, false
}
