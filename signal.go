package bresp

import (
	"fmt"
	"maps"

	"github.com/cockroachdb/errors"
)

// Signal short-circuits a handler. It travels up the error channel and carries either a finished
// response, which the dispatcher sends as it is, or a bare status code with named attributes that
// the dispatcher's error page consumes. A Signal is never modified after creation.
type Signal struct {
	resp  Response
	code  Code
	attrs map[string]any
	err   error
}

// Abort returns a signal that carries only the status code.
func Abort(code Code) *Signal {
	return &Signal{code: code}
}

// AbortWithAttrs returns a signal that carries the status code and a copy of attrs, e.g.
// parameters of an authentication challenge.
func AbortWithAttrs(code Code, attrs map[string]any) *Signal {
	return &Signal{code: code, attrs: maps.Clone(attrs)}
}

// AbortErr returns a signal with the status code that wraps an underlying error.
func AbortErr(code Code, underlying error) *Signal {
	return &Signal{code: code, err: underlying}
}

// AbortWith returns a signal that carries a complete response.
func AbortWith(resp Response) *Signal {
	return &Signal{resp: resp, code: Code(resp.StatusCode())}
}

// Redirect returns a signal carrying a freshly built redirect response. Construction errors are
// returned as they are, so the caller's error path still handles them.
func Redirect(location string, opts ...Option) error {
	resp, err := NewRedirect(location, opts...)
	if err != nil {
		return err
	}

	return AbortWith(resp)
}

// Code returns the status code of the signal.
func (s *Signal) Code() Code { return s.code }

// Response returns the carried response or nil.
func (s *Signal) Response() Response { return s.resp }

// Attrs returns a copy of the named attributes.
func (s *Signal) Attrs() map[string]any { return maps.Clone(s.attrs) }

// Unwrap returns the underlying error, if any.
func (s *Signal) Unwrap() error { return s.err }

// ResolvedResponse returns the carried response. With only a status code it returns a Declined
// response for [CodeDeclined], a NoContent response for [CodeOK] and nil otherwise, in which case
// the dispatcher renders an error page.
func (s *Signal) ResolvedResponse() Response {
	if s.resp != nil {
		return s.resp
	}

	switch s.code {
	case CodeDeclined:
		return NewDeclined()
	case CodeOK:
		r, _ := NewNoContent()
		return r
	default:
		return nil
	}
}

func (s *Signal) Error() string {
	msg := fmt.Sprintf("%d %s", int(s.code), s.code)
	if s.resp != nil {
		msg += " (response)"
	}

	if s.err != nil {
		msg += ": " + s.err.Error()
	}

	return msg
}

// SignalOf returns the signal err is or wraps.
func SignalOf(err error) (*Signal, bool) {
	var sig *Signal
	ok := errors.As(err, &sig)

	return sig, ok
}

// CodeOf returns the code of the signal err is or wraps, and [CodeInternalServerError] for any
// other non-nil error.
func CodeOf(err error) Code {
	if sig, ok := SignalOf(err); ok {
		return sig.Code()
	}

	if err == nil {
		return CodeOK
	}

	return CodeInternalServerError
}
