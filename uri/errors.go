package uri

import (
	"strconv"

	"github.com/ghettovoice/gouri/internal/errorutil"
)

const (
	// ErrMalformedURI is matched by every error returned from [Parse].
	ErrMalformedURI errorutil.Error = "malformed URI"
	// ErrInvalidPort is matched by errors returned from [URI.WithPort].
	ErrInvalidPort errorutil.Error = "invalid port"
)

// ParseError is returned when the input does not conform to the URI grammar.
//
// It matches [ErrMalformedURI], [errorutil.ErrInvalidArgument] and
// the underlying grammar error with [errors.Is].
type ParseError struct {
	// Input is the original input.
	Input string
	// Err is the grammar error.
	Err error
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return "Failed to parse URI: " + e.Input
}

func (e *ParseError) Unwrap() []error {
	if e == nil {
		return nil
	}
	errs := []error{ErrMalformedURI, errorutil.ErrInvalidArgument}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// PortError is returned when a port value is outside of [0, 65535].
//
// It matches [ErrInvalidPort] and [errorutil.ErrInvalidArgument] with [errors.Is].
type PortError struct {
	Port int
}

func (e *PortError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return "Invalid value for port: " + strconv.Itoa(e.Port)
}

func (e *PortError) Unwrap() []error {
	if e == nil {
		return nil
	}
	return []error{ErrInvalidPort, errorutil.ErrInvalidArgument}
}
