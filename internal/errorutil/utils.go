package errorutil

import "errors"

// IsInvalidArgumentErr returns true if the error is or wraps [ErrInvalidArgument].
func IsInvalidArgumentErr(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
