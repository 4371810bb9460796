// Package measerr defines the error kinds shared by the measurement
// pipeline stages.
//
// Every stage reports failures with a package-local sentinel that is
// additionally tagged with one of the kinds below, so callers can react to
// the class of failure (fix settings, re-capture, retry with more gain)
// without knowing which stage produced it:
//
//	if errors.Is(err, measerr.ErrSynchronization) {
//	    // raise the excitation level and capture again
//	}
package measerr

import (
	"errors"
	"fmt"
)

// Error kinds.
var (
	// ErrConfiguration reports a missing or out-of-range setting.
	ErrConfiguration = errors.New("configuration error")

	// ErrDataShape reports buffers whose length does not match the
	// configured repetition or sequence parameters.
	ErrDataShape = errors.New("data shape error")

	// ErrSynchronization reports that a synchronization impulse could not
	// be found in one of the channels.
	ErrSynchronization = errors.New("synchronization failure")

	// ErrDevice reports an audio transport failure.
	ErrDevice = errors.New("device error")
)

// Error tags a concrete cause with an error kind. errors.Is matches both.
type Error struct {
	Kind  error
	Cause error
}

func (e *Error) Error() string {
	return e.Cause.Error()
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Cause}
}

// Wrap tags cause with kind. A nil cause yields nil, and a cause that
// already carries kind is returned unchanged.
func Wrap(kind, cause error) error {
	if cause == nil {
		return nil
	}

	if errors.Is(cause, kind) {
		return cause
	}

	return &Error{Kind: kind, Cause: cause}
}

// Configf formats a configuration error.
func Configf(format string, args ...any) error {
	return Wrap(ErrConfiguration, fmt.Errorf(format, args...))
}

// Shapef formats a data shape error.
func Shapef(format string, args ...any) error {
	return Wrap(ErrDataShape, fmt.Errorf(format, args...))
}

// Kind returns a short name for the kind carried by err, or "internal"
// when err carries none of the known kinds.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrDataShape):
		return "data_shape"
	case errors.Is(err, ErrSynchronization):
		return "synchronization"
	case errors.Is(err, ErrDevice):
		return "device"
	default:
		return "internal"
	}
}
