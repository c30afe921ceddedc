// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	// ErrDecode matches every *DecodeError through errors.Is.
	ErrDecode = errors.New("decode failed")

	ErrEmptyInput        = errors.New("empty input")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrClosed            = errors.New("decoder is closed")
	ErrTooLong           = errors.New("audio exceeds maximum duration")
	ErrInvalidBuffer     = errors.New("invalid audio buffer")
)

// DecodeError reports that compressed input could not be turned into
// sample data. Format is the resolved format key and may be empty when the
// failure happened before a format was chosen.
type DecodeError struct {
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	msg := ErrDecode.Error()
	if e.Format != "" {
		msg = "decode " + e.Format + ": failed"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// AsDecodeError returns err unchanged when it already is a *DecodeError,
// otherwise it wraps it with the given format.
func AsDecodeError(format string, err error) error {
	if err == nil {
		return nil
	}

	if de, ok := err.(*DecodeError); ok {
		return de
	}

	return &DecodeError{Format: format, Err: err}
}
