package subtitle

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when text to transform is empty after trimming.
var ErrEmptyInput = errors.New("input text is empty")

// ParseError is a fatal structural error in a WebVTT document.
type ParseError struct {
	Line int // 1-based
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Msg, e.Err)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// TimestampFormatError reports a timestamp token that does not match the
// grammar or has an out of range component.
type TimestampFormatError struct {
	Value  string
	Reason string
}

func (e *TimestampFormatError) Error() string {
	return fmt.Sprintf("invalid timestamp %q: %s", e.Value, e.Reason)
}

// LengthMismatchError is returned when text segments and timings are not 1:1.
type LengthMismatchError struct {
	Segments int
	Timings  int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf(
		"segments and timings length mismatch: %d segments, %d timings",
		e.Segments,
		e.Timings,
	)
}

// OptionError reports an invalid TransformOptions value.
type OptionError struct {
	Field  string
	Reason string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("invalid option %s: %s", e.Field, e.Reason)
}

// TimingError reports a custom timing that is not a valid range.
type TimingError struct {
	Index  int
	Timing Timing
}

func (e *TimingError) Error() string {
	return fmt.Sprintf(
		"invalid timing at index %d: start %.3f and end %.3f must satisfy 0 <= start < end <= %.3f",
		e.Index,
		e.Timing.Start,
		e.Timing.End,
		MaxTimestamp,
	)
}
