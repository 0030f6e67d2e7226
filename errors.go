package axon

import (
	"errors"
	"fmt"
)

// errNilSource is wrapped in a DecodeError when a render is attempted
// with no source image at all.
var errNilSource = errors.New("source image is nil")

// DecodeError reports a source image that could not be parsed. It aborts
// the render for that image only; the caller may retry with a new source.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// PaletteFormatError reports a malformed palette LUT import. The
// previously active palette remains usable after this error.
type PaletteFormatError struct {
	Width  int
	Height int
	Err    error
}

func (e *PaletteFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("palette import: %v", e.Err)
	}
	return fmt.Sprintf("palette import: image is %dx%d, dimensions must be positive multiples of 16", e.Width, e.Height)
}

func (e *PaletteFormatError) Unwrap() error { return e.Err }

// UnsupportedSettingError reports an unrecognized enum value reaching the
// pipeline. This is an internal invariant violation, not a user error.
type UnsupportedSettingError struct {
	Setting string
	Value   int
}

func (e *UnsupportedSettingError) Error() string {
	return fmt.Sprintf("unsupported %s value: %d", e.Setting, e.Value)
}
