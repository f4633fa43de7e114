// SPDX-License-Identifier: Apache-2.0

package timecode

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidTimecode is returned when a timecode string cannot be split
	// into four numeric fields, or when a field is out of range.
	ErrInvalidTimecode = errors.New("invalid timecode")
	// ErrDropFrameMismatch is returned when a timecode string implies drop
	// frame through its delimiter but the caller explicitly disabled it.
	ErrDropFrameMismatch = errors.New("drop frame mismatch between timecode and explicit flag")
	// ErrDropFrameRate is returned when drop frame is requested at a frame
	// rate that does not support it. Only 29.97 and 59.94 do.
	ErrDropFrameRate = errors.New("drop frame is not supported at this frame rate")
)

// FrameRateError reports a frame field that is not legal at the given rate,
// keeping both values available for callers that want to inspect them.
type FrameRateError struct {
	Frame int
	Rate  int
}

func (e *FrameRateError) Error() string {
	return fmt.Sprintf("invalid frame value %d, it must be smaller than the frame rate %d", e.Frame, e.Rate)
}
