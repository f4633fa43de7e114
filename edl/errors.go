// SPDX-License-Identifier: Apache-2.0

package edl

import (
	"fmt"

	"github.com/pkg/errors"
)

// UnsupportedFeatureError reports a recognized EDL construct that this
// package does not implement. Parsing aborts when one is encountered.
type UnsupportedFeatureError struct {
	Feature string
}

func (e *UnsupportedFeatureError) Error() string {
	return e.Feature + " is not supported"
}

var (
	// ErrDropFrame is returned for EDLs declaring FCM: DROP FRAME.
	ErrDropFrame = &UnsupportedFeatureError{Feature: "drop frame timecode"}
	// ErrBlackSlug is returned for black slug (BL) events.
	ErrBlackSlug = &UnsupportedFeatureError{Feature: "black slug (BL) event"}

	// ErrUnexpectedLine is returned in strict mode for line shapes the CMX
	// 3600 dialect does not define.
	ErrUnexpectedLine = errors.New("found unexpected line")
	// ErrUnexpectedEffect is returned for an effect or transition line with
	// no current edit to attach to.
	ErrUnexpectedEffect = errors.New("found unexpected effect")
	// ErrUnexpectedRetime is returned for an M2 retime line with no current
	// edit to attach to.
	ErrUnexpectedRetime = errors.New("found unexpected retime")

	// ErrReservedField is returned when a metadata write targets one of the
	// reserved edit fields.
	ErrReservedField = errors.New("cannot override reserved edit field")
	// ErrDuplicateMeta is returned when a metadata attribute is set twice.
	ErrDuplicateMeta = errors.New("metadata attribute already set")
)

// ParseError wraps an error raised while parsing an EDL, carrying the file
// path and the raw offending line. The original error remains available
// through Unwrap and Cause for errors.Is and errors.As discrimination.
type ParseError struct {
	Path string
	Line string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v while parsing %s at line %q", e.Err, e.Path, e.Line)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Cause supports github.com/pkg/errors style cause chains.
func (e *ParseError) Cause() error { return e.Err }
