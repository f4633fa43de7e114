// SPDX-License-Identifier: Apache-2.0

package timecode

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// DefaultFPS is the frame rate assumed when none is given.
const DefaultFPS = 24

// dropFactor converts a frame rate into its drop count per minute:
// round(fps * 0.066666) gives 2 at 29.97 and 4 at 59.94.
var dropFactor = decimal.NewFromFloat(0.066666)

// fieldsRegexp splits a timecode string into its four numeric fields. The
// delimiter characters are not interpreted here beyond their drop frame
// intent; fields are read purely by position.
var fieldsRegexp = regexp.MustCompile(`^(\d+)[:;.,](\d{1,2})[:;.,](\d{1,2})[:;.,](\d{1,2})$`)

// roundedRate returns the integer frame rate conversions are carried out at.
func roundedRate(rate decimal.Decimal) int {
	return int(rate.Round(0).IntPart())
}

// dropCount returns the number of frames dropped at the start of each
// minute for the given rate, or an error if the rate does not support
// drop frame timecode.
func dropCount(rate decimal.Decimal) (int, error) {
	base := roundedRate(rate)
	if base != 30 && base != 60 {
		return 0, errors.Wrapf(ErrDropFrameRate, "rate %s", rate)
	}
	return int(rate.Mul(dropFactor).Round(0).IntPart()), nil
}

// frameFromFields converts the four timecode fields into an absolute frame
// number at the integer rate base, subtracting the dropped frames when drop
// is set. Frame numbering is zero based.
func frameFromFields(hours, minutes, seconds, frames, base, drop int) int {
	total := (hours*3600+minutes*60+seconds)*base + frames
	if drop > 0 {
		totalMinutes := hours*60 + minutes
		total -= drop * (totalMinutes - totalMinutes/10)
	}
	return total
}

// fieldsFromFrame converts an absolute frame number back into timecode
// fields, adding the dropped frames back in when drop is set. This is the
// exact inverse of frameFromFields for all frames >= 0.
func fieldsFromFrame(frame, base, drop int) (hours, minutes, seconds, frames int, err error) {
	if frame < 0 {
		return 0, 0, 0, 0, errors.Wrapf(ErrInvalidTimecode, "negative frame %d", frame)
	}
	if drop > 0 {
		framesPer10Min := base*600 - 9*drop
		framesPerMin := base*60 - drop
		chunks := frame / framesPer10Min
		rem := frame % framesPer10Min
		frame += 9 * drop * chunks
		if rem > drop {
			frame += drop * ((rem - drop) / framesPerMin)
		}
	}
	hours = frame / (3600 * base)
	frame %= 3600 * base
	minutes = frame / (60 * base)
	frame %= 60 * base
	seconds = frame / base
	frames = frame % base
	return hours, minutes, seconds, frames, nil
}

// splitTimecode extracts the four numeric fields from a timecode string and
// reports whether the string uses a drop frame style delimiter.
func splitTimecode(s string) (fields [4]int, impliedDrop bool, err error) {
	m := fieldsRegexp.FindStringSubmatch(s)
	if m == nil {
		return fields, false, errors.Wrapf(ErrInvalidTimecode, "%q is not in hh:mm:ss:ff format", s)
	}
	for i := 0; i < 4; i++ {
		n, convErr := strconv.Atoi(m[i+1])
		if convErr != nil {
			return fields, false, errors.Wrapf(ErrInvalidTimecode, "%q is not in hh:mm:ss:ff format", s)
		}
		fields[i] = n
	}
	return fields, strings.ContainsAny(s, ";,"), nil
}

// checkFields validates field ranges at the given integer rate base. Hours
// are unbounded so that multi-day timecodes are accepted.
func checkFields(fields [4]int, base, drop int) error {
	if fields[1] > 59 {
		return errors.Wrapf(ErrInvalidTimecode, "invalid minutes value %d, it must be smaller than 60", fields[1])
	}
	if fields[2] > 59 {
		return errors.Wrapf(ErrInvalidTimecode, "invalid seconds value %d, it must be smaller than 60", fields[2])
	}
	if fields[3] >= base {
		return &FrameRateError{Frame: fields[3], Rate: base}
	}
	if drop > 0 && fields[2] == 0 && fields[3] < drop && fields[1]%10 != 0 {
		return errors.Wrapf(ErrInvalidTimecode,
			"frame %d does not exist at minute %d in drop frame timecode", fields[3], fields[1])
	}
	return nil
}

// FrameFromTimecode returns the absolute frame number for the given timecode
// string at the given rate. The dropFrame flag is explicit: a string whose
// delimiter implies drop frame is rejected when the flag is false.
func FrameFromTimecode(s string, fps float64, dropFrame bool) (int, error) {
	return FrameFromTimecodeRate(s, decimal.NewFromFloat(fps), dropFrame)
}

// FrameFromTimecodeRate is FrameFromTimecode with an exact decimal rate.
func FrameFromTimecodeRate(s string, rate decimal.Decimal, dropFrame bool) (int, error) {
	tc, err := ParseModeRate(s, rate, dropFrame)
	if err != nil {
		return 0, err
	}
	return tc.ToFrame(), nil
}

// TimecodeFromFrame returns the canonical timecode string for the given
// absolute frame number at the given rate.
func TimecodeFromFrame(frame int, fps float64, dropFrame bool) (string, error) {
	return TimecodeFromFrameRate(frame, decimal.NewFromFloat(fps), dropFrame)
}

// TimecodeFromFrameRate is TimecodeFromFrame with an exact decimal rate.
func TimecodeFromFrameRate(frame int, rate decimal.Decimal, dropFrame bool) (string, error) {
	tc, err := FromFrameRate(frame, rate, dropFrame)
	if err != nil {
		return "", err
	}
	return tc.String(), nil
}

// formatFields renders the canonical string form, with a semicolon before
// the frames field for drop frame timecodes.
func formatFields(hours, minutes, seconds, frames int, dropFrame bool) string {
	delim := byte(':')
	if dropFrame {
		delim = ';'
	}
	return fmt.Sprintf("%02d:%02d:%02d%c%02d", hours, minutes, seconds, delim, frames)
}
