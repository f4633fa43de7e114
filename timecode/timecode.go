// SPDX-License-Identifier: Apache-2.0

// Package timecode converts between hh:mm:ss:ff timecodes and absolute frame
// numbers, including drop frame timecode at 29.97 and 59.94 fps.
//
// Frame rates are carried as exact decimals so that a rate given as an int,
// a float or a decimal string produces identical results at any frame count.
// Frame numbering is zero based in both directions, so conversions round
// trip exactly.
package timecode

import (
	"github.com/shopspring/decimal"
)

// Timecode is an immutable hh:mm:ss:ff value at a given frame rate.
// Arithmetic goes through the absolute frame number and produces new values.
type Timecode struct {
	hours     int
	minutes   int
	seconds   int
	frames    int
	rate      decimal.Decimal
	dropFrame bool
}

// Parse parses a timecode string at the given rate, inferring drop frame
// from the delimiter: a semicolon or comma before any field marks the
// timecode as drop frame.
func Parse(s string, fps float64) (Timecode, error) {
	return ParseRate(s, decimal.NewFromFloat(fps))
}

// ParseRate is Parse with an exact decimal rate.
func ParseRate(s string, rate decimal.Decimal) (Timecode, error) {
	return parse(s, rate, nil)
}

// ParseMode parses a timecode string with an explicit drop frame flag.
// A string whose delimiter implies drop frame is rejected with
// ErrDropFrameMismatch when the flag is false. The reverse combination is
// accepted: EDL tools are inconsistent about emitting semicolons.
func ParseMode(s string, fps float64, dropFrame bool) (Timecode, error) {
	return ParseModeRate(s, decimal.NewFromFloat(fps), dropFrame)
}

// ParseModeRate is ParseMode with an exact decimal rate.
func ParseModeRate(s string, rate decimal.Decimal, dropFrame bool) (Timecode, error) {
	return parse(s, rate, &dropFrame)
}

func parse(s string, rate decimal.Decimal, explicit *bool) (Timecode, error) {
	fields, impliedDrop, err := splitTimecode(s)
	if err != nil {
		return Timecode{}, err
	}

	drop := impliedDrop
	if explicit != nil {
		if impliedDrop && !*explicit {
			return Timecode{}, ErrDropFrameMismatch
		}
		drop = *explicit
	}

	dropFrames := 0
	if drop {
		if dropFrames, err = dropCount(rate); err != nil {
			return Timecode{}, err
		}
	}
	if err := checkFields(fields, roundedRate(rate), dropFrames); err != nil {
		return Timecode{}, err
	}

	return Timecode{
		hours:     fields[0],
		minutes:   fields[1],
		seconds:   fields[2],
		frames:    fields[3],
		rate:      rate,
		dropFrame: drop,
	}, nil
}

// FromFrame returns the timecode for the given absolute frame number at the
// given rate.
func FromFrame(frame int, fps float64, dropFrame bool) (Timecode, error) {
	return FromFrameRate(frame, decimal.NewFromFloat(fps), dropFrame)
}

// FromFrameRate is FromFrame with an exact decimal rate.
func FromFrameRate(frame int, rate decimal.Decimal, dropFrame bool) (Timecode, error) {
	dropFrames := 0
	var err error
	if dropFrame {
		if dropFrames, err = dropCount(rate); err != nil {
			return Timecode{}, err
		}
	}
	hours, minutes, seconds, frames, err := fieldsFromFrame(frame, roundedRate(rate), dropFrames)
	if err != nil {
		return Timecode{}, err
	}
	return Timecode{
		hours:     hours,
		minutes:   minutes,
		seconds:   seconds,
		frames:    frames,
		rate:      rate,
		dropFrame: dropFrame,
	}, nil
}

// Hours returns the hours field. Hours are unbounded: multi-day timecodes
// are legal.
func (t Timecode) Hours() int { return t.hours }

// Minutes returns the minutes field.
func (t Timecode) Minutes() int { return t.minutes }

// Seconds returns the seconds field.
func (t Timecode) Seconds() int { return t.seconds }

// Frames returns the frames field.
func (t Timecode) Frames() int { return t.frames }

// Rate returns the exact frame rate of this timecode.
func (t Timecode) Rate() decimal.Decimal { return t.rate }

// DropFrame reports whether this is a drop frame timecode.
func (t Timecode) DropFrame() bool { return t.dropFrame }

// ToFrame returns the absolute frame number of this timecode.
func (t Timecode) ToFrame() int {
	dropFrames := 0
	if t.dropFrame {
		// Validated at construction, cannot fail here.
		dropFrames, _ = dropCount(t.rate)
	}
	return frameFromFields(t.hours, t.minutes, t.seconds, t.frames, roundedRate(t.rate), dropFrames)
}

// ToSeconds returns the position of this timecode in seconds, as the exact
// decimal division of its frame number by its rate.
func (t Timecode) ToSeconds() decimal.Decimal {
	return decimal.NewFromInt(int64(t.ToFrame())).Div(t.rate)
}

// Add returns a new timecode at this timecode's rate, offset forward by the
// other timecode's frame count.
func (t Timecode) Add(o Timecode) (Timecode, error) {
	return t.AddFrames(o.ToFrame())
}

// AddFrames returns a new timecode offset forward by the given number of
// frames, which may be negative.
func (t Timecode) AddFrames(frames int) (Timecode, error) {
	return FromFrameRate(t.ToFrame()+frames, t.rate, t.dropFrame)
}

// Sub returns a new timecode at this timecode's rate, offset backward by the
// other timecode's frame count. Results before frame zero are an error.
func (t Timecode) Sub(o Timecode) (Timecode, error) {
	return t.AddFrames(-o.ToFrame())
}

// SubFrames returns a new timecode offset backward by the given number of
// frames.
func (t Timecode) SubFrames(frames int) (Timecode, error) {
	return t.AddFrames(-frames)
}

// String returns the canonical zero padded form, with a semicolon before the
// frames field for drop frame timecodes.
func (t Timecode) String() string {
	return formatFields(t.hours, t.minutes, t.seconds, t.frames, t.dropFrame)
}
