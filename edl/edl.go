// SPDX-License-Identifier: Apache-2.0

// Package edl reads CMX 3600 EDL (Edit Decision List) files into an ordered
// sequence of edit events carrying timecodes, comments, effect annotations
// and open ended metadata.
//
// An EditList owns the parse: each call to ReadCMX or DecodeCMX rebuilds the
// edit sequence from scratch and invokes an optional visitor once per
// completed edit. Timecode interpretation is delegated to the timecode
// package at the list's configured frame rate.
package edl

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/shotgunsoftware/tk-framework-editorial/timecode"
)

// commentKeywordRegexp matches comment lines carrying one of the recognized
// metadata keywords. Lines matching it are excluded from PureComments.
// FROM CLIP NAME must stay ahead of FROM CLIP in the alternation.
var commentKeywordRegexp = regexp.MustCompile(
	`^\*?\s*(LOC|SOURCE FILE|FROM CLIP NAME|FROM CLIP|FROM FILE|TO CLIP NAME|ASC_SOP|ASC_SAT)\b`)

// reservedFields are the write once EditEvent fields that the metadata
// extension path must never touch.
var reservedFields = map[string]struct{}{
	"id":         {},
	"reel":       {},
	"channels":   {},
	"source_in":  {},
	"source_out": {},
	"record_in":  {},
	"record_out": {},
	"comments":   {},
	"effects":    {},
	"retime":     {},
}

// ValueKind discriminates the payload held by a Value.
type ValueKind int

const (
	// KindString marks a Value holding a string.
	KindString ValueKind = iota
	// KindInt marks a Value holding an int.
	KindInt
	// KindBool marks a Value holding a bool.
	KindBool
)

// Value is a tagged variant over the types stored in edit metadata.
type Value struct {
	kind ValueKind
	s    string
	i    int
	b    bool
}

// StringValue returns a Value holding a string.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// IntValue returns a Value holding an int.
func IntValue(i int) Value { return Value{kind: KindInt, i: i} }

// BoolValue returns a Value holding a bool.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind returns the kind of payload held by this Value.
func (v Value) Kind() ValueKind { return v.kind }

// Int returns the int payload and whether the Value holds one.
func (v Value) Int() (int, bool) { return v.i, v.kind == KindInt }

// Bool returns the bool payload and whether the Value holds one.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// String returns the payload rendered as a string, whatever its kind.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.Itoa(v.i)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return v.s
	}
}

// EditEvent is a single entry from an edit decision list. Its identifying
// fields are set at construction and are read only afterwards; comments,
// effects and the retime annotation accumulate while the event is the
// parser's current edit. Extension attributes attached by visitors live in
// an open metadata map which cannot shadow the reserved fields.
type EditEvent struct {
	id        int
	reel      string
	channels  string
	sourceIn  timecode.Timecode
	sourceOut timecode.Timecode
	recordIn  timecode.Timecode
	recordOut timecode.Timecode
	comments  []string
	effects   []string
	retime    string
	metadata  map[string]Value
}

// NewEditEvent builds an edit event from its reserved fields. The out
// timecodes are exclusive bounds.
func NewEditEvent(id int, reel, channels string, sourceIn, sourceOut, recordIn, recordOut timecode.Timecode) *EditEvent {
	return &EditEvent{
		id:        id,
		reel:      reel,
		channels:  channels,
		sourceIn:  sourceIn,
		sourceOut: sourceOut,
		recordIn:  recordIn,
		recordOut: recordOut,
	}
}

// ID returns the edit id, unique per list and ascending by convention.
func (e *EditEvent) ID() int { return e.id }

// Reel returns the source reel name.
func (e *EditEvent) Reel() string { return e.reel }

// Channels returns the channel designator (V, A, A2, AA, ...).
func (e *EditEvent) Channels() string { return e.channels }

// SourceIn returns the source in timecode.
func (e *EditEvent) SourceIn() timecode.Timecode { return e.sourceIn }

// SourceOut returns the source out timecode, an exclusive bound.
func (e *EditEvent) SourceOut() timecode.Timecode { return e.sourceOut }

// RecordIn returns the record in timecode.
func (e *EditEvent) RecordIn() timecode.Timecode { return e.recordIn }

// RecordOut returns the record out timecode, an exclusive bound.
func (e *EditEvent) RecordOut() timecode.Timecode { return e.recordOut }

// SourceDuration returns the source length of this edit in frames.
func (e *EditEvent) SourceDuration() int {
	return e.sourceOut.ToFrame() - e.sourceIn.ToFrame()
}

// RecordDuration returns the record length of this edit in frames.
func (e *EditEvent) RecordDuration() int {
	return e.recordOut.ToFrame() - e.recordIn.ToFrame()
}

// AddComment associates a raw comment line with this edit.
func (e *EditEvent) AddComment(line string) {
	e.comments = append(e.comments, line)
}

// AddEffect registers an effect or transition line, kept as its joined raw
// tokens.
func (e *EditEvent) AddEffect(tokens []string) {
	e.effects = append(e.effects, strings.Join(tokens, " "))
}

// SetRetime registers an M2 retime line, kept as its joined raw tokens.
func (e *EditEvent) SetRetime(tokens []string) {
	e.retime = strings.Join(tokens, " ")
}

// Comments returns the raw comment lines for this edit, in file order.
func (e *EditEvent) Comments() []string {
	return append([]string(nil), e.comments...)
}

// PureComments returns a fresh copy of the comments that do not match any of
// the recognized metadata keywords. It is empty when every comment is
// keyword tagged.
func (e *EditEvent) PureComments() []string {
	var pure []string
	for _, c := range e.comments {
		if !commentKeywordRegexp.MatchString(c) {
			pure = append(pure, c)
		}
	}
	return pure
}

// Effects returns the raw effect lines registered for this edit.
func (e *EditEvent) Effects() []string {
	return append([]string(nil), e.effects...)
}

// Retime returns the raw retime line, or an empty string when the edit has
// none.
func (e *EditEvent) Retime() string { return e.retime }

// SetMeta attaches an extension attribute to this edit. Reserved field names
// are rejected with ErrReservedField, and each attribute may be set exactly
// once: a second write fails with ErrDuplicateMeta.
func (e *EditEvent) SetMeta(name string, v Value) error {
	if _, reserved := reservedFields[name]; reserved {
		return errors.Wrap(ErrReservedField, name)
	}
	if _, exists := e.metadata[name]; exists {
		return errors.Wrap(ErrDuplicateMeta, name)
	}
	if e.metadata == nil {
		e.metadata = make(map[string]Value)
	}
	e.metadata[name] = v
	return nil
}

// Meta returns the extension attribute with the given name.
func (e *EditEvent) Meta(name string) (Value, bool) {
	v, ok := e.metadata[name]
	return v, ok
}

// Metadata returns a copy of the extension attribute map.
func (e *EditEvent) Metadata() map[string]Value {
	out := make(map[string]Value, len(e.metadata))
	for k, v := range e.metadata {
		out[k] = v
	}
	return out
}

// String renders the edit as its canonical cut line.
func (e *EditEvent) String() string {
	return fmt.Sprintf("%03d %s %s C %s %s %s %s",
		e.id,
		e.reel,
		e.channels,
		e.sourceIn,
		e.sourceOut,
		e.recordIn,
		e.recordOut,
	)
}
