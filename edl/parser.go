// SPDX-License-Identifier: Apache-2.0

package edl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/shotgunsoftware/tk-framework-editorial/timecode"
)

// Visitor is a caller supplied callback invoked exactly once for each
// completed edit event, synchronously and on the parsing goroutine. An error
// aborts the parse.
type Visitor func(edit *EditEvent, logger logrus.FieldLogger) error

// EditList is an ordered edit decision list read from a CMX 3600 file.
// A list must not be parsed concurrently from multiple goroutines: each
// parse call owns the current edit state.
type EditList struct {
	title   string
	fps     float64
	edits   []*EditEvent
	logger  logrus.FieldLogger
	visitor Visitor
	lenient bool
}

// New creates an empty edit list. Timecodes are interpreted at the given
// frame rate; zero or negative falls back to 24.
func New(fps float64) *EditList {
	if fps <= 0 {
		fps = timecode.DefaultFPS
	}
	return &EditList{fps: fps}
}

// SetLogger sets the logger used for parse tracing and handed to visitors.
func (l *EditList) SetLogger(logger logrus.FieldLogger) {
	l.logger = logger
}

// SetVisitor sets the callback invoked once per completed edit.
func (l *EditList) SetVisitor(v Visitor) {
	l.visitor = v
}

// SetLenient controls how unrecognized line shapes are treated. Strict mode,
// the default, aborts with ErrUnexpectedLine; lenient mode logs and skips
// them. Recognized but unsupported features abort in either mode.
func (l *EditList) SetLenient(lenient bool) {
	l.lenient = lenient
}

// SetTitle sets the list title. Parsing overwrites it with the TITLE: line.
func (l *EditList) SetTitle(title string) {
	l.title = title
}

// Append adds an edit to the list, for callers building a list by hand
// rather than parsing one.
func (l *EditList) Append(e *EditEvent) {
	l.edits = append(l.edits, e)
}

// Title returns the list title from the TITLE: line, or an empty string.
func (l *EditList) Title() string { return l.title }

// FPS returns the frame rate timecodes are interpreted at.
func (l *EditList) FPS() float64 { return l.fps }

// Edits returns the parsed edits in file order.
func (l *EditList) Edits() []*EditEvent { return l.edits }

// ReadCMX parses the CMX 3600 EDL file at the given path. Any previously
// parsed state is discarded first; on error the list holds no edits and the
// returned error carries the path and the offending line.
func (l *EditList) ReadCMX(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening EDL")
	}
	defer f.Close()
	return l.DecodeCMX(f, path)
}

// DecodeCMX parses CMX 3600 EDL text from a reader. The name is used for
// logging and error context only.
func (l *EditList) DecodeCMX(r io.Reader, name string) error {
	l.title = ""
	l.edits = nil

	logger := l.effectiveLogger()
	logger.Infof("parsing EDL %s", name)

	scanner := bufio.NewScanner(r)
	var current *EditEvent
	for scanner.Scan() {
		line := normalizeLine(scanner.Text())
		if line == "" {
			continue
		}
		logger.Debugf("treating [%s]", line)
		next, err := l.dispatch(line, current, logger)
		if err != nil {
			l.edits = nil
			return &ParseError{Path: name, Line: line, Err: err}
		}
		current = next
	}
	if err := scanner.Err(); err != nil {
		l.edits = nil
		return errors.Wrapf(err, "reading %s", name)
	}

	// Final flush: the last edit is completed by end of input.
	if current != nil && l.visitor != nil {
		if err := l.visitor(current, logger); err != nil {
			l.edits = nil
			return &ParseError{Path: name, Line: current.String(), Err: err}
		}
	}
	return nil
}

func (l *EditList) effectiveLogger() logrus.FieldLogger {
	if l.logger != nil {
		return l.logger
	}
	return logrus.StandardLogger()
}

// normalizeLine strips the historical 0x1A end-of-file marker byte and the
// surrounding whitespace.
func normalizeLine(line string) string {
	return strings.TrimSpace(strings.ReplaceAll(line, "\x1a", ""))
}

// lineKind is the classification of a normalized EDL line.
type lineKind int

const (
	lineTitle lineKind = iota
	lineFCM
	lineComment
	lineRetime
	lineEvent
	lineUnknown
)

// classify reports the kind of a normalized, non empty line. First match
// wins, with case sensitive prefix checks.
func classify(line string, tokens []string) lineKind {
	switch {
	case strings.HasPrefix(line, "TITLE:"):
		return lineTitle
	case strings.HasPrefix(line, "FCM:"):
		return lineFCM
	case strings.HasPrefix(tokens[0], "*"):
		return lineComment
	case tokens[0] == "M2":
		return lineRetime
	case isDigits(tokens[0]):
		return lineEvent
	default:
		return lineUnknown
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// dispatch processes one line and returns the new current edit.
func (l *EditList) dispatch(line string, current *EditEvent, logger logrus.FieldLogger) (*EditEvent, error) {
	tokens := strings.Fields(line)
	switch classify(line, tokens) {
	case lineTitle:
		l.title = strings.Join(strings.Fields(strings.TrimPrefix(line, "TITLE:")), " ")
		return current, nil

	case lineFCM:
		return current, l.checkFCM(strings.TrimSpace(strings.TrimPrefix(line, "FCM:")))

	case lineComment:
		if current == nil {
			// No edit to attach to yet, the comment is dropped.
			logger.Debugf("discarding comment before first edit [%s]", line)
			return current, nil
		}
		current.AddComment(line)
		return current, nil

	case lineRetime:
		if current == nil {
			return current, ErrUnexpectedRetime
		}
		current.SetRetime(tokens)
		return current, nil

	case lineEvent:
		return l.beginEvent(tokens, current, logger)

	default:
		if l.lenient {
			logger.Warnf("skipping unrecognized line [%s]", line)
			return current, nil
		}
		return current, ErrUnexpectedLine
	}
}

// checkFCM validates a frame count mode declaration. Only non drop frame
// EDLs are handled.
func (l *EditList) checkFCM(mode string) error {
	switch mode {
	case "DROP FRAME":
		return ErrDropFrame
	case "NON DROP FRAME", "NON-DROP FRAME":
		return nil
	default:
		return &UnsupportedFeatureError{Feature: fmt.Sprintf("FCM mode %q", mode)}
	}
}

// beginEvent handles a line whose first token is numeric. A cut starts a new
// edit, completing the current one; any other edit type is an effect or
// transition continuation of the current edit.
func (l *EditList) beginEvent(tokens []string, current *EditEvent, logger logrus.FieldLogger) (*EditEvent, error) {
	if len(tokens) < 4 {
		return current, errors.Wrap(ErrUnexpectedLine, "truncated event line")
	}
	if tokens[3] != "C" {
		if current == nil {
			return current, ErrUnexpectedEffect
		}
		current.AddEffect(tokens)
		return current, nil
	}

	if len(tokens) < 8 {
		return current, errors.Wrap(ErrUnexpectedLine, "cut line needs four trailing timecodes")
	}
	if strings.EqualFold(tokens[1], "BL") {
		return current, ErrBlackSlug
	}

	// The current edit is complete once the next one begins.
	if current != nil && l.visitor != nil {
		if err := l.visitor(current, logger); err != nil {
			return current, err
		}
	}

	id, err := strconv.Atoi(tokens[0])
	if err != nil {
		return current, errors.Wrapf(ErrUnexpectedLine, "bad edit id %q", tokens[0])
	}

	// The middle token count varies with the edit type, so the four
	// timecodes are always read from the end of the line.
	var tcs [4]timecode.Timecode
	for i, tok := range tokens[len(tokens)-4:] {
		if tcs[i], err = timecode.ParseMode(tok, l.fps, false); err != nil {
			return current, err
		}
	}

	edit := NewEditEvent(id, tokens[1], tokens[2], tcs[0], tcs[1], tcs[2], tcs[3])
	l.edits = append(l.edits, edit)
	return edit, nil
}
