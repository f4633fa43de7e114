// SPDX-License-Identifier: Apache-2.0

package edl

import (
	"fmt"
	"io"
)

// WriteCMX writes the list back out as CMX 3600 EDL text. The output parses
// back into an equal list: comments, retimes and effect lines follow the cut
// line of the edit they belong to.
func (l *EditList) WriteCMX(w io.Writer) error {
	if err := l.writeHeader(w); err != nil {
		return err
	}
	for _, e := range l.edits {
		if err := writeEvent(w, e); err != nil {
			return err
		}
	}
	return nil
}

// writeHeader writes the TITLE and FCM lines. Only non drop frame EDLs are
// produced, matching what the parser accepts.
func (l *EditList) writeHeader(w io.Writer) error {
	if l.title != "" {
		if _, err := fmt.Fprintf(w, "TITLE: %s\n", l.title); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "FCM: NON-DROP FRAME\n\n")
	return err
}

// writeEvent writes a single edit: its cut line followed by the annotation
// lines accumulated during parsing.
func writeEvent(w io.Writer, e *EditEvent) error {
	_, err := fmt.Fprintf(w, "%03d  %-8s %-4s C        %s %s %s %s\n",
		e.id,
		e.reel,
		e.channels,
		e.sourceIn,
		e.sourceOut,
		e.recordIn,
		e.recordOut,
	)
	if err != nil {
		return err
	}

	for _, effect := range e.effects {
		if _, err := fmt.Fprintln(w, effect); err != nil {
			return err
		}
	}
	if e.retime != "" {
		if _, err := fmt.Fprintln(w, e.retime); err != nil {
			return err
		}
	}
	for _, comment := range e.comments {
		if _, err := fmt.Fprintln(w, comment); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintln(w)
	return err
}
