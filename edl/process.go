// SPDX-License-Identifier: Apache-2.0

package edl

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Comment keyword extractors. Keywords may appear with or without a space
// after the leading asterisk.
var (
	locRegexp        = regexp.MustCompile(`^\*?\s*LOC:\s+(\S+)\s+(\S+)\s*(.*)$`)
	clipNameRegexp   = regexp.MustCompile(`^\*?\s*FROM CLIP NAME:\s*(.*)$`)
	sourceFileRegexp = regexp.MustCompile(`^\*?\s*SOURCE FILE:\s*(.*)$`)
	ascSOPRegexp     = regexp.MustCompile(`^\*?\s*ASC_SOP\s+(.*)$`)
	ascSATRegexp     = regexp.MustCompile(`^\*?\s*ASC_SAT\s+(.*)$`)
)

// shotGroups are the named capture groups a shot name pattern may use.
var shotGroups = map[string]struct{}{
	"shot_name": {},
	"type":      {},
	"format":    {},
	"version":   {},
}

// Processor is a Visitor that mines the recognized comment keywords of each
// completed edit and attaches the results as extension metadata: name,
// source_file, asc_sop, asc_sat, locator and shot_name. An optional regular
// expression run against the clip name can further extract shot_name, type,
// format and version through named capture groups.
type Processor struct {
	shotRegexp *regexp.Regexp
}

// NewProcessor builds a Processor. The pattern may be empty; a pattern with
// more than one capture group must name one of them shot_name, and named
// groups outside shot_name, type, format and version are rejected.
func NewProcessor(shotRegexp string) (*Processor, error) {
	p := &Processor{}
	if shotRegexp == "" {
		return p, nil
	}
	re, err := regexp.Compile(shotRegexp)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid shot name pattern %q", shotRegexp)
	}
	named := 0
	for _, name := range re.SubexpNames() {
		if name == "" {
			continue
		}
		if _, ok := shotGroups[name]; !ok {
			return nil, errors.Errorf("unknown capture group %q in shot name pattern %q", name, shotRegexp)
		}
		named++
	}
	if re.NumSubexp() > 1 {
		found := false
		for _, name := range re.SubexpNames() {
			if name == "shot_name" {
				found = true
				break
			}
		}
		if !found {
			return nil, errors.Errorf("shot name pattern %q needs a shot_name capture group", shotRegexp)
		}
	}
	p.shotRegexp = re
	return p, nil
}

// ProcessEdit is the default edit processor: keyword extraction without any
// shot name pattern. It can be handed directly to SetVisitor.
func ProcessEdit(edit *EditEvent, logger logrus.FieldLogger) error {
	return (&Processor{}).Process(edit, logger)
}

// Process implements Visitor. It scans the edit's comments once, then
// attaches each extracted value exactly once through SetMeta, so reserved
// fields are protected and repeated keywords keep their first occurrence.
func (p *Processor) Process(edit *EditEvent, logger logrus.FieldLogger) error {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	var name, sourceFile, ascSOP, ascSAT, locator string
	for _, comment := range edit.Comments() {
		switch {
		case name == "" && clipNameRegexp.MatchString(comment):
			name = strings.TrimSpace(clipNameRegexp.FindStringSubmatch(comment)[1])
		case sourceFile == "" && sourceFileRegexp.MatchString(comment):
			sourceFile = strings.TrimSpace(sourceFileRegexp.FindStringSubmatch(comment)[1])
		case ascSOP == "" && ascSOPRegexp.MatchString(comment):
			ascSOP = strings.TrimSpace(ascSOPRegexp.FindStringSubmatch(comment)[1])
		case ascSAT == "" && ascSATRegexp.MatchString(comment):
			ascSAT = strings.TrimSpace(ascSATRegexp.FindStringSubmatch(comment)[1])
		case locator == "" && locRegexp.MatchString(comment):
			// LOC: <timecode> <color> <text>
			locator = strings.TrimSpace(locRegexp.FindStringSubmatch(comment)[3])
		}
	}

	meta := map[string]string{
		"name":        name,
		"source_file": sourceFile,
		"asc_sop":     ascSOP,
		"asc_sat":     ascSAT,
		"locator":     locator,
	}
	for _, extracted := range p.extractShot(name, locator, logger) {
		meta[extracted.group] = extracted.value
	}

	for key, value := range meta {
		if value == "" {
			continue
		}
		if err := edit.SetMeta(key, StringValue(value)); err != nil {
			return err
		}
	}
	return nil
}

type shotField struct {
	group string
	value string
}

// extractShot resolves the shot name and related fields. With a pattern, the
// clip name is matched and named groups win; a single anonymous group is the
// shot name itself. Without a pattern the locator text, when present, names
// the shot.
func (p *Processor) extractShot(name, locator string, logger logrus.FieldLogger) []shotField {
	if p.shotRegexp == nil {
		if locator != "" {
			return []shotField{{group: "shot_name", value: strings.Fields(locator)[0]}}
		}
		return nil
	}
	if name == "" {
		return nil
	}
	m := p.shotRegexp.FindStringSubmatch(name)
	if m == nil {
		logger.Debugf("clip name %q does not match shot name pattern", name)
		return nil
	}
	if p.shotRegexp.NumSubexp() <= 1 {
		// The whole match, or the single group, is the shot name.
		return []shotField{{group: "shot_name", value: m[len(m)-1]}}
	}
	var fields []shotField
	for i, group := range p.shotRegexp.SubexpNames() {
		if group == "" || m[i] == "" {
			continue
		}
		fields = append(fields, shotField{group: group, value: m[i]})
	}
	return fields
}
