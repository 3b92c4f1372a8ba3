// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package document

import "strings"

// notesSectionText is the hand-authored section that generated sections are
// appended before when their marker is not yet present.
const notesSectionText = "Notes"

// MergeSection returns a new document in which the span belonging to marker
// (e.g. "## Parameters") is replaced by the marker followed by fragment.
// The span runs from the marker heading to the next heading of equal or
// shallower depth; end of file is an implicit terminator. Lines outside the
// span are carried over untouched.
//
// When the marker is absent the section is appended: before a trailing Notes
// section when one exists, otherwise at the end of the document.
func MergeSection(d *Document, marker string, fragment []string) *Document {
	level, text := markerParts(marker)
	headings := d.Headings()
	lines := d.Lines()

	start := -1
	for _, h := range headings {
		if h.Level == level && h.Text == text {
			start = h.Line
			break
		}
	}

	if start == -1 {
		return appendSection(d, marker, fragment)
	}

	end := len(lines)
	for _, h := range headings {
		if h.Line > start && h.Level <= level {
			end = h.Line
			break
		}
	}

	out := make([]string, 0, start+1+len(fragment)+len(lines)-end)
	out = append(out, lines[:start+1]...)
	out = append(out, fragment...)
	out = append(out, lines[end:]...)
	if end == len(lines) {
		out = trimTrailingBlank(out)
	}
	return d.derive(out)
}

// MergeTitle replaces the document's leading title block, everything before
// the first level-2 heading, with fragment. The fragment carries its own
// level-1 heading.
func MergeTitle(d *Document, fragment []string) *Document {
	lines := d.Lines()

	end := len(lines)
	for _, h := range d.Headings() {
		if h.Level == 2 {
			end = h.Line
			break
		}
	}

	out := make([]string, 0, len(fragment)+len(lines)-end)
	out = append(out, fragment...)
	out = append(out, lines[end:]...)
	if end == len(lines) {
		out = trimTrailingBlank(out)
	}
	return d.derive(out)
}

// MergeLeadingSection behaves like MergeSection, except that an absent marker
// is inserted directly after the title block, before the first level-2
// heading, instead of at the end. Used for sections that lead the document,
// such as the navigation.
func MergeLeadingSection(d *Document, marker string, fragment []string) *Document {
	level, text := markerParts(marker)
	headings := d.Headings()

	for _, h := range headings {
		if h.Level == level && h.Text == text {
			return MergeSection(d, marker, fragment)
		}
	}

	lines := d.Lines()
	insertAt := len(lines)
	for _, h := range headings {
		if h.Level == 2 {
			insertAt = h.Line
			break
		}
	}

	return insertSection(d, lines, insertAt, marker, fragment)
}

// MergeTrailingSection behaves like MergeSection, except that an absent
// marker is appended at the very end of the document, after any Notes
// section. Used for sections that close the document, such as the data
// collection notice.
func MergeTrailingSection(d *Document, marker string, fragment []string) *Document {
	level, text := markerParts(marker)
	for _, h := range d.Headings() {
		if h.Level == level && h.Text == text {
			return MergeSection(d, marker, fragment)
		}
	}

	lines := d.Lines()
	return insertSection(d, lines, len(lines), marker, fragment)
}

func appendSection(d *Document, marker string, fragment []string) *Document {
	lines := d.Lines()
	insertAt := len(lines)
	for _, h := range d.Headings() {
		if h.Level == 2 && h.Text == notesSectionText {
			insertAt = h.Line
			break
		}
	}

	return insertSection(d, lines, insertAt, marker, fragment)
}

func insertSection(d *Document, lines []string, insertAt int, marker string, fragment []string) *Document {
	section := make([]string, 0, len(fragment)+2)
	section = append(section, marker)
	section = append(section, fragment...)
	if insertAt == len(lines) {
		// The final newline comes from String; a separating blank is only
		// needed when more lines follow.
		section = trimTrailingBlank(section)
		if insertAt > 0 {
			section = append([]string{""}, section...)
		}
	}

	out := make([]string, 0, len(lines)+len(section))
	out = append(out, lines[:insertAt]...)
	out = append(out, section...)
	out = append(out, lines[insertAt:]...)
	return d.derive(out)
}

func trimTrailingBlank(lines []string) []string {
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func markerParts(marker string) (int, string) {
	trimmed := strings.TrimSpace(marker)
	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	return level, strings.TrimSpace(trimmed[level:])
}
