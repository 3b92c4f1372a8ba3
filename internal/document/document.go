// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package document models a README as an ordered sequence of lines,
// partitioned into sections by Markdown headings, and provides the pure merge
// operation that replaces one section's span with freshly generated content.
package document

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Document is an in-memory README. It is immutable; merge operations return a
// new Document.
type Document struct {
	lines []string
	eol   string // detected line ending, "\n" when unknown
}

// Heading is a Markdown heading located in a Document.
type Heading struct {
	Line  int // index into Lines()
	Level int
	Text  string
}

// Parse builds a Document from raw file contents.
func Parse(src []byte) *Document {
	s := string(src)
	eol := "\n"
	if strings.Contains(s, "\r\n") {
		eol = "\r\n"
		s = strings.ReplaceAll(s, "\r\n", "\n")
	}
	lines := strings.Split(s, "\n")
	// A trailing newline produces one empty trailing element; String adds it back.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return &Document{lines: lines, eol: eol}
}

// New builds a Document from pre-split lines.
func New(lines []string) *Document {
	return &Document{lines: lines}
}

// Lines returns a copy of the document's lines.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}

// String renders the document using its detected line ending, terminated by
// a single final newline. Untouched content round-trips byte-for-byte.
func (d *Document) String() string {
	if len(d.lines) == 0 {
		return ""
	}
	eol := d.eol
	if eol == "" {
		eol = "\n"
	}
	return strings.Join(d.lines, eol) + eol
}

// derive builds a sibling Document carrying the receiver's line ending.
func (d *Document) derive(lines []string) *Document {
	return &Document{lines: lines, eol: d.eol}
}

// Headings locates the top-level Markdown headings of the document.
// The source is parsed as Markdown so headings inside fenced code blocks are
// not misidentified as section boundaries.
func (d *Document) Headings() []Heading {
	src := []byte(strings.Join(d.lines, "\n"))

	// Byte offset of the start of each line, for mapping AST segments back.
	lineStarts := make([]int, 0, len(d.lines))
	offset := 0
	for _, l := range d.lines {
		lineStarts = append(lineStarts, offset)
		offset += len(l) + 1
	}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	headings := make([]Heading, 0)
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Lines().Len() == 0 {
			continue
		}

		start := h.Lines().At(0).Start
		line := lineIndexOf(lineStarts, start)
		headings = append(headings, Heading{
			Line:  line,
			Level: h.Level,
			Text:  headingText(d.lines[line]),
		})
	}
	return headings
}

// lineIndexOf returns the index of the line containing the byte offset.
func lineIndexOf(lineStarts []int, offset int) int {
	lo, hi := 0, len(lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// headingText strips the ATX marker and any closing sequence from a heading line.
func headingText(line string) string {
	s := strings.TrimLeft(strings.TrimSpace(line), "#")
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "#")
	return strings.TrimSpace(s)
}
