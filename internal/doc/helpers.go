// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package doc

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/nao1215/markdown"
)

var ErrFragmentRenderFailed = fmt.Errorf("failed to render section fragment")

// fragmentLines runs a markdown builder and returns the produced lines,
// padded with one blank line on each side so fragments splice cleanly
// between a section heading and the next heading.
func fragmentLines(build func(md *markdown.Markdown) error) ([]string, error) {
	buf := &bytes.Buffer{}
	md := markdown.NewMarkdown(buf)

	if err := build(md); err != nil {
		return nil, err
	}

	if err := md.Build(); err != nil {
		return nil, errors.Join(ErrFragmentRenderFailed, err)
	}

	body := strings.TrimRight(buf.String(), "\n")
	if body == "" {
		return []string{"", ""}, nil
	}

	lines := strings.Split(body, "\n")
	out := make([]string, 0, len(lines)+2)
	out = append(out, "")
	out = append(out, lines...)
	out = append(out, "")
	return out, nil
}

var anchorDrop = regexp.MustCompile(`[^a-z0-9 -]`)

// anchorize turns heading text into the anchor GitHub derives from it:
// lower-cased, punctuation dropped, spaces replaced with hyphens.
func anchorize(s string) string {
	s = strings.ToLower(s)
	s = anchorDrop.ReplaceAllString(s, "")
	return strings.ReplaceAll(s, " ", "-")
}

// linkToParameter renders a link to the detail section of a parameter.
func linkToParameter(qualifiedName string) string {
	return fmt.Sprintf("[`%s`](#parameter-%s)", qualifiedName, anchorize(qualifiedName))
}

// tableCell makes a string safe for use inside a Markdown table cell.
func tableCell(s string) string {
	s = strings.ReplaceAll(s, "\n", "<p>")
	return strings.ReplaceAll(s, "|", `\|`)
}

// noWrapTable is the table option set used for all generated tables: header
// casing and cell text are preserved exactly as supplied.
var noWrapTable = markdown.TableOptions{
	AutoWrapText:      false,
	AutoFormatHeaders: false,
}
