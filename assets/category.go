// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package assets

import (
	"regexp"
	"strings"
)

// Category is the classification label carried as a description prefix,
// e.g. the "Required" in "Required. The name of the resource.".
type Category string

const (
	CategoryRequired    Category = "Required"
	CategoryConditional Category = "Conditional"
	CategoryOptional    Category = "Optional"
	CategoryGenerated   Category = "Generated"
)

// categoryPrecedence orders the well-known categories in rendered documents.
// Custom categories sort after these, alphabetically.
var categoryPrecedence = map[Category]int{
	CategoryRequired:    0,
	CategoryConditional: 1,
	CategoryOptional:    2,
	CategoryGenerated:   3,
}

var categoryPattern = regexp.MustCompile(`^([A-Z][A-Za-z]*)\.\s*`)

// Known reports whether the category is one of the four well-known labels.
func (c Category) Known() bool {
	_, ok := categoryPrecedence[c]
	return ok
}

// ParseCategory splits a description into its category label and remaining
// text. Descriptions must begin "<Label>. "; anything else is an error.
func ParseCategory(description string) (Category, string, error) {
	m := categoryPattern.FindStringSubmatch(description)
	if m == nil {
		return "", "", NewErrMissingCategory(description)
	}
	return Category(m[1]), strings.TrimPrefix(description, m[0]), nil
}

// CompareCategories is a sort function ordering categories by the fixed
// precedence (Required, Conditional, Optional, Generated), with unknown
// categories after, alphabetically.
func CompareCategories(a, b Category) int {
	pa, aKnown := categoryPrecedence[a]
	pb, bKnown := categoryPrecedence[b]

	switch {
	case aKnown && bKnown:
		return pa - pb
	case aKnown:
		return -1
	case bKnown:
		return 1
	default:
		return strings.Compare(string(a), string(b))
	}
}
