// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package doc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// dottedReference matches deployment-time references such as
// nestedDependencies.outputs.storageAccountResourceId. The reference must
// traverse an outputs or properties member or carry a call, so dotted data
// such as host names is not misclassified.
var dottedReference = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\(.*\))?(\.[A-Za-z_][A-Za-z0-9_]*(\(.*\))?)+$`)

var referenceMember = regexp.MustCompile(`\.(outputs|properties)\.|\(`)

// functionCall matches a bare function invocation such as uniqueString('x').
var functionCall = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*\(`)

var identifier = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// ErrUnterminatedFunction reports a multi-line function call whose
// parentheses never close.
var ErrUnterminatedFunction = errors.New("unterminated function block")

// placeholderFor classifies a string value as a deployment-time expression
// and derives a bracketed placeholder from its trailing identifier.
// This is a best-effort classifier, not a parser: anything that looks like a
// template expression, a dotted reference or a (possibly multi-line) function
// call collapses to a single placeholder, so examples remain valid standalone
// illustrations.
func placeholderFor(s string) (string, bool, error) {
	expr := strings.TrimSpace(s)

	switch {
	case strings.HasPrefix(expr, "[["):
		// Escaped literal bracket, not an expression.
		return "", false, nil
	case strings.HasPrefix(expr, "[") && strings.HasSuffix(expr, "]"):
		expr = strings.TrimSpace(expr[1 : len(expr)-1])
	case dottedReference.MatchString(expr) && referenceMember.MatchString(expr):
		// keep as is
	case strings.Contains(expr, "\n") && functionCall.MatchString(expr):
		if !balancedParens(expr) {
			first, _, _ := strings.Cut(expr, "\n")
			return "", false, fmt.Errorf("%w: %s", ErrUnterminatedFunction, first)
		}
	default:
		return "", false, nil
	}

	return "<" + trailingIdentifier(expr) + ">", true, nil
}

func balancedParens(expr string) bool {
	depth := 0
	for _, r := range expr {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		}
	}
	return depth == 0
}

// trailingIdentifier extracts the last meaningful identifier of an
// expression, ignoring a trailing .value accessor.
func trailingIdentifier(expr string) string {
	ids := identifier.FindAllString(expr, -1)

	for i := len(ids) - 1; i >= 0; i-- {
		if ids[i] == "value" && i > 0 {
			continue
		}
		return ids[i]
	}
	return "expression"
}

// substitutePlaceholders walks a decoded JSON value and replaces every string
// classified as a deployment-time expression with its placeholder.
func substitutePlaceholders(v any) (any, error) {
	switch val := v.(type) {
	case string:
		ph, ok, err := placeholderFor(val)
		if err != nil {
			return nil, err
		}
		if ok {
			return ph, nil
		}
		return val, nil
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			sub, err := substitutePlaceholders(item)
			if err != nil {
				return nil, err
			}
			out[i] = sub
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			sub, err := substitutePlaceholders(item)
			if err != nil {
				return nil, err
			}
			out[k] = sub
		}
		return out, nil
	default:
		return v, nil
	}
}

// bicepValue renders a decoded JSON value as a Bicep literal. Composite
// values render multi-line with two-space indentation at the given depth.
func bicepValue(v any, depth int) string {
	indent := strings.Repeat("  ", depth)
	child := strings.Repeat("  ", depth+1)

	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(val)
	case string:
		return bicepString(val)
	case float64:
		return formatNumber(val)
	case json.Number:
		return val.String()
	case []any:
		if len(val) == 0 {
			return "[]"
		}
		sb := strings.Builder{}
		sb.WriteString("[\n")
		for _, item := range val {
			sb.WriteString(child + bicepValue(item, depth+1) + "\n")
		}
		sb.WriteString(indent + "]")
		return sb.String()
	case map[string]any:
		if len(val) == 0 {
			return "{}"
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		sb := strings.Builder{}
		sb.WriteString("{\n")
		for _, k := range keys {
			sb.WriteString(child + bicepKey(k) + ": " + bicepValue(val[k], depth+1) + "\n")
		}
		sb.WriteString(indent + "}")
		return sb.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

func bicepString(s string) string {
	escaped := strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
		"${", `\${`,
	).Replace(s)
	return "'" + escaped + "'"
}

var bareKey = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func bicepKey(k string) string {
	if bareKey.MatchString(k) {
		return k
	}
	return bicepString(k)
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// jsonValue renders a decoded JSON value indented for embedding at the given
// line prefix. Map keys are ordered by encoding/json. HTML escaping is off so
// placeholders such as <storageAccountResourceId> survive verbatim.
func jsonValue(v any, prefix string) (string, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(prefix, "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("doc.jsonValue: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// isScalar reports whether a value renders inline rather than as a fenced block.
func isScalar(v any) bool {
	switch val := v.(type) {
	case map[string]any:
		return len(val) == 0
	case []any:
		return len(val) == 0
	default:
		return true
	}
}
