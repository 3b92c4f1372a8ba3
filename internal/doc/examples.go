// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package doc

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/Azure/bicepdocs/assets"
	"github.com/nao1215/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Example is a compiled usage example associated with the template.
type Example struct {
	Path       string
	Deployment *assets.ExampleDeployment
}

const parametersFileSchema = "https://schema.management.azure.com/schemas/2019-04-01/deploymentParameters.json#"

const (
	requiredBoundaryComment    = "// Required parameters"
	nonRequiredBoundaryComment = "// Non-required parameters"
)

// examplesFragment renders the Usage examples section: each example in three
// synchronized forms (Bicep module invocation, JSON parameters file, Bicep
// parameters file), with required parameters first.
func (g *Generator) examplesFragment() ([]string, error) {
	return fragmentLines(func(md *markdown.Markdown) error {
		md.PlainText(
			"The following section provides usage examples for the module, which were used to validate and deploy the module successfully. For a full reference, please review the module source code.",
		).LF()

		for i, ex := range g.examples {
			title := exampleTitle(ex)
			md.H3(fmt.Sprintf("Example %d: _%s_", i+1, title)).LF()

			if ex.Deployment.Metadata != nil && ex.Deployment.Metadata.Description != "" {
				md.PlainText(ex.Deployment.Metadata.Description).LF()
			}

			required, nonRequired, err := g.partitionParameters(ex.Deployment)
			if err != nil {
				return fmt.Errorf("example %s: %w", ex.Path, err)
			}

			md.Details("Via Bicep module", codeDetails("bicep", g.bicepInvocation(required, nonRequired))).LF()
			md.Details("Via JSON parameters file", codeDetails("json", jsonParametersFile(required, nonRequired))).LF()
			md.Details("Via Bicep parameters file", codeDetails("bicep-params", g.bicepParametersFile(required, nonRequired))).LF()
		}
		return nil
	})
}

// exampleParam is one supplied parameter with its placeholder-substituted value.
type exampleParam struct {
	name  string
	value any
}

// partitionParameters splits the example's parameters into required and
// non-required groups per the template's parameter definitions, each sorted
// alphabetically, with deployment-time expressions already substituted.
func (g *Generator) partitionParameters(e *assets.ExampleDeployment) ([]exampleParam, []exampleParam, error) {
	required := make([]exampleParam, 0)
	nonRequired := make([]exampleParam, 0)

	for _, name := range e.ParameterNames() {
		value, err := substitutePlaceholders(e.Parameters[name].Value)
		if err != nil {
			return nil, nil, fmt.Errorf("parameter '%s': %w", name, err)
		}
		p := exampleParam{name: name, value: value}

		if def, ok := g.model.Parameters[name]; ok && def.Required() {
			required = append(required, p)
			continue
		}
		nonRequired = append(nonRequired, p)
	}

	byName := func(a, b exampleParam) int { return strings.Compare(a.name, b.name) }
	slices.SortFunc(required, byName)
	slices.SortFunc(nonRequired, byName)
	return required, nonRequired, nil
}

// bicepInvocation renders the native module invocation form.
func (g *Generator) bicepInvocation(required, nonRequired []exampleParam) string {
	sb := strings.Builder{}
	fmt.Fprintf(&sb, "module %s '%s' = {\n", g.moduleAlias(), g.moduleSource)
	fmt.Fprintf(&sb, "  name: '%sDeployment'\n", g.moduleAlias())

	if len(required)+len(nonRequired) == 0 {
		sb.WriteString("  params: {}\n")
		sb.WriteString("}")
		return sb.String()
	}

	sb.WriteString("  params: {\n")
	if len(required) > 0 {
		sb.WriteString("    " + requiredBoundaryComment + "\n")
		for _, p := range required {
			fmt.Fprintf(&sb, "    %s: %s\n", bicepKey(p.name), bicepValue(p.value, 2))
		}
	}
	if len(nonRequired) > 0 {
		sb.WriteString("    " + nonRequiredBoundaryComment + "\n")
		for _, p := range nonRequired {
			fmt.Fprintf(&sb, "    %s: %s\n", bicepKey(p.name), bicepValue(p.value, 2))
		}
	}
	sb.WriteString("  }\n}")
	return sb.String()
}

// jsonParametersFile renders the JSON parameter file form. The boundary
// comments make the block informational rather than strict JSON, matching
// the other two forms.
func jsonParametersFile(required, nonRequired []exampleParam) string {
	sb := strings.Builder{}
	sb.WriteString("{\n")
	fmt.Fprintf(&sb, "  %q: %q,\n", "$schema", parametersFileSchema)
	fmt.Fprintf(&sb, "  %q: %q,\n", "contentVersion", "1.0.0.0")

	if len(required)+len(nonRequired) == 0 {
		sb.WriteString("  \"parameters\": {}\n}")
		return sb.String()
	}

	sb.WriteString("  \"parameters\": {\n")

	total := len(required) + len(nonRequired)
	written := 0
	writeGroup := func(comment string, params []exampleParam) {
		if len(params) == 0 {
			return
		}
		sb.WriteString("    " + comment + "\n")
		for _, p := range params {
			written++
			rendered, err := jsonValue(p.value, "      ")
			if err != nil {
				rendered = fmt.Sprintf("%q", fmt.Sprintf("%v", p.value))
			}
			fmt.Fprintf(&sb, "    %q: {\n      \"value\": %s\n    }", p.name, rendered)
			if written < total {
				sb.WriteString(",")
			}
			sb.WriteString("\n")
		}
	}
	writeGroup(requiredBoundaryComment, required)
	writeGroup(nonRequiredBoundaryComment, nonRequired)

	sb.WriteString("  }\n}")
	return sb.String()
}

// bicepParametersFile renders the native parameters file form.
func (g *Generator) bicepParametersFile(required, nonRequired []exampleParam) string {
	sb := strings.Builder{}
	fmt.Fprintf(&sb, "using '%s'\n", g.moduleSource)

	writeGroup := func(comment string, params []exampleParam) {
		if len(params) == 0 {
			return
		}
		sb.WriteString("\n" + comment + "\n")
		for _, p := range params {
			fmt.Fprintf(&sb, "param %s = %s\n", bicepKey(p.name), bicepValue(p.value, 0))
		}
	}
	writeGroup(requiredBoundaryComment, required)
	writeGroup(nonRequiredBoundaryComment, nonRequired)

	return strings.TrimRight(sb.String(), "\n")
}

// moduleAlias derives the Bicep symbolic name used in example invocations
// from the template's display name.
func (g *Generator) moduleAlias() string {
	name := g.model.Name()
	if name == "" {
		return "module"
	}

	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '.' || r == '/'
	})
	if len(words) == 0 {
		return "module"
	}

	sb := strings.Builder{}
	sb.WriteString(strings.ToLower(words[0]))
	caser := cases.Title(language.English)
	for _, w := range words[1:] {
		sb.WriteString(caser.String(strings.ToLower(w)))
	}
	return sb.String()
}

// exampleTitle derives an example's display title: explicit metadata wins,
// then the containing folder name, then the file base name, both normalized
// to title case.
func exampleTitle(ex Example) string {
	if ex.Deployment.Metadata != nil && ex.Deployment.Metadata.Name != "" {
		return ex.Deployment.Metadata.Name
	}

	name := path.Base(path.Dir(ex.Path))
	if name == "." || name == "/" || name == "" {
		base := path.Base(ex.Path)
		name = strings.SplitN(base, ".", 2)[0]
	}

	name = strings.NewReplacer("-", " ", "_", " ", ".", " ").Replace(name)
	return cases.Title(language.English).String(name)
}

// codeDetails wraps a fenced code block for use inside a collapsed details
// element.
func codeDetails(syntax, code string) string {
	return fmt.Sprintf("\n\n```%s\n%s\n```\n", syntax, code)
}
