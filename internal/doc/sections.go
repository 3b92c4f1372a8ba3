// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package doc

import (
	"context"
	"fmt"

	"github.com/Azure/bicepdocs/internal/links"
	"github.com/nao1215/markdown"
)

// telemetryParameterName is the feature flag whose presence enables the
// Data Collection section.
const telemetryParameterName = "enableTelemetry"

const defaultDataCollectionNotice = "The software may collect information about you and your use of the software and send it to Microsoft. " +
	"Microsoft may use this information to provide services and improve our products and services. " +
	"You may turn off the telemetry as described in the repository. " +
	"There are also some features in the software that may enable you and Microsoft to collect data from users of your applications. " +
	"If you use these features, you must comply with applicable law, including providing appropriate notices to users of your applications " +
	"together with a copy of Microsoft's privacy statement. Our privacy statement is located at " +
	"<https://go.microsoft.com/fwlink/?LinkID=824704>. " +
	"You can learn more about data collection and use in the help documentation and our privacy statement. " +
	"Your use of the software operates as your consent to these practices."

// resourceTypesFragment renders the deduplicated resource type table with
// best-effort documentation links.
func (g *Generator) resourceTypesFragment(ctx context.Context) ([]string, error) {
	return fragmentLines(func(md *markdown.Markdown) error {
		types := g.model.FlattenedResourceTypes()
		if len(types) == 0 {
			md.PlainText(noneMarker)
			return nil
		}

		t := markdown.TableSet{
			Header: []string{"Resource Type", "API Version"},
			Rows:   [][]string{},
		}
		for _, rt := range types {
			url := g.links.Resolve(ctx, links.CandidateURLs(g.docsBaseURL, rt.Type, rt.APIVersion))
			t.Rows = append(t.Rows, []string{
				markdown.Link(markdown.Code(rt.Type), url),
				rt.APIVersion,
			})
		}
		md.CustomTable(t, noWrapTable)
		return nil
	})
}

// outputsFragment renders the outputs table.
func (g *Generator) outputsFragment() ([]string, error) {
	return fragmentLines(func(md *markdown.Markdown) error {
		names := g.model.OutputNames()
		if len(names) == 0 {
			md.PlainText(noneMarker)
			return nil
		}

		t := markdown.TableSet{
			Header: []string{"Output", "Type", "Description"},
			Rows:   [][]string{},
		}
		for _, n := range names {
			o := g.model.Outputs[n]
			t.Rows = append(t.Rows, []string{
				markdown.Code(n),
				o.Type,
				tableCell(o.Description()),
			})
		}
		md.CustomTable(t, noWrapTable)
		return nil
	})
}

// functionsFragment renders the exported user-defined function table.
func (g *Generator) functionsFragment() ([]string, error) {
	return fragmentLines(func(md *markdown.Markdown) error {
		funcs := g.model.ExportedFunctions()
		if len(funcs) == 0 {
			md.PlainText(noneMarker)
			return nil
		}

		t := markdown.TableSet{
			Header: []string{"Function", "Description"},
			Rows:   [][]string{},
		}
		for _, f := range funcs {
			t.Rows = append(t.Rows, []string{
				markdown.Code(f.Name),
				tableCell(f.Description),
			})
		}
		md.CustomTable(t, noWrapTable)
		return nil
	})
}

// crossReferencesFragment renders the modules referenced by this template.
func (g *Generator) crossReferencesFragment() ([]string, error) {
	return fragmentLines(func(md *markdown.Markdown) error {
		refs := g.model.CrossReferences()
		if len(refs) == 0 {
			md.PlainText(noneMarker)
			return nil
		}

		md.PlainText("This section gives you an overview of all local-referenced module files (i.e., other modules that are referenced in this module).").LF()

		t := markdown.TableSet{
			Header: []string{"Reference", "Type"},
			Rows:   [][]string{},
		}
		for _, r := range refs {
			t.Rows = append(t.Rows, []string{markdown.Code(r), "Local module"})
		}
		md.CustomTable(t, noWrapTable)
		return nil
	})
}

// dataCollectionFragment renders the telemetry notice.
func (g *Generator) dataCollectionFragment() ([]string, error) {
	return fragmentLines(func(md *markdown.Markdown) error {
		md.PlainText(g.noticeText).LF()
		md.PlainText(fmt.Sprintf(
			"Telemetry collection can be disabled by setting the %s parameter to %s.",
			markdown.Code(telemetryParameterName), markdown.Code("false"),
		))
		return nil
	})
}

// navigationFragment renders the table of contents over the sections that
// are actually present.
func (g *Generator) navigationFragment(planned []plannedSection) []string {
	lines := []string{""}
	for _, s := range planned {
		lines = append(lines, fmt.Sprintf("- [%s](#%s)", s.name, anchorize(s.name)))
	}
	lines = append(lines, "")
	return lines
}
