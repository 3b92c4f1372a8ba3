// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package doc renders the generated sections of a template README from the
// compiled object model and splices them into an existing document without
// disturbing hand-authored content.
package doc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/Azure/bicepdocs/assets"
	"github.com/Azure/bicepdocs/internal/document"
	"github.com/Azure/bicepdocs/internal/environment"
	"github.com/Azure/bicepdocs/internal/links"
)

// Section names in their canonical document order.
const (
	SectionTitle           = "Title"
	SectionNavigation      = "Navigation"
	SectionResourceTypes   = "Resource Types"
	SectionUsageExamples   = "Usage examples"
	SectionParameters      = "Parameters"
	SectionFunctions       = "Functions"
	SectionOutputs         = "Outputs"
	SectionCrossReferences = "Cross-referenced modules"
	SectionDataCollection  = "Data Collection"
)

// noneMarker is the body rendered for empty collections.
const noneMarker = "_None_"

// Marker returns the heading line that identifies a section in the document.
func Marker(section string) string {
	return "## " + section
}

// LinkResolver resolves the best reachable URL from a candidate list.
// Implementations must not fail; see internal/links.
type LinkResolver interface {
	Resolve(ctx context.Context, candidates []string) string
}

// Config carries the collaborators and presentation inputs of a Generator.
type Config struct {
	// Examples are the compiled usage examples, in render order.
	Examples []Example

	// Links resolves resource type documentation URLs. Nil skips probing.
	Links LinkResolver

	// Logger receives soft-failure notices. Nil discards.
	Logger *slog.Logger

	// ModuleSource is the module path rendered in usage examples,
	// e.g. "br/public:avm/res/storage/storage-account:0.9.1".
	ModuleSource string

	// DocsBaseURL is the base URL for resource type reference links.
	DocsBaseURL string

	// NoticeText overrides the embedded data collection notice.
	NoticeText string

	// NoticeUnavailable marks the remote notice endpoint as unreachable;
	// the Data Collection section is then left untouched.
	NoticeUnavailable bool
}

// Generator renders the generated sections for one template.
// Create with NewGenerator.
type Generator struct {
	model    *assets.TemplateModel
	resolver *assets.TypeResolver
	examples []Example
	links    LinkResolver
	log      *slog.Logger

	moduleSource      string
	docsBaseURL       string
	noticeText        string
	noticeUnavailable bool
}

// NewGenerator creates a Generator over a compiled template model.
func NewGenerator(model *assets.TemplateModel, cfg *Config) *Generator {
	if cfg == nil {
		cfg = &Config{}
	}

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	moduleSource := cfg.ModuleSource
	if moduleSource == "" {
		moduleSource = "<modulePath>"
	}

	noticeText := cfg.NoticeText
	if noticeText == "" {
		noticeText = defaultDataCollectionNotice
	}

	linkResolver := cfg.Links
	if linkResolver == nil {
		linkResolver = (*links.Resolver)(nil)
	}

	docsBaseURL := cfg.DocsBaseURL
	if docsBaseURL == "" {
		docsBaseURL = environment.DocsBaseURL()
	}

	return &Generator{
		model:             model,
		resolver:          assets.NewTypeResolver(model),
		examples:          cfg.Examples,
		links:             linkResolver,
		log:               log,
		moduleSource:      moduleSource,
		docsBaseURL:       docsBaseURL,
		noticeText:        noticeText,
		noticeUnavailable: cfg.NoticeUnavailable,
	}
}

// plannedSection is one generated section ready to merge.
type plannedSection struct {
	name  string
	lines []string
}

// Render merges the generated sections into the supplied document and
// returns the result. A nil sections filter renders everything; otherwise
// only the named sections are touched.
func (g *Generator) Render(ctx context.Context, d *document.Document, sections []string) (*document.Document, error) {
	include := func(name string) bool {
		return sections == nil || slices.Contains(sections, name)
	}

	planned, err := g.plan(ctx, include)
	if err != nil {
		return nil, err
	}

	if include(SectionTitle) {
		d = document.MergeTitle(d, g.titleFragment())
	}

	if include(SectionNavigation) {
		nav := g.navigationFragment(planned)
		d = document.MergeLeadingSection(d, Marker(SectionNavigation), nav)
	}

	for _, s := range planned {
		// The data collection notice closes the document, after any
		// hand-authored Notes section.
		if s.name == SectionDataCollection {
			d = document.MergeTrailingSection(d, Marker(s.name), s.lines)
			continue
		}
		d = document.MergeSection(d, Marker(s.name), s.lines)
	}
	return d, nil
}

// plan renders every applicable section fragment in canonical order.
func (g *Generator) plan(ctx context.Context, include func(string) bool) ([]plannedSection, error) {
	planned := make([]plannedSection, 0, 7)

	add := func(name string, render func() ([]string, error)) error {
		if !include(name) {
			return nil
		}
		lines, err := render()
		if err != nil {
			return fmt.Errorf("rendering section '%s': %w", name, err)
		}
		planned = append(planned, plannedSection{name: name, lines: lines})
		return nil
	}

	if err := add(SectionResourceTypes, func() ([]string, error) { return g.resourceTypesFragment(ctx) }); err != nil {
		return nil, err
	}

	if len(g.examples) > 0 {
		if err := add(SectionUsageExamples, g.examplesFragment); err != nil {
			return nil, err
		}
	}

	if err := add(SectionParameters, g.parametersFragment); err != nil {
		return nil, err
	}

	if len(g.model.ExportedFunctions()) > 0 {
		if err := add(SectionFunctions, g.functionsFragment); err != nil {
			return nil, err
		}
	}

	if err := add(SectionOutputs, g.outputsFragment); err != nil {
		return nil, err
	}

	if err := add(SectionCrossReferences, g.crossReferencesFragment); err != nil {
		return nil, err
	}

	if g.model.HasParameter(telemetryParameterName) {
		if g.noticeUnavailable {
			g.log.Warn("data collection notice endpoint unreachable, leaving section untouched")
		} else if err := add(SectionDataCollection, g.dataCollectionFragment); err != nil {
			return nil, err
		}
	}

	return planned, nil
}

// titleFragment renders the document's leading title block.
func (g *Generator) titleFragment() []string {
	title := g.model.Name()
	if title == "" {
		title = "Unnamed template"
	}

	if primary := g.primaryResourceType(); primary != "" {
		title = fmt.Sprintf("%s `[%s]`", title, primary)
	}

	lines := []string{"# " + title, ""}
	if desc := g.model.Description(); desc != "" {
		lines = append(lines, desc, "")
	}
	return lines
}

// primaryResourceType picks the template's main resource type: the deployed
// type with the fewest path segments, ties broken alphabetically.
func (g *Generator) primaryResourceType() string {
	types := g.model.FlattenedResourceTypes()
	if len(types) == 0 {
		return ""
	}

	best := types[0].Type
	bestDepth := typeDepth(best)
	for _, rt := range types[1:] {
		if d := typeDepth(rt.Type); d < bestDepth {
			best = rt.Type
			bestDepth = d
		}
	}
	return best
}

func typeDepth(resourceType string) int {
	depth := 0
	for _, r := range resourceType {
		if r == '/' {
			depth++
		}
	}
	return depth
}
