// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package doc

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Azure/bicepdocs/assets"
	"github.com/Azure/bicepdocs/to"
	"github.com/nao1215/markdown"
)

// paramEntry is a resolved top-level parameter ready for rendering.
type paramEntry struct {
	name        string
	tree        *assets.TypeTree
	category    assets.Category
	description string // without the category prefix
}

// parametersFragment renders the Parameters section: one summary table per
// category followed by a deep-linkable detail section per parameter,
// recursing into nested and discriminated types.
func (g *Generator) parametersFragment() ([]string, error) {
	entries, err := g.resolveParameters()
	if err != nil {
		return nil, err
	}

	return fragmentLines(func(md *markdown.Markdown) error {
		if len(entries) == 0 {
			md.PlainText(noneMarker)
			return nil
		}

		groups := groupByCategory(entries)

		for _, grp := range groups {
			md.PlainText(markdown.Bold(fmt.Sprintf("%s parameters", grp.category))).LF()

			t := markdown.TableSet{
				Header: []string{"Parameter", "Type", "Description"},
				Rows:   [][]string{},
			}
			for _, e := range grp.entries {
				t.Rows = append(t.Rows, []string{
					linkToParameter(e.name),
					e.tree.TypeName,
					tableCell(e.description),
				})
			}
			md.CustomTable(t, noWrapTable).LF()
		}

		for _, grp := range groups {
			for _, e := range grp.entries {
				if err := renderParameterDetail(md, e.name, e.tree); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (g *Generator) resolveParameters() ([]paramEntry, error) {
	entries := make([]paramEntry, 0, len(g.model.Parameters))
	for _, name := range g.model.ParameterNames() {
		def := g.model.Parameters[name]

		category, rest, err := assets.ParseCategory(def.Description())
		if err != nil {
			return nil, fmt.Errorf("parameter '%s': %w", name, err)
		}

		tree, err := g.resolver.Resolve(def)
		if err != nil {
			return nil, fmt.Errorf("parameter '%s': %w", name, err)
		}

		entries = append(entries, paramEntry{
			name:        name,
			tree:        tree,
			category:    category,
			description: rest,
		})
	}
	return entries, nil
}

type paramGroup struct {
	category assets.Category
	entries  []paramEntry
}

// groupByCategory buckets entries by category, ordering groups by the fixed
// precedence and entries alphabetically within each group.
func groupByCategory(entries []paramEntry) []paramGroup {
	byCat := map[assets.Category][]paramEntry{}
	for _, e := range entries {
		byCat[e.category] = append(byCat[e.category], e)
	}

	cats := make([]assets.Category, 0, len(byCat))
	for c := range byCat {
		cats = append(cats, c)
	}
	slices.SortFunc(cats, assets.CompareCategories)

	groups := make([]paramGroup, 0, len(cats))
	for _, c := range cats {
		es := byCat[c]
		slices.SortFunc(es, func(a, b paramEntry) int {
			return strings.Compare(a.name, b.name)
		})
		groups = append(groups, paramGroup{category: c, entries: es})
	}
	return groups
}

// renderParameterDetail renders one parameter's detail section and recurses
// into its children using dotted qualified names.
func renderParameterDetail(md *markdown.Markdown, name string, tree *assets.TypeTree) error {
	def := tree.Definition

	md.H3(fmt.Sprintf("Parameter: `%s`", name)).LF()

	if _, rest, err := assets.ParseCategory(def.Description()); err == nil && rest != "" {
		md.PlainText(rest).LF()
	}

	facts := []string{
		fmt.Sprintf("Required: %s", yesNo(def.Required())),
		fmt.Sprintf("Type: %s", tree.TypeName),
	}
	if def.Nullable {
		facts = append(facts, "Nullable: Yes")
	}
	if def.MinValue != nil {
		facts = append(facts, fmt.Sprintf("MinValue: %d", to.ValOrZero(def.MinValue)))
	}
	if def.MaxValue != nil {
		facts = append(facts, fmt.Sprintf("MaxValue: %d", to.ValOrZero(def.MaxValue)))
	}
	if def.MinLength != nil {
		facts = append(facts, fmt.Sprintf("MinLength: %d", to.ValOrZero(def.MinLength)))
	}
	if def.MaxLength != nil {
		facts = append(facts, fmt.Sprintf("MaxLength: %d", to.ValOrZero(def.MaxLength)))
	}

	defaultValue, hasDefault, err := def.DefaultValue()
	if err != nil {
		return fmt.Errorf("parameter '%s': %w", name, err)
	}
	if hasDefault && isScalar(defaultValue) {
		facts = append(facts, fmt.Sprintf("Default: %s", markdown.Code(inlineValue(defaultValue))))
	}

	md.BulletList(facts...).LF()

	if hasDefault && !isScalar(defaultValue) {
		md.PlainText(markdown.Bold("Default:")).LF()
		md.CodeBlocks(markdown.SyntaxHighlight("bicep"), bicepValue(defaultValue, 0)).LF()
	}

	if len(def.AllowedValues) > 0 {
		allowed, err := substitutePlaceholders([]any(def.AllowedValues))
		if err != nil {
			return fmt.Errorf("parameter '%s': %w", name, err)
		}
		md.PlainText(markdown.Bold("Allowed:")).LF()
		md.CodeBlocks(markdown.SyntaxHighlight("bicep"), bicepValue(allowed, 0)).LF()
	}

	if example, ok := def.Example(); ok {
		md.PlainText(markdown.Bold("Example:")).LF()
		md.CodeBlocks(markdown.SyntaxHighlight("bicep"), bicepValue(example, 0)).LF()
	}

	switch tree.Kind {
	case assets.TypeKindUnion:
		return renderUnionDetail(md, name, tree)
	case assets.TypeKindObject:
		return renderChildProperties(md, name, tree.Properties)
	case assets.TypeKindArray:
		if tree.Items == nil {
			return nil
		}
		switch tree.Items.Kind {
		case assets.TypeKindUnion:
			return renderUnionDetail(md, name, tree.Items)
		case assets.TypeKindObject:
			return renderChildProperties(md, name, tree.Items.Properties)
		}
	}
	return nil
}

// renderUnionDetail renders a variant index table followed by one fully
// recursive section per variant under a qualified name of the form
// parent.discriminatorProperty-variantName.
func renderUnionDetail(md *markdown.Markdown, name string, tree *assets.TypeTree) error {
	md.PlainText(fmt.Sprintf(
		"This parameter accepts one of the following variants, selected by the value of %s:",
		markdown.Code(tree.Discriminator),
	)).LF()

	t := markdown.TableSet{
		Header: []string{"Variant", "Description"},
		Rows:   [][]string{},
	}
	for _, v := range tree.Variants {
		qualified := fmt.Sprintf("%s.%s-%s", name, tree.Discriminator, v.Name)
		t.Rows = append(t.Rows, []string{
			linkToParameter(qualified),
			tableCell(descriptionText(v.Tree.Definition)),
		})
	}
	md.CustomTable(t, noWrapTable).LF()

	for _, v := range tree.Variants {
		qualified := fmt.Sprintf("%s.%s-%s", name, tree.Discriminator, v.Name)
		if err := renderVariantDetail(md, qualified, v.Tree); err != nil {
			return err
		}
	}
	return nil
}

// renderVariantDetail renders a union variant: a heading, the variant's own
// description, and its properties.
func renderVariantDetail(md *markdown.Markdown, name string, tree *assets.TypeTree) error {
	md.H3(fmt.Sprintf("Parameter: `%s`", name)).LF()

	if desc := descriptionText(tree.Definition); desc != "" {
		md.PlainText(desc).LF()
	}

	if len(tree.Properties) == 0 {
		md.PlainText(noneMarker).LF()
		return nil
	}
	return renderChildProperties(md, name, tree.Properties)
}

// renderChildProperties renders the summary table of an object's properties
// and recurses into each property's own detail section.
func renderChildProperties(md *markdown.Markdown, parent string, props []assets.TypeTreeProperty) error {
	if len(props) == 0 {
		return nil
	}

	t := markdown.TableSet{
		Header: []string{"Parameter", "Type", "Description"},
		Rows:   [][]string{},
	}
	for _, p := range props {
		qualified := parent + "." + p.Name

		_, rest, err := assets.ParseCategory(p.Tree.Definition.Description())
		if err != nil {
			return fmt.Errorf("parameter '%s': %w", qualified, err)
		}

		t.Rows = append(t.Rows, []string{
			linkToParameter(qualified),
			p.Tree.TypeName,
			tableCell(rest),
		})
	}
	md.CustomTable(t, noWrapTable).LF()

	for _, p := range props {
		if err := renderParameterDetail(md, parent+"."+p.Name, p.Tree); err != nil {
			return err
		}
	}
	return nil
}

// descriptionText returns a definition's description with any category
// prefix stripped; variant descriptions are not required to carry one.
func descriptionText(def *assets.ParameterDefinition) string {
	desc := def.Description()
	if _, rest, err := assets.ParseCategory(desc); err == nil {
		return rest
	}
	return desc
}

// inlineValue renders a scalar for inline display. Template expression
// strings keep their bracket form, other values render as Bicep literals.
func inlineValue(v any) string {
	if s, ok := v.(string); ok && strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		return s
	}
	return bicepValue(v, 0)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
