// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package assets

import (
	"encoding/json"
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

const nestedDeploymentResourceType = "Microsoft.Resources/deployments"

// ResourceDeclaration is a single resource declared by the compiled template.
// Nested deployments carry their inner template so resource types can be
// flattened across module boundaries.
type ResourceDeclaration struct {
	SymbolicName string              `json:"-"`
	Name         string              `json:"name,omitempty"`
	Type         string              `json:"type"`
	APIVersion   string              `json:"apiVersion,omitempty"`
	Existing     bool                `json:"existing,omitempty"`
	Resources    ResourceCollection  `json:"resources,omitempty"`
	Properties   *resourceProperties `json:"properties,omitempty"`
}

// resourceProperties extracts only the nested template of a deployment
// resource; all other resource properties are opaque to this tool.
type resourceProperties struct {
	Template *TemplateModel `json:"template,omitempty"`
}

// ResourceCollection is the template's resource list. Compiled templates emit
// either a JSON array (classic) or an object keyed by symbolic name
// (languageVersion 2.0); both decode into an ordered slice.
type ResourceCollection []*ResourceDeclaration

// UnmarshalJSON implements json.Unmarshaler for both resource list shapes.
func (rc *ResourceCollection) UnmarshalJSON(data []byte) error {
	var asList []*ResourceDeclaration
	if err := json.Unmarshal(data, &asList); err == nil {
		*rc = asList
		return nil
	}

	var asMap map[string]*ResourceDeclaration
	if err := json.Unmarshal(data, &asMap); err != nil {
		return NewErrTemplateDecode(err)
	}

	names := make([]string, 0, len(asMap))
	for n := range asMap {
		names = append(names, n)
	}
	slices.Sort(names)

	out := make([]*ResourceDeclaration, 0, len(asMap))
	for _, n := range names {
		r := asMap[n]
		if r == nil {
			continue
		}
		r.SymbolicName = n
		out = append(out, r)
	}
	*rc = out
	return nil
}

// ResourceType identifies a resource type at a specific API version.
type ResourceType struct {
	Type       string
	APIVersion string
}

// String returns the type@apiVersion form used for deduplication.
func (rt ResourceType) String() string {
	return rt.Type + "@" + rt.APIVersion
}

// FlattenedResourceTypes walks all resources, including those inside nested
// deployment templates, and returns the deployed resource types deduplicated
// by type and API version, sorted alphabetically. Existing resource lookups
// and nested deployment wrappers themselves are excluded.
func (m *TemplateModel) FlattenedResourceTypes() []ResourceType {
	seen := mapset.NewThreadUnsafeSet[string]()
	result := make([]ResourceType, 0)
	flattenResources(m.Resources, seen, &result)

	slices.SortFunc(result, func(a, b ResourceType) int {
		if c := strings.Compare(a.Type, b.Type); c != 0 {
			return c
		}
		return strings.Compare(a.APIVersion, b.APIVersion)
	})
	return result
}

func flattenResources(resources ResourceCollection, seen mapset.Set[string], result *[]ResourceType) {
	for _, r := range resources {
		if r == nil || r.Existing {
			continue
		}

		if r.Type == nestedDeploymentResourceType {
			if r.Properties != nil && r.Properties.Template != nil {
				flattenResources(r.Properties.Template.Resources, seen, result)
			}
			continue
		}

		rt := ResourceType{Type: r.Type, APIVersion: r.APIVersion}
		if r.Type != "" && seen.Add(rt.String()) {
			*result = append(*result, rt)
		}

		flattenResources(r.Resources, seen, result)
	}
}

// CrossReferences returns the names of nested deployments declared by the
// template, which correspond to cross-referenced modules, sorted and
// deduplicated.
func (m *TemplateModel) CrossReferences() []string {
	seen := mapset.NewThreadUnsafeSet[string]()
	refs := make([]string, 0)

	for _, r := range m.Resources {
		if r == nil || r.Type != nestedDeploymentResourceType {
			continue
		}

		name := r.SymbolicName
		if name == "" {
			name = r.Name
		}
		if name != "" && seen.Add(name) {
			refs = append(refs, name)
		}
	}

	slices.Sort(refs)
	return refs
}
