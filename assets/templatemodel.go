// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package assets

import (
	"encoding/json"
	"slices"
	"strings"
)

const bicepUserFunctionNamespace = "__bicep"

// TemplateModel is the object model of a compiled template.
// Do not build this directly, unmarshal compiled template JSON into it.
type TemplateModel struct {
	Schema          string                          `json:"$schema,omitempty"`
	LanguageVersion string                          `json:"languageVersion,omitempty"`
	ContentVersion  string                          `json:"contentVersion,omitempty"`
	Metadata        *TemplateMetadata               `json:"metadata,omitempty"`
	Definitions     map[string]*ParameterDefinition `json:"definitions,omitempty"`
	Parameters      map[string]*ParameterDefinition `json:"parameters,omitempty"`
	Functions       []*FunctionNamespace            `json:"functions,omitempty"`
	Resources       ResourceCollection              `json:"resources,omitempty"`
	Outputs         map[string]*Output              `json:"outputs,omitempty"`
}

// TemplateMetadata is the template-level metadata block.
type TemplateMetadata struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Owner       string `json:"owner,omitempty"`
}

// Output is a single template output.
type Output struct {
	Type     string             `json:"type"`
	Value    any                `json:"value,omitempty"`
	Metadata *ParameterMetadata `json:"metadata,omitempty"`
}

// Description returns the output description, or an empty string.
func (o *Output) Description() string {
	if o == nil || o.Metadata == nil {
		return ""
	}
	return o.Metadata.Description
}

// FunctionNamespace is a namespace of user-defined functions in the compiled template.
type FunctionNamespace struct {
	Namespace string                     `json:"namespace"`
	Members   map[string]*FunctionMember `json:"members,omitempty"`
}

// FunctionMember is a single user-defined function.
type FunctionMember struct {
	Metadata *ParameterMetadata `json:"metadata,omitempty"`
}

// UserFunction is a flattened view of an exported user-defined function.
type UserFunction struct {
	Name        string
	Description string
}

// Name returns the template name from metadata, or an empty string.
func (m *TemplateModel) Name() string {
	if m.Metadata == nil {
		return ""
	}
	return m.Metadata.Name
}

// Description returns the template description from metadata, or an empty string.
func (m *TemplateModel) Description() string {
	if m.Metadata == nil {
		return ""
	}
	return m.Metadata.Description
}

// HasParameter reports whether the template declares the named parameter.
func (m *TemplateModel) HasParameter(name string) bool {
	_, ok := m.Parameters[name]
	return ok
}

// ParameterNames returns the declared parameter names, sorted.
func (m *TemplateModel) ParameterNames() []string {
	names := make([]string, 0, len(m.Parameters))
	for n := range m.Parameters {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// OutputNames returns the declared output names, sorted.
func (m *TemplateModel) OutputNames() []string {
	names := make([]string, 0, len(m.Outputs))
	for n := range m.Outputs {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// ExportedFunctions returns the user-defined functions of the template, sorted by name.
// Functions in the default bicep namespace are returned by their simple name,
// others are qualified with their namespace.
func (m *TemplateModel) ExportedFunctions() []UserFunction {
	funcs := make([]UserFunction, 0)
	for _, ns := range m.Functions {
		if ns == nil {
			continue
		}
		for name, member := range ns.Members {
			qualified := name
			if ns.Namespace != "" && ns.Namespace != bicepUserFunctionNamespace {
				qualified = strings.Join([]string{ns.Namespace, name}, ".")
			}
			desc := ""
			if member != nil && member.Metadata != nil {
				desc = member.Metadata.Description
			}
			funcs = append(funcs, UserFunction{Name: qualified, Description: desc})
		}
	}
	slices.SortFunc(funcs, func(a, b UserFunction) int {
		return strings.Compare(a.Name, b.Name)
	})
	return funcs
}

// NewTemplateModelFromJSON unmarshals compiled template JSON into a TemplateModel.
func NewTemplateModelFromJSON(data []byte) (*TemplateModel, error) {
	m := new(TemplateModel)
	if err := json.Unmarshal(data, m); err != nil {
		return nil, NewErrTemplateDecode(err)
	}
	return m, nil
}
