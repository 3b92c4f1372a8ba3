// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package assets

import (
	"encoding/json"
	"fmt"
)

// ParameterDefinition describes a template parameter, a reusable type
// definition, or a nested property of either. The same JSON shape is used by
// the compiler for all three.
type ParameterDefinition struct {
	Type          string                          `json:"type,omitempty"`
	Ref           string                          `json:"$ref,omitempty"`
	Nullable      bool                            `json:"nullable,omitempty"`
	Default       json.RawMessage                 `json:"defaultValue,omitempty"`
	AllowedValues []any                           `json:"allowedValues,omitempty"`
	MinValue      *int                            `json:"minValue,omitempty"`
	MaxValue      *int                            `json:"maxValue,omitempty"`
	MinLength     *int                            `json:"minLength,omitempty"`
	MaxLength     *int                            `json:"maxLength,omitempty"`
	Items         *ParameterDefinition            `json:"items,omitempty"`
	Properties    map[string]*ParameterDefinition `json:"properties,omitempty"`
	Discriminator *Discriminator                  `json:"discriminator,omitempty"`
	Metadata      *ParameterMetadata              `json:"metadata,omitempty"`
}

// Discriminator selects between named variant shapes of a shared type.
type Discriminator struct {
	PropertyName string                          `json:"propertyName"`
	Mapping      map[string]*ParameterDefinition `json:"mapping"`
}

// ParameterMetadata is the metadata block of a parameter or type definition.
type ParameterMetadata struct {
	Description string `json:"description,omitempty"`
	Example     any    `json:"example,omitempty"`
}

// Description returns the parameter description, or an empty string.
func (p *ParameterDefinition) Description() string {
	if p == nil || p.Metadata == nil {
		return ""
	}
	return p.Metadata.Description
}

// Example returns the example value from metadata, if any.
func (p *ParameterDefinition) Example() (any, bool) {
	if p == nil || p.Metadata == nil || p.Metadata.Example == nil {
		return nil, false
	}
	return p.Metadata.Example, true
}

// HasDefault reports whether the parameter declares a default value.
func (p *ParameterDefinition) HasDefault() bool {
	return p != nil && len(p.Default) > 0
}

// DefaultValue decodes the declared default value.
// The second return is false when no default is declared.
func (p *ParameterDefinition) DefaultValue() (any, bool, error) {
	if !p.HasDefault() {
		return nil, false, nil
	}
	var v any
	if err := json.Unmarshal(p.Default, &v); err != nil {
		return nil, false, fmt.Errorf("ParameterDefinition.DefaultValue: decoding default: %w", err)
	}
	return v, true, nil
}

// Category extracts the category label from the description prefix.
// A description without a recognizable category label is a validation error.
func (p *ParameterDefinition) Category() (Category, error) {
	c, _, err := ParseCategory(p.Description())
	return c, err
}

// Required reports whether the parameter must be supplied by the caller:
// it carries the Required category, has no default and is not nullable.
func (p *ParameterDefinition) Required() bool {
	c, _, err := ParseCategory(p.Description())
	if err != nil {
		return false
	}
	return c == CategoryRequired && !p.HasDefault() && !p.Nullable
}
