// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package assets

import (
	"fmt"
	"slices"
	"strings"

	"github.com/brunoga/deep"
)

// TypeKind tags the variants of a resolved type tree.
type TypeKind int

const (
	TypeKindPrimitive TypeKind = iota
	TypeKindObject
	TypeKindArray
	TypeKindUnion
)

// String returns the display name of the type kind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindObject:
		return "object"
	case TypeKindArray:
		return "array"
	case TypeKindUnion:
		return "union"
	default:
		return "primitive"
	}
}

// TypeTree is the resolved shape of a parameter or type definition.
// All $ref indirection has been followed and discriminated unions expanded,
// so renderers never need to inspect raw definitions.
// Do not build this directly, use a TypeResolver.
type TypeTree struct {
	Kind          TypeKind
	TypeName      string               // display type, e.g. "string", "object", "array"
	Definition    *ParameterDefinition // detached copy carrying description, default, constraints
	Properties    []TypeTreeProperty   // object properties, sorted by name
	Items         *TypeTree            // array element type
	Discriminator string               // union discriminator property name
	Variants      []TypeTreeVariant    // union variants, sorted by name
}

// TypeTreeProperty is a named property of an object node.
type TypeTreeProperty struct {
	Name string
	Tree *TypeTree
}

// TypeTreeVariant is a named variant of a discriminated union node.
type TypeTreeVariant struct {
	Name string
	Tree *TypeTree
}

// TypeResolver resolves raw parameter definitions into TypeTrees.
// Create with NewTypeResolver.
type TypeResolver struct {
	definitions map[string]*ParameterDefinition
}

// NewTypeResolver creates a TypeResolver over the template's type definitions.
func NewTypeResolver(m *TemplateModel) *TypeResolver {
	defs := m.Definitions
	if defs == nil {
		defs = map[string]*ParameterDefinition{}
	}
	return &TypeResolver{definitions: defs}
}

const definitionRefPrefix = "#/definitions/"

// Resolve turns a raw definition into a detached TypeTree.
// The returned tree shares no memory with the template model.
func (r *TypeResolver) Resolve(def *ParameterDefinition) (*TypeTree, error) {
	return r.resolve(def, map[string]bool{})
}

func (r *TypeResolver) resolve(def *ParameterDefinition, visiting map[string]bool) (*TypeTree, error) {
	if def == nil {
		return nil, fmt.Errorf("TypeResolver.Resolve: definition is nil")
	}

	if def.Ref != "" {
		name := strings.TrimPrefix(def.Ref, definitionRefPrefix)
		target, ok := r.definitions[name]
		if !ok {
			return nil, NewErrUnknownDefinition(def.Ref)
		}

		// Recursive types terminate at the second visit with an opaque
		// primitive named after the definition.
		if visiting[name] {
			return &TypeTree{
				Kind:       TypeKindPrimitive,
				TypeName:   name,
				Definition: mergedDefinitionCopy(def, target),
			}, nil
		}

		visiting[name] = true
		defer delete(visiting, name)

		merged := mergedDefinitionCopy(def, target)
		return r.resolveShape(merged, visiting)
	}

	return r.resolveShape(deep.MustCopy(def), visiting)
}

func (r *TypeResolver) resolveShape(def *ParameterDefinition, visiting map[string]bool) (*TypeTree, error) {
	node := &TypeTree{
		Definition: def,
		TypeName:   def.Type,
	}

	switch {
	case def.Discriminator != nil:
		node.Kind = TypeKindUnion
		node.TypeName = "object"
		node.Discriminator = def.Discriminator.PropertyName

		names := make([]string, 0, len(def.Discriminator.Mapping))
		for n := range def.Discriminator.Mapping {
			names = append(names, n)
		}
		slices.Sort(names)

		for _, n := range names {
			sub, err := r.resolve(def.Discriminator.Mapping[n], visiting)
			if err != nil {
				return nil, fmt.Errorf("TypeResolver.Resolve: variant '%s': %w", n, err)
			}
			node.Variants = append(node.Variants, TypeTreeVariant{Name: n, Tree: sub})
		}

	case def.Type == "array":
		node.Kind = TypeKindArray
		if def.Items != nil {
			items, err := r.resolve(def.Items, visiting)
			if err != nil {
				return nil, fmt.Errorf("TypeResolver.Resolve: array items: %w", err)
			}
			node.Items = items
		}

	case def.Type == "object" || len(def.Properties) > 0:
		node.Kind = TypeKindObject
		if node.TypeName == "" {
			node.TypeName = "object"
		}

		names := make([]string, 0, len(def.Properties))
		for n := range def.Properties {
			names = append(names, n)
		}
		slices.Sort(names)

		for _, n := range names {
			sub, err := r.resolve(def.Properties[n], visiting)
			if err != nil {
				return nil, fmt.Errorf("TypeResolver.Resolve: property '%s': %w", n, err)
			}
			node.Properties = append(node.Properties, TypeTreeProperty{Name: n, Tree: sub})
		}

	default:
		node.Kind = TypeKindPrimitive
	}

	return node, nil
}

// mergedDefinitionCopy overlays the referring definition onto a copy of the
// referenced one. The referring site wins for description, default, nullability
// and example, matching how the compiler emits parameter-level metadata on
// $ref parameters.
func mergedDefinitionCopy(ref, target *ParameterDefinition) *ParameterDefinition {
	merged := deep.MustCopy(target)

	if ref.Metadata != nil {
		merged.Metadata = deep.MustCopy(ref.Metadata)
	}
	if ref.HasDefault() {
		merged.Default = slices.Clone(ref.Default)
	}
	if ref.Nullable {
		merged.Nullable = true
	}
	return merged
}
