// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package checks contains the individual template model validations run
// before document generation.
package checks

import (
	"fmt"
	"slices"

	"github.com/Azure/bicepdocs/assets"
	"github.com/hashicorp/go-multierror"
)

// CheckParameterCategories validates that every parameter, type definition
// property and discriminated variant property carries a category-labelled
// description. All offending parameters are reported together so the template
// author can fix them in one pass.
func CheckParameterCategories(m *assets.TemplateModel) error {
	var errs error

	for _, name := range m.ParameterNames() {
		errs = appendCategoryErrors(errs, name, m.Parameters[name])
	}

	defNames := make([]string, 0, len(m.Definitions))
	for n := range m.Definitions {
		defNames = append(defNames, n)
	}
	slices.Sort(defNames)

	for _, name := range defNames {
		def := m.Definitions[name]
		// The definition itself needs no description; its properties do.
		errs = appendChildCategoryErrors(errs, name, def)
	}

	return errs
}

func appendCategoryErrors(errs error, path string, def *assets.ParameterDefinition) error {
	if def == nil {
		return errs
	}

	if _, err := def.Category(); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("parameter '%s': %w", path, err))
	}

	return appendChildCategoryErrors(errs, path, def)
}

func appendChildCategoryErrors(errs error, path string, def *assets.ParameterDefinition) error {
	if def == nil {
		return errs
	}

	propNames := make([]string, 0, len(def.Properties))
	for n := range def.Properties {
		propNames = append(propNames, n)
	}
	slices.Sort(propNames)

	for _, n := range propNames {
		errs = appendCategoryErrors(errs, path+"."+n, def.Properties[n])
	}

	if def.Items != nil && def.Items.Ref == "" {
		errs = appendChildCategoryErrors(errs, path, def.Items)
	}

	if def.Discriminator != nil {
		variantNames := make([]string, 0, len(def.Discriminator.Mapping))
		for n := range def.Discriminator.Mapping {
			variantNames = append(variantNames, n)
		}
		slices.Sort(variantNames)

		for _, n := range variantNames {
			variant := def.Discriminator.Mapping[n]
			if variant == nil || variant.Ref != "" {
				// Referenced variants are validated with their definition.
				continue
			}
			errs = appendChildCategoryErrors(errs, path+"."+def.Discriminator.PropertyName+"-"+n, variant)
		}
	}

	return errs
}
