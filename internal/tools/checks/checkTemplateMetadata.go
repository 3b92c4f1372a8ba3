// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package checks

import (
	"errors"

	"github.com/Azure/bicepdocs/assets"
	"github.com/hashicorp/go-multierror"
)

var (
	// ErrMissingTemplateName is returned when the template metadata has no name.
	ErrMissingTemplateName = errors.New("template metadata must declare a name")

	// ErrMissingTemplateDescription is returned when the template metadata has no description.
	ErrMissingTemplateDescription = errors.New("template metadata must declare a description")
)

// CheckTemplateMetadata validates that the template carries the metadata the
// generated title block is built from.
func CheckTemplateMetadata(m *assets.TemplateModel) error {
	var errs error

	if m.Name() == "" {
		errs = multierror.Append(errs, ErrMissingTemplateName)
	}

	if m.Description() == "" {
		errs = multierror.Append(errs, ErrMissingTemplateDescription)
	}

	return errs
}
