// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package checks

import (
	"testing"

	"github.com/Azure/bicepdocs/assets"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckParameterCategoriesValid(t *testing.T) {
	t.Parallel()

	m := &assets.TemplateModel{
		Parameters: map[string]*assets.ParameterDefinition{
			"name": {
				Type:     "string",
				Metadata: &assets.ParameterMetadata{Description: "Required. The name."},
			},
			"tags": {
				Type:     "object",
				Metadata: &assets.ParameterMetadata{Description: "Optional. Resource tags."},
			},
		},
	}

	require.NoError(t, CheckParameterCategories(m))
}

func TestCheckParameterCategoriesNamesEveryOffender(t *testing.T) {
	t.Parallel()

	m := &assets.TemplateModel{
		Parameters: map[string]*assets.ParameterDefinition{
			"alpha": {
				Type:     "string",
				Metadata: &assets.ParameterMetadata{Description: "no category prefix"},
			},
			"beta": {
				Type:     "string",
				Metadata: &assets.ParameterMetadata{Description: "Required. Fine."},
			},
			"gamma": {Type: "string"},
		},
	}

	err := CheckParameterCategories(m)
	require.Error(t, err)

	merr := new(multierror.Error)
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 2)
	assert.ErrorContains(t, err, "parameter 'alpha'")
	assert.ErrorContains(t, err, "parameter 'gamma'")
	assert.NotContains(t, err.Error(), "beta")
}

func TestCheckParameterCategoriesNestedProperties(t *testing.T) {
	t.Parallel()

	m := &assets.TemplateModel{
		Definitions: map[string]*assets.ParameterDefinition{
			"lockType": {
				Type: "object",
				Properties: map[string]*assets.ParameterDefinition{
					"kind": {
						Type:     "string",
						Metadata: &assets.ParameterMetadata{Description: "missing label"},
					},
				},
			},
		},
	}

	err := CheckParameterCategories(m)
	require.Error(t, err)
	assert.ErrorContains(t, err, "parameter 'lockType.kind'")
}

func TestCheckTemplateMetadata(t *testing.T) {
	t.Parallel()

	err := CheckTemplateMetadata(&assets.TemplateModel{})
	require.ErrorIs(t, err, ErrMissingTemplateName)
	require.ErrorIs(t, err, ErrMissingTemplateDescription)

	ok := &assets.TemplateModel{
		Metadata: &assets.TemplateMetadata{Name: "n", Description: "d"},
	}
	require.NoError(t, CheckTemplateMetadata(ok))
}
