// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package assets

import (
	"encoding/json"
	"slices"
)

// ExampleDeployment is the compiled parameters document of a usage example.
type ExampleDeployment struct {
	Schema     string                       `json:"$schema,omitempty"`
	Metadata   *ExampleMetadata             `json:"metadata,omitempty"`
	Parameters map[string]*ExampleParameter `json:"parameters"`
}

// ExampleMetadata carries the optional display metadata of an example.
type ExampleMetadata struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// ExampleParameter is a single supplied parameter value.
type ExampleParameter struct {
	Value any `json:"value"`
}

// ParameterNames returns the supplied parameter names, sorted.
func (e *ExampleDeployment) ParameterNames() []string {
	names := make([]string, 0, len(e.Parameters))
	for n := range e.Parameters {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// NewExampleDeploymentFromJSON unmarshals a compiled example parameters
// document.
func NewExampleDeploymentFromJSON(data []byte) (*ExampleDeployment, error) {
	e := new(ExampleDeployment)
	if err := json.Unmarshal(data, e); err != nil {
		return nil, NewErrTemplateDecode(err)
	}
	return e, nil
}
