// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package processor

import (
	"os"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplate(t *testing.T) {
	t.Parallel()

	c := NewClient(os.DirFS("./testdata"))
	m, err := c.Template()
	require.NoError(t, err)
	assert.Equal(t, "Storage Account", m.Name())
	assert.Equal(t, "This module deploys a Storage Account.", m.Description())
	assert.Len(t, m.Parameters, 2)
	assert.Len(t, m.Outputs, 1)

	require.True(t, m.HasParameter("name"))
	assert.True(t, m.Parameters["name"].Required())
	assert.True(t, m.Parameters["location"].HasDefault())
}

func TestTemplateNotFound(t *testing.T) {
	t.Parallel()

	c := NewClient(fstest.MapFS{})
	_, err := c.Template()
	require.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestTemplateMalformed(t *testing.T) {
	t.Parallel()

	c := NewClient(fstest.MapFS{
		"main.json": &fstest.MapFile{Data: []byte(`{"parameters": [`)},
	})
	_, err := c.Template()
	require.ErrorIs(t, err, ErrProcessingFile)
	assert.ErrorContains(t, err, "main.json")
}

func TestExamplePaths(t *testing.T) {
	t.Parallel()

	c := NewClient(os.DirFS("./testdata"))
	paths, err := c.ExamplePaths()
	require.NoError(t, err)

	// The waf-aligned example has both a source and a pre-compiled file;
	// only the source survives.
	assert.Equal(t, []string{
		"tests/e2e/defaults/main.test.json",
		"tests/e2e/waf-aligned/main.test.bicep",
	}, paths)
}

func TestExample(t *testing.T) {
	t.Parallel()

	c := NewClient(os.DirFS("./testdata"))
	e, err := c.Example("tests/e2e/defaults/main.test.json")
	require.NoError(t, err)
	require.NotNil(t, e.Metadata)
	assert.Equal(t, "Using only defaults", e.Metadata.Name)
	assert.Equal(t, []string{"name"}, e.ParameterNames())
}

func TestExampleMalformed(t *testing.T) {
	t.Parallel()

	c := NewClient(fstest.MapFS{
		"tests/e2e/broken/main.test.json": &fstest.MapFile{Data: []byte("{")},
	})
	_, err := c.Example("tests/e2e/broken/main.test.json")
	require.ErrorIs(t, err, ErrProcessingFile)
	assert.ErrorContains(t, err, "tests/e2e/broken/main.test.json")
}

func TestUnmarshalerYaml(t *testing.T) {
	t.Parallel()

	var dst map[string]any
	require.NoError(t, NewUnmarshaler([]byte("name: test\n"), "yaml").Unmarshal(&dst))
	assert.Equal(t, "test", dst["name"])
}

func TestUnmarshalerUnsupportedExtension(t *testing.T) {
	t.Parallel()

	var dst any
	assert.Error(t, NewUnmarshaler([]byte("{}"), ".toml").Unmarshal(&dst))
}
