// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package processor reads a template directory from an fs.FS and produces the
// typed object model plus the list of associated usage example files.
package processor

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"

	"github.com/Azure/bicepdocs/assets"
	"github.com/bmatcuk/doublestar/v4"
)

// File names recognized inside a template directory.
const (
	CompiledTemplateFileName = "main.json"
	TemplateSourceFileName   = "main.bicep"
)

// Example files live under the e2e test tree, either as bicep sources that
// need compiling or as pre-compiled parameter documents.
var exampleGlobs = []string{
	"tests/e2e/**/main.test.bicep",
	"tests/e2e/**/main.test.json",
}

var (
	// ErrTemplateNotFound is returned when the directory contains neither a
	// compiled template nor a template source.
	ErrTemplateNotFound = errors.New("no compiled template found in template directory")

	// ErrProcessingFile is returned when a file cannot be read or decoded.
	ErrProcessingFile = errors.New("error processing file, please check the file format and content")
)

// NewErrProcessingFile creates a new error indicating the named file could not be processed.
func NewErrProcessingFile(name string, err error) error {
	return fmt.Errorf("%w: %s: %s", ErrProcessingFile, name, err.Error())
}

// Client processes a template directory.
type Client struct {
	fs fs.FS
}

// NewClient creates a new Client reading from the supplied filesystem.
func NewClient(fsys fs.FS) *Client {
	return &Client{fs: fsys}
}

// Template reads and decodes the compiled template of the directory.
func (c *Client) Template() (*assets.TemplateModel, error) {
	data, err := fs.ReadFile(c.fs, CompiledTemplateFileName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrTemplateNotFound
		}
		return nil, NewErrProcessingFile(CompiledTemplateFileName, err)
	}

	m := new(assets.TemplateModel)
	if err := NewUnmarshaler(data, path.Ext(CompiledTemplateFileName)).Unmarshal(m); err != nil {
		return nil, NewErrProcessingFile(CompiledTemplateFileName, err)
	}
	return m, nil
}

// ExamplePaths lists the usage example files associated with the template,
// sorted. When both a bicep source and its pre-compiled counterpart exist in
// the same directory only the source is kept.
func (c *Client) ExamplePaths() ([]string, error) {
	found := make([]string, 0)
	for _, pattern := range exampleGlobs {
		matches, err := doublestar.Glob(c.fs, pattern)
		if err != nil {
			return nil, fmt.Errorf("processor.ExamplePaths: globbing %s: %w", pattern, err)
		}
		found = append(found, matches...)
	}
	slices.Sort(found)

	result := make([]string, 0, len(found))
	for _, p := range found {
		if path.Ext(p) == ".json" {
			src := p[:len(p)-len(".json")] + ".bicep"
			if slices.Contains(found, src) {
				continue
			}
		}
		result = append(result, p)
	}
	return result, nil
}

// Example reads and decodes a pre-compiled example parameters document.
func (c *Client) Example(name string) (*assets.ExampleDeployment, error) {
	data, err := fs.ReadFile(c.fs, name)
	if err != nil {
		return nil, NewErrProcessingFile(name, err)
	}

	e := new(assets.ExampleDeployment)
	if err := NewUnmarshaler(data, path.Ext(name)).Unmarshal(e); err != nil {
		return nil, NewErrProcessingFile(name, err)
	}
	return e, nil
}
