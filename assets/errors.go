// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package assets

import "fmt"

var _ error = (*ErrMissingCategory)(nil)
var _ error = (*ErrUnknownDefinition)(nil)
var _ error = (*ErrTemplateDecode)(nil)

// ErrMissingCategory is an error type that indicates a parameter description
// does not begin with a category label.
type ErrMissingCategory struct {
	Description string
}

// Error implements the error interface for type ErrMissingCategory.
func (e *ErrMissingCategory) Error() string {
	return fmt.Sprintf(
		"description %q does not start with a category label, e.g. `Required.`, `Optional.`, `Conditional.` or `Generated.`",
		e.Description,
	)
}

// NewErrMissingCategory creates a new ErrMissingCategory error.
func NewErrMissingCategory(description string) error {
	return &ErrMissingCategory{Description: description}
}

// ErrUnknownDefinition is an error type that indicates a $ref points at a
// type definition that does not exist in the template.
type ErrUnknownDefinition struct {
	Ref string
}

// Error implements the error interface for type ErrUnknownDefinition.
func (e *ErrUnknownDefinition) Error() string {
	return fmt.Sprintf("reference '%s' does not resolve to a type definition in the template", e.Ref)
}

// NewErrUnknownDefinition creates a new ErrUnknownDefinition error.
func NewErrUnknownDefinition(ref string) error {
	return &ErrUnknownDefinition{Ref: ref}
}

// ErrTemplateDecode is an error type that indicates compiled template JSON
// could not be decoded into the object model.
type ErrTemplateDecode struct {
	Err error
}

// Error implements the error interface for type ErrTemplateDecode.
func (e *ErrTemplateDecode) Error() string {
	return fmt.Sprintf("decoding compiled template: %v", e.Err)
}

// Unwrap returns the underlying decode error.
func (e *ErrTemplateDecode) Unwrap() error {
	return e.Err
}

// NewErrTemplateDecode creates a new ErrTemplateDecode error.
func NewErrTemplateDecode(err error) error {
	return &ErrTemplateDecode{Err: err}
}
