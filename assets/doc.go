// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package assets provides the types used to represent a compiled template's
// object model: parameters, reusable type definitions, resources, outputs and
// exported functions.
//
// The model is read-only once built. Renderers should not consume the raw
// definitions directly but resolve them into a TypeTree first, which follows
// $ref indirection and discriminated unions exactly once.
package assets
