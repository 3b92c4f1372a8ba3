// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package bicepdocs generates README documentation for Bicep modules.
// It reads the compiled ARM template of a module directory, validates its
// parameter metadata, compiles the associated usage examples and merges the
// generated sections into the module's README, preserving everything the
// authors wrote by hand.
//
// Sources can be compiled on the fly with the bicep CLI, or generation can
// run entirely from pre-compiled JSON.
package bicepdocs
