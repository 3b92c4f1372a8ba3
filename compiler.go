// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package bicepdocs

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Compiler produces compiled ARM template JSON from a Bicep source file.
// Implementations must be safe for concurrent use; example compilation runs
// in parallel.
type Compiler interface {
	Compile(ctx context.Context, path string) ([]byte, error)
}

var _ Compiler = (*BicepCompiler)(nil)

// BicepCompiler compiles sources by shelling out to the bicep CLI.
// The zero value uses "bicep" from the PATH.
type BicepCompiler struct {
	// Binary overrides the executable invoked.
	Binary string
}

// Compile runs `bicep build --stdout` on the given source file.
func (c *BicepCompiler) Compile(ctx context.Context, path string) ([]byte, error) {
	binary := c.Binary
	if binary == "" {
		binary = "bicep"
	}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	cmd := exec.CommandContext(ctx, binary, "build", path, "--stdout")
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("compiling %s: %s", path, msg)
	}
	return stdout.Bytes(), nil
}
