// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package command

import (
	"context"
	"os"

	"github.com/Azure/bicepdocs/cmd/bicepdocstool/command/check"
	"github.com/Azure/bicepdocs/cmd/bicepdocstool/command/generate"
	"github.com/spf13/cobra"
)

var version = "dev"

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "bicepdocstool",
	Version: version,
	Short:   "A cli tool for generating Bicep module documentation",
	Long: `A cli tool for generating Bicep module documentation.

This tool can:

- Generate or refresh the README of a Bicep module directory from its compiled template.
- Perform validation checks on a module's parameter and template metadata.
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(&generate.GenerateCmd)
	rootCmd.AddCommand(&check.CheckCmd)
}
