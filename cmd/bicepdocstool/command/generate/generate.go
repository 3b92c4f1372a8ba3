// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package generate

import (
	"os"

	"github.com/spf13/cobra"
)

// GenerateCmd is the base command for generating documentation.
var GenerateCmd = cobra.Command{
	Use:   "generate",
	Short: "Generates documentation for Bicep modules.",
	Long:  `Produces documentation for Bicep modules, currently only the module README is supported.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.PrintErrf("%s generate command: missing required child command\n", cmd.ErrPrefix())
		cmd.Usage() // nolint: errcheck
		os.Exit(1)
	},
}

func init() {
	GenerateCmd.AddCommand(&readmeCmd)
}
