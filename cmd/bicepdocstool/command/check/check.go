// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package check

import (
	"github.com/spf13/cobra"
)

// CheckCmd represents the check command.
var CheckCmd = cobra.Command{
	Use:   "check",
	Short: "Perform validations.",
	Long:  `Primarily used as a tool to check the validity of a module's template metadata before generating documentation.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.PrintErrf("%s check command: missing required child command\n", cmd.ErrPrefix())
		cmd.Usage() // nolint: errcheck
	},
}

func init() {
	CheckCmd.AddCommand(&templateCmd)
}
