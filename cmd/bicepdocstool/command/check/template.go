// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package check

import (
	"log/slog"
	"os"

	"github.com/Azure/bicepdocs"
	"github.com/Azure/bicepdocs/internal/tools/checker"
	"github.com/Azure/bicepdocs/internal/tools/checks"
	"github.com/spf13/cobra"
)

// templateCmd represents the template check command.
var templateCmd = cobra.Command{
	Use:   "template [flags] dir",
	Short: "Perform validations on a Bicep module directory.",
	Long:  `Checks that every parameter carries a category-labelled description and that the template declares the metadata the README title is built from.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d := bicepdocs.NewDocGen(args[0], &bicepdocs.DocGenOptions{
			Compiler: &bicepdocs.BicepCompiler{},
		})

		model, err := d.Template(cmd.Context())
		if err != nil {
			cmd.PrintErrf("%s could not load template: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}

		chk := checker.NewValidator(slog.Default(),
			checker.NewValidatorCheck("parameter categories", func() error {
				return checks.CheckParameterCategories(model)
			}),
			checker.NewValidatorCheck("template metadata", func() error {
				return checks.CheckTemplateMetadata(model)
			}),
		)
		if err := chk.Validate(); err != nil {
			cmd.PrintErrf("%s template check error: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}
	},
}
