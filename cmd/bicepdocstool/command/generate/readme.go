// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package generate

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Azure/bicepdocs"
	"github.com/spf13/cobra"
)

var readmeCmd = cobra.Command{
	Use:   "readme [flags] dir",
	Short: "Generates the README for the supplied module directory.",
	Long: `Generates the README for the supplied module directory.

The directory may be a local path or any go-getter URL, e.g. a git repository
subdirectory. Remote sources are fetched into the bicepdocs cache directory.

Hand-authored content outside the generated sections is preserved.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := slog.New(slog.NewTextHandler(os.Stderr, nil))

		dir, err := bicepdocs.FetchTemplateDirectory(cmd.Context(), args[0])
		if err != nil {
			cmd.PrintErrf("%s could not fetch module directory: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}

		readmeName, _ := cmd.Flags().GetString("readme")
		sections, _ := cmd.Flags().GetStringSlice("sections")
		moduleSource, _ := cmd.Flags().GetString("source")
		parallelism, _ := cmd.Flags().GetInt("parallelism")
		bicepBinary, _ := cmd.Flags().GetString("bicep")
		noCompile, _ := cmd.Flags().GetBool("no-compile")
		noProbe, _ := cmd.Flags().GetBool("no-probe-links")
		toStdout, _ := cmd.Flags().GetBool("stdout")

		var compiler bicepdocs.Compiler
		if !noCompile {
			compiler = &bicepdocs.BicepCompiler{Binary: bicepBinary}
		}

		d := bicepdocs.NewDocGen(dir, &bicepdocs.DocGenOptions{
			Parallelism:        parallelism,
			Logger:             log,
			Compiler:           compiler,
			ModuleSource:       moduleSource,
			DisableLinkProbing: noProbe,
		})

		readmePath := filepath.Join(dir, readmeName)
		existing, err := os.ReadFile(readmePath)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			cmd.PrintErrf("%s could not read %s: %v\n", cmd.ErrPrefix(), readmePath, err)
			os.Exit(1)
		}

		if len(sections) == 0 {
			sections = nil
		}

		doc, err := d.Generate(cmd.Context(), existing, sections)
		if err != nil {
			cmd.PrintErrf("%s readme generation error: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}

		if toStdout {
			io.WriteString(os.Stdout, doc.String()) // nolint: errcheck
			return
		}
		if err := os.WriteFile(readmePath, []byte(doc.String()), 0o644); err != nil {
			cmd.PrintErrf("%s could not write %s: %v\n", cmd.ErrPrefix(), readmePath, err)
			os.Exit(1)
		}
	},
}

func init() {
	readmeCmd.Flags().String("readme", "README.md", "Name of the README file within the module directory.")
	readmeCmd.Flags().StringSlice("sections", nil, "Restrict generation to the named sections, e.g. 'Parameters,Outputs'. Default is all.")
	readmeCmd.Flags().String("source", "", "Module source path rendered in usage examples, e.g. 'br/public:avm/res/storage/storage-account:0.9.1'.")
	readmeCmd.Flags().Int("parallelism", 0, "Number of examples compiled concurrently. 0 selects the default.")
	readmeCmd.Flags().String("bicep", "", "Path to the bicep executable. Default uses 'bicep' from the PATH.")
	readmeCmd.Flags().Bool("no-compile", false, "Do not invoke the bicep CLI; require pre-compiled JSON.")
	readmeCmd.Flags().Bool("no-probe-links", false, "Do not probe resource type documentation links for reachability.")
	readmeCmd.Flags().Bool("stdout", false, "Write the generated README to stdout instead of updating the file.")
}
