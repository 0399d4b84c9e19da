package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/reirokusanami/destructure/pkg/generator"
)

func init() {
	rootCmd.AddCommand(NewGenerateCommand())
}

func NewGenerateCommand() *cobra.Command {
	options := generator.NewOptions()

	genCmd := &cobra.Command{
		Use:   "generate",
		Short: "generate companion types",
		Long:  "Scan a package for derive markers and write the companion types and methods",
		Run: func(c *cobra.Command, args []string) {
			g, err := generator.NewWithOpts(options)
			if err != nil {
				slog.With("error", err).Error("invalid options")
				os.Exit(1)
			}
			outFile, err := g.Generate()
			if err != nil {
				slog.With("error", err).Error("generation failed")
				os.Exit(1)
			}
			slog.With("file", outFile).Info("companions generated")
		},
	}
	genCmd.PersistentFlags().StringVarP(&options.InDir, "input-directory", "i", ".", "directory of the package to scan")
	genCmd.PersistentFlags().StringVarP(&options.OutDir, "output-directory", "o", "", "directory to write the generated file (defaults to the input directory)")
	genCmd.PersistentFlags().StringVarP(&options.OutFile, "output-file", "f", "destructure_gen.go", "output file where companions will be written")
	genCmd.PersistentFlags().StringSliceVarP(&options.Derive, "derive", "d", []string{}, "derivations applied to marker-less structs (Destructure, DestructureRef, Mutation)")
	genCmd.PersistentFlags().StringSliceVarP(&options.ExcludeTypes, "exclude-types", "t", []string{}, "exclude named types from generation")

	return genCmd
}
