package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/reirokusanami/destructure/pkg/action/snapshot"
	"github.com/reirokusanami/destructure/pkg/generator"
)

func init() {
	rootCmd.AddCommand(NewSnapshotCommand())
}

func NewSnapshotCommand() *cobra.Command {
	var (
		options      = generator.NewOptions()
		manifestPath string
		name         string
		version      string
		diff         bool
		list         bool
	)

	snapCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "generate companions and record them in the manifest",
		Run: func(c *cobra.Command, args []string) {
			if list {
				m, err := snapshot.List(manifestPath)
				if err != nil {
					slog.With("error", err).Error("list failed")
					os.Exit(1)
				}
				for _, s := range m.Snapshots {
					fmt.Printf("%s\t%s\t%s\n", s.Name, s.Version, s.File)
				}
				return
			}
			if diff {
				out, err := snapshot.DiffCurrentWithPrevious(manifestPath)
				if err != nil {
					slog.With("error", err).Error("diff failed")
					os.Exit(1)
				}
				fmt.Print(out)
				return
			}

			outFile, err := snapshot.Generate(options, manifestPath, name, version)
			if err != nil {
				slog.With("error", err).Error("snapshot failed")
				os.Exit(1)
			}
			slog.With("file", outFile, "version", version).Info("snapshot recorded")
		},
	}
	snapCmd.PersistentFlags().StringVarP(&options.InDir, "input-directory", "i", ".", "directory of the package to scan")
	snapCmd.PersistentFlags().StringVarP(&options.OutDir, "output-directory", "o", "", "directory to write the generated file (defaults to the input directory)")
	snapCmd.PersistentFlags().StringVarP(&options.OutFile, "output-file", "f", "destructure_gen.go", "output file where companions will be written")
	snapCmd.PersistentFlags().StringVar(&manifestPath, "manifest", ".destructure/manifest.yaml", "manifest file tracking snapshots")
	snapCmd.PersistentFlags().StringVarP(&name, "name", "n", "companions", "snapshot name")
	snapCmd.PersistentFlags().StringVarP(&version, "snapshot-version", "v", "", "snapshot version")
	snapCmd.PersistentFlags().BoolVar(&diff, "diff", false, "print the diff between the current and previous snapshots")
	snapCmd.PersistentFlags().BoolVar(&list, "list", false, "list the snapshots recorded in the manifest")

	return snapCmd
}
