// Package snapshot generates companions and records the output in a
// manifest, so earlier generations of the same package can be diffed.
package snapshot

import (
	"fmt"
	"os"

	"github.com/google/go-cmp/cmp"

	"github.com/reirokusanami/destructure/pkg/generator"
	"github.com/reirokusanami/destructure/pkg/manifest"
)

// Generate writes companions for the configured package and records the
// output file in the manifest.
func Generate(opts *generator.Options, manifestPath, snapshotName, snapshotVersion string) (string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}

	g, err := generator.NewWithOpts(opts)
	if err != nil {
		return "", err
	}
	outFile, err := g.Generate()
	if err != nil {
		return "", err
	}

	m.AddSnapshot(manifest.Snapshot{Name: snapshotName, Version: snapshotVersion, File: outFile})
	if err := m.Save(manifestPath); err != nil {
		return "", err
	}

	return outFile, nil
}

// List returns all snapshots recorded in the manifest.
func List(manifestPath string) (*manifest.Manifest, error) {
	return manifest.Load(manifestPath)
}

// DiffCurrentWithPrevious loads the manifest, locates the current and
// previous snapshot files, and returns a textual diff of their contents.
func DiffCurrentWithPrevious(manifestPath string) (string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}

	if m.CurrentVersion == "" || m.PreviousVersion == "" {
		return "", fmt.Errorf("no current/previous snapshots recorded")
	}

	currentPath := m.SnapshotFile(m.CurrentVersion)
	previousPath := m.SnapshotFile(m.PreviousVersion)

	if currentPath == "" || previousPath == "" {
		return "", fmt.Errorf("snapshot files not found in manifest")
	}

	current, err := os.ReadFile(currentPath)
	if err != nil {
		return "", fmt.Errorf("read current snapshot: %w", err)
	}

	previous, err := os.ReadFile(previousPath)
	if err != nil {
		return "", fmt.Errorf("read previous snapshot: %w", err)
	}

	return cmp.Diff(string(previous), string(current)), nil
}
