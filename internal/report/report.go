// Package report renders scan results for the command line. Serialization
// is a caller concern, so it lives here rather than in the engine.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/substantialcattle5/dupescan/internal/constants"
	"github.com/substantialcattle5/dupescan/internal/scanner"
	"github.com/substantialcattle5/dupescan/util"
)

// PrintJSON writes the full result as indented JSON.
func PrintJSON(w io.Writer, result *scanner.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling result: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	return nil
}

// PrintText writes a human-readable listing of duplicate sets followed by
// the scan summary.
func PrintText(w io.Writer, result *scanner.Result, verbose bool) {
	header := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.Faint)
	warn := color.New(color.FgYellow)

	if result.Cancelled {
		warn.Fprintln(w, "Scan cancelled — results below are partial.")
	}

	if len(result.Sets) == 0 {
		fmt.Fprintln(w, "No duplicates found.")
	}

	for i, set := range result.Sets {
		digest := set.Digest
		if len(digest) > constants.HashDisplayLength {
			digest = digest[:constants.HashDisplayLength]
		}
		header.Fprintf(w, "#%d  %s × %d  (reclaimable %s)\n",
			i+1, util.HumanReadableSize(set.Size), len(set.Paths),
			util.HumanReadableSize(set.Reclaimable()))
		dim.Fprintf(w, "    digest %s\n", digest)
		for _, path := range set.Paths {
			fmt.Fprintf(w, "    %s\n", path)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Files scanned:  %d\n", result.Stats.FilesScanned)
	fmt.Fprintf(w, "Bytes read:     %s\n", util.HumanReadableSize(result.Stats.BytesRead))
	fmt.Fprintf(w, "Duplicates:     %d files in %d sets\n", result.Stats.DuplicateFiles, result.Stats.DuplicateSets)
	fmt.Fprintf(w, "Reclaimable:    %s\n", util.HumanReadableSize(result.Stats.ReclaimableBytes))

	if result.Stats.SkippedFiles > 0 {
		warn.Fprintf(w, "Skipped:        %d files\n", result.Stats.SkippedFiles)
		if verbose {
			for _, warning := range result.Stats.Warnings {
				warn.Fprintf(w, "    %s [%s/%s]: %s\n", warning.Path, warning.Phase, warning.Kind, warning.Reason)
			}
		}
	}
}
