/*
Copyright © 2025 SubstantialCattle5, nilaysharan.com
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/substantialcattle5/dupescan/internal/progress"
	"github.com/substantialcattle5/dupescan/internal/scanner"
	"github.com/substantialcattle5/dupescan/util"
)

// pruneCmd represents the prune command. Deletion is strictly a
// command-side action: the scan engine itself never touches files.
var pruneCmd = &cobra.Command{
	Use:   "prune [roots...]",
	Short: "Interactively delete confirmed duplicate files",
	Long: `Scan for duplicates, then walk through each confirmed set and offer
to delete every copy except the first one found. Nothing is removed
without confirmation unless --dry-run shows what would happen.

Example:
  dupescan prune ~/Downloads
  dupescan prune --dry-run /data
`,
	RunE: runPrune,
}

func runPrune(cmd *cobra.Command, args []string) error {
	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	cfg, err := buildScanConfig(cmd)
	if err != nil {
		return err
	}

	s, err := scanner.New(*cfg)
	if err != nil {
		return err
	}

	quiet, _ := cmd.Flags().GetBool("quiet")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	pm := progress.NewManager(progress.Options{Quiet: quiet})
	defer pm.Cleanup()
	ctx := pm.SetupCancellation(context.Background())

	scan, err := s.Start(ctx, roots)
	if err != nil {
		return fmt.Errorf("starting scan: %w", err)
	}
	pm.Consume(scan.Events())

	result, err := scan.Wait()
	if err != nil {
		if errors.Is(err, scanner.ErrCancelled) {
			pm.PrintInfo("Scan cancelled, nothing pruned.\n")
			return nil
		}
		return err
	}
	pm.PrintVerbose("Scanned %d files, read %s", result.Stats.FilesScanned,
		util.HumanReadableSize(result.Stats.BytesRead))

	if len(result.Sets) == 0 {
		pm.PrintInfo("No duplicates found.\n")
		return nil
	}

	victims, err := selectVictims(cmd, result.Sets, dryRun)
	if err != nil {
		return err
	}
	if len(victims) == 0 {
		fmt.Println("Nothing selected for deletion.")
		return nil
	}

	var reclaim int64
	for _, v := range victims {
		reclaim += v.size
	}

	if dryRun {
		fmt.Printf("Dry run: would delete %d files, freeing %s\n", len(victims), util.HumanReadableSize(reclaim))
		for _, v := range victims {
			fmt.Printf("  %s\n", v.path)
		}
		return nil
	}

	// Final gate before anything irreversible happens.
	confirmPrompt := promptui.Prompt{
		Label:     fmt.Sprintf("Delete %d files, freeing %s", len(victims), util.HumanReadableSize(reclaim)),
		IsConfirm: true,
	}
	if _, err := confirmPrompt.Run(); err != nil {
		if err == promptui.ErrAbort {
			fmt.Println("Prune cancelled.")
			return nil
		}
		return fmt.Errorf("confirmation failed: %w", err)
	}

	deleted := 0
	var freed int64
	for _, v := range victims {
		if err := os.Remove(v.path); err != nil {
			color.Red("failed to delete %s: %v", v.path, err)
			continue
		}
		deleted++
		freed += v.size
	}

	fmt.Printf("Deleted %d files, freed %s\n", deleted, util.HumanReadableSize(freed))
	return nil
}

type victim struct {
	path string
	size int64
}

// selectVictims asks per duplicate set whether its extra copies should be
// removed. The first path in a set — the first one discovered — is always
// kept. In dry-run mode every set is selected without prompting.
func selectVictims(cmd *cobra.Command, sets []scanner.DuplicateSet, dryRun bool) ([]victim, error) {
	var victims []victim
	bold := color.New(color.Bold)

	for i, set := range sets {
		bold.Printf("#%d  %s x %d (keeping %s)\n", i+1, util.HumanReadableSize(set.Size), len(set.Paths), set.Paths[0])
		for _, path := range set.Paths[1:] {
			fmt.Printf("    %s\n", path)
		}

		if !dryRun {
			ok, err := util.Confirm(fmt.Sprintf("Delete the %d extra copies", len(set.Paths)-1), cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return nil, fmt.Errorf("reading confirmation: %w", err)
			}
			if !ok {
				continue
			}
		}

		for _, path := range set.Paths[1:] {
			victims = append(victims, victim{path: path, size: set.Size})
		}
	}

	return victims, nil
}

func init() {
	rootCmd.AddCommand(pruneCmd)
	addScanFlags(pruneCmd)
	pruneCmd.Flags().Bool("dry-run", false, "Show what would be deleted without deleting anything")
}
