/*
Copyright © 2025 SubstantialCattle5, nilaysharan.com
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/substantialcattle5/dupescan/internal/config"
	"github.com/substantialcattle5/dupescan/internal/progress"
	"github.com/substantialcattle5/dupescan/internal/report"
	"github.com/substantialcattle5/dupescan/internal/scanner"
	"github.com/substantialcattle5/dupescan/util"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [roots...]",
	Short: "Scan directories for duplicate files",
	Long: `Scan one or more directory trees and report groups of files whose
content is byte-for-byte identical. With no arguments the current
directory is scanned.

Example:
  dupescan scan ~/Pictures ~/Downloads
  dupescan scan --min-size 1MB --sort count /data
  dupescan scan --json / > duplicates.json
`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
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
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOut, _ := cmd.Flags().GetBool("json")

	pm := progress.NewManager(progress.Options{Quiet: quiet || jsonOut, Verbose: verbose})
	defer pm.Cleanup()
	ctx := pm.SetupCancellation(context.Background())

	scan, err := s.Start(ctx, roots)
	if err != nil {
		return fmt.Errorf("starting scan: %w", err)
	}

	pm.Consume(scan.Events())

	result, err := scan.Wait()
	if err != nil && !errors.Is(err, scanner.ErrCancelled) {
		return err
	}

	if pm.IsCancelled() {
		pm.PrintInfo("Reporting the duplicates confirmed before cancellation.\n")
	}
	pm.PrintVerbose("Scanned %d files, read %s", result.Stats.FilesScanned,
		util.HumanReadableSize(result.Stats.BytesRead))

	if jsonOut {
		return report.PrintJSON(os.Stdout, result)
	}
	report.PrintText(os.Stdout, result, verbose)
	return nil
}

// buildScanConfig overlays command-line flags on the config file, which
// itself overlays the defaults. Only flags the user actually set override
// file values.
func buildScanConfig(cmd *cobra.Command) (*config.ScanConfig, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}

	cfg, err := config.LoadScanConfig(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("follow-symlinks") {
		cfg.FollowSymlinks, _ = flags.GetBool("follow-symlinks")
	}
	if flags.Changed("skip-hidden") {
		cfg.SkipHidden, _ = flags.GetBool("skip-hidden")
	}
	if flags.Changed("workers") {
		cfg.WorkerCount, _ = flags.GetInt("workers")
	}
	if flags.Changed("algorithm") {
		cfg.Algorithm, _ = flags.GetString("algorithm")
	}
	if flags.Changed("sort") {
		cfg.SortBy, _ = flags.GetString("sort")
	}
	if flags.Changed("min-size") {
		raw, _ := flags.GetString("min-size")
		size, err := util.ParseByteSize(raw)
		if err != nil {
			return nil, fmt.Errorf("--min-size: %w", err)
		}
		cfg.MinSize = size
	}
	if flags.Changed("partial-size") {
		raw, _ := flags.GetString("partial-size")
		size, err := util.ParseByteSize(raw)
		if err != nil {
			return nil, fmt.Errorf("--partial-size: %w", err)
		}
		cfg.PartialReadSize = size
	}

	return cfg, nil
}

func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("follow-symlinks", false, "Follow symbolic links during traversal")
	cmd.Flags().Bool("skip-hidden", false, "Skip hidden files and directories")
	cmd.Flags().StringP("min-size", "s", "1", "Minimum file size to consider (e.g. 4096, 64KB, 1MB)")
	cmd.Flags().String("partial-size", "64KB", "Prefix length for the partial-hash prefilter")
	cmd.Flags().IntP("workers", "w", 0, "Hashing worker count (0 = logical CPU count)")
	cmd.Flags().StringP("algorithm", "a", "xxhash", "Hash algorithm: xxhash, highway or blake3")
	cmd.Flags().String("sort", "reclaimable", "Result order: reclaimable, size or count")
	cmd.Flags().String("config", "", "Config file path (default ~/.dupescan.yaml)")
}

func init() {
	rootCmd.AddCommand(scanCmd)
	addScanFlags(scanCmd)
	scanCmd.Flags().Bool("json", false, "Emit results as JSON instead of text")
}
