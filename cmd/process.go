// =============================================================================
// Express Reconcile - Process Command
// =============================================================================
//
// This file defines the 'process' command, the main command for reconciling
// sales exports against stock exports.
//
// COMMAND USAGE:
//   reconcile process [flags]
//
// FLAGS:
//   --sales       : Path to a single sales export (with --stock)
//   --stock       : Path to the matching stock export (with --sales)
//   --dialect     : Dialect code to use (default from main config)
//   --title       : Report title override
//   --branch      : Report branch/zone override
//   --doc-version : Report document version override
//   --no-archive  : Leave processed inputs in place
//
// PROCESSING PIPELINE:
//   1. Load the main configuration and all dialect configurations
//   2. Single mode: process the --sales/--stock pair
//      Batch mode: discover "<name>_express.*" / "<name>_stock.*" pairs in
//      the input directory and process them concurrently
//   3. For each pair: load, reconcile, write the summary workbook
//   4. Archive processed inputs and write the batch summary log
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"github.com/tanakrit-dev/express-reconcile/internal/config"
	"github.com/tanakrit-dev/express-reconcile/internal/reconcile"
	"github.com/tanakrit-dev/express-reconcile/internal/report"
	"github.com/tanakrit-dev/express-reconcile/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// salesPath is the sales export for single-pair mode.
var salesPath string

// stockPath is the stock export for single-pair mode.
var stockPath string

// dialectCode selects the export dialect. Empty means the main config's
// default dialect.
var dialectCode string

// reportTitle, reportBranch and reportVersion override the dialect's report
// header defaults.
var reportTitle string
var reportBranch string
var reportVersion string

// noArchive leaves processed inputs in the input directory.
var noArchive bool

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Reconcile sales exports against stock exports",
	Long: `The process command reconciles one or more sales/stock export pairs and
writes a summary workbook per pair.

With --sales and --stock a single pair is processed. Without them the input
directory is scanned for files named "<name>_express.<ext>" and
"<name>_stock.<ext>"; each complete pair is processed concurrently and the
originals are moved to the input archive on success.

Errors in one pair do not affect the others; the batch summary log in the
output directory records the outcome of every pair.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the process command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(
		&salesPath,
		"sales",
		"",
		"Path to a single sales export (used with --stock)",
	)

	processCmd.Flags().StringVar(
		&stockPath,
		"stock",
		"",
		"Path to the matching stock export (used with --sales)",
	)

	processCmd.Flags().StringVar(
		&dialectCode,
		"dialect",
		"",
		"Dialect code to use (default is the main config's default dialect)",
	)

	processCmd.Flags().StringVar(
		&reportTitle,
		"title",
		"",
		"Report title override",
	)

	processCmd.Flags().StringVar(
		&reportBranch,
		"branch",
		"",
		"Report branch/zone override",
	)

	processCmd.Flags().StringVar(
		&reportVersion,
		"doc-version",
		"",
		"Report document version override",
	)

	processCmd.Flags().BoolVar(
		&noArchive,
		"no-archive",
		false,
		"Leave processed inputs in the input directory",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess orchestrates the reconciliation pipeline.
func runProcess() error {
	startTime := time.Now()

	fmt.Println("=== Express Reconcile ===")
	fmt.Println("Loading configuration...")

	mainConfig, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load main config: %w", err)
	}

	dialects, err := config.LoadDialects(mainConfig.ConfigsDir)
	if err != nil {
		return fmt.Errorf("failed to load dialect configs: %w", err)
	}
	fmt.Printf("Loaded %d dialect configuration(s)\n", len(dialects))

	dialect, err := selectDialect(mainConfig, dialects)
	if err != nil {
		return err
	}

	logger := reconcile.NewLogger(verbose)
	meta := report.Meta{Title: reportTitle, Branch: reportBranch, Version: reportVersion}

	// =========================================================================
	// SINGLE-PAIR MODE
	// =========================================================================

	if salesPath != "" || stockPath != "" {
		if salesPath == "" || stockPath == "" {
			return fmt.Errorf("--sales and --stock must be given together")
		}

		result := reconcile.New(salesPath, stockPath, dialect, mainConfig, meta, logger).Run()
		if !result.Success {
			return fmt.Errorf("%s: %w", filepath.Base(salesPath), result.Error)
		}

		fmt.Printf("  ✓ %s -> %s\n", filepath.Base(salesPath), result.OutputFile)
		printSummary(1, 1, 0, time.Since(startTime))
		return nil
	}

	// =========================================================================
	// BATCH MODE
	// =========================================================================

	fmt.Println("Discovering export pairs...")

	pairs, incomplete, err := utils.DiscoverPairs(mainConfig.InputDir)
	if err != nil {
		return err
	}
	for _, name := range incomplete {
		fmt.Printf("  ! %s is missing its counterpart, skipping\n", name)
	}
	if len(pairs) == 0 {
		fmt.Println("No export pairs found in the input directory.")
		return nil
	}
	fmt.Printf("Found %d pair(s) to process\n", len(pairs))

	fmt.Println("Processing pairs...")

	// Each pair runs in its own goroutine; a semaphore channel caps the
	// number running at once.
	var wg sync.WaitGroup
	results := make(chan pairResult, len(pairs))
	sem := make(chan struct{}, mainConfig.MaxConcurrency)

	for _, pair := range pairs {
		wg.Add(1)

		go func(p utils.Pair) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			r := reconcile.New(p.SalesPath, p.StockPath, dialect, mainConfig, meta, logger).Run()
			results <- pairResult{pair: p, result: r}
		}(pair)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// =========================================================================
	// COLLECT RESULTS
	// =========================================================================

	var successCount, errorCount int
	var entries []utils.SummaryEntry

	for pr := range results {
		entry := utils.SummaryEntry{Name: pr.pair.Name, OutputFile: pr.result.OutputFile, Err: pr.result.Error}
		entries = append(entries, entry)

		if !pr.result.Success {
			errorCount++
			fmt.Printf("  ✗ %s: %v\n", pr.pair.Name, pr.result.Error)
			continue
		}
		successCount++
		fmt.Printf("  ✓ %s -> %s\n", pr.pair.Name, pr.result.OutputFile)

		if !noArchive {
			archivePair(pr.pair, mainConfig.InputArchiveDir)
		}
	}

	if logPath, err := utils.WriteSummaryLog(entries, mainConfig.OutputDir); err != nil {
		fmt.Printf("  ! failed to write summary log: %v\n", err)
	} else {
		fmt.Printf("Summary log: %s\n", logPath)
	}

	printSummary(len(pairs), successCount, errorCount, time.Since(startTime))

	if errorCount > 0 && !mainConfig.ContinueOnError {
		return fmt.Errorf("%d pair(s) failed", errorCount)
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// pairResult carries a pair together with its processing result through the
// results channel.
type pairResult struct {
	pair   utils.Pair
	result reconcile.Result
}

// selectDialect resolves the --dialect flag (or the configured default)
// against the loaded dialect map.
func selectDialect(mainConfig *config.MainConfig, dialects map[string]*config.DialectConfig) (*config.DialectConfig, error) {
	code := dialectCode
	if code == "" {
		code = mainConfig.DefaultDialect
	}

	dialect, ok := dialects[code]
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q (have %d dialect configs in %s)",
			code, len(dialects), mainConfig.ConfigsDir)
	}
	return dialect, nil
}

// archivePair moves both exports of a processed pair to the archive
// directory. Archive failures are reported but do not fail the run.
func archivePair(pair utils.Pair, archiveDir string) {
	for _, p := range []string{pair.SalesPath, pair.StockPath} {
		if _, err := utils.ArchiveFile(p, archiveDir); err != nil {
			fmt.Printf("  ! failed to archive %s: %v\n", filepath.Base(p), err)
		}
	}
}

// printSummary prints the closing totals for the run.
func printSummary(total, successCount, errorCount int, elapsed time.Duration) {
	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Total pairs:     %d\n", total)
	fmt.Printf("Successful:      %d\n", successCount)
	fmt.Printf("Errors:          %d\n", errorCount)
	fmt.Printf("Time elapsed:    %s\n", elapsed)
}
