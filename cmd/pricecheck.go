// =============================================================================
// Express Reconcile - Price Check Command
// =============================================================================
//
// This file defines the 'pricecheck' command, which compares the accounting
// system's master product/price list against a hand-maintained update sheet.
//
// COMMAND USAGE:
//   reconcile pricecheck --master <file> --update <file> [flags]
//
// OUTPUT:
//   A workbook with two sheets: "Not Found Product" for update rows whose
//   barcode the master list does not carry, and "Outdated Unit Price" for
//   rows whose price no longer agrees at two decimal places.
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/tanakrit-dev/express-reconcile/internal/config"
	"github.com/tanakrit-dev/express-reconcile/internal/pricecheck"
	"github.com/tanakrit-dev/express-reconcile/internal/workbook"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// masterPath is the master product/price list export.
var masterPath string

// updatePath is the hand-maintained update price sheet.
var updatePath string

// pricecheckOut overrides the output workbook path.
var pricecheckOut string

// =============================================================================
// PRICECHECK COMMAND DEFINITION
// =============================================================================

// pricecheckCmd represents the 'pricecheck' command.
var pricecheckCmd = &cobra.Command{
	Use:   "pricecheck",
	Short: "Compare unit prices against the master product list",
	Long: `The pricecheck command parses the master product list exported by the
accounting system, compares every row of the update price sheet against it,
and writes a workbook listing the products that were not found and the
products whose unit price disagrees at two decimal places.

Barcodes on both sides are cleaned before comparison: exotic unicode spaces
are folded, stuttered "No" prefixes are stripped, and trailing annotations
after a slash, plus sign or Thai text are cut off.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runPricecheck()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the pricecheck command with the root command and sets up
// flags.
func init() {
	rootCmd.AddCommand(pricecheckCmd)

	pricecheckCmd.Flags().StringVar(
		&masterPath,
		"master",
		"",
		"Path to the master product/price list export",
	)

	pricecheckCmd.Flags().StringVar(
		&updatePath,
		"update",
		"",
		"Path to the update price sheet",
	)

	pricecheckCmd.Flags().StringVar(
		&pricecheckOut,
		"out",
		"",
		"Output workbook path (default price_check_<timestamp>.xlsx in the output directory)",
	)

	pricecheckCmd.MarkFlagRequired("master")
	pricecheckCmd.MarkFlagRequired("update")
}

// =============================================================================
// MAIN PRICE CHECK FUNCTION
// =============================================================================

// runPricecheck loads both sheets, compares them and writes the result
// workbook.
func runPricecheck() error {
	mainConfig, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load main config: %w", err)
	}

	master, err := workbook.Load(masterPath)
	if err != nil {
		return fmt.Errorf("master list: %w", err)
	}
	update, err := workbook.Load(updatePath)
	if err != nil {
		return fmt.Errorf("update sheet: %w", err)
	}

	entries := pricecheck.ParseMaster(master)
	if len(entries) == 0 {
		return fmt.Errorf("no product rows found in %s", filepath.Base(masterPath))
	}
	fmt.Printf("Parsed %d product(s) from the master list\n", len(entries))

	cmp := pricecheck.Compare(entries, update)
	fmt.Printf("Not found:       %d\n", len(cmp.NotFound))
	fmt.Printf("Outdated prices: %d\n", len(cmp.Outdated))

	f, err := pricecheck.WriteResult(update, cmp)
	if err != nil {
		return fmt.Errorf("failed to build result workbook: %w", err)
	}
	defer f.Close()

	outPath := pricecheckOut
	if outPath == "" {
		name := fmt.Sprintf("price_check_%s.xlsx", time.Now().Format("20060102_150405"))
		outPath = filepath.Join(mainConfig.OutputDir, name)
	}
	if err := f.SaveAs(outPath); err != nil {
		return fmt.Errorf("failed to save result workbook: %w", err)
	}

	fmt.Printf("Result workbook: %s\n", outPath)
	return nil
}
