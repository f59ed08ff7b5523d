// =============================================================================
// Express Reconcile - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'process', 'validate') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (reconcile)
//   ├── processCmd (reconcile process)
//   ├── pricecheckCmd (reconcile pricecheck)
//   ├── validateCmd (reconcile validate)
//   └── versionCmd (reconcile version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Express Reconcile - Check express accounting exports against stock exports",
	Long: `Express Reconcile is a CLI tool that reconciles the daily sales export of a
Thai express-accounting program against the corresponding stock export.

The sales export is a visually formatted report, not a data table: header
banners, horizontal rules, bill stubs and page footers are interleaved with
the line items, and long product names split cells apart. The tool repairs
the rows, groups the line items by bill, sums quantities per barcode, and
matches each barcode against the stock export, consuming each stock row at
most once.

Key Features:
  - Customer-specific export dialects configured via YAML
  - Legacy .xls, modern .xlsx and CSV inputs
  - Concurrent batch processing of an input directory
  - Summary workbooks with the findings highlighted
  - Unit price checking against a master product list

Example Usage:
  reconcile process --sales day1_express.xls --stock day1_stock.xlsx
  reconcile process                     # Process every pair in the input directory
  reconcile pricecheck --master products.xls --update update.xlsx
  reconcile validate                    # Validate configuration without processing`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	// Persistent flags are available to this command and all subcommands.

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
