// =============================================================================
// Express Reconcile - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which loads and validates the
// main configuration and every dialect configuration without processing any
// files. Run it after editing the YAML files to catch mistakes before the
// nightly batch does.
//
// COMMAND USAGE:
//   reconcile validate
//
// =============================================================================

package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/tanakrit-dev/express-reconcile/internal/config"
)

// =============================================================================
// VALIDATE COMMAND DEFINITION
// =============================================================================

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration files without processing",
	Long: `The validate command loads the main configuration and all dialect
configurations, applies defaults and runs every validation check. Nothing is
processed; the command fails if any configuration is invalid.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the validate command with the root command.
func init() {
	rootCmd.AddCommand(validateCmd)
}

// =============================================================================
// MAIN VALIDATION FUNCTION
// =============================================================================

// runValidate loads and validates all configuration.
func runValidate() error {
	fmt.Println("=== Configuration Validation ===")

	mainConfig, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("main config: %w", err)
	}
	fmt.Printf("  ✓ %s\n", cfgFile)

	dialects, err := config.LoadDialects(mainConfig.ConfigsDir)
	if err != nil {
		return fmt.Errorf("dialect configs: %w", err)
	}
	if len(dialects) == 0 {
		return fmt.Errorf("no dialect configurations found in %s", mainConfig.ConfigsDir)
	}

	codes := make([]string, 0, len(dialects))
	for code := range dialects {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		d := dialects[code]
		fmt.Printf("  ✓ %s (%s): terminal %q, total offset %d, %d unit suffix(es)\n",
			code, d.DialectName, d.TerminalMarker, d.TotalOffset, len(d.EffectiveUnitSuffixes()))
	}

	if _, ok := dialects[mainConfig.DefaultDialect]; !ok {
		return fmt.Errorf("default dialect %q has no configuration", mainConfig.DefaultDialect)
	}

	fmt.Printf("\nAll configuration valid (%d dialect(s), default %q)\n",
		len(dialects), mainConfig.DefaultDialect)
	return nil
}
