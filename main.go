// =============================================================================
// Express Reconcile - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Express Reconcile CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   reconcile process       - Reconcile sales exports against stock exports
//   reconcile pricecheck    - Compare unit prices against the master list
//   reconcile validate      - Validate configuration files without processing
//   reconcile version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core pipeline stages (not for external import)
//   - pkg/           : Shared utilities
//   - configs/       : Customer dialect YAML configurations
//
// =============================================================================

package main

import (
	"github.com/tanakrit-dev/express-reconcile/cmd"
)

// main delegates to the cmd package, which initializes and runs the Cobra
// CLI.
func main() {
	cmd.Execute()
}
