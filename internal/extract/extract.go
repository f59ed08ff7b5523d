// =============================================================================
// Express Reconcile - Row Extractor
// =============================================================================
//
// This module locates the tabular data region inside a noisy express
// accounting export and tokenises the rows it finds there.
//
// The export decorates its header block with two horizontal-rule rows: one
// above the column headers and one below them. A rule row is any row with at
// least one cell consisting solely of repeated '-' characters. The data
// region begins immediately after the SECOND rule row; everything above it is
// title and header noise.
//
// The export packs an entire logical row into the first cell of each sheet
// row, so each surviving row's first cell is split on runs of whitespace to
// produce the token row handed to the repair stage.
//
// =============================================================================

package extract

import (
	"strconv"
	"strings"

	"github.com/tanakrit-dev/express-reconcile/internal/config"
	"github.com/tanakrit-dev/express-reconcile/internal/types"
	"github.com/tanakrit-dev/express-reconcile/internal/workbook"
)

// Options controls extraction behaviour that varies by export dialect.
type Options struct {
	// MissingSeparatorPolicy selects what happens when the grid contains
	// fewer than two rule rows: fail the run, or return no rows.
	MissingSeparatorPolicy config.SeparatorPolicy

	// DropNumericOnlyRows removes rows whose tokens are all numeric. Such
	// rows are page-footer artifacts in some export dialects, never data.
	DropNumericOnlyRows bool
}

// TokenRows scans the grid for the data region and returns its non-empty
// rows split into whitespace-delimited tokens. A single forward pass over a
// fresh grid suffices; re-invoking on the same grid is safe since the grid
// is never mutated.
func TokenRows(grid workbook.Grid, opts Options) ([]types.TokenRow, error) {
	separators := SeparatorRows(grid)

	if len(separators) < 2 {
		if opts.MissingSeparatorPolicy == config.SeparatorEmpty {
			return nil, nil
		}
		return nil, types.NewFormatError("extract",
			"expected 2 horizontal-rule rows bounding the header block, found %d", len(separators))
	}

	start := separators[1] + 1

	var rows []types.TokenRow
	for r := start; r < grid.Rows(); r++ {
		if workbook.IsRowEmpty(grid[r]) {
			continue
		}

		tokens := strings.Fields(grid.Cell(r, 0))
		if len(tokens) == 0 {
			continue
		}

		if opts.DropNumericOnlyRows && isNumericOnly(tokens) {
			continue
		}

		rows = append(rows, types.TokenRow(tokens))
	}

	return rows, nil
}

// SeparatorRows returns the 0-based ordinates of every horizontal-rule row
// in encounter order.
func SeparatorRows(grid workbook.Grid) []int {
	var separators []int
	for r := 0; r < grid.Rows(); r++ {
		for _, cell := range grid[r] {
			if isRule(cell) {
				separators = append(separators, r)
				break
			}
		}
	}
	return separators
}

// isRule reports whether a cell consists solely of repeated '-' characters
// after trimming.
func isRule(cell string) bool {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return false
	}
	for _, r := range trimmed {
		if r != '-' {
			return false
		}
	}
	return true
}

// isNumericOnly reports whether every token parses as a number.
func isNumericOnly(tokens []string) bool {
	for _, tok := range tokens {
		cleaned := strings.ReplaceAll(tok, ",", "")
		if _, err := strconv.ParseFloat(cleaned, 64); err != nil {
			return false
		}
	}
	return true
}
