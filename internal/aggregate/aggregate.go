// =============================================================================
// Express Reconcile - Quantity Aggregator
// =============================================================================
//
// This module groups the line-item stream by product barcode and sums every
// unit-tagged quantity token per row.
//
// A quantity token has the shape "<number>.<unit>", where <unit> belongs to
// the dialect's closed vocabulary of Thai unit words ("55.แพ็ค" is fifty-five
// packs). A row can carry several qualifying tokens (the export has
// separate ordered and packed columns) and all of them count towards that
// row's contribution. The numeric part may carry thousands separators.
//
// Grouping preserves first-seen barcode order so the report is stable
// between runs. Poisoned barcodes group like any other value, which is
// intentional: identically-malformed rows surface as one aggregated
// unrecognised line instead of many.
//
// =============================================================================

package aggregate

import (
	"strconv"
	"strings"

	"github.com/tanakrit-dev/express-reconcile/internal/types"
)

// minGroupTokens is the minimum row length carrying a barcode field.
const minGroupTokens = 4

// Options controls aggregation behaviour that varies by export dialect.
type Options struct {
	// UnitSuffixes is the recognised unit vocabulary.
	UnitSuffixes []string

	// Strict makes a row with zero qualifying quantity tokens a fatal
	// format error. When false such a row contributes zero.
	Strict bool
}

// Summarize groups the line items by barcode and returns one summary per
// distinct barcode in first-seen order.
func Summarize(items []types.TokenRow, opts Options) ([]types.BarcodeSummary, error) {
	var summaries []types.BarcodeSummary
	index := make(map[string]int)

	for _, row := range items {
		if len(row) < minGroupTokens {
			continue
		}

		barcode := row[2]
		if barcode == "" {
			continue
		}

		qty, tagged := RowQuantity(row, opts.UnitSuffixes)
		if tagged == 0 && opts.Strict {
			return nil, types.NewFormatError("aggregate",
				"row for bill %q has no recognisable quantity token", row[0])
		}

		i, ok := index[barcode]
		if !ok {
			i = len(summaries)
			index[barcode] = i
			summaries = append(summaries, types.BarcodeSummary{Barcode: barcode})
		}
		summaries[i].SumQty += qty
	}

	return summaries, nil
}

// RowQuantity sums every unit-tagged quantity token in the row and reports
// how many qualifying tokens were seen. A token qualifies when it contains
// ".<suffix>" for a vocabulary suffix; its numeric part is everything before
// that marker, with thousands separators stripped. Tokens whose numeric part
// does not parse contribute nothing but still count as tagged.
func RowQuantity(row types.TokenRow, suffixes []string) (float64, int) {
	sum := 0.0
	tagged := 0

	for _, tok := range row {
		for _, suffix := range suffixes {
			marker := "." + suffix
			if !strings.Contains(tok, marker) {
				continue
			}
			tagged++

			before := strings.TrimSpace(strings.SplitN(tok, marker, 2)[0])
			before = strings.ReplaceAll(before, ",", "")
			if before == "" {
				break
			}
			if v, err := strconv.ParseFloat(before, 64); err == nil {
				sum += v
			}
			break
		}
	}

	return sum, tagged
}
