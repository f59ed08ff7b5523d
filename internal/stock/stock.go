// =============================================================================
// Express Reconcile - Stock Table & Matcher
// =============================================================================
//
// This module reduces the stock export to the configured columns and resolves
// aggregated demand against it with consume-once semantics: each stock row
// may satisfy at most one demand line, modelling physical stock being claimed
// by a sale. When the stock export repeats a barcode, the earliest unclaimed
// row is consumed first, so a second demand line for the same barcode claims
// the second stock row rather than re-matching the first.
//
// Barcodes are compared by normalised integer value. A stock row whose
// barcode does not normalise is excluded from matching entirely. A demand
// line carrying the poison marker never reaches the lookup; it is reported
// as malformed with the original field text split back out of the marker.
//
// =============================================================================

package stock

import (
	"strconv"
	"strings"

	"github.com/tanakrit-dev/express-reconcile/internal/config"
	"github.com/tanakrit-dev/express-reconcile/internal/types"
	"github.com/tanakrit-dev/express-reconcile/internal/workbook"
)

// =============================================================================
// STOCK TABLE EXTRACTION
// =============================================================================

// Records reduces the stock grid to one StockRecord per non-empty data row.
// The first grid row is the header and is skipped; cols selects which
// 1-based columns hold each field.
func Records(grid workbook.Grid, cols config.StockColumns) []types.StockRecord {
	var records []types.StockRecord

	for r := 1; r < grid.Rows(); r++ {
		rec := types.StockRecord{
			Barcode:     grid.Cell(r, cols.Barcode-1),
			Description: grid.Cell(r, cols.Description-1),
			Quantity:    grid.Cell(r, cols.Quantity-1),
			Row:         r + 1,
		}
		for _, extra := range cols.Extra {
			rec.Extra = append(rec.Extra, grid.Cell(r, extra-1))
		}

		if rec.Barcode == "" && rec.Description == "" && rec.Quantity == "" {
			continue
		}

		records = append(records, rec)
	}

	return records
}

// =============================================================================
// CONSUME-ONCE POOL
// =============================================================================

// pool indexes stock records by normalised barcode and hands each record out
// at most once. Records sharing a barcode queue up in table order.
type pool struct {
	records []types.StockRecord
	taken   []bool
	queues  map[int64][]int
}

// newPool builds the pool. Rows whose barcode fails integer normalisation
// stay in the record list (they appear in the leftover) but never match.
func newPool(records []types.StockRecord) *pool {
	p := &pool{
		records: records,
		taken:   make([]bool, len(records)),
		queues:  make(map[int64][]int),
	}
	for i, rec := range records {
		if key, ok := normalizeBarcode(rec.Barcode); ok {
			p.queues[key] = append(p.queues[key], i)
		}
	}
	return p
}

// take consumes and returns the earliest unclaimed record for the barcode.
func (p *pool) take(key int64) (*types.StockRecord, bool) {
	queue := p.queues[key]
	if len(queue) == 0 {
		return nil, false
	}
	i := queue[0]
	p.queues[key] = queue[1:]
	p.taken[i] = true
	return &p.records[i], true
}

// leftover returns the unclaimed records in table order.
func (p *pool) leftover() []types.StockRecord {
	var rest []types.StockRecord
	for i, rec := range p.records {
		if !p.taken[i] {
			rest = append(rest, rec)
		}
	}
	return rest
}

// =============================================================================
// MATCHING
// =============================================================================

// Match resolves each barcode summary against the stock records in a single
// consuming pass and returns one MatchResult per summary plus the unclaimed
// stock rows.
func Match(summaries []types.BarcodeSummary, records []types.StockRecord) ([]types.MatchResult, []types.StockRecord) {
	p := newPool(records)
	results := make([]types.MatchResult, 0, len(summaries))

	for _, summary := range summaries {
		results = append(results, resolve(summary, p))
	}

	return results, p.leftover()
}

// resolve produces the MatchResult for one summary.
func resolve(summary types.BarcodeSummary, p *pool) types.MatchResult {
	if strings.Contains(summary.Barcode, types.PoisonSeparator) {
		padding, text, _ := strings.Cut(summary.Barcode, types.PoisonSeparator)
		return types.MatchResult{
			Kind:           types.Malformed,
			Summary:        summary,
			DisplayBarcode: padding,
			Description:    text,
		}
	}

	key, ok := normalizeBarcode(summary.Barcode)
	if !ok {
		return types.MatchResult{
			Kind:           types.NotFound,
			Summary:        summary,
			DisplayBarcode: summary.Barcode,
		}
	}

	rec, ok := p.take(key)
	if !ok {
		return types.MatchResult{
			Kind:           types.NotFound,
			Summary:        summary,
			DisplayBarcode: summary.Barcode,
		}
	}

	return types.MatchResult{
		Kind:           types.Matched,
		Summary:        summary,
		Stock:          rec,
		DisplayBarcode: summary.Barcode,
	}
}

// normalizeBarcode parses the barcode field as a base-10 integer.
func normalizeBarcode(s string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
