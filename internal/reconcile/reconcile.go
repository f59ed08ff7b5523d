// =============================================================================
// Express Reconcile - Reconciliation Runner
// =============================================================================
//
// This module contains the core reconciliation pipeline. It orchestrates the
// stages for a single run, from loading the two exports to writing the
// summary workbook.
//
// PIPELINE:
//   1. Load the sales and stock exports into grids
//   2. Extract the token rows from the sales export data region
//   3. Repair malformed rows
//   4. Segment the stream into bills, line items and the grand total
//   5. Aggregate quantities per barcode
//   6. Compress the bill list into the display range
//   7. Match aggregated demand against stock (consume-once)
//   8. Write the summary workbook
//
// CONCURRENCY:
//   Each export pair is processed in its own goroutine in batch mode. A
//   Runner holds no shared state: the stock pool, bill list and counters are
//   all local to one invocation, so concurrent runs never interfere and the
//   consume-once semantics stay scoped to a single reconciliation.
//
// =============================================================================

package reconcile

import (
	"fmt"
	"time"

	"github.com/tanakrit-dev/express-reconcile/internal/aggregate"
	"github.com/tanakrit-dev/express-reconcile/internal/billrange"
	"github.com/tanakrit-dev/express-reconcile/internal/config"
	"github.com/tanakrit-dev/express-reconcile/internal/extract"
	"github.com/tanakrit-dev/express-reconcile/internal/repair"
	"github.com/tanakrit-dev/express-reconcile/internal/segment"
	"github.com/tanakrit-dev/express-reconcile/internal/stock"
	"github.com/tanakrit-dev/express-reconcile/internal/types"
	"github.com/tanakrit-dev/express-reconcile/internal/workbook"
)

// =============================================================================
// RESULT STRUCTURES
// =============================================================================

// Summary is the structured outcome of one reconciliation: everything the
// report stage needs, in deterministic order.
type Summary struct {
	// Bills are the distinct bill identifiers in collection order.
	Bills []string

	// BillRange is the compressed display string for the bill list.
	BillRange string

	// BillCount is the number of distinct bills.
	BillCount int

	// Total is the grand total read from the terminal row, verbatim.
	Total string

	// Summaries are the per-barcode demand lines in first-seen order.
	Summaries []types.BarcodeSummary

	// Matches resolve each summary against stock, one per summary.
	Matches []types.MatchResult

	// LeftoverStock are the stock rows no demand line claimed.
	LeftoverStock []types.StockRecord

	// Stats counts what the pipeline saw.
	Stats RunStats
}

// RunStats contains statistics about one reconciliation run.
type RunStats struct {
	// RowsExtracted is the number of token rows found in the data region.
	RowsExtracted int

	// RowsSplit is the number of rows repaired by splitting a concatenated
	// field.
	RowsSplit int

	// RowsPoisoned is the number of rows whose barcode field was replaced
	// by the poison marker.
	RowsPoisoned int

	// LineItems is the number of data rows attributed to bills.
	LineItems int

	// Matched, NotFound and Malformed count the match outcomes.
	Matched   int
	NotFound  int
	Malformed int

	// ProcessingTime is the wall time of the run.
	ProcessingTime time.Duration
}

// Result represents the outcome of processing a single export pair.
type Result struct {
	// SalesFile and StockFile are the processed input paths.
	SalesFile string
	StockFile string

	// OutputFile is the written summary workbook. Empty on failure.
	OutputFile string

	// Success indicates whether the run completed.
	Success bool

	// Error holds the failure when Success is false.
	Error error

	// Summary is the reconciliation outcome. Nil on failure.
	Summary *Summary
}

// =============================================================================
// LOGGER
// =============================================================================

// Logger is the minimal logging interface the runner needs.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// defaultLogger writes to stdout; Debug is dropped unless verbose.
type defaultLogger struct {
	verbose bool
}

// NewLogger returns the fmt-backed default logger.
func NewLogger(verbose bool) Logger {
	return &defaultLogger{verbose: verbose}
}

func (l *defaultLogger) Debug(msg string, args ...interface{}) {
	if l.verbose {
		fmt.Printf("[DEBUG] "+msg+"\n", args...)
	}
}

func (l *defaultLogger) Info(msg string, args ...interface{}) {
	fmt.Printf("[INFO] "+msg+"\n", args...)
}

func (l *defaultLogger) Warn(msg string, args ...interface{}) {
	fmt.Printf("[WARN] "+msg+"\n", args...)
}

func (l *defaultLogger) Error(msg string, args ...interface{}) {
	fmt.Printf("[ERROR] "+msg+"\n", args...)
}

// =============================================================================
// CORE PIPELINE
// =============================================================================

// Reconcile runs the full pipeline over in-memory grids. It is pure and
// synchronous: no I/O, no shared state, so re-running over identical grids
// yields identical summaries.
func Reconcile(sales, stockGrid workbook.Grid, dialect *config.DialectConfig) (*Summary, error) {
	start := time.Now()
	summary := &Summary{}

	rows, err := extract.TokenRows(sales, extract.Options{
		MissingSeparatorPolicy: dialect.MissingSeparatorPolicy,
		DropNumericOnlyRows:    dialect.DropNumericOnlyRows,
	})
	if err != nil {
		return nil, err
	}
	summary.Stats.RowsExtracted = len(rows)

	// An export with no data region (the lenient separator policy on an
	// empty day) reconciles to an empty summary; the full stock table is
	// the leftover.
	if len(rows) == 0 {
		summary.LeftoverStock = stock.Records(stockGrid, dialect.StockColumns)
		summary.Stats.ProcessingTime = time.Since(start)
		return summary, nil
	}

	for i := range rows {
		repaired, kind := repair.Repair(rows[i])
		rows[i] = repaired
		switch kind {
		case repair.SplitField:
			summary.Stats.RowsSplit++
		case repair.Poisoned:
			summary.Stats.RowsPoisoned++
		}
	}

	doc, err := segment.Split(rows, segment.Options{
		TerminalMarker: dialect.TerminalMarker,
		TotalOffset:    dialect.TotalOffset,
		SkipThaiNoise:  dialect.SkipThaiNoiseRows,
		DropFirstBill:  dialect.DropFirstBill,
	})
	if err != nil {
		return nil, err
	}
	summary.Bills = doc.Bills
	summary.BillCount = len(doc.Bills)
	summary.Total = doc.Total
	summary.Stats.LineItems = len(doc.Items)

	summary.Summaries, err = aggregate.Summarize(doc.Items, aggregate.Options{
		UnitSuffixes: dialect.EffectiveUnitSuffixes(),
		Strict:       dialect.StrictQuantities,
	})
	if err != nil {
		return nil, err
	}

	summary.BillRange = billrange.Compress(doc.Bills)

	records := stock.Records(stockGrid, dialect.StockColumns)
	summary.Matches, summary.LeftoverStock = stock.Match(summary.Summaries, records)

	for _, m := range summary.Matches {
		switch m.Kind {
		case types.Matched:
			summary.Stats.Matched++
		case types.NotFound:
			summary.Stats.NotFound++
		case types.Malformed:
			summary.Stats.Malformed++
		}
	}

	summary.Stats.ProcessingTime = time.Since(start)
	return summary, nil
}
