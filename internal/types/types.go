// =============================================================================
// Express Reconcile - Shared Types
// =============================================================================
//
// This package contains shared types used across the pipeline stages to avoid
// import cycles. Types defined here are used by:
//   - extract / repair / segment / aggregate
//   - stock
//   - reconcile
//   - report
//
// =============================================================================

package types

import "fmt"

// =============================================================================
// POISON MARKER
// =============================================================================

// PoisonPrefix is the synthetic barcode prefix injected by the row repairer
// when the barcode field of a row cannot be isolated. The thirteen zeros keep
// the value the width of a real EAN-13 barcode so the output sheet stays
// aligned; the underscore separates it from the original text so the report
// stage can split the two apart again.
const PoisonPrefix = "0000000000000_"

// PoisonSeparator is the character joining the zero padding to the original
// field text inside a poisoned barcode.
const PoisonSeparator = "_"

// =============================================================================
// ROW TYPES
// =============================================================================

// TokenRow is a single export row after the packed first cell has been split
// on whitespace. It is mutated in place by the repair stage and owned by
// whichever stage is currently processing it.
type TokenRow []string

// Clone returns an independent copy of the row.
func (r TokenRow) Clone() TokenRow {
	out := make(TokenRow, len(r))
	copy(out, r)
	return out
}

// =============================================================================
// AGGREGATION TYPES
// =============================================================================

// BarcodeSummary is the total quantity demanded for one barcode across the
// whole line-item stream. Summaries are emitted in first-seen barcode order.
type BarcodeSummary struct {
	// Barcode is the raw barcode field after repair. It may carry the poison
	// marker when the original row was malformed.
	Barcode string

	// SumQty is the sum of every unit-tagged quantity token contributed by
	// rows sharing this barcode.
	SumQty float64
}

// =============================================================================
// STOCK TYPES
// =============================================================================

// StockRecord is one row of the stock export reduced to the columns the
// matcher needs.
type StockRecord struct {
	// Barcode is the raw barcode cell text.
	Barcode string

	// Description is the product description cell.
	Description string

	// Quantity is the stock-on-hand cell, kept as text since the report
	// writes it back verbatim.
	Quantity string

	// Extra holds any additional configured columns, in configuration order.
	Extra []string

	// Row is the 1-based source row number, for error reporting.
	Row int
}

// =============================================================================
// MATCH RESULT TYPES
// =============================================================================

// MatchKind classifies the outcome of resolving one barcode summary against
// the stock pool.
type MatchKind int

const (
	// Matched means a stock record was found and consumed for this barcode.
	Matched MatchKind = iota

	// NotFound means the barcode normalised cleanly but no stock record
	// remained for it.
	NotFound

	// Malformed means the barcode carries the poison marker; no stock lookup
	// was attempted.
	Malformed
)

// String returns the match kind name for logs and summaries.
func (k MatchKind) String() string {
	switch k {
	case Matched:
		return "matched"
	case NotFound:
		return "not_found"
	case Malformed:
		return "malformed"
	default:
		return fmt.Sprintf("MatchKind(%d)", int(k))
	}
}

// MatchResult is the resolution of one BarcodeSummary. Exactly one is emitted
// per summary, in summary order. NotFound and Malformed are first-class
// outcomes, not errors: they must reach the final report visually flagged so
// a human can correct the source data.
type MatchResult struct {
	// Kind is the match outcome.
	Kind MatchKind

	// Summary is the demand line being resolved.
	Summary BarcodeSummary

	// Stock is the consumed stock record. Only set when Kind is Matched.
	Stock *StockRecord

	// DisplayBarcode is the barcode to show in the report. For Malformed
	// results this is the zero padding split out of the poison marker.
	DisplayBarcode string

	// Description is the description split out of a poisoned barcode.
	// Only set when Kind is Malformed.
	Description string
}

// =============================================================================
// FORMAT ERROR
// =============================================================================

// FormatError reports a structural expectation violated by the input export:
// missing separator rules, missing terminal marker, an unparseable required
// field. It is fatal for the reconciliation run; no stage performs local
// recovery and nothing downstream sees partial output.
type FormatError struct {
	// Stage is the pipeline stage that detected the violation.
	Stage string

	// Reason describes what was expected and what was found.
	Reason string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Reason)
}

// NewFormatError builds a FormatError for the given stage.
func NewFormatError(stage, format string, args ...interface{}) *FormatError {
	return &FormatError{Stage: stage, Reason: fmt.Sprintf(format, args...)}
}
