// =============================================================================
// Express Reconcile - Bill Segmenter
// =============================================================================
//
// This module consumes the repaired token-row stream and splits it into the
// line-item data region and the grand-total scalar, collecting the ordered
// list of distinct bill identifiers along the way.
//
// The express export repeats the bill identifier as the first token of every
// row belonging to that bill. The first row of each bill is a repeated
// bill-header stub, not a data line, so it is recorded and dropped. Bill
// identity compares NORMALISED keys (non-alphanumeric characters stripped)
// because the export decorates the identifier differently between rows, but
// the un-normalised spelling of the first occurrence is what gets recorded
// for display and range compression.
//
// The scan ends at the terminal grand-total row. A stream that runs out
// before the terminal marker means the wrong file was uploaded or the export
// format changed, which is fatal.
//
// =============================================================================

package segment

import (
	"unicode"

	"github.com/tanakrit-dev/express-reconcile/internal/types"
)

// minDataTokens is the row-length threshold below which a row is header or
// garbage rather than a line item. Holds only after repair.
const minDataTokens = 5

// Options controls segmentation behaviour that varies by export dialect.
type Options struct {
	// TerminalMarker is the literal first token of the grand-total row.
	TerminalMarker string

	// TotalOffset is the 1-based position of the grand total counted from
	// the end of the terminal row. Dialects that append trailing annotation
	// columns use 3; plain exports use 1.
	TotalOffset int

	// SkipThaiNoise discards rows whose first token contains Thai-script
	// characters. The terminal marker is matched before this filter runs,
	// so a Thai terminal marker is unaffected.
	SkipThaiNoise bool

	// DropFirstBill removes the first collected bill identifier, for
	// dialects whose header noise is collected as a spurious first bill.
	DropFirstBill bool
}

// Document is the segmented export: the line-item stream, the ordered bill
// identifiers, and the grand total.
type Document struct {
	// Items are the data rows belonging to bills, in stream order.
	Items []types.TokenRow

	// Bills are the distinct bill identifiers in collection order, with
	// their original spelling.
	Bills []string

	// Total is the grand-total scalar read from the terminal row, kept as
	// text exactly as exported.
	Total string
}

// Split consumes the token-row stream and returns the segmented document.
// It fails with a FormatError when the terminal marker never appears or the
// terminal row is too short to hold the total at the configured offset.
func Split(rows []types.TokenRow, opts Options) (*Document, error) {
	doc := &Document{}
	currentKey := ""
	started := false

	for _, row := range rows {
		if len(row) > 0 && row[0] == opts.TerminalMarker {
			total, err := totalFromRow(row, opts.TotalOffset)
			if err != nil {
				return nil, err
			}
			doc.Total = total

			if opts.DropFirstBill && len(doc.Bills) > 0 {
				doc.Bills = doc.Bills[1:]
			}
			return doc, nil
		}

		if len(row) < minDataTokens {
			continue
		}

		if opts.SkipThaiNoise && containsThai(row[0]) {
			continue
		}

		key := normalizeBillKey(row[0])
		if !started || key != currentKey {
			// First row of a new bill: a repeated bill-header stub.
			started = true
			currentKey = key
			doc.Bills = append(doc.Bills, row[0])
			continue
		}

		doc.Items = append(doc.Items, row)
	}

	return nil, types.NewFormatError("segment",
		"terminal marker %q not found; check the input file", opts.TerminalMarker)
}

// totalFromRow reads the grand total from the terminal row at the given
// offset from the end.
func totalFromRow(row types.TokenRow, offset int) (string, error) {
	if offset < 1 || offset > len(row) {
		return "", types.NewFormatError("segment",
			"terminal row has %d tokens, cannot read total at offset %d from the end", len(row), offset)
	}
	return row[len(row)-offset], nil
}

// normalizeBillKey strips every character that is not ASCII alphanumeric.
// The result is the grouping key; the original spelling is what gets
// displayed.
func normalizeBillKey(id string) string {
	out := make([]rune, 0, len(id))
	for _, r := range id {
		switch {
		case r >= '0' && r <= '9', r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
			out = append(out, r)
		}
	}
	return string(out)
}

// containsThai reports whether s contains any Thai-script rune.
func containsThai(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Thai, r) {
			return true
		}
	}
	return false
}
