// =============================================================================
// Express Reconcile - Row Repairer
// =============================================================================
//
// The express export is delimited by whitespace, but the line-sequence field
// is sometimes concatenated with the field after it ("1234.SOMENAME"), which
// shifts every later column left by one. This module normalises those rows
// so every row past this stage has a stable minimum column count and a
// non-empty barcode field at index 2.
//
// Repair must run before bill segmentation: the segmenter's boundary
// detection inspects token 0 and a row-length threshold that only holds
// after repair.
//
// =============================================================================

package repair

import (
	"strings"

	"github.com/tanakrit-dev/express-reconcile/internal/types"
)

// Kind classifies what the repairer did to a row.
type Kind int

const (
	// Intact means the barcode field was already well-formed.
	Intact Kind = iota

	// SplitField means a concatenated "digits.text" field was split into
	// two tokens.
	SplitField

	// Poisoned means the barcode field was irrecoverable and the poison
	// marker was injected in its place.
	Poisoned

	// Short means the row has fewer than three tokens and was left alone.
	Short
)

// Repair normalises one token row in place and reports what was done.
//
// Policy, in priority order:
//  1. token 2 is all digits: nothing to do.
//  2. token 2 looks like "1234.SOMENAME" (digits, a dot, then text that is
//     not itself all digits): split it. "1234.56" is a plain decimal and is
//     left alone.
//  3. token 2 is irrecoverably non-numeric: rewrite it to the poison marker
//     and insert the original text as a new token, so the malformed value
//     stays visible all the way into the final report.
func Repair(row types.TokenRow) (types.TokenRow, Kind) {
	if len(row) < 3 {
		return row, Short
	}

	third := strings.TrimSpace(row[2])

	if isDigits(third) {
		row[2] = third
		return row, Intact
	}

	if strings.Contains(third, ".") {
		left, right, _ := strings.Cut(third, ".")
		if isDigits(left) && right != "" && !isDigits(right) {
			row[2] = left
			row = insertAt(row, 3, right)
			return row, SplitField
		}
		if isDigits(left) && isDigits(right) {
			// Plain decimal, not a concatenation artifact.
			row[2] = third
			return row, Intact
		}
	}

	row[2] = types.PoisonPrefix + third
	row = insertAt(row, 3, third)
	return row, Poisoned
}

// isDigits reports whether s is non-empty and consists solely of ASCII
// decimal digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// insertAt inserts value before index i, shifting later tokens right.
func insertAt(row types.TokenRow, i int, value string) types.TokenRow {
	row = append(row, "")
	copy(row[i+1:], row[i:])
	row[i] = value
	return row
}
