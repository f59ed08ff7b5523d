// =============================================================================
// Express Reconcile - Price Checker
// =============================================================================
//
// This module compares the master product/price list exported by the
// accounting system against an "update price" sheet maintained by hand, and
// reports two things: products in the update sheet that the master list does
// not carry, and products whose unit price no longer agrees.
//
// The master list arrives in the same packed-text shape as the express
// export: each sheet row holds a whole logical row in its first cell, with
// columns separated by runs of two or more spaces. Barcodes on both sides
// are dirty: exotic unicode spaces, a stuttered "No" prefix, trailing
// annotations after a slash or plus. Both sides pass through the same
// cleaner before comparison.
//
// Prices compare as decimals rounded to two places; comparing floats
// verbatim reports phantom differences on prices that round identically.
//
// =============================================================================

package pricecheck

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tanakrit-dev/express-reconcile/internal/workbook"
)

// =============================================================================
// BARCODE CLEANING
// =============================================================================

// spaceRun matches every unicode space variant seen in the exports: plain
// and no-break spaces, ogham, the en/em family, narrow no-break, medium
// mathematical and ideographic spaces.
var spaceRun = regexp.MustCompile(`[\x{0020}\x{00A0}\x{1680}\x{2000}-\x{200A}\x{202F}\x{205F}\x{3000}]+`)

// noPrefix matches one or more leading "No" markers, any case.
var noPrefix = regexp.MustCompile(`^(?i:No)+`)

// barcodeHead captures the leading run of characters up to the first space,
// slash, plus or Thai character. Brackets stay part of the barcode.
var barcodeHead = regexp.MustCompile(`^[^ /+\x{0E00}-\x{0E7F}]+`)

// CleanBarcode normalises a raw barcode cell for comparison.
func CleanBarcode(raw string) string {
	s := spaceRun.ReplaceAllString(raw, " ")
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(noPrefix.ReplaceAllString(s, ""))

	if m := barcodeHead.FindString(s); m != "" {
		return m
	}
	return s
}

// =============================================================================
// MASTER LIST PARSING
// =============================================================================

// Entry is one product row of the master price list.
type Entry struct {
	// Row is the 0-based grid row the entry came from.
	Row int

	// Product is the cleaned product barcode.
	Product string

	// UnitPrice is the raw unit price cell.
	UnitPrice string
}

// columnSplit splits a packed row on runs of two or more whitespace
// characters. Single spaces occur inside product names and must not split.
var columnSplit = regexp.MustCompile(`\s{2,}`)

// ParseMaster extracts the product entries from the packed master list.
// A row qualifies when its first column is a bare integer (the running line
// number); everything else is header or footer noise.
func ParseMaster(grid workbook.Grid) []Entry {
	var entries []Entry

	for i := 0; i < grid.Rows(); i++ {
		cols := columnSplit.Split(strings.TrimSpace(grid.Cell(i, 0)), -1)
		if len(cols) < 2 {
			continue
		}
		if !isInteger(cols[0]) {
			continue
		}

		entry := Entry{Row: i, Product: CleanBarcode(cols[1])}

		// The unit price usually sits in the fourth column; exports with an
		// extra description column shift it to the fifth.
		if len(cols) >= 4 {
			if _, ok := priceValue(cols[3]); ok {
				entry.UnitPrice = cols[3]
			} else if len(cols) >= 5 {
				entry.UnitPrice = cols[4]
			}
		} else if len(cols) >= 5 {
			entry.UnitPrice = cols[4]
		}

		entries = append(entries, entry)
	}

	return entries
}

// =============================================================================
// COMPARISON
// =============================================================================

// Comparison lists, by 0-based update-sheet data row index, the rows whose
// product the master list does not carry and the rows whose price disagrees.
type Comparison struct {
	// NotFound are update rows with no matching master product.
	NotFound []int

	// Outdated are update rows whose unit price differs at two decimals.
	Outdated []int
}

// Compare walks the update sheet (first row is the header) against the
// master entries. The update sheet holds the barcode in its first column and
// the price in its fourth.
func Compare(master []Entry, update workbook.Grid) Comparison {
	var cmp Comparison

	for r := 1; r < update.Rows(); r++ {
		idx := r - 1
		search := CleanBarcode(update.Cell(r, 0))

		var found *Entry
		for i := range master {
			if search == strings.TrimSpace(master[i].Product) {
				found = &master[i]
				break
			}
		}

		if found == nil {
			cmp.NotFound = append(cmp.NotFound, idx)
			continue
		}

		masterPrice, okLeft := priceValue(found.UnitPrice)
		updatePrice, okRight := priceValue(update.Cell(r, 3))
		if !okLeft || !okRight || !masterPrice.Round(2).Equal(updatePrice.Round(2)) {
			cmp.Outdated = append(cmp.Outdated, idx)
		}
	}

	return cmp
}

// priceValue parses a price cell to a decimal, discarding every character
// that is not a digit, dot or minus first.
func priceValue(s string) (decimal.Decimal, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return -1
		}
	}, s)

	if cleaned == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// isInteger reports whether s is a bare base-10 integer.
func isInteger(s string) bool {
	s = strings.TrimSpace(s)
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
