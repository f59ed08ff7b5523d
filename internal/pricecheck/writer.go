package pricecheck

import (
	"fmt"

	"github.com/tanakrit-dev/express-reconcile/internal/workbook"
	"github.com/xuri/excelize/v2"
)

const (
	notFoundSheet = "Not Found Product"
	outdatedSheet = "Outdated Unit Price"
)

// WriteResult builds a workbook with one sheet per finding category. Each
// sheet repeats the update sheet's header row and then the offending rows
// verbatim, so the person fixing prices works from familiar columns.
func WriteResult(update workbook.Grid, cmp Comparison) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", notFoundSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(outdatedSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	if err := writeRows(f, notFoundSheet, update, cmp.NotFound); err != nil {
		return nil, err
	}
	if err := writeRows(f, outdatedSheet, update, cmp.Outdated); err != nil {
		return nil, err
	}

	return f, nil
}

// writeRows copies the header row plus the listed data rows into sheet.
// Indices are 0-based data rows, so grid row is idx+1.
func writeRows(f *excelize.File, sheet string, update workbook.Grid, rows []int) error {
	if err := copyRow(f, sheet, update, 0, 1); err != nil {
		return err
	}
	for i, idx := range rows {
		if err := copyRow(f, sheet, update, idx+1, i+2); err != nil {
			return err
		}
	}
	return nil
}

func copyRow(f *excelize.File, sheet string, update workbook.Grid, srcRow, dstRow int) error {
	if srcRow < 0 || srcRow >= update.Rows() {
		return nil
	}
	for col := range update[srcRow] {
		v := update.Cell(srcRow, col)
		if v == "" {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col+1, dstRow)
		if err != nil {
			return fmt.Errorf("failed to build cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", cell, err)
		}
	}
	return nil
}
