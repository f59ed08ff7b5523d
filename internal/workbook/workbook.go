// =============================================================================
// Express Reconcile - Workbook Loader
// =============================================================================
//
// This module loads the supported input formats into a uniform in-memory
// grid so the pipeline stages never touch file formats directly:
//   - .xlsx / .xlsm : excelize
//   - .xls          : shakinm/xlsReader (the accounting system still emits
//                     the legacy BIFF format on some installations)
//   - .csv          : encoding/csv (price lists only)
//
// Only the first worksheet of a workbook is read; both source systems write
// single-sheet exports.
//
// =============================================================================

package workbook

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
)

// =============================================================================
// GRID TYPE
// =============================================================================

// Grid is the raw rectangular cell content of one worksheet. Rows may have
// ragged lengths; Cell treats missing positions as empty.
type Grid [][]string

// Rows returns the number of rows in the grid.
func (g Grid) Rows() int {
	return len(g)
}

// Cell returns the cell at the given 0-based position, or "" when the
// position lies outside the grid.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) {
		return ""
	}
	if col < 0 || col >= len(g[row]) {
		return ""
	}
	return g[row][col]
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the first sheet (or the whole file, for CSV) of the given path
// into a Grid. The format is selected by file extension.
func Load(path string) (Grid, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return loadXLSX(path)
	case ".xls":
		return loadXLS(path)
	case ".csv":
		return loadCSV(path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Base(path))
	}
}

// loadXLSX reads the first worksheet of an OOXML workbook.
func loadXLSX(path string) (Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", filepath.Base(path))
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return Grid(rows), nil
}

// loadXLS reads the first sheet of a legacy BIFF workbook.
func loadXLS(path string) (Grid, error) {
	wb, err := xls.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xls workbook: %w", err)
	}

	if wb.GetNumberSheets() == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", filepath.Base(path))
	}

	sheet, err := wb.GetSheet(0)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	var grid Grid
	for i := 0; i <= int(sheet.GetNumberRows()); i++ {
		row, err := sheet.GetRow(i)
		if err != nil || row == nil {
			continue
		}

		var cells []string
		for _, col := range row.GetCols() {
			if col != nil {
				cells = append(cells, col.GetString())
			} else {
				cells = append(cells, "")
			}
		}
		grid = append(grid, cells)
	}

	return grid, nil
}

// loadCSV reads a delimited text file. The reader is configured leniently:
// ragged rows and loose quoting both occur in price lists exported by hand.
func loadCSV(path string) (Grid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return Grid(rows), nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// IsRowEmpty checks if a row contains only empty cells.
func IsRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
