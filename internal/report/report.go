// =============================================================================
// Express Reconcile - Summary Workbook Writer
// =============================================================================
//
// This module renders a reconciliation outcome into the summary workbook the
// warehouse staff work from. The sheet layout is fixed by the business:
//
//   Row 1  merged title
//   Row 2  "บิล:" label, compressed bill range, time, Buddhist-calendar date
//   Row 3  branch number, document version
//   Row 4  grand total in baht, distinct bill count
//   Row 5  column headers: NO. / บาร์โค้ด / ชื่อสินค้า / จำนวน / STOCK
//   Row 6+ one row per aggregated barcode
//
// Malformed barcodes render with the zero padding in the barcode cell on a
// red fill and the captured text in the description cell; not-found barcodes
// keep their value but get a red fix-the-source message. Both must stay
// visually loud; they are the rows a human needs to chase.
//
// =============================================================================

package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/tanakrit-dev/express-reconcile/internal/types"
	"github.com/xuri/excelize/v2"
)

// sheetName is the single worksheet of the output workbook.
const sheetName = "Sheet1"

// notFoundMessage is written in the description cell of a demand line whose
// barcode is absent from the stock export.
const notFoundMessage = "Cannot find the barcode.\nUpdate the main sheet of the stock file."

// alertFill is the red highlight for malformed and not-found rows.
const alertFill = "FF4A0B"

// maxColumnWidth caps autosized column widths.
const maxColumnWidth = 60

// thinBorder is the border applied to every cell of the table region.
func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Style: 1},
		{Type: "right", Style: 1},
		{Type: "top", Style: 1},
		{Type: "bottom", Style: 1},
	}
}

// =============================================================================
// INPUT STRUCTURES
// =============================================================================

// Meta is the operator-supplied workbook metadata.
type Meta struct {
	// Title is the merged title-row text.
	Title string

	// Branch is the branch number for the meta block.
	Branch string

	// Version is the document version for the meta block.
	Version string

	// GeneratedAt stamps the date and time cells. The date renders with the
	// Buddhist year.
	GeneratedAt time.Time
}

// Document is everything the writer needs from a reconciliation run.
type Document struct {
	// BillRange is the compressed bill display string.
	BillRange string

	// BillCount is the number of distinct bills.
	BillCount int

	// Total is the grand total, verbatim from the export.
	Total string

	// Lines are the per-barcode match results, in report order.
	Lines []types.MatchResult
}

// =============================================================================
// WORKBOOK GENERATION
// =============================================================================

// Build renders the document into a new workbook. The caller owns saving and
// closing the returned file.
func Build(doc Document, meta Meta) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), sheetName)

	if err := writeHeaderBlock(f, doc, meta); err != nil {
		return nil, err
	}
	if err := writeLines(f, doc.Lines); err != nil {
		return nil, err
	}
	if err := finishLayout(f, len(doc.Lines)); err != nil {
		return nil, err
	}

	return f, nil
}

// writeHeaderBlock fills rows 1-5: title, bill range, date/time, branch,
// version, total and bill count, then the column headers.
func writeHeaderBlock(f *excelize.File, doc Document, meta Meta) error {
	merges := [][2]string{
		{"A1", "G1"}, {"B2", "D2"}, {"F2", "G2"},
		{"A3", "E3"}, {"F3", "G3"},
		{"A4", "D4"}, {"E4", "G4"},
	}
	for _, m := range merges {
		if err := f.MergeCell(sheetName, m[0], m[1]); err != nil {
			return fmt.Errorf("failed to merge %s:%s: %w", m[0], m[1], err)
		}
	}

	f.SetCellValue(sheetName, "A1", meta.Title)
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 32, Color: "6600CC"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	f.SetCellValue(sheetName, "A2", "บิล:")
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 13, Bold: true, Color: "9933FF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E2EFDA"}},
	})
	if err != nil {
		return err
	}
	f.SetCellStyle(sheetName, "A2", "A2", labelStyle)

	f.SetCellValue(sheetName, "B2", doc.BillRange)
	rangeStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 21, Color: "0000FF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E2EFDA"}},
	})
	if err != nil {
		return err
	}
	f.SetCellStyle(sheetName, "B2", "B2", rangeStyle)

	f.SetCellValue(sheetName, "E2", meta.GeneratedAt.Format("15:04"))
	timeStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 14},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFC000"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	f.SetCellStyle(sheetName, "E2", "E2", timeStyle)

	f.SetCellValue(sheetName, "F2", "วันที่   "+buddhistDate(meta.GeneratedAt))
	dateStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 16, Color: "FF0000"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FCE4D6"}},
	})
	if err != nil {
		return err
	}
	f.SetCellStyle(sheetName, "F2", "F2", dateStyle)

	f.SetCellValue(sheetName, "A3", "เขต:  "+meta.Branch)
	branchStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 18, Color: "CC00FF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFCCFF"}},
	})
	if err != nil {
		return err
	}
	f.SetCellStyle(sheetName, "A3", "A3", branchStyle)

	f.SetCellValue(sheetName, "F3", meta.Version)
	versionStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 21, Bold: true, Color: "0000FF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"97DCFF"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	f.SetCellStyle(sheetName, "F3", "F3", versionStyle)

	f.SetCellValue(sheetName, "A4", "รวม                                         "+doc.Total+"   บาท")
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 16, Color: "0066FF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"CCCCFF"}},
	})
	if err != nil {
		return err
	}
	f.SetCellStyle(sheetName, "A4", "A4", totalStyle)

	f.SetCellValue(sheetName, "E4", fmt.Sprintf("จำนวนบิล         %d    บิล", doc.BillCount))
	countStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 14, Color: "FF0066"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E2EFDA"}},
	})
	if err != nil {
		return err
	}
	f.SetCellStyle(sheetName, "E4", "E4", countStyle)

	headers := []string{"NO.", "บาร์โค้ด", "ชื่อสินค้า", "จำนวน", "STOCK", "แพ็ค", "จัดสินค้า"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 5)
		if err != nil {
			return err
		}
		f.SetCellValue(sheetName, cell, h)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 12, Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
	})
	if err != nil {
		return err
	}
	f.SetCellStyle(sheetName, "A5", "G5", headerStyle)

	return nil
}

// writeLines fills one data row per match result starting at row 6.
func writeLines(f *excelize.File, lines []types.MatchResult) error {
	bodyStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 12},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
	})
	if err != nil {
		return err
	}
	alertStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 12},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{alertFill}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
	})
	if err != nil {
		return err
	}

	for i, line := range lines {
		row := i + 6

		set := func(col string, value interface{}, style int) {
			cell := fmt.Sprintf("%s%d", col, row)
			f.SetCellValue(sheetName, cell, value)
			f.SetCellStyle(sheetName, cell, cell, style)
		}

		set("A", i+1, bodyStyle)
		set("D", line.Summary.SumQty, bodyStyle)

		switch line.Kind {
		case types.Malformed:
			set("B", line.DisplayBarcode, alertStyle)
			set("C", line.Description, bodyStyle)
		case types.NotFound:
			set("B", line.DisplayBarcode, bodyStyle)
			set("C", notFoundMessage, alertStyle)
		case types.Matched:
			set("B", line.DisplayBarcode, bodyStyle)
			set("C", line.Stock.Description, bodyStyle)
			set("E", line.Stock.Quantity, bodyStyle)
		}
	}

	return nil
}

// finishLayout borders the table region and autosizes columns, capping the
// width so long descriptions do not blow the sheet out.
func finishLayout(f *excelize.File, lineCount int) error {
	lastRow := 5 + lineCount

	borderStyle, err := f.NewStyle(&excelize.Style{
		Border: thinBorder(),
	})
	if err != nil {
		return err
	}

	for col := 1; col <= 7; col++ {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}

		maxLen := 0
		for row := 5; row <= lastRow; row++ {
			cell := fmt.Sprintf("%s%d", name, row)

			// Border every table cell, including empty ones.
			if style, _ := f.GetCellStyle(sheetName, cell); style == 0 {
				f.SetCellStyle(sheetName, cell, cell, borderStyle)
			}

			value, err := f.GetCellValue(sheetName, cell)
			if err != nil {
				continue
			}
			if i := strings.IndexByte(value, '\n'); i >= 0 {
				value = value[:i]
			}
			if n := len([]rune(value)); n > maxLen {
				maxLen = n
			}
		}

		padding := 6
		if col == 1 {
			padding = 3
		}
		width := maxLen + padding
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		if err := f.SetColWidth(sheetName, name, name, float64(width)); err != nil {
			return err
		}
	}

	return nil
}

// buddhistDate formats the date as dd/mm/ with the Buddhist-era year.
func buddhistDate(t time.Time) string {
	return fmt.Sprintf("%02d/%02d/%d", t.Day(), int(t.Month()), t.Year()+543)
}
