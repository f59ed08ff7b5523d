package reconcile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tanakrit-dev/express-reconcile/internal/config"
	"github.com/tanakrit-dev/express-reconcile/internal/report"
)

// The express export packs each logical row into a single cell, so a CSV
// without commas loads as a one-column grid just like the real sheets.
const salesCSV = `รายงานการขายสินค้า ประจำวัน
--------------------
NO  BILL  BARCODE  NAME  QTY
--------------------
IV001 1 885001 WATER 0.00 2.แพ็ค
IV001 1 885001 WATER 0.00 2.แพ็ค
IV001 2 885002 SOAP 0.00 3.ชิ้น
รวมทั้งสิ้น 250.00
`

const stockCSV = `NO,BARCODE,NAME,UNIT,COST,QTY
1,885001,WATER,แพ็ค,35,10
2,885002,SOAP,ชิ้น,12,4
`

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRunnerRun(t *testing.T) {
	dir := t.TempDir()
	sales := writeInput(t, dir, "day1_express.csv", salesCSV)
	stock := writeInput(t, dir, "day1_stock.csv", stockCSV)

	main := &config.MainConfig{
		OutputDir:        dir,
		OutputNameFormat: "{name}_{dialect}.xlsx",
	}
	dialect := testDialect()
	dialect.Report.Timezone = "Asia/Bangkok"

	result := New(sales, stock, dialect, main, report.Meta{Title: "ทดสอบ"}, NewLogger(false)).Run()
	if !result.Success {
		t.Fatalf("Run() failed: %v", result.Error)
	}

	if filepath.Base(result.OutputFile) != "day1_test.xlsx" {
		t.Fatalf("OutputFile = %q, want day1_test.xlsx", result.OutputFile)
	}
	if _, err := os.Stat(result.OutputFile); err != nil {
		t.Fatalf("output workbook not written: %v", err)
	}

	if result.Summary == nil || result.Summary.BillCount != 1 {
		t.Fatalf("Summary = %+v, want one bill", result.Summary)
	}
	if result.Summary.Stats.Matched != 2 {
		t.Fatalf("Matched = %d, want 2", result.Summary.Stats.Matched)
	}
}

func TestRunnerMissingSalesFile(t *testing.T) {
	dir := t.TempDir()
	stock := writeInput(t, dir, "day1_stock.csv", stockCSV)

	main := &config.MainConfig{OutputDir: dir, OutputNameFormat: "{name}.xlsx"}
	result := New(filepath.Join(dir, "absent.csv"), stock, testDialect(), main, report.Meta{}, nil).Run()

	if result.Success {
		t.Fatalf("Run() succeeded with a missing sales export")
	}
	if !strings.Contains(result.Error.Error(), "sales export") {
		t.Fatalf("Error = %v, want the sales export named", result.Error)
	}
}

func TestRunnerBadFormat(t *testing.T) {
	dir := t.TempDir()
	sales := writeInput(t, dir, "day1_express.csv", "no separators here\n")
	stock := writeInput(t, dir, "day1_stock.csv", stockCSV)

	main := &config.MainConfig{OutputDir: dir, OutputNameFormat: "{name}.xlsx"}
	result := New(sales, stock, testDialect(), main, report.Meta{}, nil).Run()

	if result.Success {
		t.Fatalf("Run() succeeded on an export with no data region")
	}
}
