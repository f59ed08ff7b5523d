package extract

import (
	"errors"
	"reflect"
	"testing"

	"github.com/tanakrit-dev/express-reconcile/internal/config"
	"github.com/tanakrit-dev/express-reconcile/internal/types"
	"github.com/tanakrit-dev/express-reconcile/internal/workbook"
)

// exportGrid is a minimal export shape: title, rule, column headers, rule,
// then the data region.
func exportGrid(dataRows ...string) workbook.Grid {
	grid := workbook.Grid{
		{"รายงานการขายสินค้า"},
		{"--------------------"},
		{"NO  BILL  BARCODE  NAME  QTY"},
		{"--------------------"},
	}
	for _, row := range dataRows {
		grid = append(grid, []string{row})
	}
	return grid
}

func TestTokenRowsDataRegion(t *testing.T) {
	grid := exportGrid(
		"IV001 1 885001 WATER 2.แพ็ค",
		"",
		"IV001 2 885002 SOAP 3.ชิ้น",
	)

	rows, err := TokenRows(grid, Options{})
	if err != nil {
		t.Fatalf("TokenRows() error = %v", err)
	}

	want := []types.TokenRow{
		{"IV001", "1", "885001", "WATER", "2.แพ็ค"},
		{"IV001", "2", "885002", "SOAP", "3.ชิ้น"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("TokenRows() = %v, want %v", rows, want)
	}
}

func TestTokenRowsSkipsHeaderBlock(t *testing.T) {
	grid := exportGrid("IV001 1 885001 WATER 2.แพ็ค")

	rows, err := TokenRows(grid, Options{})
	if err != nil {
		t.Fatalf("TokenRows() error = %v", err)
	}
	for _, row := range rows {
		if row[0] == "NO" || row[0] == "รายงานการขายสินค้า" {
			t.Fatalf("header row leaked into data region: %v", row)
		}
	}
}

func TestTokenRowsMissingSeparatorFail(t *testing.T) {
	grid := workbook.Grid{
		{"รายงานการขายสินค้า"},
		{"--------------------"},
		{"IV001 1 885001 WATER 2.แพ็ค"},
	}

	_, err := TokenRows(grid, Options{MissingSeparatorPolicy: config.SeparatorFail})
	if err == nil {
		t.Fatalf("TokenRows() expected error with one separator")
	}
	var fe *types.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("TokenRows() error = %T, want *types.FormatError", err)
	}
	if fe.Stage != "extract" {
		t.Fatalf("FormatError.Stage = %q, want %q", fe.Stage, "extract")
	}
}

func TestTokenRowsMissingSeparatorEmpty(t *testing.T) {
	grid := workbook.Grid{
		{"รายงานการขายสินค้า"},
		{"IV001 1 885001 WATER 2.แพ็ค"},
	}

	rows, err := TokenRows(grid, Options{MissingSeparatorPolicy: config.SeparatorEmpty})
	if err != nil {
		t.Fatalf("TokenRows() error = %v", err)
	}
	if rows != nil {
		t.Fatalf("TokenRows() = %v, want no rows", rows)
	}
}

func TestTokenRowsDropNumericOnly(t *testing.T) {
	grid := exportGrid(
		"IV001 1 885001 WATER 2.แพ็ค",
		"12 3,450.00 78.5",
	)

	rows, err := TokenRows(grid, Options{DropNumericOnlyRows: true})
	if err != nil {
		t.Fatalf("TokenRows() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}

	// Without the option the footer row survives.
	rows, err = TokenRows(grid, Options{})
	if err != nil {
		t.Fatalf("TokenRows() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
}

func TestSeparatorRows(t *testing.T) {
	grid := workbook.Grid{
		{"title"},
		{"", "-----"},
		{"headers"},
		{"---"},
		{"data"},
	}

	got := SeparatorRows(grid)
	want := []int{1, 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SeparatorRows() = %v, want %v", got, want)
	}
}

func TestIsRule(t *testing.T) {
	tests := []struct {
		cell string
		want bool
	}{
		{"-----", true},
		{"  ---  ", true},
		{"-", true},
		{"", false},
		{"   ", false},
		{"--x--", false},
		{"ข้อมูล", false},
	}

	for _, tt := range tests {
		if got := isRule(tt.cell); got != tt.want {
			t.Fatalf("isRule(%q) = %v, want %v", tt.cell, got, tt.want)
		}
	}
}
