package workbook

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGridCell(t *testing.T) {
	g := Grid{
		{"a", "b"},
		{"c"},
	}

	tests := []struct {
		row, col int
		want     string
	}{
		{0, 0, "a"},
		{0, 1, "b"},
		{1, 0, "c"},
		{1, 1, ""}, // ragged row
		{2, 0, ""}, // past the last row
		{-1, 0, ""},
		{0, -1, ""},
	}

	for _, tt := range tests {
		if got := g.Cell(tt.row, tt.col); got != tt.want {
			t.Fatalf("Cell(%d, %d) = %q, want %q", tt.row, tt.col, got, tt.want)
		}
	}

	if g.Rows() != 2 {
		t.Fatalf("Rows() = %d, want 2", g.Rows())
	}
}

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prices.csv")
	content := "BARCODE,NAME,PRICE\n8850001,WATER,12.00\n8850002,SOAP\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	grid, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if grid.Rows() != 3 {
		t.Fatalf("Rows() = %d, want 3", grid.Rows())
	}
	if grid.Cell(1, 0) != "8850001" || grid.Cell(1, 2) != "12.00" {
		t.Fatalf("row 1 = %v", grid[1])
	}
	// Ragged rows are allowed.
	if grid.Cell(2, 2) != "" {
		t.Fatalf("Cell(2, 2) = %q, want empty on the short row", grid.Cell(2, 2))
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.pdf")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("Load() expected error for unsupported extension")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.xlsx")); err == nil {
		t.Fatalf("Load() expected error for a missing file")
	}
}

func TestIsRowEmpty(t *testing.T) {
	tests := []struct {
		row  []string
		want bool
	}{
		{nil, true},
		{[]string{""}, true},
		{[]string{"  ", "\t"}, true},
		{[]string{"", "x"}, false},
	}

	for _, tt := range tests {
		if got := IsRowEmpty(tt.row); got != tt.want {
			t.Fatalf("IsRowEmpty(%v) = %v, want %v", tt.row, got, tt.want)
		}
	}
}
