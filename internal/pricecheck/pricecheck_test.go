package pricecheck

import (
	"reflect"
	"testing"

	"github.com/tanakrit-dev/express-reconcile/internal/workbook"
)

func TestCleanBarcode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "8850123456789", "8850123456789"},
		{"surrounding spaces", "  8850123456789  ", "8850123456789"},
		{"no-break space", "8850123 456789", "8850123"},
		{"no prefix", "No8850123456789", "8850123456789"},
		{"stuttered no prefix", "NoNo8850123456789", "8850123456789"},
		{"lowercase no prefix", "no8850123456789", "8850123456789"},
		{"slash annotation", "8850123/old", "8850123"},
		{"plus annotation", "8850123+1", "8850123"},
		{"thai annotation", "8850123ขวด", "8850123"},
		{"space annotation", "8850123 ขวดเล็ก", "8850123"},
		{"brackets kept", "(8850123)", "(8850123)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanBarcode(tt.in); got != tt.want {
				t.Fatalf("CleanBarcode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseMaster(t *testing.T) {
	grid := workbook.Grid{
		{"รายการสินค้า"},
		{"NO  BARCODE  NAME  PRICE"},
		{"1  8850001  น้ำดื่ม  12.00"},
		{"2  No8850002  สบู่  8.50  35.00"},
		{"รวม  2 รายการ"},
	}

	entries := ParseMaster(grid)
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Product != "8850001" || entries[0].UnitPrice != "12.00" {
		t.Fatalf("entries[0] = %+v, want 8850001 at 12.00", entries[0])
	}
	if entries[1].Product != "8850002" {
		t.Fatalf("entries[1].Product = %q, want cleaned barcode", entries[1].Product)
	}
}

func TestParseMasterSkipsNoise(t *testing.T) {
	grid := workbook.Grid{
		{"หน้า 1"},
		{"x  8850001  y  1.00"},
	}

	if entries := ParseMaster(grid); entries != nil {
		t.Fatalf("ParseMaster() = %+v, want no entries", entries)
	}
}

func TestCompare(t *testing.T) {
	master := []Entry{
		{Product: "8850001", UnitPrice: "12.00"},
		{Product: "8850002", UnitPrice: "8.50"},
	}
	update := workbook.Grid{
		{"BARCODE", "NAME", "UNIT", "PRICE"},
		{"8850001", "น้ำดื่ม", "ขวด", "12"},    // equal at two decimals
		{"8850002", "สบู่", "ก้อน", "9.00"},    // price changed
		{"8850009", "แชมพู", "ขวด", "45.00"}, // not in the master list
	}

	cmp := Compare(master, update)
	if len(cmp.NotFound) != 1 || cmp.NotFound[0] != 2 {
		t.Fatalf("NotFound = %v, want [2]", cmp.NotFound)
	}
	if len(cmp.Outdated) != 1 || cmp.Outdated[0] != 1 {
		t.Fatalf("Outdated = %v, want [1]", cmp.Outdated)
	}
}

func TestCompareCleansUpdateBarcodes(t *testing.T) {
	master := []Entry{{Product: "8850001", UnitPrice: "12.00"}}
	update := workbook.Grid{
		{"BARCODE", "NAME", "UNIT", "PRICE"},
		{"No8850001/old", "น้ำดื่ม", "ขวด", "12.004"},
	}

	cmp := Compare(master, update)
	if len(cmp.NotFound) != 0 {
		t.Fatalf("NotFound = %v, want the cleaned barcode to match", cmp.NotFound)
	}
	// 12.004 rounds to 12.00 at two decimals.
	if len(cmp.Outdated) != 0 {
		t.Fatalf("Outdated = %v, want prices equal after rounding", cmp.Outdated)
	}
}

func TestCompareUnparsablePrice(t *testing.T) {
	master := []Entry{{Product: "8850001", UnitPrice: "n/a"}}
	update := workbook.Grid{
		{"BARCODE", "NAME", "UNIT", "PRICE"},
		{"8850001", "น้ำดื่ม", "ขวด", "12.00"},
	}

	cmp := Compare(master, update)
	if want := []int{0}; !reflect.DeepEqual(cmp.Outdated, want) {
		t.Fatalf("Outdated = %v, want %v", cmp.Outdated, want)
	}
}

func TestPriceValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"12.00", "12", true},
		{"1,250.50", "1250.5", true},
		{"12.00 บาท", "12", true},
		{"", "0", false},
		{"ไม่มีราคา", "0", false},
	}

	for _, tt := range tests {
		d, ok := priceValue(tt.in)
		if ok != tt.ok {
			t.Fatalf("priceValue(%q) ok = %v, want %v", tt.in, ok, tt.ok)
		}
		if d.String() != tt.want {
			t.Fatalf("priceValue(%q) = %s, want %s", tt.in, d, tt.want)
		}
	}
}
