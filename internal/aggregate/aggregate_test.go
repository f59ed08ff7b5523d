package aggregate

import (
	"errors"
	"testing"

	"github.com/tanakrit-dev/express-reconcile/internal/config"
	"github.com/tanakrit-dev/express-reconcile/internal/types"
)

func defaultOptions() Options {
	return Options{UnitSuffixes: config.DefaultUnitSuffixes()}
}

func TestSummarizeAccumulatesAcrossRows(t *testing.T) {
	items := []types.TokenRow{
		{"IV001", "1", "885001", "WATER", "55.แพ็ค"},
		{"IV002", "1", "885001", "WATER", "8.แพ็ค"},
	}

	summaries, err := Summarize(items, defaultOptions())
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("len(summaries) = %d, want 1", len(summaries))
	}
	if summaries[0].Barcode != "885001" || summaries[0].SumQty != 63.0 {
		t.Fatalf("summary = %+v, want 885001 with 63", summaries[0])
	}
}

func TestSummarizeFirstSeenOrder(t *testing.T) {
	items := []types.TokenRow{
		{"IV001", "1", "885009", "C", "1.ชิ้น"},
		{"IV001", "2", "885001", "A", "1.ชิ้น"},
		{"IV001", "3", "885009", "C", "1.ชิ้น"},
		{"IV001", "4", "885005", "B", "1.ชิ้น"},
	}

	summaries, err := Summarize(items, defaultOptions())
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	want := []string{"885009", "885001", "885005"}
	if len(summaries) != len(want) {
		t.Fatalf("len(summaries) = %d, want %d", len(summaries), len(want))
	}
	for i, barcode := range want {
		if summaries[i].Barcode != barcode {
			t.Fatalf("summaries[%d].Barcode = %q, want %q", i, summaries[i].Barcode, barcode)
		}
	}
}

func TestSummarizeMultipleTokensPerRow(t *testing.T) {
	// Ordered and packed columns both carry a tagged quantity.
	items := []types.TokenRow{
		{"IV001", "1", "885001", "WATER", "2.กล่อง", "12.ชิ้น"},
	}

	summaries, err := Summarize(items, defaultOptions())
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if summaries[0].SumQty != 14.0 {
		t.Fatalf("SumQty = %v, want 14", summaries[0].SumQty)
	}
}

func TestSummarizeThousandsSeparators(t *testing.T) {
	items := []types.TokenRow{
		{"IV001", "1", "885001", "WATER", "1,200.ชิ้น"},
	}

	summaries, err := Summarize(items, defaultOptions())
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if summaries[0].SumQty != 1200.0 {
		t.Fatalf("SumQty = %v, want 1200", summaries[0].SumQty)
	}
}

func TestSummarizeUntaggedRow(t *testing.T) {
	items := []types.TokenRow{
		{"IV001", "1", "885001", "WATER", "2.00"},
	}

	// Lenient: the row contributes zero.
	summaries, err := Summarize(items, defaultOptions())
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if summaries[0].SumQty != 0.0 {
		t.Fatalf("SumQty = %v, want 0", summaries[0].SumQty)
	}

	// Strict: the row is a format error.
	opts := defaultOptions()
	opts.Strict = true
	_, err = Summarize(items, opts)
	var fe *types.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("Summarize() error = %v, want *types.FormatError", err)
	}
}

func TestSummarizePoisonedBarcodesGroup(t *testing.T) {
	poisoned := types.PoisonPrefix + "น้ำดื่ม"
	items := []types.TokenRow{
		{"IV001", "1", poisoned, "น้ำดื่ม", "2.แพ็ค"},
		{"IV002", "1", poisoned, "น้ำดื่ม", "3.แพ็ค"},
	}

	summaries, err := Summarize(items, defaultOptions())
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("len(summaries) = %d, want identically-poisoned rows grouped", len(summaries))
	}
	if summaries[0].SumQty != 5.0 {
		t.Fatalf("SumQty = %v, want 5", summaries[0].SumQty)
	}
}

func TestRowQuantity(t *testing.T) {
	suffixes := config.DefaultUnitSuffixes()

	tests := []struct {
		name   string
		row    types.TokenRow
		sum    float64
		tagged int
	}{
		{"single token", types.TokenRow{"IV001", "1", "885001", "x", "5.แพ็ค"}, 5, 1},
		{"two tokens", types.TokenRow{"IV001", "1", "885001", "x", "2.ลัง", "24.ขวด"}, 26, 2},
		{"no tagged tokens", types.TokenRow{"IV001", "1", "885001", "x", "5.00"}, 0, 0},
		{"unparsable number still tagged", types.TokenRow{"IV001", "1", "885001", "x", "x.แพ็ค"}, 0, 1},
		{"fractional quantity", types.TokenRow{"IV001", "1", "885001", "x", "0.เมตร"}, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum, tagged := RowQuantity(tt.row, suffixes)
			if sum != tt.sum || tagged != tt.tagged {
				t.Fatalf("RowQuantity() = (%v, %d), want (%v, %d)", sum, tagged, tt.sum, tt.tagged)
			}
		})
	}
}
