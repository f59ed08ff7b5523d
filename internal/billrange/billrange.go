// =============================================================================
// Express Reconcile - Bill Range Compressor
// =============================================================================
//
// Compresses the ordered bill-identifier list into one human-readable display
// string: run-length compression over the identifiers' numeric payloads,
// rendered with each endpoint's original decorated spelling.
//
// The output is number-ordered, not appearance-ordered. Identifiers whose
// numeric payloads form a contiguous run merge into "first-last"; singletons
// render bare; independent ranges join with " / ".
//
// =============================================================================

package billrange

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// payload is one identifier paired with its numeric sort key.
type payload struct {
	value    int64
	original string
	numeric  bool
}

// Compress converts the bill-identifier list to the compact display string.
// Identifiers with no usable numeric payload sort first, render bare and
// never merge into a range.
func Compress(bills []string) string {
	if len(bills) == 0 {
		return ""
	}

	payloads := make([]payload, 0, len(bills))
	for _, bill := range bills {
		digits := digitsOf(bill)
		v, err := strconv.ParseInt(digits, 10, 64)
		payloads = append(payloads, payload{
			value:    v,
			original: bill,
			numeric:  digits != "" && err == nil,
		})
	}

	sort.SliceStable(payloads, func(i, j int) bool {
		if payloads[i].numeric != payloads[j].numeric {
			return !payloads[i].numeric
		}
		return payloads[i].value < payloads[j].value
	})

	var parts []string
	for i := 0; i < len(payloads); {
		j := i
		for j+1 < len(payloads) &&
			payloads[j].numeric && payloads[j+1].numeric &&
			payloads[j+1].value == payloads[j].value+1 {
			j++
		}

		if j == i {
			parts = append(parts, payloads[i].original)
		} else {
			parts = append(parts, fmt.Sprintf("%s-%s", payloads[i].original, payloads[j].original))
		}
		i = j + 1
	}

	return strings.Join(parts, " / ")
}

// digitsOf strips every non-digit character from the identifier.
func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
