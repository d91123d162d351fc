package analytics

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Invoicing states. Classification prefers the explicit invoicing-state
// field, falls back to the legacy delivery-state field, and defaults to
// hypothesized. Cancelled documents are excluded from every facet, once,
// before any per-facet filtering.
const (
	StateHypothesized = "hypothesized"
	StateScheduled    = "scheduled"
	StateInvoiced     = "invoiced"
	StatePaid         = "paid"
	StateCancelled    = "cancelled"
)

// VariantUnclassified is the variant id assigned to documents that declare
// none.
const VariantUnclassified = "unclassified"

var amountCtx = func() *apd.Context {
	ctx := apd.BaseContext.WithPrecision(34)
	ctx.Rounding = apd.RoundHalfUp
	return ctx
}()

// ParseAmount normalizes a raw monetary value to whole currency units.
// Empty or missing values and parse failures are zero, never an error:
// amounts must always be safe to sum. A comma decimal separator is accepted.
func ParseAmount(v interface{}) int64 {
	s := amountString(v)
	if s == "" {
		return 0
	}

	var d apd.Decimal
	if _, _, err := d.SetString(s); err != nil {
		return 0
	}

	var rounded apd.Decimal
	if _, err := amountCtx.RoundToIntegralValue(&rounded, &d); err != nil {
		return 0
	}
	i, err := rounded.Int64()
	if err != nil {
		return 0
	}
	return i
}

func amountString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.ReplaceAll(strings.TrimSpace(val), ",", ".")
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return ""
	}
}

// ResolveState classifies a document's invoicing state from its raw fields,
// applying the legacy fallback chain.
func ResolveState(invoicingState, deliveryState interface{}) string {
	if s := stateString(invoicingState); s != "" {
		return s
	}
	if s := stateString(deliveryState); s != "" {
		return s
	}
	return StateHypothesized
}

func stateString(v interface{}) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
