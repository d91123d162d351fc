package analytics

import (
	"sort"
	"time"
)

// TopPerVariant is the leaderboard size of every facet.
const TopPerVariant = 5

// MoneySums carries the three independently summed amounts of a bucket.
type MoneySums struct {
	Lordo int64 `json:"lordo"`
	Netto int64 `json:"netto"`
	Iva   int64 `json:"iva"`
}

func (m *MoneySums) add(d Document) {
	m.Lordo += d.Lordo
	m.Netto += d.Netto
	m.Iva += d.Iva
}

// Aggregation is the raw output of the facet engine, before response
// assembly.
type Aggregation struct {
	// Monthly maps "YYYY-MM" to per-variant sums for documents with a
	// resolved effective date.
	Monthly map[string]map[string]MoneySums
	// Variants is the ascending-sorted set of variant ids observed among
	// effective-dated documents — discovery, not configuration, decides
	// which variants exist.
	Variants []string

	// The four leaderboards, keyed by variant, each at most TopPerVariant
	// items in facet order.
	Recent            map[string][]Document
	Scheduled         map[string][]Document
	ScheduledByAmount map[string][]Document
	Upcoming          map[string][]Document
}

// Aggregate runs the facet engine over normalized documents. Cancelled
// documents are dropped here, once, before anything else looks at them.
func Aggregate(docs []Document, w Window, fw ForwardWindow) *Aggregation {
	live := docs[:0:0]
	for _, d := range docs {
		if d.State != StateCancelled {
			live = append(live, d)
		}
	}

	agg := &Aggregation{Monthly: make(map[string]map[string]MoneySums)}

	variantSet := make(map[string]bool)
	for _, d := range live {
		eff := d.EffectiveDate(w)
		if eff == nil {
			continue
		}
		month := eff.Format("2006-01")
		variant := d.VariantOrDefault()
		variantSet[variant] = true

		byVariant := agg.Monthly[month]
		if byVariant == nil {
			byVariant = make(map[string]MoneySums)
			agg.Monthly[month] = byVariant
		}
		sums := byVariant[variant]
		sums.add(d)
		byVariant[variant] = sums
	}

	agg.Variants = make([]string, 0, len(variantSet))
	for v := range variantSet {
		agg.Variants = append(agg.Variants, v)
	}
	sort.Strings(agg.Variants)

	agg.Recent = topPerVariant(
		filterState(live, StateInvoiced, StatePaid),
		byDateDesc(func(d Document) *time.Time { return d.EffectiveDate(w) }),
	)
	agg.Scheduled = topPerVariant(
		filterState(live, StateScheduled),
		byDateDesc(Document.ForwardAnchor),
	)
	agg.ScheduledByAmount = topPerVariant(
		filterState(live, StateScheduled),
		byAmountDesc,
	)
	agg.Upcoming = topPerVariant(
		filterForward(filterState(live, StateHypothesized), fw),
		byDateAsc(Document.ForwardAnchor),
	)

	return agg
}

func filterState(docs []Document, states ...string) []Document {
	var out []Document
	for _, d := range docs {
		for _, s := range states {
			if d.State == s {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

func filterForward(docs []Document, fw ForwardWindow) []Document {
	var out []Document
	for _, d := range docs {
		if anchor := d.ForwardAnchor(); anchor != nil && fw.Contains(*anchor) {
			out = append(out, d)
		}
	}
	return out
}

// topPerVariant sorts once with the facet's comparator and keeps the first
// TopPerVariant documents of each variant. The sort is stable, so rerunning
// over the same data always yields the same order.
func topPerVariant(docs []Document, less func(a, b Document) bool) map[string][]Document {
	sorted := append([]Document(nil), docs...)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })

	out := make(map[string][]Document)
	for _, d := range sorted {
		variant := d.VariantOrDefault()
		if len(out[variant]) < TopPerVariant {
			out[variant] = append(out[variant], d)
		}
	}
	return out
}

// byDateDesc orders by the facet's date key descending, documents without a
// date last, update time descending as tie-break.
func byDateDesc(key func(Document) *time.Time) func(a, b Document) bool {
	return func(a, b Document) bool {
		da, db := key(a), key(b)
		switch {
		case da == nil && db == nil:
			return a.UpdatedAt.After(b.UpdatedAt)
		case da == nil:
			return false
		case db == nil:
			return true
		case !da.Equal(*db):
			return da.After(*db)
		default:
			return a.UpdatedAt.After(b.UpdatedAt)
		}
	}
}

// byDateAsc orders by the facet's date key ascending, update time descending
// as tie-break. Callers filter out undated documents beforehand.
func byDateAsc(key func(Document) *time.Time) func(a, b Document) bool {
	return func(a, b Document) bool {
		da, db := key(a), key(b)
		switch {
		case da == nil && db == nil:
			return a.UpdatedAt.After(b.UpdatedAt)
		case da == nil:
			return false
		case db == nil:
			return true
		case !da.Equal(*db):
			return da.Before(*db)
		default:
			return a.UpdatedAt.After(b.UpdatedAt)
		}
	}
}

// byAmountDesc orders by gross amount descending, update time descending as
// tie-break — intentionally a different ranking than the scheduled-by-date
// facet over the same state.
func byAmountDesc(a, b Document) bool {
	if a.Lordo != b.Lordo {
		return a.Lordo > b.Lordo
	}
	return a.UpdatedAt.After(b.UpdatedAt)
}
