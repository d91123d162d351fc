package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWindows() (Window, ForwardWindow) {
	now := date(2024, time.December, 15)
	return ResolveWindow(now, 3), ResolveForward(now)
}

func doc(variant, state string, invoice *time.Time, lordo int64) Document {
	return Document{
		ID:          uuid.New(),
		Variant:     variant,
		State:       state,
		InvoiceDate: invoice,
		Lordo:       lordo,
	}
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestAggregate_CancelledDroppedEverywhere(t *testing.T) {
	w, fw := testWindows()
	docs := []Document{
		doc("eventi", StateCancelled, datePtr(2024, time.November, 5), 1000),
		doc("eventi", StatePaid, datePtr(2024, time.November, 6), 500),
	}

	agg := Aggregate(docs, w, fw)

	assert.Equal(t, []string{"eventi"}, agg.Variants)
	require.Contains(t, agg.Monthly, "2024-11")
	assert.Equal(t, int64(500), agg.Monthly["2024-11"]["eventi"].Lordo)
	require.Len(t, agg.Recent["eventi"], 1)
	assert.Empty(t, agg.Scheduled)
	assert.Empty(t, agg.Upcoming)
}

func TestAggregate_MonthlySumsPerVariant(t *testing.T) {
	w, fw := testWindows()
	docs := []Document{
		{State: StatePaid, Variant: "eventi", InvoiceDate: datePtr(2024, time.October, 3),
			Lordo: 1220, Netto: 1000, Iva: 220},
		{State: StateInvoiced, Variant: "eventi", InvoiceDate: datePtr(2024, time.October, 20),
			Lordo: 610, Netto: 500, Iva: 110},
		{State: StatePaid, Variant: "sale", InvoiceDate: datePtr(2024, time.October, 9),
			Lordo: 244, Netto: 200, Iva: 44},
	}

	agg := Aggregate(docs, w, fw)

	assert.Equal(t, []string{"eventi", "sale"}, agg.Variants)
	oct := agg.Monthly["2024-10"]
	assert.Equal(t, MoneySums{Lordo: 1830, Netto: 1500, Iva: 330}, oct["eventi"])
	assert.Equal(t, MoneySums{Lordo: 244, Netto: 200, Iva: 44}, oct["sale"])
}

func TestAggregate_UndatedDocumentsContributeNoBucket(t *testing.T) {
	w, fw := testWindows()
	docs := []Document{
		doc("eventi", StatePaid, nil, 1000),
		doc("eventi", StatePaid, datePtr(2023, time.May, 1), 1000), // before the window
	}

	agg := Aggregate(docs, w, fw)

	assert.Empty(t, agg.Monthly)
	// Variant discovery follows the monthly buckets, not the leaderboards.
	assert.Empty(t, agg.Variants)
}

func TestAggregate_RecentOrderedByEffectiveDateDesc(t *testing.T) {
	w, fw := testWindows()
	docs := []Document{
		doc("eventi", StatePaid, datePtr(2024, time.October, 5), 100),
		doc("eventi", StateInvoiced, datePtr(2024, time.December, 1), 200),
		doc("eventi", StatePaid, datePtr(2024, time.November, 15), 300),
		doc("eventi", StateScheduled, datePtr(2024, time.December, 2), 400), // wrong state
	}

	agg := Aggregate(docs, w, fw)

	recent := agg.Recent["eventi"]
	require.Len(t, recent, 3)
	assert.Equal(t, int64(200), recent[0].Lordo)
	assert.Equal(t, int64(300), recent[1].Lordo)
	assert.Equal(t, int64(100), recent[2].Lordo)
}

func TestAggregate_AtMostFivePerVariant(t *testing.T) {
	w, fw := testWindows()
	var docs []Document
	for i := 0; i < 8; i++ {
		docs = append(docs, doc("eventi", StatePaid, datePtr(2024, time.November, i+1), int64(i)))
	}
	docs = append(docs, doc("sale", StatePaid, datePtr(2024, time.November, 1), 10))

	agg := Aggregate(docs, w, fw)

	assert.Len(t, agg.Recent["eventi"], TopPerVariant)
	assert.Len(t, agg.Recent["sale"], 1)
}

func TestAggregate_ScheduledFacetsRankDifferently(t *testing.T) {
	w, fw := testWindows()
	docs := []Document{
		doc("eventi", StateScheduled, datePtr(2025, time.March, 1), 100),
		doc("eventi", StateScheduled, datePtr(2025, time.January, 1), 900),
		doc("eventi", StateScheduled, datePtr(2025, time.February, 1), 500),
	}

	agg := Aggregate(docs, w, fw)

	byDate := agg.Scheduled["eventi"]
	require.Len(t, byDate, 3)
	assert.Equal(t, int64(100), byDate[0].Lordo) // latest anchor first
	assert.Equal(t, int64(500), byDate[1].Lordo)
	assert.Equal(t, int64(900), byDate[2].Lordo)

	byAmount := agg.ScheduledByAmount["eventi"]
	require.Len(t, byAmount, 3)
	assert.Equal(t, int64(900), byAmount[0].Lordo)
	assert.Equal(t, int64(500), byAmount[1].Lordo)
	assert.Equal(t, int64(100), byAmount[2].Lordo)
}

func TestAggregate_UpcomingOnlyForwardWindowAscending(t *testing.T) {
	w, fw := testWindows()
	docs := []Document{
		doc("eventi", StateHypothesized, datePtr(2025, time.June, 1), 100),
		doc("eventi", StateHypothesized, datePtr(2025, time.January, 10), 200),
		doc("eventi", StateHypothesized, datePtr(2024, time.June, 1), 300),  // past
		doc("eventi", StateHypothesized, datePtr(2026, time.June, 1), 400),  // beyond 12 months
		doc("eventi", StateHypothesized, nil, 500),                          // undated
	}

	agg := Aggregate(docs, w, fw)

	upcoming := agg.Upcoming["eventi"]
	require.Len(t, upcoming, 2)
	assert.Equal(t, int64(200), upcoming[0].Lordo) // soonest first
	assert.Equal(t, int64(100), upcoming[1].Lordo)
}

func TestAggregate_UnclassifiedVariantBucket(t *testing.T) {
	w, fw := testWindows()
	docs := []Document{doc("", StatePaid, datePtr(2024, time.November, 5), 700)}

	agg := Aggregate(docs, w, fw)

	assert.Equal(t, []string{VariantUnclassified}, agg.Variants)
	assert.Equal(t, int64(700), agg.Monthly["2024-11"][VariantUnclassified].Lordo)
	assert.Len(t, agg.Recent[VariantUnclassified], 1)
}

func TestAggregate_TieBreakByUpdateTimeIsStable(t *testing.T) {
	w, fw := testWindows()
	anchor := datePtr(2024, time.November, 5)
	older := doc("eventi", StatePaid, anchor, 1)
	older.UpdatedAt = date(2024, time.November, 1)
	newer := doc("eventi", StatePaid, anchor, 2)
	newer.UpdatedAt = date(2024, time.November, 2)

	for run := 0; run < 3; run++ {
		agg := Aggregate([]Document{older, newer}, w, fw)
		recent := agg.Recent["eventi"]
		require.Len(t, recent, 2, "run %d", run)
		assert.Equal(t, newer.ID, recent[0].ID, "run %d", run)
	}
}

func TestAggregate_IdempotentOverSameInput(t *testing.T) {
	w, fw := testWindows()
	var docs []Document
	for i := 0; i < 12; i++ {
		d := doc(fmt.Sprintf("v%d", i%3), StateScheduled, datePtr(2025, time.January, i+1), int64(i*10))
		docs = append(docs, d)
	}

	first := Aggregate(docs, w, fw)
	second := Aggregate(docs, w, fw)
	assert.Equal(t, first, second)
}
