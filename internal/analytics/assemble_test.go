package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble_ZeroFilledContiguousMonths(t *testing.T) {
	w, fw := testWindows()
	// One paid document in the middle month only.
	docs := []Document{doc("eventi", StatePaid, datePtr(2024, time.November, 5), 1220)}
	agg := Aggregate(docs, w, fw)

	resp := Assemble(agg, w, nil)

	require.Len(t, resp.Months, 3)
	assert.Equal(t, "2024-10", resp.Months[0].Month)
	assert.Equal(t, "2024-11", resp.Months[1].Month)
	assert.Equal(t, "2024-12", resp.Months[2].Month)

	// Empty months still carry an explicit zero entry per discovered variant.
	assert.Equal(t, MoneySums{}, resp.Months[0].ByVariant["eventi"])
	assert.Equal(t, MoneySums{}, resp.Months[0].Totals)
	assert.Equal(t, int64(1220), resp.Months[1].ByVariant["eventi"].Lordo)
}

func TestAssemble_TotalsEqualSumOfVariants(t *testing.T) {
	w, fw := testWindows()
	docs := []Document{
		{State: StatePaid, Variant: "eventi", InvoiceDate: datePtr(2024, time.November, 3),
			Lordo: 1220, Netto: 1000, Iva: 220},
		{State: StatePaid, Variant: "sale", InvoiceDate: datePtr(2024, time.November, 9),
			Lordo: 610, Netto: 500, Iva: 110},
	}
	agg := Aggregate(docs, w, fw)

	resp := Assemble(agg, w, nil)

	for _, row := range resp.Months {
		var want MoneySums
		for _, sums := range row.ByVariant {
			want.Lordo += sums.Lordo
			want.Netto += sums.Netto
			want.Iva += sums.Iva
		}
		assert.Equal(t, want, row.Totals, "month %s", row.Month)
	}
	assert.Equal(t, MoneySums{Lordo: 1830, Netto: 1500, Iva: 330}, resp.Months[1].Totals)
}

func TestAssemble_RangeMetadata(t *testing.T) {
	w, fw := testWindows()
	resp := Assemble(Aggregate(nil, w, fw), w, nil)

	assert.Equal(t, "2024-10", resp.Range.StartMonth)
	assert.Equal(t, "2024-12", resp.Range.EndMonth)
	assert.Equal(t, 3, resp.Range.MonthsBack)
	require.NotNil(t, resp.VariantIDs)
	assert.Empty(t, resp.VariantIDs)
}

func TestAssemble_TopItemDatesFormattedOrNull(t *testing.T) {
	w, fw := testWindows()
	invoice := datePtr(2024, time.November, 20)
	docs := []Document{
		{ID: uuid.New(), State: StateInvoiced, Variant: "eventi", Title: "Concerto",
			InvoiceDate: invoice, Lordo: 1220},
	}
	agg := Aggregate(docs, w, fw)

	resp := Assemble(agg, w, nil)

	items := resp.Top.Recent["eventi"]
	require.Len(t, items, 1)
	item := items[0]
	assert.Equal(t, "Concerto", item.Title)
	assert.Equal(t, StateInvoiced, item.State)
	require.NotNil(t, item.InvoiceDate)
	assert.Equal(t, "2024-11-20", *item.InvoiceDate)
	assert.Nil(t, item.PaymentDate)
	require.NotNil(t, item.EffectiveDate)
	assert.Equal(t, "2024-11-20", *item.EffectiveDate)
}

func TestAssemble_CounterpartyNamesResolved(t *testing.T) {
	w, fw := testWindows()
	counterparty := uuid.New()
	d := doc("eventi", StatePaid, datePtr(2024, time.November, 5), 100)
	d.CounterpartyID = &counterparty
	agg := Aggregate([]Document{d}, w, fw)

	resp := Assemble(agg, w, map[uuid.UUID]string{counterparty: "Comune di Milano"})

	items := resp.Top.Recent["eventi"]
	require.Len(t, items, 1)
	assert.Equal(t, "Comune di Milano", items[0].CounterpartyName)
}
