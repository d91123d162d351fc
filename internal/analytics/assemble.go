package analytics

import (
	"time"

	"github.com/google/uuid"
)

// MonthRow is one calendar month of the report. Totals always equal the sum
// of the per-variant entries, field by field.
type MonthRow struct {
	Month     string               `json:"month"`
	ByVariant map[string]MoneySums `json:"by_variant"`
	Totals    MoneySums            `json:"totals"`
}

type TopItem struct {
	ID               uuid.UUID `json:"id"`
	VariantID        string    `json:"variant_id"`
	Title            string    `json:"title"`
	CounterpartyName string    `json:"counterparty_name,omitempty"`
	State            string    `json:"state"`
	InvoiceDate      *string   `json:"invoice_date"`
	PaymentDate      *string   `json:"payment_date"`
	EffectiveDate    *string   `json:"effective_date"`
	Lordo            int64     `json:"lordo"`
	Netto            int64     `json:"netto"`
	Iva              int64     `json:"iva"`
}

type Range struct {
	StartMonth string `json:"start_month"`
	EndMonth   string `json:"end_month"`
	MonthsBack int    `json:"months_back"`
}

type Top struct {
	Recent            map[string][]TopItem `json:"recent"`
	Scheduled         map[string][]TopItem `json:"scheduled"`
	ScheduledByAmount map[string][]TopItem `json:"scheduled_by_amount"`
	Upcoming          map[string][]TopItem `json:"upcoming"`
}

type Response struct {
	Range      Range      `json:"range"`
	VariantIDs []string   `json:"variant_ids"`
	Months     []MonthRow `json:"months"`
	Top        Top        `json:"top"`
}

const (
	monthFormat = "2006-01"
	dateFormat  = "2006-01-02"
)

// Assemble normalizes the engine output: a contiguous ascending month list
// spanning the whole backward window, zero-filled where no data exists, and
// the four leaderboards with dates rendered to fixed text or null.
// counterparties maps resolved counterparty display names by record id.
func Assemble(agg *Aggregation, w Window, counterparties map[uuid.UUID]string) *Response {
	resp := &Response{
		Range: Range{
			StartMonth: w.Start.Format(monthFormat),
			EndMonth:   w.End.Format(monthFormat),
			MonthsBack: w.MonthsBack,
		},
		VariantIDs: agg.Variants,
		Months:     make([]MonthRow, 0, w.MonthsBack),
	}
	if resp.VariantIDs == nil {
		resp.VariantIDs = []string{}
	}

	for m := w.Start; m.Before(w.EndExclusive); m = m.AddDate(0, 1, 0) {
		month := m.Format(monthFormat)
		row := MonthRow{Month: month, ByVariant: make(map[string]MoneySums, len(agg.Variants))}
		for _, variant := range agg.Variants {
			sums := agg.Monthly[month][variant]
			row.ByVariant[variant] = sums
			row.Totals.Lordo += sums.Lordo
			row.Totals.Netto += sums.Netto
			row.Totals.Iva += sums.Iva
		}
		resp.Months = append(resp.Months, row)
	}

	resp.Top = Top{
		Recent:            topItems(agg.Recent, w, counterparties),
		Scheduled:         topItems(agg.Scheduled, w, counterparties),
		ScheduledByAmount: topItems(agg.ScheduledByAmount, w, counterparties),
		Upcoming:          topItems(agg.Upcoming, w, counterparties),
	}

	return resp
}

func topItems(byVariant map[string][]Document, w Window, counterparties map[uuid.UUID]string) map[string][]TopItem {
	out := make(map[string][]TopItem, len(byVariant))
	for variant, docs := range byVariant {
		items := make([]TopItem, 0, len(docs))
		for _, d := range docs {
			item := TopItem{
				ID:            d.ID,
				VariantID:     variant,
				Title:         d.Title,
				State:         d.State,
				InvoiceDate:   formatDate(d.InvoiceDate),
				PaymentDate:   formatDate(d.PaymentDate),
				EffectiveDate: formatDate(d.EffectiveDate(w)),
				Lordo:         d.Lordo,
				Netto:         d.Netto,
				Iva:           d.Iva,
			}
			if d.CounterpartyID != nil {
				item.CounterpartyName = counterparties[*d.CounterpartyID]
			}
			items = append(items, item)
		}
		out[variant] = items
	}
	return out
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateFormat)
	return &s
}
