package analytics

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gestionale/gestionale/internal/core/record"
	"github.com/gestionale/gestionale/internal/core/registry"
)

// Document is the normalized analytics view of a financial record: amounts
// parsed to whole units, state classified, dates resolved. All of it is
// computed defensively — a malformed record degrades to zeros and nils, it
// never fails the report.
type Document struct {
	ID             uuid.UUID
	Variant        string
	State          string
	Title          string
	CounterpartyID *uuid.UUID
	InvoiceDate    *time.Time
	PaymentDate    *time.Time
	Lordo          int64
	Netto          int64
	Iva            int64
	UpdatedAt      time.Time
}

// NewDocument normalizes a raw record. The three amounts are read from
// independent source fields and never derived from one another.
func NewDocument(rec *record.Record) Document {
	data := rec.Data
	doc := Document{
		ID:          rec.ID,
		Variant:     fieldString(data[registry.FieldVariante]),
		State:       ResolveState(data[registry.FieldStatoFatturazione], data[registry.FieldStatoConsegna]),
		Title:       fieldString(data[registry.FieldOggetto]),
		InvoiceDate: parseDate(data[registry.FieldDataFattura]),
		PaymentDate: parseDate(data[registry.FieldDataPagamento]),
		Lordo:       ParseAmount(data[registry.FieldLordo]),
		Netto:       ParseAmount(data[registry.FieldNetto]),
		Iva:         ParseAmount(data[registry.FieldIva]),
		UpdatedAt:   rec.UpdatedAt,
	}

	if s := fieldString(data[registry.FieldCliente]); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			doc.CounterpartyID = &id
		}
	}

	return doc
}

// EffectiveDate anchors the document into the backward window: the payment
// date when it falls inside the window, else the invoice date when it does,
// else nil — the document then contributes to no monthly bucket.
func (d Document) EffectiveDate(w Window) *time.Time {
	if d.PaymentDate != nil && w.Contains(*d.PaymentDate) {
		return d.PaymentDate
	}
	if d.InvoiceDate != nil && w.Contains(*d.InvoiceDate) {
		return d.InvoiceDate
	}
	return nil
}

// ForwardAnchor is the date anchoring the document into the forward window:
// payment date if present, else invoice date, with no window restriction
// applied here.
func (d Document) ForwardAnchor() *time.Time {
	if d.PaymentDate != nil {
		return d.PaymentDate
	}
	return d.InvoiceDate
}

// VariantOrDefault returns the declared variant or the unclassified token.
func (d Document) VariantOrDefault() string {
	if d.Variant == "" {
		return VariantUnclassified
	}
	return d.Variant
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "02/01/2006"}

func parseDate(v interface{}) *time.Time {
	s := fieldString(v)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func fieldString(v interface{}) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
