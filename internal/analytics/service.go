package analytics

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/gestionale/gestionale/internal/access"
	"github.com/gestionale/gestionale/internal/core/identity"
	"github.com/gestionale/gestionale/internal/core/record"
	"github.com/gestionale/gestionale/internal/core/registry"
)

// DocumentStore is the slice of the record repository the analytics path
// needs: one materializing read under the caller's access filter, plus the
// batched counterparty preview lookup.
type DocumentStore interface {
	SelectAll(ctx context.Context, slug string, filter sq.Sqlizer) ([]*record.Record, error)
	LookupPreview(ctx context.Context, slug string, ids []uuid.UUID, field string) (map[uuid.UUID]string, error)
}

type Service struct {
	registry *registry.Registry
	store    DocumentStore
	access   access.Decider
	now      func() time.Time
}

func NewService(reg *registry.Registry, store DocumentStore, decider access.Decider) *Service {
	return &Service{registry: reg, store: store, access: decider, now: time.Now}
}

// Report computes the financial report for the caller over the last
// monthsBack calendar months. One store read materializes the visible
// documents; everything after that is in-process.
func (s *Service) Report(ctx context.Context, caller identity.Identity, monthsBack int) (*Response, error) {
	rt, err := s.registry.Get(registry.TypeDocumenti)
	if err != nil {
		return nil, err
	}

	frag, err := s.access.FilterFor(ctx, caller, rt.Slug)
	if err != nil {
		return nil, err
	}

	records, err := s.store.SelectAll(ctx, rt.Slug, frag)
	if err != nil {
		return nil, err
	}

	now := s.now()
	w := ResolveWindow(now, monthsBack)
	fw := ResolveForward(now)

	docs := make([]Document, 0, len(records))
	for _, rec := range records {
		docs = append(docs, NewDocument(rec))
	}

	agg := Aggregate(docs, w, fw)

	names, err := s.resolveCounterparties(ctx, rt, agg)
	if err != nil {
		return nil, err
	}

	return Assemble(agg, w, names), nil
}

// resolveCounterparties batches the distinct counterparty ids referenced by
// the leaderboards into one preview lookup on the referenced type.
func (s *Service) resolveCounterparties(ctx context.Context, rt *registry.RecordType, agg *Aggregation) (map[uuid.UUID]string, error) {
	ref := referenceSpec(rt)
	if ref == nil {
		return map[uuid.UUID]string{}, nil
	}

	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, facet := range []map[string][]Document{agg.Recent, agg.Scheduled, agg.ScheduledByAmount, agg.Upcoming} {
		for _, docs := range facet {
			for _, d := range docs {
				if d.CounterpartyID != nil && !seen[*d.CounterpartyID] {
					seen[*d.CounterpartyID] = true
					ids = append(ids, *d.CounterpartyID)
				}
			}
		}
	}
	if len(ids) == 0 {
		return map[uuid.UUID]string{}, nil
	}

	return s.store.LookupPreview(ctx, ref.TargetType, ids, ref.PreviewField)
}

func referenceSpec(rt *registry.RecordType) *registry.RefSpec {
	def, ok := rt.Field(registry.FieldCliente)
	if !ok || def.Reference == nil {
		return nil
	}
	return def.Reference
}
