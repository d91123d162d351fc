package query

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gestionale/gestionale/internal/access"
	"github.com/gestionale/gestionale/internal/core/identity"
	"github.com/gestionale/gestionale/internal/core/record"
	"github.com/gestionale/gestionale/internal/core/registry"
)

// RecordStore is the slice of the record repository the list pipeline needs.
type RecordStore interface {
	SelectPage(ctx context.Context, slug string, filter sq.Sqlizer, dataKeys []string, orderBy []string, limit, offset uint64) ([]*record.Record, error)
	CountWhere(ctx context.Context, slug string, filter sq.Sqlizer) (int, error)
}

type ListRequest struct {
	TypeSlug       string
	Query          string
	Limit          int
	Offset         int
	AttachmentType string
	VisibilityRole string
	SortKey        string
	Fields         []string
	Caller         identity.Identity
}

type ListResult struct {
	Items []PreviewDTO `json:"items"`
	Total int          `json:"total"`
}

// Lister orchestrates the list pipeline: type resolution, filter
// composition, the concurrent page and count reads, owner enrichment and
// preview mapping. It holds no per-request state; every call recomputes from
// the current store state.
type Lister struct {
	registry *registry.Registry
	store    RecordStore
	access   access.Decider
	owners   identity.OwnerStore
}

func NewLister(reg *registry.Registry, store RecordStore, decider access.Decider, owners identity.OwnerStore) *Lister {
	return &Lister{registry: reg, store: store, access: decider, owners: owners}
}

// List returns one page of preview DTOs plus the total match count. The only
// fatal input error is an unknown type slug; every other malformed input
// degrades to a neutral default inside the builders.
func (l *Lister) List(ctx context.Context, req ListRequest) (*ListResult, error) {
	rt, err := l.registry.Get(req.TypeSlug)
	if err != nil {
		return nil, err
	}

	domain := DomainFilter(DomainOptions{
		Search:         SearchCondition(rt, req.Query),
		AttachmentType: req.AttachmentType,
		VisibilityRole: req.VisibilityRole,
	})

	accessFrag, err := l.access.FilterFor(ctx, req.Caller, req.TypeSlug)
	if err != nil {
		return nil, err
	}
	filter := Combine(domain, accessFrag)

	dataKeys := ProjectionKeys(rt, req.Fields)
	orderBy := OrderBy(rt, req.SortKey)
	page := Pagination(req.Limit, req.Offset)

	// Page read and count share the filter but not each other's result, so
	// they run concurrently.
	var (
		records []*record.Record
		total   int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = l.store.SelectPage(gctx, rt.Slug, filter, dataKeys, orderBy, page.Limit, page.Offset)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = l.store.CountWhere(gctx, rt.Slug, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	owners, err := l.resolveOwners(ctx, records)
	if err != nil {
		return nil, err
	}

	items := make([]PreviewDTO, 0, len(records))
	for _, rec := range records {
		items = append(items, MapPreview(rt, rec, owners))
	}

	return &ListResult{Items: items, Total: total}, nil
}

// resolveOwners batches the distinct non-nil owner ids of the page into one
// lookup. No owners, no lookup.
func (l *Lister) resolveOwners(ctx context.Context, records []*record.Record) (map[uuid.UUID]identity.Owner, error) {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, rec := range records {
		if rec.OwnerID != nil && !seen[*rec.OwnerID] {
			seen[*rec.OwnerID] = true
			ids = append(ids, *rec.OwnerID)
		}
	}
	if len(ids) == 0 {
		return map[uuid.UUID]identity.Owner{}, nil
	}
	return l.owners.LookupMany(ctx, ids)
}
