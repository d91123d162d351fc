package record

import (
	"context"
	"database/sql"
	"encoding/json"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/gestionale/gestionale/internal/storage/postgres"
)

// psql builds every statement with Postgres placeholders. Filter fragments
// produced elsewhere (query builders, access deciders) are plain
// squirrel.Sqlizer values and compose into these statements unchanged.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const table = "records"

var baseColumns = []string{
	"id", "type_slug", "owner_id", "attachment_type",
	"visibility_roles", "created_at", "updated_at",
}

type Repository struct {
	db *postgres.Client
}

func NewRepository(db *postgres.Client) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, rec *Record) error {
	data, err := json.Marshal(rec.Data)
	if err != nil {
		return err
	}

	query, args, err := psql.Insert(table).
		Columns("id", "type_slug", "owner_id", "attachment_type", "visibility_roles", "data").
		Values(rec.ID, rec.TypeSlug, rec.OwnerID, nullable(rec.AttachmentType), pq.Array(rec.VisibilityRoles), data).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}

	return r.db.DB.QueryRowContext(ctx, query, args...).Scan(&rec.CreatedAt, &rec.UpdatedAt)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	query, args, err := psql.Select(append(baseColumns, "data")...).
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	return r.scanRecord(r.db.DB.QueryRowContext(ctx, query, args...))
}

// SelectPage runs the filtered, projected, sorted, paginated list read.
// dataKeys is the whitelisted projection of dynamic fields; orderBy clauses
// are produced by the sort builder and already carry the id tie-break.
func (r *Repository) SelectPage(ctx context.Context, slug string, filter sq.Sqlizer, dataKeys []string, orderBy []string, limit, offset uint64) ([]*Record, error) {
	b := psql.Select(baseColumns...).
		Column(sq.Expr(
			"(SELECT COALESCE(jsonb_object_agg(e.key, e.value), '{}'::jsonb) FROM jsonb_each(data) e WHERE e.key = ANY(?)) AS data",
			pq.Array(dataKeys),
		)).
		From(table).
		Where(sq.Eq{"type_slug": slug})
	if filter != nil {
		b = b.Where(filter)
	}
	b = b.OrderBy(orderBy...).Limit(limit).Offset(offset)

	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanRecords(rows)
}

// CountWhere counts the rows matching the same filter as SelectPage.
func (r *Repository) CountWhere(ctx context.Context, slug string, filter sq.Sqlizer) (int, error) {
	b := psql.Select("COUNT(*)").
		From(table).
		Where(sq.Eq{"type_slug": slug})
	if filter != nil {
		b = b.Where(filter)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}

	var total int
	err = r.db.DB.QueryRowContext(ctx, query, args...).Scan(&total)
	return total, err
}

// SelectAll materializes every visible record of a type in one read; the
// analytics engine aggregates over the result in process.
func (r *Repository) SelectAll(ctx context.Context, slug string, filter sq.Sqlizer) ([]*Record, error) {
	b := psql.Select(append(baseColumns, "data")...).
		From(table).
		Where(sq.Eq{"type_slug": slug})
	if filter != nil {
		b = b.Where(filter)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanRecords(rows)
}

// LookupPreview resolves a batch of record ids of one type to the value of
// a single preview field, in one read. Unknown ids are absent from the map.
func (r *Repository) LookupPreview(ctx context.Context, slug string, ids []uuid.UUID, field string) (map[uuid.UUID]string, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]string{}, nil
	}

	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = id.String()
	}

	query, args, err := psql.Select("id").
		Column(sq.Expr("COALESCE(data->>?, '')", field)).
		From(table).
		Where(sq.Eq{"type_slug": slug}).
		Where(sq.Expr("id = ANY(?)", pq.Array(strIDs))).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID]string, len(ids))
	for rows.Next() {
		var id uuid.UUID
		var preview string
		if err := rows.Scan(&id, &preview); err != nil {
			return nil, err
		}
		out[id] = preview
	}
	return out, rows.Err()
}

func (r *Repository) Update(ctx context.Context, rec *Record) error {
	data, err := json.Marshal(rec.Data)
	if err != nil {
		return err
	}

	query, args, err := psql.Update(table).
		Set("attachment_type", nullable(rec.AttachmentType)).
		Set("visibility_roles", pq.Array(rec.VisibilityRoles)).
		Set("data", data).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": rec.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return err
	}

	return r.db.DB.QueryRowContext(ctx, query, args...).Scan(&rec.UpdatedAt)
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.DB.ExecContext(ctx, query, args...)
	return err
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInto(s rowScanner) (*Record, error) {
	rec := &Record{}
	var (
		ownerID        uuid.NullUUID
		attachmentType sql.NullString
		roles          pq.StringArray
		data           []byte
	)

	err := s.Scan(
		&rec.ID, &rec.TypeSlug, &ownerID, &attachmentType,
		&roles, &rec.CreatedAt, &rec.UpdatedAt, &data,
	)
	if err != nil {
		return nil, err
	}

	if ownerID.Valid {
		id := ownerID.UUID
		rec.OwnerID = &id
	}
	rec.AttachmentType = attachmentType.String
	rec.VisibilityRoles = roles
	if err := json.Unmarshal(data, &rec.Data); err != nil {
		rec.Data = map[string]interface{}{}
	}
	return rec, nil
}

func (r *Repository) scanRecord(row *sql.Row) (*Record, error) {
	rec, err := scanInto(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *Repository) scanRecords(rows *sql.Rows) ([]*Record, error) {
	var records []*Record
	for rows.Next() {
		rec, err := scanInto(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
