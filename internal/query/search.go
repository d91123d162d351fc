// Package query implements the list pipeline for dynamic-schema records:
// search, domain and access filter composition, projection and sort
// whitelisting, pagination, and the orchestrated page read.
//
// Every filter is a squirrel.Sqlizer. A nil Sqlizer always means "no
// condition" — the predicate is omitted entirely — which is distinct from a
// condition that matches nothing. Builders and combiners preserve that
// distinction throughout.
package query

import (
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/gestionale/gestionale/internal/core/registry"
)

// SearchCondition builds the disjunctive free-text condition over the type's
// declared search-target fields. Returns nil when the trimmed query is empty
// or when no search field can produce a condition for it; callers must treat
// nil as "omit the predicate", never as "match nothing".
func SearchCondition(rt *registry.RecordType, rawQuery string) sq.Sqlizer {
	q := strings.TrimSpace(rawQuery)
	if q == "" {
		return nil
	}

	numeric, isNumeric := normalizeNumber(q)

	var conds sq.Or
	for _, key := range rt.Preview.SearchFields {
		def, ok := rt.Field(key)
		if !ok {
			continue
		}
		switch def.Type {
		case registry.FieldText:
			conds = append(conds, sq.Expr("data->>? ILIKE ?", key, "%"+escapeLike(q)+"%"))
		case registry.FieldNumber:
			if isNumeric {
				conds = append(conds, sq.Expr("data->? = to_jsonb(?::numeric)", key, numeric))
			}
			// Legacy data stored numbers as strings; the raw query is also
			// matched verbatim against those. Exact match only: "2970" does
			// not find a stored "02970".
			conds = append(conds, sq.Expr("data->>? = ?", key, q))
		case registry.FieldReference:
			// References compare by identity, and only when the query has
			// the store's id shape at all.
			if id, err := uuid.Parse(q); err == nil {
				conds = append(conds, sq.Expr("data->>? = ?", key, id.String()))
			}
		}
	}

	if len(conds) == 0 {
		return nil
	}
	return conds
}

// normalizeNumber reports whether the whole query parses as a number once a
// comma decimal separator is normalized to a dot, returning the normalized
// form suitable for a numeric cast.
func normalizeNumber(q string) (string, bool) {
	normalized := strings.ReplaceAll(q, ",", ".")
	if _, err := strconv.ParseFloat(normalized, 64); err != nil {
		return "", false
	}
	return normalized, true
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
