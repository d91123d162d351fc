package query

import (
	"fmt"
	"strings"

	"github.com/gestionale/gestionale/internal/core/registry"
)

// Sort keys accepted by OrderBy, in "key[:direction]" form:
//
//	updated[:asc|:desc]
//	created[:asc|:desc]
//	field:<key>[:asc|:desc]   — key must belong to the type's preview union
//
// Anything else, including a field key outside the preview union, silently
// falls back to the default of updated:desc. Every ordering ends with an id
// tie-break so identical filters page deterministically.
func OrderBy(rt *registry.RecordType, rawKey string) []string {
	const tieBreak = "id DESC"
	defaultOrder := []string{"updated_at DESC", tieBreak}

	parts := strings.Split(strings.TrimSpace(rawKey), ":")
	if parts[0] == "" {
		return defaultOrder
	}

	dir := "DESC"
	switch parts[0] {
	case "updated", "created":
		if len(parts) > 2 {
			return defaultOrder
		}
		if len(parts) == 2 {
			var ok bool
			if dir, ok = direction(parts[1]); !ok {
				return defaultOrder
			}
		}
		column := map[string]string{"updated": "updated_at", "created": "created_at"}[parts[0]]
		return []string{column + " " + dir, tieBreak}

	case "field":
		if len(parts) < 2 || len(parts) > 3 {
			return defaultOrder
		}
		key := parts[1]
		if !inPreviewUnion(rt, key) {
			return defaultOrder
		}
		if len(parts) == 3 {
			var ok bool
			if dir, ok = direction(parts[2]); !ok {
				return defaultOrder
			}
		}
		// key is whitelisted against the registry above, so interpolating
		// it into the clause is safe.
		return []string{fmt.Sprintf("data->>'%s' %s", key, dir), tieBreak}
	}

	return defaultOrder
}

func direction(s string) (string, bool) {
	switch strings.ToLower(s) {
	case "asc":
		return "ASC", true
	case "desc":
		return "DESC", true
	}
	return "", false
}

func inPreviewUnion(rt *registry.RecordType, key string) bool {
	for _, k := range rt.PreviewUnion() {
		if k == key {
			return true
		}
	}
	return false
}
