package query

import (
	"strings"

	"github.com/gestionale/gestionale/internal/core/registry"
)

// MaxProjectedFields caps an explicit field list, protecting against
// unbounded payloads.
const MaxProjectedFields = 50

// ProjectionKeys decides which dynamic fields a list read returns. With no
// explicit request, exactly the fields referenced by the type's preview
// specs. An explicit list is deduplicated, intersected with the type's
// declared field set (undeclared keys are silently dropped) and capped.
//
// The fixed row columns — owner, updated timestamp, visibility roles — are
// not part of the dynamic projection: the repository returns them on every
// read, so they are always present regardless of what is requested here.
func ProjectionKeys(rt *registry.RecordType, requested []string) []string {
	if len(requested) == 0 {
		return rt.PreviewUnion()
	}

	seen := make(map[string]bool, len(requested))
	keys := make([]string, 0, len(requested))
	for _, key := range requested {
		key = strings.TrimSpace(key)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if !rt.Allowed(key) {
			continue
		}
		keys = append(keys, key)
		if len(keys) == MaxProjectedFields {
			break
		}
	}
	return keys
}
