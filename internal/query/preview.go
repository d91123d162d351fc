package query

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gestionale/gestionale/internal/core/identity"
	"github.com/gestionale/gestionale/internal/core/record"
	"github.com/gestionale/gestionale/internal/core/registry"
)

// UntitledPlaceholder stands in for records whose title fields are all empty.
const UntitledPlaceholder = "Untitled"

// PreviewDTO is the display projection of a record returned by the list
// pipeline.
type PreviewDTO struct {
	ID              uuid.UUID              `json:"id"`
	TypeSlug        string                 `json:"type_slug"`
	DisplayName     string                 `json:"display_name"`
	Subtitle        *string                `json:"subtitle"`
	OwnerName       string                 `json:"owner_name,omitempty"`
	VisibilityRoles []string               `json:"visibility_roles"`
	Data            map[string]interface{} `json:"data"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// MapPreview projects a raw record into its display DTO. Title fields are
// space-joined with empty values skipped; subtitle fields are joined with a
// middle dot, nil when nothing remains; visibility roles are never nil.
func MapPreview(rt *registry.RecordType, rec *record.Record, owners map[uuid.UUID]identity.Owner) PreviewDTO {
	dto := PreviewDTO{
		ID:              rec.ID,
		TypeSlug:        rec.TypeSlug,
		DisplayName:     joinFields(rec.Data, rt.Preview.TitleFields, " "),
		VisibilityRoles: rec.VisibilityRoles,
		Data:            rec.Data,
		UpdatedAt:       rec.UpdatedAt,
	}
	if dto.DisplayName == "" {
		dto.DisplayName = UntitledPlaceholder
	}
	if dto.VisibilityRoles == nil {
		dto.VisibilityRoles = []string{}
	}

	if subtitle := joinFields(rec.Data, rt.Preview.SubtitleFields, " · "); subtitle != "" {
		dto.Subtitle = &subtitle
	}

	if rec.OwnerID != nil {
		if owner, ok := owners[*rec.OwnerID]; ok {
			dto.OwnerName = owner.DisplayName
		}
	}

	return dto
}

func joinFields(data map[string]interface{}, keys []string, sep string) string {
	var parts []string
	for _, key := range keys {
		if s := stringify(data[key]); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}
