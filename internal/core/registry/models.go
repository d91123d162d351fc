package registry

// FieldType classifies a dynamic record field. The search, projection and
// sort builders treat the registry's field set as ground truth: any key not
// declared here is silently dropped.
type FieldType string

const (
	FieldText      FieldType = "text"
	FieldNumber    FieldType = "number"
	FieldDate      FieldType = "date"
	FieldReference FieldType = "reference"
)

// RefSpec describes the target of a reference field.
type RefSpec struct {
	TargetType   string `json:"target_type"`
	PreviewField string `json:"preview_field"`
}

type FieldDef struct {
	Key       string    `json:"key"`
	Type      FieldType `json:"type"`
	Title     string    `json:"title,omitempty"`
	Reference *RefSpec  `json:"reference,omitempty"`
}

// PreviewSpec names the fields used to render a record in list views.
// Order is significant and preserved: title/subtitle values are joined in
// declaration order.
type PreviewSpec struct {
	TitleFields    []string `json:"title_fields"`
	SubtitleFields []string `json:"subtitle_fields"`
	SearchFields   []string `json:"search_fields"`
}

type RecordType struct {
	Slug    string      `json:"slug"`
	Title   string      `json:"title"`
	Fields  []FieldDef  `json:"fields"`
	Preview PreviewSpec `json:"preview"`

	fieldsByKey map[string]FieldDef
}

// Field returns the definition for key, if declared.
func (t *RecordType) Field(key string) (FieldDef, bool) {
	def, ok := t.fieldsByKey[key]
	return def, ok
}

// Allowed reports whether key belongs to the type's declared field set.
func (t *RecordType) Allowed(key string) bool {
	_, ok := t.fieldsByKey[key]
	return ok
}

// PreviewUnion returns the ordered, deduplicated union of the title,
// subtitle and search field lists.
func (t *RecordType) PreviewUnion() []string {
	seen := make(map[string]bool)
	var union []string
	for _, group := range [][]string{t.Preview.TitleFields, t.Preview.SubtitleFields, t.Preview.SearchFields} {
		for _, key := range group {
			if !seen[key] {
				seen[key] = true
				union = append(union, key)
			}
		}
	}
	return union
}

func (t *RecordType) index() {
	t.fieldsByKey = make(map[string]FieldDef, len(t.Fields))
	for _, def := range t.Fields {
		t.fieldsByKey[def.Key] = def
	}
}
