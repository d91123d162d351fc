package registry

// JSONSchema derives a JSON Schema document from the type's field set.
// Record payloads are validated against it on write; unknown keys are
// rejected there, which keeps the whitelist property the read path relies
// on true by construction.
func (t *RecordType) JSONSchema() map[string]interface{} {
	props := make(map[string]interface{}, len(t.Fields))
	for _, def := range t.Fields {
		props[def.Key] = def.schemaProperty()
	}

	return map[string]interface{}{
		"type":                 "object",
		"title":                t.Title,
		"properties":           props,
		"additionalProperties": false,
	}
}

func (d FieldDef) schemaProperty() map[string]interface{} {
	switch d.Type {
	case FieldNumber:
		// Historic data stored numbers as strings; both shapes are accepted
		// on write and normalized defensively on read.
		return map[string]interface{}{
			"anyOf": []interface{}{
				map[string]interface{}{"type": "number"},
				map[string]interface{}{"type": "string"},
			},
		}
	case FieldDate:
		return map[string]interface{}{"type": "string"}
	case FieldReference:
		return map[string]interface{}{"type": "string", "format": "uuid"}
	default:
		return map[string]interface{}{"type": "string"}
	}
}
