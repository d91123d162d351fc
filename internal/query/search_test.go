package query

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestionale/gestionale/internal/core/registry"
)

func testType(t *testing.T) *registry.RecordType {
	t.Helper()
	reg, err := registry.New(&registry.RecordType{
		Slug: "documenti",
		Fields: []registry.FieldDef{
			{Key: "oggetto", Type: registry.FieldText},
			{Key: "numero", Type: registry.FieldNumber},
			{Key: "cliente", Type: registry.FieldReference,
				Reference: &registry.RefSpec{TargetType: "clienti", PreviewField: "ragioneSociale"}},
			{Key: "dataFattura", Type: registry.FieldDate},
		},
		Preview: registry.PreviewSpec{
			TitleFields:    []string{"oggetto"},
			SubtitleFields: []string{"numero"},
			SearchFields:   []string{"oggetto", "numero", "cliente", "dataFattura"},
		},
	})
	require.NoError(t, err)
	rt, err := reg.Get("documenti")
	require.NoError(t, err)
	return rt
}

func TestSearchCondition_EmptyQueryMeansNoCondition(t *testing.T) {
	rt := testType(t)

	assert.Nil(t, SearchCondition(rt, ""))
	assert.Nil(t, SearchCondition(rt, "   \t"))
}

func TestSearchCondition_TextFieldSubstring(t *testing.T) {
	rt := testType(t)

	cond := SearchCondition(rt, "fattura")
	require.NotNil(t, cond)

	sql, args, err := cond.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "ILIKE")
	assert.Contains(t, args, "%fattura%")
}

func TestSearchCondition_LikeMetacharactersEscaped(t *testing.T) {
	rt := testType(t)

	cond := SearchCondition(rt, "100%")
	require.NotNil(t, cond)

	_, args, err := cond.ToSql()
	require.NoError(t, err)
	assert.Contains(t, args, `%100\%%`)
}

func TestSearchCondition_NumericQueryAddsBothBranches(t *testing.T) {
	rt := testType(t)

	cond := SearchCondition(rt, "2970")
	require.NotNil(t, cond)

	sql, args, err := cond.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "to_jsonb")
	// Exact numeric value plus the raw string for legacy string-typed data.
	assert.Contains(t, args, "2970")
}

func TestSearchCondition_CommaDecimalNormalized(t *testing.T) {
	rt := testType(t)

	cond := SearchCondition(rt, "29,70")
	require.NotNil(t, cond)

	sql, args, err := cond.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "to_jsonb")
	// The numeric branch gets the normalized form, the legacy branch the raw query.
	assert.Contains(t, args, "29.70")
	assert.Contains(t, args, "29,70")
}

func TestSearchCondition_NonNumericQuerySkipsNumericBranch(t *testing.T) {
	rt := testType(t)

	cond := SearchCondition(rt, "abc")
	require.NotNil(t, cond)

	sql, _, err := cond.ToSql()
	require.NoError(t, err)
	assert.NotContains(t, sql, "to_jsonb")
	// The legacy raw-string equality on the number field still applies.
	assert.Contains(t, sql, "data->>? = ?")
}

// The legacy branch compares the raw string verbatim: querying "2970" finds
// a stored number 2970 through the numeric branch, but never a stored string
// "02970". Both behaviors are kept deliberately; see DESIGN.md.
func TestSearchCondition_LegacyStringMatchIsExact(t *testing.T) {
	rt := testType(t)

	cond := SearchCondition(rt, "2970")
	require.NotNil(t, cond)

	_, args, err := cond.ToSql()
	require.NoError(t, err)
	assert.Contains(t, args, "2970")
	assert.NotContains(t, args, "02970")
}

func TestSearchCondition_ReferenceRequiresValidID(t *testing.T) {
	rt := testType(t)

	id := uuid.New()
	cond := SearchCondition(rt, id.String())
	require.NotNil(t, cond)

	_, args, err := cond.ToSql()
	require.NoError(t, err)
	assert.Contains(t, args, id.String())
}

func TestSearchCondition_OnlyInvalidReferenceMeansNoCondition(t *testing.T) {
	reg, err := registry.New(&registry.RecordType{
		Slug: "referenze",
		Fields: []registry.FieldDef{
			{Key: "cliente", Type: registry.FieldReference,
				Reference: &registry.RefSpec{TargetType: "clienti", PreviewField: "nome"}},
		},
		Preview: registry.PreviewSpec{SearchFields: []string{"cliente"}},
	})
	require.NoError(t, err)
	rt, err := reg.Get("referenze")
	require.NoError(t, err)

	// "no condition", to be omitted by the caller — not "match nothing".
	assert.Nil(t, SearchCondition(rt, "not-an-id"))
}

func TestSearchCondition_UndeclaredSearchFieldIgnored(t *testing.T) {
	reg, err := registry.New(&registry.RecordType{
		Slug:    "vuoto",
		Fields:  []registry.FieldDef{},
		Preview: registry.PreviewSpec{SearchFields: []string{"fantasma"}},
	})
	require.NoError(t, err)
	rt, err := reg.Get("vuoto")
	require.NoError(t, err)

	assert.Nil(t, SearchCondition(rt, "x"))
}
