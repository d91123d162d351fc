package registry

import (
	"errors"
	"reflect"
	"testing"
)

func TestGet_UnknownSlug(t *testing.T) {
	reg := MustNew(&RecordType{Slug: "clienti"})

	_, err := reg.Get("inesistente")
	if err == nil {
		t.Fatal("Expected error for unknown slug")
	}
	if !errors.Is(err, ErrUnknownType) {
		t.Errorf("Expected ErrUnknownType, got %v", err)
	}
}

func TestGet_KnownSlug(t *testing.T) {
	reg := MustNew(&RecordType{Slug: "clienti", Title: "Clienti"})

	rt, err := reg.Get("clienti")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rt.Title != "Clienti" {
		t.Errorf("Expected title 'Clienti', got %q", rt.Title)
	}
}

func TestNew_RejectsDuplicateSlug(t *testing.T) {
	_, err := New(&RecordType{Slug: "clienti"}, &RecordType{Slug: "clienti"})
	if err == nil {
		t.Fatal("Expected error for duplicate slug")
	}
}

func TestNew_RejectsEmptySlug(t *testing.T) {
	_, err := New(&RecordType{})
	if err == nil {
		t.Fatal("Expected error for empty slug")
	}
}

func TestAll_SortedBySlug(t *testing.T) {
	reg := MustNew(
		&RecordType{Slug: "sale"},
		&RecordType{Slug: "clienti"},
		&RecordType{Slug: "documenti"},
	)

	var slugs []string
	for _, rt := range reg.All() {
		slugs = append(slugs, rt.Slug)
	}

	want := []string{"clienti", "documenti", "sale"}
	if !reflect.DeepEqual(slugs, want) {
		t.Errorf("Expected %v, got %v", want, slugs)
	}
}

func TestPreviewUnion_OrderedAndDeduplicated(t *testing.T) {
	rt := &RecordType{
		Slug: "documenti",
		Preview: PreviewSpec{
			TitleFields:    []string{"oggetto"},
			SubtitleFields: []string{"statoFatturazione", "variante"},
			SearchFields:   []string{"oggetto", "numero", "cliente"},
		},
	}

	want := []string{"oggetto", "statoFatturazione", "variante", "numero", "cliente"}
	got := rt.PreviewUnion()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestAllowed(t *testing.T) {
	reg := MustNew(&RecordType{
		Slug:   "clienti",
		Fields: []FieldDef{{Key: "nome", Type: FieldText}},
	})
	rt, _ := reg.Get("clienti")

	if !rt.Allowed("nome") {
		t.Error("Expected 'nome' to be allowed")
	}
	if rt.Allowed("fantasma") {
		t.Error("Expected undeclared key to be rejected")
	}
}

func TestBuiltin_ContainsAllTypes(t *testing.T) {
	reg := Builtin()

	for _, slug := range []string{TypeClienti, TypeDocumenti, TypeSale, TypeEventi} {
		if _, err := reg.Get(slug); err != nil {
			t.Errorf("Builtin registry missing type %q: %v", slug, err)
		}
	}
}

func TestBuiltin_DocumentReferenceTarget(t *testing.T) {
	reg := Builtin()
	rt, err := reg.Get(TypeDocumenti)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	def, ok := rt.Field(FieldCliente)
	if !ok {
		t.Fatal("Expected cliente field on documenti")
	}
	if def.Reference == nil {
		t.Fatal("Expected cliente to be a reference field")
	}
	if def.Reference.TargetType != TypeClienti {
		t.Errorf("Expected target type %q, got %q", TypeClienti, def.Reference.TargetType)
	}
	if def.Reference.PreviewField != "ragioneSociale" {
		t.Errorf("Expected preview field 'ragioneSociale', got %q", def.Reference.PreviewField)
	}
}
