package registry

// Slugs of the built-in record types of the management console.
const (
	TypeClienti   = "clienti"
	TypeDocumenti = "documenti"
	TypeSale      = "sale"
	TypeEventi    = "eventi"
)

// Field keys of the financial document type consumed by the analytics
// engine. They are declared here, next to the type definition, so the
// engine and the registry cannot drift apart.
const (
	FieldStatoFatturazione = "statoFatturazione"
	FieldStatoConsegna     = "statoConsegna"
	FieldLordo             = "lordo"
	FieldNetto             = "netto"
	FieldIva               = "iva"
	FieldDataFattura       = "dataFattura"
	FieldDataPagamento     = "dataPagamento"
	FieldVariante          = "variante"
	FieldCliente           = "cliente"
	FieldOggetto           = "oggetto"
	FieldNumero            = "numero"
)

// Builtin returns the registry of the console's record types.
func Builtin() *Registry {
	return MustNew(clienti(), documenti(), sale(), eventi())
}

func clienti() *RecordType {
	return &RecordType{
		Slug:  TypeClienti,
		Title: "Clienti",
		Fields: []FieldDef{
			{Key: "nome", Type: FieldText, Title: "Nome"},
			{Key: "cognome", Type: FieldText, Title: "Cognome"},
			{Key: "ragioneSociale", Type: FieldText, Title: "Ragione sociale"},
			{Key: "email", Type: FieldText, Title: "Email"},
			{Key: "telefono", Type: FieldText, Title: "Telefono"},
			{Key: "partitaIva", Type: FieldText, Title: "Partita IVA"},
			{Key: "citta", Type: FieldText, Title: "Città"},
		},
		Preview: PreviewSpec{
			TitleFields:    []string{"nome", "cognome"},
			SubtitleFields: []string{"ragioneSociale", "citta"},
			SearchFields:   []string{"nome", "cognome", "ragioneSociale", "email", "partitaIva"},
		},
	}
}

func documenti() *RecordType {
	return &RecordType{
		Slug:  TypeDocumenti,
		Title: "Documenti",
		Fields: []FieldDef{
			{Key: FieldNumero, Type: FieldNumber, Title: "Numero"},
			{Key: FieldOggetto, Type: FieldText, Title: "Oggetto"},
			{Key: FieldCliente, Type: FieldReference, Title: "Cliente",
				Reference: &RefSpec{TargetType: TypeClienti, PreviewField: "ragioneSociale"}},
			{Key: FieldVariante, Type: FieldText, Title: "Variante"},
			{Key: FieldStatoFatturazione, Type: FieldText, Title: "Stato fatturazione"},
			{Key: FieldStatoConsegna, Type: FieldText, Title: "Stato consegna"},
			{Key: FieldLordo, Type: FieldNumber, Title: "Lordo"},
			{Key: FieldNetto, Type: FieldNumber, Title: "Netto"},
			{Key: FieldIva, Type: FieldNumber, Title: "IVA"},
			{Key: FieldDataFattura, Type: FieldDate, Title: "Data fattura"},
			{Key: FieldDataPagamento, Type: FieldDate, Title: "Data pagamento"},
		},
		Preview: PreviewSpec{
			TitleFields:    []string{FieldOggetto},
			SubtitleFields: []string{FieldStatoFatturazione, FieldVariante},
			SearchFields:   []string{FieldOggetto, FieldNumero, FieldCliente},
		},
	}
}

func sale() *RecordType {
	return &RecordType{
		Slug:  TypeSale,
		Title: "Sale",
		Fields: []FieldDef{
			{Key: "nome", Type: FieldText, Title: "Nome"},
			{Key: "capienza", Type: FieldNumber, Title: "Capienza"},
			{Key: "piano", Type: FieldText, Title: "Piano"},
			{Key: "note", Type: FieldText, Title: "Note"},
		},
		Preview: PreviewSpec{
			TitleFields:    []string{"nome"},
			SubtitleFields: []string{"piano"},
			SearchFields:   []string{"nome", "piano"},
		},
	}
}

func eventi() *RecordType {
	return &RecordType{
		Slug:  TypeEventi,
		Title: "Eventi",
		Fields: []FieldDef{
			{Key: "titolo", Type: FieldText, Title: "Titolo"},
			{Key: "sala", Type: FieldReference, Title: "Sala",
				Reference: &RefSpec{TargetType: TypeSale, PreviewField: "nome"}},
			{Key: "dataInizio", Type: FieldDate, Title: "Data inizio"},
			{Key: "dataFine", Type: FieldDate, Title: "Data fine"},
			{Key: "partecipanti", Type: FieldNumber, Title: "Partecipanti"},
		},
		Preview: PreviewSpec{
			TitleFields:    []string{"titolo"},
			SubtitleFields: []string{"dataInizio"},
			SearchFields:   []string{"titolo"},
		},
	}
}
