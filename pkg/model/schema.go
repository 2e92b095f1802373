package model

// ColumnKind names the semantic role of a preprocessor column, which
// determines how it is normalized and which features it feeds.
type ColumnKind int

const (
	ColumnName ColumnKind = iota
	ColumnURL
	ColumnDate
	ColumnOccupation
	ColumnGenre
	ColumnFreeText
	ColumnGender
	ColumnPlace
)

// ColumnSpec describes one column an entity schema expects to find on
// either side of a pair (KB or catalog), replacing the original
// implementation's scattered per-entity-type branching with a single
// declarative table the preprocessor walks.
type ColumnSpec struct {
	Name     string
	Kind     ColumnKind
	Required bool
}

// EntitySchema declares the columns relevant to one (catalog, entity)
// combination, e.g. "discogs musician" vs "imdb film".
type EntitySchema struct {
	Catalog string
	Entity  string
	Columns []ColumnSpec
}

// MusicianSchema is grounded on soweego's musician/band handling: name,
// birth/death dates, gender, genres, occupations and URLs.
func MusicianSchema(catalog string) EntitySchema {
	return EntitySchema{
		Catalog: catalog,
		Entity:  "musician",
		Columns: []ColumnSpec{
			{Name: "name", Kind: ColumnName, Required: true},
			{Name: "birth_date", Kind: ColumnDate},
			{Name: "death_date", Kind: ColumnDate},
			{Name: "gender", Kind: ColumnGender},
			{Name: "genres", Kind: ColumnGenre},
			{Name: "occupations", Kind: ColumnOccupation},
			{Name: "urls", Kind: ColumnURL},
		},
	}
}

// FilmEntitySchema is grounded on soweego's actor/director/producer
// handling for film catalogs such as IMDb.
func FilmEntitySchema(catalog, entity string) EntitySchema {
	return EntitySchema{
		Catalog: catalog,
		Entity:  entity,
		Columns: []ColumnSpec{
			{Name: "name", Kind: ColumnName, Required: true},
			{Name: "birth_date", Kind: ColumnDate},
			{Name: "death_date", Kind: ColumnDate},
			{Name: "gender", Kind: ColumnGender},
			{Name: "occupations", Kind: ColumnOccupation},
			{Name: "urls", Kind: ColumnURL},
		},
	}
}

// CatalogVocabulary maps a catalog to the knowledge-base vocabulary terms
// (QIDs/PIDs) describing it: which identifier property it owns, which
// classes its entities fall under, and its formatter property. Added per
// SPEC_FULL.md's "Wikidata vocabulary/formatter registry construction"
// supplement.
type CatalogVocabulary struct {
	Catalog         string
	IdentifierPID   PropertyID
	EntityQIDs      map[string]PropertyID // entity name -> class QID
	OccupationQIDs  map[string]PropertyID // entity name -> occupation QID
}
