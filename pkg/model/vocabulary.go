package model

// Well-known knowledge-base properties the validators compare catalog
// metadata against, the Go port of vocabulary.py's property constants.
// These are fixed across catalogs, unlike CatalogVocabulary's
// per-catalog identifier/class mapping.
const (
	SexOrGender   PropertyID = "P21"
	PlaceOfBirth  PropertyID = "P19"
	PlaceOfDeath  PropertyID = "P20"
	DateOfBirth   PropertyID = "P569"
	DateOfDeath   PropertyID = "P570"
	DescribedAtURL PropertyID = "P973"
)
