// Package model holds the shared data types passed between the dataset
// builder, preprocessor, blocker, feature extractor, classifier and
// validators: the KB item, the catalog record, candidate pairs, feature
// vectors and the formatter registry.
package model

// PropertyID identifies a knowledge-base property or class (e.g. a
// Wikidata PID or QID string, kept opaque to this package).
type PropertyID = string

// QID identifies a knowledge-base item.
type QID = string

// TID identifies a catalog record (the external authority's native key).
type TID = string

// KBItem is one row of the dataset built from the knowledge base for a
// given (catalog, entity) pair: everything the feature extractor needs to
// compare against a catalog record.
type KBItem struct {
	QID            QID
	Labels         map[string][]string
	Aliases        map[string][]string
	Descriptions   map[string][]string
	Sitelinks      []string
	ThirdPartyURLs []string
	ExternalIDs    map[PropertyID]string
	Gender         string
	BirthDate      *PrecisionDate
	DeathDate      *PrecisionDate
	BirthPlace     []string
	DeathPlace     []string
	Occupations    []PropertyID
	Genres         []string
}

// Relationship links a catalog record to another one it is related to
// (e.g. a work credited to a person, a band member).
type Relationship struct {
	Kind   string
	TID    TID
	Weight float64
}

// CatalogRecord is one row of the dataset built from an external catalog.
type CatalogRecord struct {
	TID           TID
	Name          string
	NameTokens    []string
	NameVariants  []string
	BirthDate     *PrecisionDate
	DeathDate     *PrecisionDate
	Gender        *string
	BirthPlace    *string
	DeathPlace    *string
	Description   *string
	URLs          []string
	Relationships []Relationship
}

// PairKey uniquely identifies a (QID, TID) candidate pair.
type PairKey struct {
	QID QID
	TID TID
}

// Pair is a scored candidate link between a KB item and a catalog record.
type Pair struct {
	QID   QID
	TID   TID
	Score float64
}

// Key returns this pair's PairKey.
func (p Pair) Key() PairKey {
	return PairKey{QID: p.QID, TID: p.TID}
}
