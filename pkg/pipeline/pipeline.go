// Package pipeline declares the abstractions that bind the dataset
// builder, preprocessor, blocker, feature extractor and classifier
// together, so orchestration code (CLI commands, evaluator) depends on
// these interfaces rather than any one concrete implementation.
package pipeline

import (
	"context"

	"github.com/soweego-go/soweego/pkg/model"
)

// Feature computes one numeric column of a feature vector over a set of
// candidate pairs, comparing the left (KB) and right (catalog) tables.
type Feature interface {
	Name() string
	Compute(ctx context.Context, pairs *model.PairIndex, left, right Table) ([]float64, error)
}

// Table is the column-oriented, schema-validated shape the preprocessor
// produces and features/blockers consume. It is implemented by
// internal/iopreprocess.Table; declared here so downstream packages do
// not import the preprocessor directly.
type Table interface {
	// Rows returns the identifiers present in this table: QIDs on the KB
	// side, TIDs on the catalog side.
	Rows() []string
	// Column returns the raw cell value for a row and column name.
	Column(row, column string) (any, bool)
}

// Classifier trains on a feature vector plus a positive-pair index and
// predicts a confidence score for each candidate pair.
type Classifier interface {
	Name() string
	Fit(features *model.FeatureVector, positives *model.PairIndex) error
	Predict(features *model.FeatureVector) (*model.FeatureVector, error)
}

// DatasetBuilder streams the KB and catalog datasets for a (catalog,
// entity, goal) combination in bounded-size chunks.
type DatasetBuilder interface {
	BuildKB(ctx context.Context, catalog, entity, goal string) (<-chan KBChunk, error)
	BuildCatalog(ctx context.Context, catalog, entity, goal string, tids []model.TID) (<-chan CatalogChunk, error)
}

// KBChunk is one bounded-size slice of knowledge-base items.
type KBChunk struct {
	Index int
	Items []model.KBItem
}

// CatalogChunk is one bounded-size slice of catalog records.
type CatalogChunk struct {
	Index   int
	Records []model.CatalogRecord
}

// PostRule adjusts a classifier's predicted scores in place after
// prediction, given the original candidate feature rows it scored.
type PostRule func(pairs []model.PairKey, scores []float64, left, right Table) []float64
