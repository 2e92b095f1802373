// Package external declares the contracts this module needs from
// collaborators it does not implement in full: the catalog importer's
// relational store, the knowledge-base web/SPARQL clients, the
// edit-submission bot, and the curated-candidate uploader. Only
// internal/iocatalogdb is backed by a concrete implementation; the rest
// stay interface-only, consumed by callers that construct a real client
// outside this module's scope.
package external

import (
	"context"
	"io"

	"github.com/soweego-go/soweego/pkg/model"
)

// CatalogImporter downloads and loads a catalog's authority dump into the
// relational store CatalogStore reads from. It lives entirely outside the
// core pipeline; this interface only documents the handoff point.
type CatalogImporter interface {
	Import(ctx context.Context, catalog string) error
}

// CatalogStore is the read surface the core needs against a catalog's
// `entity`/`link_entity`/`nlp_entity`/`relationship_entity` tables.
type CatalogStore interface {
	// StreamEntities yields catalog records for (catalog, entity) in
	// identifier order, chunked by the caller.
	StreamEntities(ctx context.Context, catalog, entity string) (<-chan model.CatalogRecord, error)
	// EntitiesByTID fetches specific records by their catalog-native ID.
	EntitiesByTID(ctx context.Context, catalog, entity string, tids []model.TID) ([]model.CatalogRecord, error)
	// SearchByName returns up to topN TIDs whose name best matches query,
	// used by the full-text blocker.
	SearchByName(ctx context.Context, catalog, entity, query string, topN int) ([]model.TID, error)
	// AllTIDs lists every record identifier for a (catalog, entity), used
	// by the dead-ID validator.
	AllTIDs(ctx context.Context, catalog, entity string) ([]model.TID, error)
}

// KBClient is the knowledge-base's item stream and single-item lookup,
// scoped to the subset of items carrying a given catalog's identifier.
type KBClient interface {
	StreamForLinker(ctx context.Context, catalog, entity, goal string) (<-chan model.KBItem, error)
	GetItem(ctx context.Context, qid model.QID) (model.KBItem, error)
}

// SPARQLClient runs read-only SPARQL queries against the knowledge
// base's query service, used for vocabulary construction and the
// occupation sub/superclass expansion feature.
type SPARQLClient interface {
	Query(ctx context.Context, query string) (io.Reader, error)
	ClassDescendants(ctx context.Context, classQID model.PropertyID) ([]model.PropertyID, error)
}

// EditBot submits identifier/property edits back to the knowledge base
// (link additions, deprecations) on behalf of the sync/ingest commands.
type EditBot interface {
	AddStatement(ctx context.Context, qid model.QID, pid model.PropertyID, value string) error
	RemoveStatement(ctx context.Context, qid model.QID, pid model.PropertyID, value string) error
	DeprecateStatement(ctx context.Context, qid model.QID, pid model.PropertyID, value, reason string) error
}

// MixNMatchUploader pushes the curated, confidence-banded candidate list
// that falls below the auto-link threshold to a human curation queue.
type MixNMatchUploader interface {
	Upload(ctx context.Context, catalog, entity string, pairs []model.Pair) error
}
