// Package ioblock generates the candidate-pair index the feature
// extractor and classifier operate on: an exact join on a shared
// identifier for training, and a full-text-search-driven approximate
// join for linking against catalogs with no resolved identifier yet.
package ioblock

import (
	"context"

	"github.com/soweego-go/soweego/internal/iopreprocess"
	"github.com/soweego-go/soweego/pkg/external"
	"github.com/soweego-go/soweego/pkg/model"
)

// TrainingBlock pairs every KB row with the catalog row sharing its
// identifier. The catalog table's rows are keyed by TID, so this is a
// direct intersection: no search is involved, since training pairs are
// already resolved links.
func TrainingBlock(positives *model.PairIndex, catalog *iopreprocess.Table) *model.PairIndex {
	idx := model.NewPairIndex()
	catalogRows := make(map[model.TID]struct{}, catalog.Len())
	for _, row := range catalog.Rows() {
		catalogRows[model.TID(row)] = struct{}{}
	}

	for _, key := range positives.Sorted() {
		if _, ok := catalogRows[key.TID]; ok {
			idx.Add(key)
		}
	}
	return idx
}

// FullTextBlock issues one full-text search per KB row against the
// catalog store's name index and unions up to topN hits per row, the
// approximate-join strategy used when linking a catalog that has no
// resolved identifiers yet.
func FullTextBlock(ctx context.Context, kb *iopreprocess.Table, store external.CatalogStore, catalog, entity string, topN int) (*model.PairIndex, error) {
	idx := model.NewPairIndex()

	for _, row := range kb.Rows() {
		qid := model.QID(row)
		nameVal, ok := kb.Column(row, "name")
		if !ok {
			continue
		}
		tokens, ok := nameVal.(map[string]struct{})
		if !ok || len(tokens) == 0 {
			continue
		}

		query := joinTokens(tokens)
		tids, err := store.SearchByName(ctx, catalog, entity, query, topN)
		if err != nil {
			return nil, BlockQueryError(catalog, entity, query, err)
		}
		for _, tid := range tids {
			idx.Add(model.PairKey{QID: qid, TID: tid})
		}
	}

	return idx, nil
}

func joinTokens(tokens map[string]struct{}) string {
	out := make([]byte, 0, 64)
	first := true
	for tok := range tokens {
		if !first {
			out = append(out, ' ')
		}
		out = append(out, tok...)
		first = false
	}
	return string(out)
}
