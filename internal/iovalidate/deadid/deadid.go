// Package deadid checks that every catalog identifier claimed by a KB
// item still exists in the catalog, the Go port of checks.py's
// check_existence.
package deadid

import (
	"context"
	"log/slog"

	"github.com/soweego-go/soweego/pkg/external"
	"github.com/soweego-go/soweego/pkg/model"
)

// Recommendation names a catalog identifier absent from the catalog
// store, together with every KB item that claims it.
type Recommendation struct {
	TID  model.TID
	QIDs []model.QID
}

// Check validates every claimed (QID, TID) pair against the catalog's
// own identifier set. Unlike check_existence, which issues one query per
// claimed identifier, this lists the catalog's full TID set once via
// external.CatalogStore.AllTIDs and diffs the claims against it in
// memory.
func Check(ctx context.Context, store external.CatalogStore, catalog, entity string, claims *model.PairIndex) ([]Recommendation, error) {
	allTIDs, err := store.AllTIDs(ctx, catalog, entity)
	if err != nil {
		return nil, CheckError(catalog, entity, err)
	}

	existing := make(map[model.TID]struct{}, len(allTIDs))
	for _, tid := range allTIDs {
		existing[tid] = struct{}{}
	}

	var order []model.TID
	byTID := make(map[model.TID][]model.QID)
	for _, key := range claims.Sorted() {
		if _, ok := existing[key.TID]; ok {
			continue
		}
		if _, seen := byTID[key.TID]; !seen {
			order = append(order, key.TID)
		}
		byTID[key.TID] = append(byTID[key.TID], key.QID)
		slog.Warn("identifier is invalid", "qid", key.QID, "tid", key.TID)
	}

	recommendations := make([]Recommendation, 0, len(order))
	for _, tid := range order {
		recommendations = append(recommendations, Recommendation{TID: tid, QIDs: byTID[tid]})
	}

	slog.Info("dead-id check completed", "catalog", catalog, "entity", entity, "invalid", len(recommendations))
	return recommendations, nil
}
