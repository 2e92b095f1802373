package iopreprocess

import (
	"log/slog"

	"github.com/soweego-go/soweego/pkg/model"
)

// CollapseTrainingPositives builds the positive-pair index used to train
// a classifier from KB items carrying a resolved catalog identifier.
// When a QID carries more than one TID for the same property (the KB
// disagrees with itself), the original implementation keeps the first
// one encountered in input order; this is preserved unchanged (Open
// Question 1), with a warning logged at the point of collapse instead of
// silently dropping the disagreement.
func CollapseTrainingPositives(items []model.KBItem, pid model.PropertyID) *model.PairIndex {
	idx := model.NewPairIndex()
	seen := make(map[model.QID]model.TID)

	for _, item := range items {
		tid, ok := item.ExternalIDs[pid]
		if !ok || tid == "" {
			continue
		}
		if existing, dup := seen[item.QID]; dup {
			if existing != tid {
				slog.Warn("multiple catalog identifiers for one KB item, keeping the first",
					"qid", item.QID, "kept_tid", existing, "dropped_tid", tid, "property", pid)
			}
			continue
		}
		seen[item.QID] = tid
		idx.Add(model.PairKey{QID: item.QID, TID: tid})
	}

	return idx
}
