package iofeatures

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/soweego-go/soweego/pkg/model"
	"github.com/soweego-go/soweego/pkg/pipeline"
)

// Extract runs every feature over the candidate pairs concurrently, bounded
// to jobsNumber workers, and assembles the per-pair results into a single
// feature vector whose column order matches the features slice. One
// feature's failure cancels the rest and the first error is returned.
func Extract(ctx context.Context, pairs *model.PairIndex, left, right pipeline.Table, features []pipeline.Feature, jobsNumber int) (*model.FeatureVector, error) {
	columns := make([]string, len(features))
	for i, f := range features {
		columns[i] = f.Name()
	}

	results := make([][]float64, len(features))

	group, groupCtx := errgroup.WithContext(ctx)
	if jobsNumber > 0 {
		group.SetLimit(jobsNumber)
	}

	for i, f := range features {
		i, f := i, f
		group.Go(func() error {
			scores, err := f.Compute(groupCtx, pairs, left, right)
			if err != nil {
				return ComputeError(f.Name(), err)
			}
			results[i] = scores
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	vector := model.NewFeatureVector(columns)
	keys := pairs.Sorted()
	for row, key := range keys {
		values := make([]float64, len(features))
		for col := range features {
			if row < len(results[col]) {
				values[col] = results[col][row]
			} else {
				values[col] = MissingValue
			}
		}
		vector.Set(key, values)
	}

	return vector, nil
}
