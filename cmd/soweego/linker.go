package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/soweego-go/soweego/internal/ioblock"
	"github.com/soweego-go/soweego/internal/ioclassify"
	"github.com/soweego-go/soweego/internal/ioevaluate"
	"github.com/soweego-go/soweego/internal/iofeatures"
	"github.com/soweego-go/soweego/internal/iopreprocess"
	"github.com/soweego-go/soweego/pkg/model"
	"github.com/soweego-go/soweego/pkg/pipeline"
	"github.com/spf13/cobra"
)

var property string

func getLinkerCmd() *cobra.Command {
	linkerCmd := &cobra.Command{
		Use:   "linker",
		Short: "build, train and run the record-linkage classifier",
	}

	linkerCmd.PersistentFlags().StringVar(&property, "property", "",
		"knowledge-base property carrying this catalog's identifier (e.g. P2963)")

	linkerCmd.AddCommand(
		getLinkerBaselineCmd(),
		getLinkerTrainCmd(),
		getLinkerEvaluateCmd(),
		getLinkerLinkCmd(),
	)

	return linkerCmd
}

func classifierConfig(algorithm string) ioclassify.ClassifierConfig {
	return ioclassify.ClassifierConfig{
		Algorithm:                       algorithm,
		NameColumn:                      "name",
		URLColumn:                       "urls",
		BirthDateColumn:                 "birth_date",
		DeathDateColumn:                 "death_date",
		SelfLinkOverridesHighConfidence: cfg.Classifier.SelfLinkOverridesHighConfidence,
		Threshold:                       cfg.Classifier.Threshold,
	}
}

// buildTrainingSet gathers the KB/catalog items for (catalog, entity),
// preprocesses them and blocks positives into a candidate pair index,
// the shared first half of train/tune/evaluate.
func buildTrainingSet(ctx context.Context, catalog, entity string) (*model.FeatureVector, *model.PairIndex, error) {
	if property == "" {
		return nil, nil, fmt.Errorf("--property is required")
	}

	deps, err := openPipelineDeps(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer deps.Close()

	schema := schemaFor(catalog, entity)

	items, err := collectKB(ctx, deps.Builder, catalog, entity, "train")
	if err != nil {
		return nil, nil, err
	}
	positives := iopreprocess.CollapseTrainingPositives(items, model.PropertyID(property))
	kbTable := iopreprocess.FromKB(schema, items)

	records, err := collectCatalog(ctx, deps.Builder, catalog, entity, "train", nil)
	if err != nil {
		return nil, nil, err
	}
	catalogTable := iopreprocess.FromCatalog(schema, records)

	pairs := ioblock.TrainingBlock(positives, catalogTable)

	features, err := iofeatures.Extract(ctx, pairs, kbTable, catalogTable, defaultFeatures(Clients.SPARQL), cfg.JobsNumber)
	if err != nil {
		return nil, nil, err
	}

	return features, positives, nil
}

func getLinkerBaselineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "baseline {catalog} {entity}",
		Short: "bootstrap a catalog with the zero-training name/date matcher",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, entity := args[0], args[1]
			ctx := cmd.Context()
			start := time.Now()

			deps, err := openPipelineDeps(ctx)
			if err != nil {
				return err
			}
			defer deps.Close()

			schema := schemaFor(catalog, entity)
			items, err := collectKB(ctx, deps.Builder, catalog, entity, "baseline")
			if err != nil {
				return err
			}
			kbTable := iopreprocess.FromKB(schema, items)

			records, err := collectCatalog(ctx, deps.Builder, catalog, entity, "baseline", nil)
			if err != nil {
				return err
			}
			catalogTable := iopreprocess.FromCatalog(schema, records)

			pairs, err := ioblock.FullTextBlock(ctx, kbTable, deps.Catalog, catalog, entity, cfg.Pipeline.FullTextTopN)
			if err != nil {
				return err
			}

			baseline := ioclassify.Baseline{
				NameColumn:      "name",
				BirthDateColumn: "birth_date",
				DeathDateColumn: "death_date",
				CheckDates:      true,
			}
			scores := baseline.Match(pairs, kbTable, catalogTable)

			matched := 0
			for _, key := range scores.Keys() {
				values, _ := scores.Get(key)
				if len(values) > 0 && values[0] >= 1.0 {
					matched++
				}
			}
			fmt.Printf("baseline matched %s of %s candidate pairs in %s\n",
				humanize.Comma(int64(matched)), humanize.Comma(int64(pairs.Len())), gnfmt.TimeString(time.Since(start).Seconds()))
			return nil
		},
	}
}

func getLinkerTrainCmd() *cobra.Command {
	var tune bool
	var kFolds int

	cmd := &cobra.Command{
		Use:   "train {algorithm} {catalog} {entity}",
		Short: "train a classifier on the knowledge base's existing positive links",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			algo, catalog, entity := args[0], args[1], args[2]
			ctx := cmd.Context()
			start := time.Now()

			features, positives, err := buildTrainingSet(ctx, catalog, entity)
			if err != nil {
				return err
			}

			cache, err := openCache(ctx)
			if err != nil {
				return err
			}
			defer cache.Close()

			classifierCfg := classifierConfig(algo)

			var classifier pipeline.Classifier
			if tune {
				classifier, err = ioclassify.Tune(ctx, cache, catalog, entity, classifierCfg, features, positives)
			} else {
				classifier, err = ioclassify.Train(ctx, cache, catalog, entity, classifierCfg, features, positives)
			}
			if err != nil {
				return err
			}

			fmt.Printf("trained %s for %s/%s on %s positive pairs in %s\n",
				classifier.Name(), catalog, entity, humanize.Comma(int64(positives.Len())), gnfmt.TimeString(time.Since(start).Seconds()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&tune, "tune", false, "grid-search hyperparameters before the final fit")
	cmd.Flags().IntVarP(&kFolds, "k", "k", 5, "fold count (not read: --tune always runs 5-fold cross-validation)")

	return cmd
}

func getLinkerEvaluateCmd() *cobra.Command {
	var single bool

	cmd := &cobra.Command{
		Use:   "evaluate {algorithm} {catalog} {entity}",
		Short: "cross-validate a classifier against the existing positive links",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			algo, catalog, entity := args[0], args[1], args[2]
			ctx := cmd.Context()
			start := time.Now()

			features, positives, err := buildTrainingSet(ctx, catalog, entity)
			if err != nil {
				return err
			}

			newClassifier := func() pipeline.Classifier {
				c, _ := ioclassify.New(algo)
				return c
			}

			if single {
				_, result, err := ioevaluate.SingleKFold(ctx, newClassifier, features, positives,
					cfg.Classifier.KFolds, ioevaluate.DefaultBinarizeThreshold, 42)
				if err != nil {
					return err
				}
				fmt.Printf("precision=%.3f recall=%.3f f-score=%.3f (%s, %s pairs)\n",
					result.Precision, result.Recall, result.FScore,
					gnfmt.TimeString(time.Since(start).Seconds()), humanize.Comma(int64(positives.Len())))
				return nil
			}

			avg, err := ioevaluate.AverageKFold(ctx, newClassifier, features, positives,
				cfg.Classifier.KFolds, ioevaluate.DefaultBinarizeThreshold, 42)
			if err != nil {
				return err
			}
			fmt.Printf("average precision=%.3f±%.3f recall=%.3f±%.3f f-score=%.3f±%.3f (%s, %s pairs)\n",
				avg.PrecisionMean, avg.PrecisionStd, avg.RecallMean, avg.RecallStd, avg.FScoreMean, avg.FScoreStd,
				gnfmt.TimeString(time.Since(start).Seconds()), humanize.Comma(int64(positives.Len())))
			return nil
		},
	}

	cmd.Flags().BoolVar(&single, "single", false, "run a single held-out fold instead of averaging across all folds")

	return cmd
}

func getLinkerLinkCmd() *cobra.Command {
	var threshold float64
	var noClassify bool
	var uploadCurated bool
	var selfLinkOverride bool

	cmd := &cobra.Command{
		Use:   "link {algorithm} {catalog} {entity}",
		Short: "classify candidate pairs and emit links above the confidence threshold",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			algo, catalog, entity := args[0], args[1], args[2]
			ctx := cmd.Context()
			start := time.Now()

			if threshold == 0 {
				threshold = cfg.Classifier.Threshold
			}

			deps, err := openPipelineDeps(ctx)
			if err != nil {
				return err
			}
			defer deps.Close()

			schema := schemaFor(catalog, entity)
			items, err := collectKB(ctx, deps.Builder, catalog, entity, "link")
			if err != nil {
				return err
			}
			kbTable := iopreprocess.FromKB(schema, items)

			pairs, err := ioblock.FullTextBlock(ctx, kbTable, deps.Catalog, catalog, entity, cfg.Pipeline.FullTextTopN)
			if err != nil {
				return err
			}

			tids := make([]model.TID, 0, pairs.Len())
			for _, key := range pairs.Sorted() {
				tids = append(tids, key.TID)
			}
			records, err := collectCatalog(ctx, deps.Builder, catalog, entity, "link", tids)
			if err != nil {
				return err
			}
			catalogTable := iopreprocess.FromCatalog(schema, records)

			if noClassify {
				fmt.Printf("%s candidate pairs blocked, classification skipped (-n), %s\n",
					humanize.Comma(int64(pairs.Len())), gnfmt.TimeString(time.Since(start).Seconds()))
				return nil
			}

			features, err := iofeatures.Extract(ctx, pairs, kbTable, catalogTable, defaultFeatures(Clients.SPARQL), cfg.JobsNumber)
			if err != nil {
				return err
			}

			classifierCfg := classifierConfig(algo)
			// Classify keeps every scored pair; the loop below splits them at
			// threshold into accepted links and curation candidates.
			classifierCfg.Threshold = 0
			classifierCfg.SelfLinkOverridesHighConfidence = selfLinkOverride || cfg.Classifier.SelfLinkOverridesHighConfidence

			scores, err := ioclassify.Classify(ctx, deps.Cache, catalog, entity, classifierCfg, features, kbTable, catalogTable)
			if err != nil {
				return err
			}

			var curated []model.Pair
			accepted := 0
			for _, key := range scores.Keys() {
				values, ok := scores.Get(key)
				if !ok || len(values) == 0 {
					continue
				}
				if values[0] >= threshold {
					accepted++
				} else {
					curated = append(curated, model.Pair{QID: key.QID, TID: key.TID, Score: values[0]})
				}
			}

			if uploadCurated && len(curated) > 0 {
				uploader, err := requireMixNMatch()
				if err != nil {
					return err
				}
				if err := uploader.Upload(ctx, catalog, entity, curated); err != nil {
					return err
				}
			}

			fmt.Printf("linked %s of %s candidate pairs above threshold %.2f in %s\n",
				humanize.Comma(int64(accepted)), humanize.Comma(int64(scores.Len())), threshold,
				gnfmt.TimeString(time.Since(start).Seconds()))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&threshold, "threshold", "t", 0, "confidence threshold (default: config classifier.threshold)")
	cmd.Flags().BoolVarP(&noClassify, "no-classify", "n", false, "skip classification, emit the blocked candidate pairs only")
	cmd.Flags().BoolVarP(&uploadCurated, "upload", "u", false, "upload below-threshold candidates to Mix'n'match for curation")
	cmd.Flags().BoolVarP(&selfLinkOverride, "self-link-override", "s", false, "force the self-link post-rule on for this run")

	return cmd
}
