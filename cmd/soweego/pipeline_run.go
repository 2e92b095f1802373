package main

import (
	"context"

	"github.com/soweego-go/soweego/internal/iocache"
	"github.com/soweego-go/soweego/internal/iodataset"
	"github.com/soweego-go/soweego/pkg/external"
	"github.com/soweego-go/soweego/pkg/model"
	"github.com/soweego-go/soweego/pkg/pipeline"
)

// collectKB drains BuildKB's chunk stream into a flat item slice.
func collectKB(ctx context.Context, builder *iodataset.Builder, catalog, entity, goal string) ([]model.KBItem, error) {
	chunks, err := builder.BuildKB(ctx, catalog, entity, goal)
	if err != nil {
		return nil, err
	}
	var items []model.KBItem
	for chunk := range chunks {
		items = append(items, chunk.Items...)
	}
	return items, nil
}

// collectCatalog drains BuildCatalog's chunk stream into a flat record
// slice, for the given TIDs (or the whole entity when tids is nil).
func collectCatalog(ctx context.Context, builder *iodataset.Builder, catalog, entity, goal string, tids []model.TID) ([]model.CatalogRecord, error) {
	chunks, err := builder.BuildCatalog(ctx, catalog, entity, goal, tids)
	if err != nil {
		return nil, err
	}
	var records []model.CatalogRecord
	for chunk := range chunks {
		records = append(records, chunk.Records...)
	}
	return records, nil
}

// pipelineDeps bundles the catalog store, cache and dataset builder every
// linker subcommand needs, opened once per invocation and closed by the
// caller's defer.
type pipelineDeps struct {
	Catalog external.CatalogStore
	Cache   *iocache.Store
	Builder *iodataset.Builder
	closeDB func() error
}

func openPipelineDeps(ctx context.Context) (*pipelineDeps, error) {
	kb, err := requireKB()
	if err != nil {
		return nil, err
	}

	store, db, err := openCatalogStore()
	if err != nil {
		return nil, err
	}

	cache, err := openCache(ctx)
	if err != nil {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}

	return &pipelineDeps{
		Catalog: store,
		Cache:   cache,
		Builder: iodataset.New(kb, store, cache),
		closeDB: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}, nil
}

func (d *pipelineDeps) Close() {
	_ = d.Cache.Close()
	_ = d.closeDB()
}

var _ pipeline.DatasetBuilder = (*iodataset.Builder)(nil)
