// Package iodataset streams aligned KB and catalog record chunks for a
// (catalog, entity, goal) run, reusing a chunk from internal/iocache when
// a prior run already cached it.
package iodataset

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/soweego-go/soweego/internal/iocache"
	"github.com/soweego-go/soweego/pkg/external"
	"github.com/soweego-go/soweego/pkg/model"
	"github.com/soweego-go/soweego/pkg/pipeline"
)

const (
	kbChunkSize      = 1000
	catalogChunkSize = 1000

	artifactKindKB      = "kb_chunk"
	artifactKindCatalog = "catalog_chunk"
)

// Builder implements pipeline.DatasetBuilder over a knowledge-base client,
// a catalog store and a local cache of already-built chunks.
type Builder struct {
	KB      external.KBClient
	Catalog external.CatalogStore
	Cache   *iocache.Store
}

// New creates a dataset builder.
func New(kb external.KBClient, catalog external.CatalogStore, cache *iocache.Store) *Builder {
	return &Builder{KB: kb, Catalog: catalog, Cache: cache}
}

// BuildKB streams the knowledge-base items carrying catalog's identifier
// for entity, in fixed-size chunks. Every item is streamed from the KB
// client; for a chunk index already in the cache the cached chunk is sent
// in place of the freshly streamed one, and every other chunk is cached as
// it is produced.
func (b *Builder) BuildKB(ctx context.Context, catalog, entity, goal string) (<-chan pipeline.KBChunk, error) {
	items, err := b.KB.StreamForLinker(ctx, catalog, entity, goal)
	if err != nil {
		return nil, KBStreamError(catalog, entity, err)
	}

	out := make(chan pipeline.KBChunk)
	go func() {
		defer close(out)

		progress := newStreamProgress(fmt.Sprintf("%s/%s KB items (%s)", catalog, entity, goal))
		defer progress.finish()

		index := 0
		buffer := make([]model.KBItem, 0, kbChunkSize)
		flush := func() bool {
			if len(buffer) == 0 {
				return true
			}
			chunk := pipeline.KBChunk{Index: index, Items: buffer}
			if cached, ok, _ := iocache.Get[pipeline.KBChunk](ctx, b.Cache, kbKey(catalog, entity, goal, index)); ok {
				chunk = cached
			} else if changed, err := iocache.Put(ctx, b.Cache, kbKey(catalog, entity, goal, index), chunk); err == nil && changed {
				slog.Debug("kb chunk cached", "catalog", catalog, "entity", entity, "goal", goal, "chunk", index)
			}
			select {
			case out <- chunk:
			case <-ctx.Done():
				return false
			}
			index++
			buffer = make([]model.KBItem, 0, kbChunkSize)
			return true
		}

		for item := range items {
			buffer = append(buffer, item)
			progress.add(1)
			if len(buffer) == kbChunkSize {
				if !flush() {
					return
				}
			}
		}
		flush()
	}()
	return out, nil
}

// BuildCatalog streams catalog records for the given TIDs (or the whole
// catalog/entity if tids is empty) in fixed-size chunks, cached the same
// way BuildKB is.
func (b *Builder) BuildCatalog(ctx context.Context, catalog, entity, goal string, tids []model.TID) (<-chan pipeline.CatalogChunk, error) {
	out := make(chan pipeline.CatalogChunk)

	go func() {
		defer close(out)

		if len(tids) == 0 {
			b.streamAllCatalog(ctx, catalog, entity, goal, out)
			return
		}

		progress := newStreamProgress(fmt.Sprintf("%s/%s catalog records (%s)", catalog, entity, goal))
		defer progress.finish()

		for index := 0; index*catalogChunkSize < len(tids); index++ {
			start := index * catalogChunkSize
			end := start + catalogChunkSize
			if end > len(tids) {
				end = len(tids)
			}

			chunk := pipeline.CatalogChunk{Index: index}
			if cached, ok, _ := iocache.Get[pipeline.CatalogChunk](ctx, b.Cache, catalogKey(catalog, entity, goal, index)); ok {
				chunk = cached
			} else {
				records, err := b.Catalog.EntitiesByTID(ctx, catalog, entity, tids[start:end])
				if err != nil {
					slog.Error("catalog lookup failed", "catalog", catalog, "entity", entity, "chunk", index, "err", err)
					return
				}
				chunk.Records = records
				if changed, err := iocache.Put(ctx, b.Cache, catalogKey(catalog, entity, goal, index), chunk); err == nil && changed {
					slog.Debug("catalog chunk cached", "catalog", catalog, "entity", entity, "goal", goal, "chunk", index)
				}
			}
			progress.add(len(chunk.Records))

			select {
			case out <- chunk:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func (b *Builder) streamAllCatalog(ctx context.Context, catalog, entity, goal string, out chan<- pipeline.CatalogChunk) {
	records, err := b.Catalog.StreamEntities(ctx, catalog, entity)
	if err != nil {
		slog.Error("catalog stream failed", "catalog", catalog, "entity", entity, "err", err)
		return
	}

	progress := newStreamProgress(fmt.Sprintf("%s/%s catalog records (%s)", catalog, entity, goal))
	defer progress.finish()

	index := 0
	buffer := make([]model.CatalogRecord, 0, catalogChunkSize)
	flush := func() bool {
		if len(buffer) == 0 {
			return true
		}
		chunk := pipeline.CatalogChunk{Index: index, Records: buffer}
		if cached, ok, _ := iocache.Get[pipeline.CatalogChunk](ctx, b.Cache, catalogKey(catalog, entity, goal, index)); ok {
			chunk = cached
		} else if changed, err := iocache.Put(ctx, b.Cache, catalogKey(catalog, entity, goal, index), chunk); err == nil && changed {
			slog.Debug("catalog chunk cached", "catalog", catalog, "entity", entity, "goal", goal, "chunk", index)
		}
		select {
		case out <- chunk:
		case <-ctx.Done():
			return false
		}
		index++
		buffer = make([]model.CatalogRecord, 0, catalogChunkSize)
		return true
	}

	for record := range records {
		buffer = append(buffer, record)
		progress.add(1)
		if len(buffer) == catalogChunkSize {
			if !flush() {
				return
			}
		}
	}
	flush()
}

func kbKey(catalog, entity, goal string, chunk int) iocache.Key {
	return iocache.Key{Kind: artifactKindKB, Catalog: catalog, Entity: entity, Goal: goal, Chunk: chunk}
}

func catalogKey(catalog, entity, goal string, chunk int) iocache.Key {
	return iocache.Key{Kind: artifactKindCatalog, Catalog: catalog, Entity: entity, Goal: goal, Chunk: chunk}
}
