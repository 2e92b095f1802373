package iocatalogdb

import (
	"context"
	"fmt"

	"github.com/soweego-go/soweego/pkg/model"
	"gorm.io/gorm"
)

// Store implements pkg/external.CatalogStore over a gorm.DB connected to
// the importer's Postgres schema.
type Store struct {
	db *gorm.DB
}

// New wraps an already-connected gorm.DB. Connection lifecycle (pgx pool
// setup, migration) is the caller's responsibility, mirroring the
// teacher's separation between pkg/db.Operator and pkg/schema.Migrate.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate brings the catalog schema up to date.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}

func toRecord(e Entity, urls []string, description string) model.CatalogRecord {
	rec := model.CatalogRecord{
		TID:  model.TID(e.TID),
		Name: e.Name,
		URLs: urls,
	}
	if e.Gender != "" {
		rec.Gender = &e.Gender
	}
	if e.BirthPlace != "" {
		rec.BirthPlace = &e.BirthPlace
	}
	if e.DeathPlace != "" {
		rec.DeathPlace = &e.DeathPlace
	}
	if description != "" {
		rec.Description = &description
	}
	return rec
}

// StreamEntities yields every record for (catalog, entity) in TID order,
// through a cursor-paginated query so callers can process arbitrarily
// large catalogs without loading them all into memory at once.
func (s *Store) StreamEntities(ctx context.Context, catalog, entity string) (<-chan model.CatalogRecord, error) {
	out := make(chan model.CatalogRecord)

	go func() {
		defer close(out)

		const pageSize = 1000
		lastTID := ""
		for {
			var page []Entity
			q := s.db.WithContext(ctx).
				Where("catalog = ? AND kind = ? AND tid > ?", catalog, entity, lastTID).
				Order("tid").
				Limit(pageSize)
			if err := q.Find(&page).Error; err != nil {
				return
			}
			if len(page) == 0 {
				return
			}
			for _, e := range page {
				urls := s.urlsFor(ctx, catalog, e.TID)
				desc := s.descriptionFor(ctx, catalog, e.TID)
				select {
				case out <- toRecord(e, urls, desc):
				case <-ctx.Done():
					return
				}
			}
			lastTID = page[len(page)-1].TID
			if len(page) < pageSize {
				return
			}
		}
	}()

	return out, nil
}

func (s *Store) urlsFor(ctx context.Context, catalog, tid string) []string {
	var links []LinkEntity
	if err := s.db.WithContext(ctx).
		Where("catalog = ? AND tid = ?", catalog, tid).
		Find(&links).Error; err != nil {
		return nil
	}
	urls := make([]string, 0, len(links))
	for _, l := range links {
		urls = append(urls, l.URL)
	}
	return urls
}

func (s *Store) descriptionFor(ctx context.Context, catalog, tid string) string {
	var nlp NLPEntity
	err := s.db.WithContext(ctx).
		Where("catalog = ? AND tid = ?", catalog, tid).
		First(&nlp).Error
	if err != nil {
		return ""
	}
	return nlp.Description
}

// EntitiesByTID fetches specific records by native ID.
func (s *Store) EntitiesByTID(ctx context.Context, catalog, entity string, tids []model.TID) ([]model.CatalogRecord, error) {
	if len(tids) == 0 {
		return nil, nil
	}
	raw := make([]string, len(tids))
	for i, t := range tids {
		raw[i] = string(t)
	}

	var rows []Entity
	err := s.db.WithContext(ctx).
		Where("catalog = ? AND kind = ? AND tid IN ?", catalog, entity, raw).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query entities by tid: %w", err)
	}

	records := make([]model.CatalogRecord, 0, len(rows))
	for _, e := range rows {
		records = append(records, toRecord(e, s.urlsFor(ctx, catalog, e.TID), s.descriptionFor(ctx, catalog, e.TID)))
	}
	return records, nil
}

// SearchByName returns up to topN TIDs whose name contains query as a
// case-insensitive substring (ILIKE '%query%'), ordered by name. No
// trigram or full-text index is queried.
func (s *Store) SearchByName(ctx context.Context, catalog, entity, query string, topN int) ([]model.TID, error) {
	var rows []Entity
	err := s.db.WithContext(ctx).
		Where("catalog = ? AND kind = ? AND name ILIKE ?", catalog, entity, "%"+query+"%").
		Order("name").
		Limit(topN).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("search by name: %w", err)
	}

	tids := make([]model.TID, 0, len(rows))
	for _, e := range rows {
		tids = append(tids, model.TID(e.TID))
	}
	return tids, nil
}

// AllTIDs lists every identifier for (catalog, entity).
func (s *Store) AllTIDs(ctx context.Context, catalog, entity string) ([]model.TID, error) {
	var raw []string
	err := s.db.WithContext(ctx).
		Model(&Entity{}).
		Where("catalog = ? AND kind = ?", catalog, entity).
		Pluck("tid", &raw).Error
	if err != nil {
		return nil, fmt.Errorf("list tids: %w", err)
	}

	tids := make([]model.TID, len(raw))
	for i, t := range raw {
		tids[i] = model.TID(t)
	}
	return tids, nil
}
