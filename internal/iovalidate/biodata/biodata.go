// Package biodata checks catalog identifier claims against birth/death
// dates, birth/death places and gender on both sides, the Go port of
// checks.py's check_metadata.
package biodata

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/soweego-go/soweego/internal/iopreprocess"
	"github.com/soweego-go/soweego/internal/iovalidate"
	"github.com/soweego-go/soweego/pkg/external"
	"github.com/soweego-go/soweego/pkg/model"
)

// Statement is one (property, value) biographical fact, the Go
// counterpart of checks.py's target/KB metadata tuples.
type Statement struct {
	PID   model.PropertyID
	Value string
}

// Addition is a catalog-only statement recommended for the KB, since the
// catalog is considered authoritative for biographical metadata.
type Addition struct {
	QID model.QID
	Statement
}

// Recommendations is check_metadata's result: identifier claims to
// deprecate, plus catalog-only statements to add.
type Recommendations struct {
	Deprecate map[model.TID][]model.QID
	Add       []Addition
}

// Check gathers every KB item carrying catalog's identifier claim and
// the catalog's own birth/death date, place and gender metadata, then
// compares them per claim: an empty intersection recommends deprecating
// the claim, and catalog-only statements are queued for addition since
// the catalog is authoritative for this criterion. Mirrors
// check_metadata.
func Check(ctx context.Context, kb external.KBClient, store external.CatalogStore, catalog, entity, goal string, pid model.PropertyID) (Recommendations, error) {
	stream, err := kb.StreamForLinker(ctx, catalog, entity, goal)
	if err != nil {
		return Recommendations{}, GatherError(catalog, entity, err)
	}
	var items []model.KBItem
	for item := range stream {
		items = append(items, item)
	}

	records, err := store.StreamEntities(ctx, catalog, entity)
	if err != nil {
		return Recommendations{}, GatherError(catalog, entity, err)
	}
	catalogMetadata := make(map[model.TID]map[Statement]struct{})
	for record := range records {
		catalogMetadata[record.TID] = recordStatements(record)
	}

	return assess(pid, items, catalogMetadata), nil
}

func assess(pid model.PropertyID, items []model.KBItem, catalogMetadata map[model.TID]map[Statement]struct{}) Recommendations {
	claims := iopreprocess.CollapseTrainingPositives(items, pid)

	kbData := make(map[model.QID]map[Statement]struct{}, len(items))
	for _, item := range items {
		kbData[item.QID] = itemStatements(item)
	}

	assessment := iovalidate.Assess(claims, kbData, catalogMetadata)

	recs := Recommendations{Deprecate: assessment.Deprecate}
	for _, key := range claims.Sorted() {
		for _, st := range assessment.Add[key.QID] {
			recs.Add = append(recs.Add, Addition{QID: key.QID, Statement: st})
		}
	}

	slog.Info("biodata check completed", "to_deprecate", len(recs.Deprecate), "to_add", len(recs.Add))
	return recs
}

func itemStatements(item model.KBItem) map[Statement]struct{} {
	out := make(map[Statement]struct{})
	if item.BirthDate != nil {
		out[Statement{PID: model.DateOfBirth, Value: dateValue(*item.BirthDate)}] = struct{}{}
	}
	if item.DeathDate != nil {
		out[Statement{PID: model.DateOfDeath, Value: dateValue(*item.DeathDate)}] = struct{}{}
	}
	if item.Gender != "" {
		out[Statement{PID: model.SexOrGender, Value: item.Gender}] = struct{}{}
	}
	for _, place := range item.BirthPlace {
		out[Statement{PID: model.PlaceOfBirth, Value: place}] = struct{}{}
	}
	for _, place := range item.DeathPlace {
		out[Statement{PID: model.PlaceOfDeath, Value: place}] = struct{}{}
	}
	return out
}

func recordStatements(record model.CatalogRecord) map[Statement]struct{} {
	out := make(map[Statement]struct{})
	if record.BirthDate != nil {
		out[Statement{PID: model.DateOfBirth, Value: dateValue(*record.BirthDate)}] = struct{}{}
	}
	if record.DeathDate != nil {
		out[Statement{PID: model.DateOfDeath, Value: dateValue(*record.DeathDate)}] = struct{}{}
	}
	if record.Gender != nil && *record.Gender != "" {
		out[Statement{PID: model.SexOrGender, Value: *record.Gender}] = struct{}{}
	}
	if record.BirthPlace != nil && *record.BirthPlace != "" {
		out[Statement{PID: model.PlaceOfBirth, Value: *record.BirthPlace}] = struct{}{}
	}
	if record.DeathPlace != nil && *record.DeathPlace != "" {
		out[Statement{PID: model.PlaceOfDeath, Value: *record.DeathPlace}] = struct{}{}
	}
	return out
}

// dateValue canonicalizes a date into the same "YYYY-MM-DD/precision"
// shape _parse_target_metadata_query_result and
// _parse_wikidata_metadata_value both produce, so equal dates at equal
// precision compare equal as plain strings.
func dateValue(d model.PrecisionDate) string {
	return fmt.Sprintf("%04d-%02d-%02d/%d", d.Year, d.Month, d.Day, d.Precision)
}
