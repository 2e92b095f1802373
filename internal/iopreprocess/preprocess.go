package iopreprocess

import (
	"log/slog"

	"github.com/soweego-go/soweego/internal/iotext"
	"github.com/soweego-go/soweego/pkg/model"
)

// FromKB builds a Table from knowledge-base items, one row per QID,
// normalizing/tokenizing name-like columns and dropping all-null columns.
func FromKB(schema model.EntitySchema, items []model.KBItem) *Table {
	t := New(schema)

	for _, item := range items {
		row := string(item.QID)

		for lang, labels := range item.Labels {
			for _, label := range labels {
				addNameColumn(t, row, "name", label)
				_ = lang
			}
		}
		for _, aliases := range item.Aliases {
			for _, alias := range aliases {
				addNameColumn(t, row, "name", alias)
			}
		}

		if item.BirthDate != nil {
			t.Set(row, "birth_date", *item.BirthDate)
		}
		if item.DeathDate != nil {
			t.Set(row, "death_date", *item.DeathDate)
		}
		if item.Gender != "" {
			t.Set(row, "gender", item.Gender)
		}
		if len(item.BirthPlace) > 0 {
			t.Set(row, "birth_place", item.BirthPlace)
		}
		if len(item.DeathPlace) > 0 {
			t.Set(row, "death_place", item.DeathPlace)
		}
		if len(item.Occupations) > 0 {
			t.Set(row, "occupations", toSet(item.Occupations))
		}
		if len(item.Genres) > 0 {
			t.Set(row, "genres", toSet(item.Genres))
		}

		urls := append(append([]string{}, item.ThirdPartyURLs...), item.Sitelinks...)
		if len(urls) > 0 {
			t.Set(row, "urls", urlTokenSet(urls))
		}
	}

	t.dropAllNullColumns()
	return t
}

// FromCatalog builds a Table from catalog records, one row per TID.
func FromCatalog(schema model.EntitySchema, records []model.CatalogRecord) *Table {
	t := New(schema)

	for _, rec := range records {
		row := string(rec.TID)

		addNameColumn(t, row, "name", rec.Name)
		for _, variant := range rec.NameVariants {
			addNameColumn(t, row, "name", variant)
		}

		if rec.BirthDate != nil {
			t.Set(row, "birth_date", *rec.BirthDate)
		}
		if rec.DeathDate != nil {
			t.Set(row, "death_date", *rec.DeathDate)
		}
		if rec.Gender != nil {
			t.Set(row, "gender", *rec.Gender)
		}
		if rec.BirthPlace != nil {
			t.Set(row, "birth_place", []string{*rec.BirthPlace})
		}
		if rec.DeathPlace != nil {
			t.Set(row, "death_place", []string{*rec.DeathPlace})
		}
		if rec.Description != nil {
			t.Set(row, "description", *rec.Description)
		}
		if len(rec.URLs) > 0 {
			t.Set(row, "urls", urlTokenSet(rec.URLs))
		}
	}

	t.dropAllNullColumns()
	return t
}

// addNameColumn accumulates a name value's token set into the row's name
// column, merging across multiple labels/aliases the way the original
// implementation concatenates before tokenizing.
func addNameColumn(t *Table, row, column, value string) {
	existing, _ := t.Column(row, column)
	tokens, _ := existing.(map[string]struct{})
	if tokens == nil {
		tokens = make(map[string]struct{})
	}
	for tok := range iotext.Tokenize(value, iotext.NameStopwords()) {
		tokens[tok] = struct{}{}
	}
	t.Set(row, column, tokens)
}

func urlTokenSet(urls []string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, raw := range urls {
		valid, ok := iotext.ValidateURL(raw)
		if !ok {
			slog.Debug("dropping invalid URL from token set", "err", iotext.InvalidURLError(raw))
			continue
		}
		for tok := range iotext.TokenizeURL(valid) {
			tokens[tok] = struct{}{}
		}
	}
	return tokens
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
