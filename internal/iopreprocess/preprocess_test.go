package iopreprocess_test

import (
	"testing"

	"github.com/soweego-go/soweego/internal/iopreprocess"
	"github.com/soweego-go/soweego/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromKBNormalizesNameAndDropsAllNullColumns(t *testing.T) {
	schema := model.MusicianSchema("discogs")
	items := []model.KBItem{
		{
			QID:    "Q5383",
			Labels: map[string][]string{"en": {"David Bowie"}},
		},
	}

	table := iopreprocess.FromKB(schema, items)

	require.Equal(t, 1, table.Len())
	name, ok := table.Column("Q5383", "name")
	require.True(t, ok)
	tokens := name.(map[string]struct{})
	assert.Contains(t, tokens, "david")
	assert.Contains(t, tokens, "bowie")

	// No row carries birth_date, gender, etc: those columns are dropped
	// unless declared required.
	_, hasBirth := table.Column("Q5383", "birth_date")
	assert.False(t, hasBirth)
}

func TestFromCatalogBuildsOneRowPerTID(t *testing.T) {
	schema := model.MusicianSchema("discogs")
	gender := "male"
	records := []model.CatalogRecord{
		{TID: "123", Name: "David Bowie", Gender: &gender},
	}

	table := iopreprocess.FromCatalog(schema, records)

	require.Equal(t, 1, table.Len())
	gotGender, ok := table.Column("123", "gender")
	require.True(t, ok)
	assert.Equal(t, "male", gotGender)
}

func TestCollapseTrainingPositivesKeepsFirstAndDedups(t *testing.T) {
	items := []model.KBItem{
		{QID: "Q1", ExternalIDs: map[model.PropertyID]string{"P1953": "t1"}},
		{QID: "Q1", ExternalIDs: map[model.PropertyID]string{"P1953": "t2"}},
		{QID: "Q2", ExternalIDs: map[model.PropertyID]string{"P1953": "t3"}},
	}

	idx := iopreprocess.CollapseTrainingPositives(items, "P1953")

	assert.Equal(t, 2, idx.Len())
	assert.True(t, idx.Contains(model.PairKey{QID: "Q1", TID: "t1"}))
	assert.False(t, idx.Contains(model.PairKey{QID: "Q1", TID: "t2"}))
	assert.True(t, idx.Contains(model.PairKey{QID: "Q2", TID: "t3"}))
}
