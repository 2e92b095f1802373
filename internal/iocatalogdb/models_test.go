package iocatalogdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableNames(t *testing.T) {
	assert.Equal(t, "entity", Entity{}.TableName())
	assert.Equal(t, "link_entity", LinkEntity{}.TableName())
	assert.Equal(t, "nlp_entity", NLPEntity{}.TableName())
	assert.Equal(t, "relationship_entity", RelationshipEntity{}.TableName())
}

func TestAllModelsCount(t *testing.T) {
	assert.Len(t, AllModels(), 4)
}

func TestToRecord(t *testing.T) {
	e := Entity{
		TID:        "t1",
		Name:       "David Bowie",
		Gender:     "male",
		BirthPlace: "Brixton",
	}
	rec := toRecord(e, []string{"https://example.com/a"}, "English singer")

	assert.Equal(t, "t1", string(rec.TID))
	assert.Equal(t, "David Bowie", rec.Name)
	assert.NotNil(t, rec.Gender)
	assert.Equal(t, "male", *rec.Gender)
	assert.NotNil(t, rec.BirthPlace)
	assert.Equal(t, "Brixton", *rec.BirthPlace)
	assert.NotNil(t, rec.Description)
	assert.Equal(t, "English singer", *rec.Description)
	assert.Equal(t, []string{"https://example.com/a"}, rec.URLs)
	assert.Nil(t, rec.DeathPlace)
}
