package biodata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soweego-go/soweego/pkg/model"
)

const testPID model.PropertyID = "P2604"

func strptr(s string) *string { return &s }

func TestAssessDeprecatesWhenNoSharedMetadata(t *testing.T) {
	items := []model.KBItem{
		{QID: "Q1", Gender: "male", ExternalIDs: map[model.PropertyID]string{testPID: "t1"}},
	}
	catalog := map[model.TID]map[Statement]struct{}{
		"t1": {{PID: model.SexOrGender, Value: "female"}: {}},
	}

	recs := assess(testPID, items, catalog)
	assert.Equal(t, []model.QID{"Q1"}, recs.Deprecate[model.TID("t1")])
}

func TestAssessKeepsClaimWhenMetadataOverlaps(t *testing.T) {
	items := []model.KBItem{
		{QID: "Q1", Gender: "male", ExternalIDs: map[model.PropertyID]string{testPID: "t1"}},
	}
	catalog := map[model.TID]map[Statement]struct{}{
		"t1": {{PID: model.SexOrGender, Value: "male"}: {}},
	}

	recs := assess(testPID, items, catalog)
	assert.Empty(t, recs.Deprecate)
}

func TestAssessQueuesExtraCatalogStatement(t *testing.T) {
	items := []model.KBItem{
		{QID: "Q1", Gender: "male", ExternalIDs: map[model.PropertyID]string{testPID: "t1"}},
	}
	catalog := map[model.TID]map[Statement]struct{}{
		"t1": {
			{PID: model.SexOrGender, Value: "male"}: {},
			{PID: model.PlaceOfBirth, Value: "Q60"}: {},
		},
	}

	recs := assess(testPID, items, catalog)
	require.Len(t, recs.Add, 1)
	assert.Equal(t, Addition{QID: "Q1", Statement: Statement{PID: model.PlaceOfBirth, Value: "Q60"}}, recs.Add[0])
}

func TestDateValueMatchesAcrossEqualPrecisionDates(t *testing.T) {
	birth := model.PrecisionDate{Year: 1990, Month: 1, Day: 1, Precision: model.PrecisionDay}
	items := []model.KBItem{
		{QID: "Q1", BirthDate: &birth, ExternalIDs: map[model.PropertyID]string{testPID: "t1"}},
	}
	catalog := map[model.TID]map[Statement]struct{}{
		"t1": {{PID: model.DateOfBirth, Value: dateValue(birth)}: {}},
	}

	recs := assess(testPID, items, catalog)
	assert.Empty(t, recs.Deprecate)
	assert.Empty(t, recs.Add)
}

type fakeKB struct{ items []model.KBItem }

func (f fakeKB) StreamForLinker(ctx context.Context, catalog, entity, goal string) (<-chan model.KBItem, error) {
	out := make(chan model.KBItem, len(f.items))
	for _, item := range f.items {
		out <- item
	}
	close(out)
	return out, nil
}

func (f fakeKB) GetItem(ctx context.Context, qid model.QID) (model.KBItem, error) {
	return model.KBItem{}, nil
}

type fakeCatalogStore struct{ records []model.CatalogRecord }

func (s fakeCatalogStore) StreamEntities(ctx context.Context, catalog, entity string) (<-chan model.CatalogRecord, error) {
	out := make(chan model.CatalogRecord, len(s.records))
	for _, r := range s.records {
		out <- r
	}
	close(out)
	return out, nil
}

func (s fakeCatalogStore) EntitiesByTID(ctx context.Context, catalog, entity string, tids []model.TID) ([]model.CatalogRecord, error) {
	return nil, nil
}

func (s fakeCatalogStore) SearchByName(ctx context.Context, catalog, entity, query string, topN int) ([]model.TID, error) {
	return nil, nil
}

func (s fakeCatalogStore) AllTIDs(ctx context.Context, catalog, entity string) ([]model.TID, error) {
	return nil, nil
}

func TestCheckGathersBothSidesAndAssesses(t *testing.T) {
	kb := fakeKB{items: []model.KBItem{
		{QID: "Q1", Gender: "male", ExternalIDs: map[model.PropertyID]string{testPID: "t1"}},
	}}
	store := fakeCatalogStore{records: []model.CatalogRecord{
		{TID: "t1", Gender: strptr("female")},
	}}

	recs, err := Check(context.Background(), kb, store, "acme", "musician", "validate", testPID)
	require.NoError(t, err)
	assert.Equal(t, []model.QID{"Q1"}, recs.Deprecate[model.TID("t1")])
}
