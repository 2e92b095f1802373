package deadid

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soweego-go/soweego/pkg/model"
)

type fakeStore struct {
	tids []model.TID
	err  error
}

func (s fakeStore) StreamEntities(ctx context.Context, catalog, entity string) (<-chan model.CatalogRecord, error) {
	return nil, nil
}

func (s fakeStore) EntitiesByTID(ctx context.Context, catalog, entity string, tids []model.TID) ([]model.CatalogRecord, error) {
	return nil, nil
}

func (s fakeStore) SearchByName(ctx context.Context, catalog, entity, query string, topN int) ([]model.TID, error) {
	return nil, nil
}

func (s fakeStore) AllTIDs(ctx context.Context, catalog, entity string) ([]model.TID, error) {
	return s.tids, s.err
}

func TestCheckFlagsMissingIdentifiers(t *testing.T) {
	store := fakeStore{tids: []model.TID{"t1", "t2"}}
	claims := model.NewPairIndex()
	claims.Add(model.PairKey{QID: "Q1", TID: "t1"})
	claims.Add(model.PairKey{QID: "Q2", TID: "t3"})
	claims.Add(model.PairKey{QID: "Q3", TID: "t3"})

	recs, err := Check(context.Background(), store, "acme", "musician", claims)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, model.TID("t3"), recs[0].TID)
	assert.ElementsMatch(t, []model.QID{"Q2", "Q3"}, recs[0].QIDs)
}

func TestCheckPropagatesStoreError(t *testing.T) {
	store := fakeStore{err: errors.New("connection refused")}
	claims := model.NewPairIndex()
	claims.Add(model.PairKey{QID: "Q1", TID: "t1"})

	_, err := Check(context.Background(), store, "acme", "musician", claims)
	assert.Error(t, err)
}

func TestCheckNoClaimsMissing(t *testing.T) {
	store := fakeStore{tids: []model.TID{"t1"}}
	claims := model.NewPairIndex()
	claims.Add(model.PairKey{QID: "Q1", TID: "t1"})

	recs, err := Check(context.Background(), store, "acme", "musician", claims)
	require.NoError(t, err)
	assert.Empty(t, recs)
}
