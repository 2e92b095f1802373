package link

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soweego-go/soweego/pkg/model"
)

// stubTransport answers every request with a 200 OK, so Check's URL
// liveness pass never reaches the network in tests.
type stubTransport struct{}

func (stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader("")),
		Header:     make(http.Header),
	}, nil
}

const testPID model.PropertyID = "P2950"

func registry() *model.FormatterRegistry {
	reg := model.NewFormatterRegistry()
	reg.Register("P345", model.Formatter{Template: "https://www.imdb.com/name/$1/"})
	return reg
}

func TestAssessDeprecatesWhenNoSharedURLs(t *testing.T) {
	items := []model.KBItem{
		{QID: "Q1", ThirdPartyURLs: []string{"https://example.org/a"}, ExternalIDs: map[model.PropertyID]string{testPID: "t1"}},
	}
	catalogURLs := map[model.TID]([]string){"t1": {"https://example.org/different"}}

	recs := assess(testPID, registry(), items, catalogURLs)
	assert.Equal(t, []model.QID{"Q1"}, recs.Deprecate[model.TID("t1")])
}

func TestAssessKeepsClaimWhenURLsOverlap(t *testing.T) {
	items := []model.KBItem{
		{QID: "Q1", ThirdPartyURLs: []string{"https://example.org/a"}, ExternalIDs: map[model.PropertyID]string{testPID: "t1"}},
	}
	catalogURLs := map[model.TID][]string{"t1": {"https://example.org/a"}}

	recs := assess(testPID, registry(), items, catalogURLs)
	assert.Empty(t, recs.Deprecate)
}

func TestAssessExtractsExternalIDFromCatalogOnlyURL(t *testing.T) {
	items := []model.KBItem{
		{QID: "Q1", ThirdPartyURLs: []string{"https://example.org/a"}, ExternalIDs: map[model.PropertyID]string{testPID: "t1"}},
	}
	catalogURLs := map[model.TID][]string{"t1": {"https://example.org/a", "https://www.imdb.com/name/nm007/"}}

	recs := assess(testPID, registry(), items, catalogURLs)
	require.Len(t, recs.ExternalIDs, 1)
	assert.Equal(t, "nm007", recs.ExternalIDs[0].Value)
	assert.Equal(t, model.PropertyID("P345"), recs.ExternalIDs[0].PID)
	assert.Empty(t, recs.URLs)
}

func TestAssessQueuesUnresolvedURLForAddition(t *testing.T) {
	items := []model.KBItem{
		{QID: "Q1", ThirdPartyURLs: []string{"https://example.org/a"}, ExternalIDs: map[model.PropertyID]string{testPID: "t1"}},
	}
	catalogURLs := map[model.TID][]string{"t1": {"https://example.org/a", "https://example.org/extra"}}

	recs := assess(testPID, registry(), items, catalogURLs)
	require.Len(t, recs.URLs, 1)
	assert.Equal(t, "https://example.org/extra", recs.URLs[0].URL)
}

func TestAssessKeepsClaimWhenOnlyEvidenceIsWikiSitelink(t *testing.T) {
	items := []model.KBItem{
		{QID: "Q1", Sitelinks: []string{"https://en.wikipedia.org/wiki/Someone"}, ExternalIDs: map[model.PropertyID]string{testPID: "t1"}},
	}
	catalogURLs := map[model.TID][]string{"t1": {"https://example.org/unrelated"}}

	recs := assess(testPID, registry(), items, catalogURLs)
	assert.Empty(t, recs.Deprecate, "a wiki sitelink is its own evidence, no catalog URL needs to match it")
}

type fakeKB struct {
	items []model.KBItem
}

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

type fakeCatalogStore struct {
	records []model.CatalogRecord
}

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
	previous := HTTPClient
	HTTPClient = &http.Client{Transport: stubTransport{}}
	t.Cleanup(func() { HTTPClient = previous })

	kb := fakeKB{items: []model.KBItem{
		{QID: "Q1", ThirdPartyURLs: []string{"https://example.org/a"}, ExternalIDs: map[model.PropertyID]string{testPID: "t1"}},
	}}
	store := fakeCatalogStore{records: []model.CatalogRecord{
		{TID: "t1", URLs: []string{"https://example.org/different"}},
	}}

	recs, err := Check(context.Background(), kb, store, registry(), "acme", "musician", "validate", testPID)
	require.NoError(t, err)
	assert.Equal(t, []model.QID{"Q1"}, recs.Deprecate[model.TID("t1")])
}

// deadURLTransport answers the one URL it knows about with a 404 and
// everything else with a 200, so a dead-URL test can prove only the
// actually-dead candidate gets dropped.
type deadURLTransport struct{ dead string }

func (tr deadURLTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	status := http.StatusOK
	if req.URL.String() == tr.dead {
		status = http.StatusNotFound
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader("")),
		Header:     make(http.Header),
	}, nil
}

func TestCheckDropsDeadURLFromAdditions(t *testing.T) {
	previous := HTTPClient
	HTTPClient = &http.Client{Transport: deadURLTransport{dead: "https://example.org/gone"}}
	t.Cleanup(func() { HTTPClient = previous })

	kb := fakeKB{items: []model.KBItem{
		{QID: "Q1", ThirdPartyURLs: []string{"https://example.org/a"}, ExternalIDs: map[model.PropertyID]string{testPID: "t1"}},
	}}
	store := fakeCatalogStore{records: []model.CatalogRecord{
		{TID: "t1", URLs: []string{"https://example.org/a", "https://example.org/gone", "https://example.org/alive"}},
	}}

	recs, err := Check(context.Background(), kb, store, registry(), "acme", "musician", "validate", testPID)
	require.NoError(t, err)
	require.Len(t, recs.URLs, 1)
	assert.Equal(t, "https://example.org/alive", recs.URLs[0].URL)
}
