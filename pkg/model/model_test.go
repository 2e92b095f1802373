package model_test

import (
	"regexp"
	"testing"

	"github.com/soweego-go/soweego/pkg/model"
	"github.com/stretchr/testify/assert"
)

func TestPairIndexDedup(t *testing.T) {
	idx := model.NewPairIndex()
	idx.Add(model.PairKey{QID: "Q1", TID: "t1"})
	idx.Add(model.PairKey{QID: "Q1", TID: "t1"})
	idx.Add(model.PairKey{QID: "Q1", TID: "t2"})

	assert.Equal(t, 2, idx.Len())
	assert.True(t, idx.Contains(model.PairKey{QID: "Q1", TID: "t1"}))
	assert.False(t, idx.Contains(model.PairKey{QID: "Q2", TID: "t1"}))
}

func TestPairIndexSortedDeterministic(t *testing.T) {
	idx := model.NewPairIndex()
	idx.Add(model.PairKey{QID: "Q2", TID: "t9"})
	idx.Add(model.PairKey{QID: "Q1", TID: "t2"})
	idx.Add(model.PairKey{QID: "Q1", TID: "t1"})

	sorted := idx.Sorted()
	assert.Equal(t, []model.PairKey{
		{QID: "Q1", TID: "t1"},
		{QID: "Q1", TID: "t2"},
		{QID: "Q2", TID: "t9"},
	}, sorted)
}

func TestPairIndexIntersectUnion(t *testing.T) {
	a := model.NewPairIndex()
	a.Add(model.PairKey{QID: "Q1", TID: "t1"})
	a.Add(model.PairKey{QID: "Q2", TID: "t2"})

	b := model.NewPairIndex()
	b.Add(model.PairKey{QID: "Q2", TID: "t2"})
	b.Add(model.PairKey{QID: "Q3", TID: "t3"})

	assert.Equal(t, 1, a.Intersect(b).Len())
	assert.Equal(t, 3, a.Union(b).Len())
}

func TestPrecisionDateEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b model.PrecisionDate
		want bool
	}{
		{
			name: "equal at year precision",
			a:    model.PrecisionDate{Year: 1990, Precision: model.PrecisionYear},
			b:    model.PrecisionDate{Year: 1990, Month: 5, Day: 2, Precision: model.PrecisionDay},
			want: true,
		},
		{
			name: "different year",
			a:    model.PrecisionDate{Year: 1990, Precision: model.PrecisionYear},
			b:    model.PrecisionDate{Year: 1991, Precision: model.PrecisionYear},
			want: false,
		},
		{
			name: "same year different month at day precision",
			a:    model.PrecisionDate{Year: 1990, Month: 1, Day: 1, Precision: model.PrecisionDay},
			b:    model.PrecisionDate{Year: 1990, Month: 2, Day: 1, Precision: model.PrecisionDay},
			want: false,
		},
		{
			name: "too coarse to compare",
			a:    model.PrecisionDate{Year: 1990, Precision: model.PrecisionDecade},
			b:    model.PrecisionDate{Year: 1990, Precision: model.PrecisionDecade},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
		})
	}
}

func TestPrecisionDateScore(t *testing.T) {
	tests := []struct {
		name string
		a, b model.PrecisionDate
		want float64
	}{
		{
			name: "full day match",
			a:    model.PrecisionDate{Year: 1990, Month: 1, Day: 8, Precision: model.PrecisionDay},
			b:    model.PrecisionDate{Year: 1990, Month: 1, Day: 8, Precision: model.PrecisionDay},
			want: 1.0,
		},
		{
			name: "year matches, month diverges",
			a:    model.PrecisionDate{Year: 1990, Month: 1, Day: 8, Precision: model.PrecisionDay},
			b:    model.PrecisionDate{Year: 1990, Month: 2, Day: 8, Precision: model.PrecisionDay},
			want: 1.0 / 3.0,
		},
		{
			name: "too coarse scores zero",
			a:    model.PrecisionDate{Year: 1990, Precision: model.PrecisionDecade},
			b:    model.PrecisionDate{Year: 1990, Precision: model.PrecisionDecade},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.a.Score(tt.b), 0.0001)
		})
	}
}

func TestFeatureVectorPad(t *testing.T) {
	fv := model.NewFeatureVector([]string{"a", "b"})
	k := model.PairKey{QID: "Q1", TID: "t1"}
	fv.Set(k, []float64{1, 2})

	fv.Pad(4, -1)

	row, ok := fv.Get(k)
	assert.True(t, ok)
	assert.Equal(t, []float64{1, 2, -1, -1}, row)
	assert.Equal(t, 4, fv.Width())
}

func TestFormatterURLAndExtractID(t *testing.T) {
	f := model.Formatter{
		Template: "https://www.discogs.com/artist/$1",
		IDRegex:  regexp.MustCompile(`^\d+$`),
	}

	assert.Equal(t, "https://www.discogs.com/artist/12345", f.URL("12345"))

	id, ok := f.ExtractID("https://www.discogs.com/artist/12345")
	assert.True(t, ok)
	assert.Equal(t, "12345", id)

	_, ok = f.ExtractID("https://www.discogs.com/artist/not-a-number")
	assert.False(t, ok)

	_, ok = f.ExtractID("https://example.com/other")
	assert.False(t, ok)
}

func TestFormatterRegistryRoundTrip(t *testing.T) {
	reg := model.NewFormatterRegistry()
	reg.Register("P1953", model.Formatter{
		Template: "https://www.discogs.com/artist/$1",
		IDRegex:  regexp.MustCompile(`^\d+$`),
	})

	url, ok := reg.URL("P1953", "999")
	assert.True(t, ok)
	assert.Equal(t, "https://www.discogs.com/artist/999", url)

	id, pid, ok := reg.ExtractID("https://www.discogs.com/artist/999")
	assert.True(t, ok)
	assert.Equal(t, "999", id)
	assert.Equal(t, "P1953", pid)

	_, _, ok = reg.ExtractID("https://unknown.example/x")
	assert.False(t, ok)
}
