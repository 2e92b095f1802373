package ioclassify

import (
	"regexp"
	"strings"

	"github.com/soweego-go/soweego/pkg/model"
	"github.com/soweego-go/soweego/pkg/pipeline"
)

var wikidataQIDRe = regexp.MustCompile(`(Q\d+)$`)

// NameRule zeroes a pair's score when the KB and catalog name-token sets
// are disjoint, mirroring classify.py's _zero_when_different_names: even
// a classifier confident on other features should not out-vote a
// complete name mismatch.
func NameRule(nameColumn string) pipeline.PostRule {
	return func(pairs []model.PairKey, scores []float64, left, right pipeline.Table) []float64 {
		out := make([]float64, len(scores))
		copy(out, scores)
		for i, pair := range pairs {
			leftTokens, leftOK := tokenColumn(left, pair.QID, nameColumn)
			rightTokens, rightOK := tokenColumn(right, pair.TID, nameColumn)
			if !leftOK || !rightOK || len(leftTokens) == 0 || len(rightTokens) == 0 {
				continue
			}
			if disjoint(leftTokens, rightTokens) {
				out[i] = 0.0
			}
		}
		return out
	}
}

// SelfLinkRule overrides a pair's score to 1.0 or 0.0 when the catalog
// record carries a URL back to Wikidata: 1.0 if that URL's QID matches
// the pair's KB item, 0.0 otherwise. Mirrors
// classify.py's _one_when_wikidata_link_correct — Open Question #2 kept
// this behavior verbatim, gated behind a config flag (see DESIGN.md)
// rather than changed, since a catalog's own self-reported Wikidata link
// is strong enough evidence to short-circuit the classifier either way.
func SelfLinkRule(urlColumn string) pipeline.PostRule {
	return func(pairs []model.PairKey, scores []float64, left, right pipeline.Table) []float64 {
		out := make([]float64, len(scores))
		copy(out, scores)
		for i, pair := range pairs {
			urls, ok := stringSliceColumn(right, pair.TID, urlColumn)
			if !ok {
				continue
			}
			for _, u := range urls {
				if !strings.Contains(u, "wikidata") {
					continue
				}
				match := wikidataQIDRe.FindStringSubmatch(u)
				if match == nil {
					continue
				}
				if match[1] == pair.QID {
					out[i] = 1.0
				} else {
					out[i] = 0.0
				}
				break
			}
		}
		return out
	}
}

func tokenColumn(t pipeline.Table, row, col string) (map[string]struct{}, bool) {
	v, ok := t.Column(row, col)
	if !ok {
		return nil, false
	}
	set, ok := v.(map[string]struct{})
	return set, ok
}

func stringSliceColumn(t pipeline.Table, row, col string) ([]string, bool) {
	v, ok := t.Column(row, col)
	if !ok {
		return nil, false
	}
	s, ok := v.([]string)
	return s, ok
}

func disjoint(a, b map[string]struct{}) bool {
	for k := range a {
		if _, ok := b[k]; ok {
			return false
		}
	}
	return true
}
