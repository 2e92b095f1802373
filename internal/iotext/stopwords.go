package iotext

import (
	_ "embed"
	"strings"
	"sync"
)

//go:embed resources/stopwords_eng.txt
var stopwordsEngRaw string

//go:embed resources/name_stopwords.txt
var nameStopwordsRaw string

//go:embed resources/band_low_score_words.txt
var bandLowScoreWordsRaw string

//go:embed resources/urls_stop_words.txt
var urlStopwordsRaw string

var (
	stopwordsEngOnce  sync.Once
	stopwordsEngSet   map[string]struct{}
	nameStopOnce      sync.Once
	nameStopSet       map[string]struct{}
	bandLowScoreOnce  sync.Once
	bandLowScoreSet   map[string]struct{}
	urlStopwordsOnce  sync.Once
	urlStopwordsSet   map[string]struct{}
)

func loadWordSet(raw string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, line := range strings.Split(raw, "\n") {
		word := strings.TrimSpace(line)
		if word == "" {
			continue
		}
		set[word] = struct{}{}
	}
	return set
}

// StopwordsEng returns the English stopword set, adapted from the Snowball
// English stopword list, used as the default filter in Tokenize.
func StopwordsEng() map[string]struct{} {
	stopwordsEngOnce.Do(func() { stopwordsEngSet = loadWordSet(stopwordsEngRaw) })
	return stopwordsEngSet
}

// NameStopwords returns tokens to drop from person/band name tokenization
// (titles, particles, "featuring", etc).
func NameStopwords() map[string]struct{} {
	nameStopOnce.Do(func() { nameStopSet = loadWordSet(nameStopwordsRaw) })
	return nameStopSet
}

// BandLowScoreWords returns tokens that should contribute a reduced weight
// when comparing band/ensemble names, since they carry little
// discriminating signal.
func BandLowScoreWords() map[string]struct{} {
	bandLowScoreOnce.Do(func() { bandLowScoreSet = loadWordSet(bandLowScoreWordsRaw) })
	return bandLowScoreSet
}

// URLStopwords returns tokens to drop when tokenizing URL paths/queries.
func URLStopwords() map[string]struct{} {
	urlStopwordsOnce.Do(func() { urlStopwordsSet = loadWordSet(urlStopwordsRaw) })
	return urlStopwordsSet
}
