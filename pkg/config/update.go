package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Used for round-tripping soweego.yaml <-> Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option

	if s := c.CatalogDB.Host; s != "" {
		res = append(res, OptCatalogDBHost(s))
	}
	if i := c.CatalogDB.Port; i > 0 {
		res = append(res, OptCatalogDBPort(i))
	}
	if s := c.CatalogDB.User; s != "" {
		res = append(res, OptCatalogDBUser(s))
	}
	if s := c.CatalogDB.Password; s != "" {
		res = append(res, OptCatalogDBPassword(s))
	}
	if s := c.CatalogDB.Database; s != "" {
		res = append(res, OptCatalogDBDatabase(s))
	}
	if s := c.CatalogDB.SSLMode; s != "" {
		res = append(res, OptCatalogDBSSLMode(s))
	}

	if i := c.Pipeline.KBChunkSize; i > 0 {
		res = append(res, OptKBChunkSize(i))
	}
	if i := c.Pipeline.CatalogChunkSize; i > 0 {
		res = append(res, OptCatalogChunkSize(i))
	}
	if i := c.Pipeline.FeatureChunkSize; i > 0 {
		res = append(res, OptFeatureChunkSize(i))
	}
	if i := c.Pipeline.FullTextTopN; i > 0 {
		res = append(res, OptFullTextTopN(i))
	}

	if s := c.Classifier.DefaultAlgorithm; s != "" {
		res = append(res, OptDefaultAlgorithm(s))
	}
	if i := c.Classifier.KFolds; i > 0 {
		res = append(res, OptKFolds(i))
	}
	if f := c.Classifier.Threshold; f > 0 {
		res = append(res, OptThreshold(f))
	}

	if s := c.External.KBEndpoint; s != "" {
		res = append(res, OptKBEndpoint(s))
	}
	if s := c.External.SPARQLEndpoint; s != "" {
		res = append(res, OptSPARQLEndpoint(s))
	}

	if s := c.Log.Format; s != "" {
		res = append(res, OptLogFormat(s))
	}
	if s := c.Log.Level; s != "" {
		res = append(res, OptLogLevel(s))
	}
	if s := c.Log.Destination; s != "" {
		res = append(res, OptLogDestination(s))
	}

	if i := c.JobsNumber; i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidFloat(name string, f float64) bool {
	res := f >= 0 && f <= 1
	if !res {
		gn.Warn("<em>%s</em> has to be between 0 and 1, ignoring %v", name, f)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"CatalogDB.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		lines = append(lines, fmt.Sprintf("  * %s", v))
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. Valid values are:\n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
