package config_test

import (
	"path/filepath"
	"testing"

	"github.com/soweego-go/soweego/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "soweego"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "soweego"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "soweego", "logs"),
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			assert.Equal(t, v.res, v.fn(tempHome))
		})
	}
}

func TestNewIsValid(t *testing.T) {
	cfg := config.New()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "naive_bayes", cfg.Classifier.DefaultAlgorithm)
	assert.Equal(t, 1000, cfg.Pipeline.KBChunkSize)
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &config.Config{}
	cfg.MergeWithDefaults()
	require.NoError(t, cfg.Validate())
}

func TestUpdateRejectsInvalid(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptThreshold(2.0), // invalid, out of [0,1], should be ignored
		config.OptKFolds(1),      // invalid, below 2, should be ignored
	})
	assert.Equal(t, 0.5, cfg.Classifier.Threshold)
	assert.Equal(t, 5, cfg.Classifier.KFolds)
}

func TestToOptionsRoundTrip(t *testing.T) {
	cfg := config.New()
	cfg.Classifier.Threshold = 0.75

	other := &config.Config{}
	other.Update(cfg.ToOptions())
	other.MergeWithDefaults()

	assert.Equal(t, 0.75, other.Classifier.Threshold)
	assert.Equal(t, cfg.CatalogDB.Host, other.CatalogDB.Host)
}
