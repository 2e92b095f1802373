// Package config provides configuration management for soweego.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
//   - Default config (from New()) is always valid - no validation needed
//   - All mutations go through Option functions - the only way to modify Config
//   - Invalid options are rejected with gn.Warn() - config remains in valid state
//   - ToOptions() converts persistent fields (those in config.yaml)
//   - Environment variables match ToOptions() fields exactly
//
// # Environment Variables
//
// Use SOWEEGO_ prefix with underscores for nesting:
//
//	SOWEEGO_CATALOGDB_HOST=localhost
//	SOWEEGO_LOG_LEVEL=info
//	SOWEEGO_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete soweego configuration.
type Config struct {
	// CatalogDB contains connection settings for the external catalog store
	// (read-only from the core's point of view, see pkg/external.CatalogStore).
	CatalogDB CatalogDBConfig `mapstructure:"catalogdb" yaml:"catalogdb"`

	// Pipeline contains chunk sizes and concurrency knobs for the
	// dataset/blocking/feature stages.
	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline"`

	// Classifier contains defaults for training, evaluation and linking.
	Classifier ClassifierConfig `mapstructure:"classifier" yaml:"classifier"`

	// External contains endpoints for the knowledge-base web API and SPARQL
	// query service consumed through pkg/external.
	External ExternalConfig `mapstructure:"external" yaml:"external"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel operations.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by the CLI during init, there is no default value for it.
	HomeDir string
}

// CatalogDBConfig contains connection parameters for the external catalog store.
type CatalogDBConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	User     string `mapstructure:"user" yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"`
	Database string `mapstructure:"database" yaml:"database"`
	SSLMode  string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// PipelineConfig contains chunk sizes and concurrency defaults used by the
// dataset builder, blocker and feature extractor.
type PipelineConfig struct {
	// KBChunkSize is the number of KB items per streamed dataset chunk.
	KBChunkSize int `mapstructure:"kb_chunk_size" yaml:"kb_chunk_size"`

	// CatalogChunkSize is the number of catalog records per streamed chunk.
	CatalogChunkSize int `mapstructure:"catalog_chunk_size" yaml:"catalog_chunk_size"`

	// FeatureChunkSize is the number of pairs processed per feature-extraction
	// batch.
	FeatureChunkSize int `mapstructure:"feature_chunk_size" yaml:"feature_chunk_size"`

	// FullTextTopN bounds how many full-text search hits are unioned into the
	// blocking index per KB item.
	FullTextTopN int `mapstructure:"full_text_top_n" yaml:"full_text_top_n"`

	// APIBucketSize bounds how many identifiers are batched per knowledge-base
	// web API request.
	APIBucketSize int `mapstructure:"api_bucket_size" yaml:"api_bucket_size"`

	// SPARQLBucketSize bounds how many QIDs are batched per SPARQL query.
	SPARQLBucketSize int `mapstructure:"sparql_bucket_size" yaml:"sparql_bucket_size"`
}

// ClassifierConfig contains defaults for training, evaluation and linking.
type ClassifierConfig struct {
	// DefaultAlgorithm names the classifier used when none is given explicitly.
	DefaultAlgorithm string `mapstructure:"default_algorithm" yaml:"default_algorithm"`

	// KFolds is the number of stratified folds used by linker evaluate.
	// linker train --tune does not read it and always uses 5 folds.
	KFolds int `mapstructure:"k_folds" yaml:"k_folds"`

	// Threshold is the default confidence threshold applied by linker link.
	Threshold float64 `mapstructure:"threshold" yaml:"threshold"`

	// NameRuleEnabled toggles the post-classification name-mismatch rule.
	NameRuleEnabled bool `mapstructure:"name_rule_enabled" yaml:"name_rule_enabled"`

	// SelfLinkOverridesHighConfidence toggles whether a correct Wikidata
	// self-link forces a score of 1 regardless of the classifier's own score.
	// See SPEC_FULL.md Open Questions #2.
	SelfLinkOverridesHighConfidence bool `mapstructure:"self_link_overrides_high_confidence" yaml:"self_link_overrides_high_confidence"`
}

// ExternalConfig contains endpoints for external collaborators.
type ExternalConfig struct {
	KBEndpoint       string `mapstructure:"kb_endpoint" yaml:"kb_endpoint"`
	SPARQLEndpoint   string `mapstructure:"sparql_endpoint" yaml:"sparql_endpoint"`
	EditBotEndpoint  string `mapstructure:"edit_bot_endpoint" yaml:"edit_bot_endpoint"`
	MixNMatchURL     string `mapstructure:"mix_n_match_url" yaml:"mix_n_match_url"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	return &Config{
		CatalogDB: CatalogDBConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "soweego",
			SSLMode:  "disable",
		},
		Pipeline: PipelineConfig{
			KBChunkSize:      1000,
			CatalogChunkSize: 1000,
			FeatureChunkSize: 1000,
			FullTextTopN:     5,
			APIBucketSize:    50,
			SPARQLBucketSize: 500,
		},
		Classifier: ClassifierConfig{
			DefaultAlgorithm:                "naive_bayes",
			KFolds:                          5,
			Threshold:                       0.5,
			NameRuleEnabled:                 true,
			SelfLinkOverridesHighConfidence: true,
		},
		External: ExternalConfig{
			KBEndpoint:     "https://www.wikidata.org/w/api.php",
			SPARQLEndpoint: "https://query.wikidata.org/sparql",
		},
		Log: LogConfig{
			Format:      "tint",
			Level:       "info",
			Destination: "stderr",
		},
		JobsNumber: runtime.NumCPU(),
	}
}

// Defaults is an alias of New, named to match the loader's expectations
// (config.Defaults() reads better at call sites that only need defaults).
func Defaults() *Config {
	return New()
}

// MergeWithDefaults fills any zero-valued field with the corresponding
// default, so a partially specified YAML file still yields a valid Config.
func (c *Config) MergeWithDefaults() {
	d := New()

	if c.CatalogDB.Host == "" {
		c.CatalogDB.Host = d.CatalogDB.Host
	}
	if c.CatalogDB.Port == 0 {
		c.CatalogDB.Port = d.CatalogDB.Port
	}
	if c.CatalogDB.User == "" {
		c.CatalogDB.User = d.CatalogDB.User
	}
	if c.CatalogDB.Database == "" {
		c.CatalogDB.Database = d.CatalogDB.Database
	}
	if c.CatalogDB.SSLMode == "" {
		c.CatalogDB.SSLMode = d.CatalogDB.SSLMode
	}
	if c.Pipeline.KBChunkSize == 0 {
		c.Pipeline.KBChunkSize = d.Pipeline.KBChunkSize
	}
	if c.Pipeline.CatalogChunkSize == 0 {
		c.Pipeline.CatalogChunkSize = d.Pipeline.CatalogChunkSize
	}
	if c.Pipeline.FeatureChunkSize == 0 {
		c.Pipeline.FeatureChunkSize = d.Pipeline.FeatureChunkSize
	}
	if c.Pipeline.FullTextTopN == 0 {
		c.Pipeline.FullTextTopN = d.Pipeline.FullTextTopN
	}
	if c.Pipeline.APIBucketSize == 0 {
		c.Pipeline.APIBucketSize = d.Pipeline.APIBucketSize
	}
	if c.Pipeline.SPARQLBucketSize == 0 {
		c.Pipeline.SPARQLBucketSize = d.Pipeline.SPARQLBucketSize
	}
	if c.Classifier.DefaultAlgorithm == "" {
		c.Classifier.DefaultAlgorithm = d.Classifier.DefaultAlgorithm
	}
	if c.Classifier.KFolds == 0 {
		c.Classifier.KFolds = d.Classifier.KFolds
	}
	if c.Classifier.Threshold == 0 {
		c.Classifier.Threshold = d.Classifier.Threshold
	}
	if c.External.KBEndpoint == "" {
		c.External.KBEndpoint = d.External.KBEndpoint
	}
	if c.External.SPARQLEndpoint == "" {
		c.External.SPARQLEndpoint = d.External.SPARQLEndpoint
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Destination == "" {
		c.Log.Destination = d.Log.Destination
	}
	if c.JobsNumber == 0 {
		c.JobsNumber = d.JobsNumber
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Pipeline.KBChunkSize <= 0 {
		return InvalidConfigError("pipeline.kb_chunk_size", "must be positive")
	}
	if c.Pipeline.CatalogChunkSize <= 0 {
		return InvalidConfigError("pipeline.catalog_chunk_size", "must be positive")
	}
	if c.Classifier.KFolds < 2 {
		return InvalidConfigError("classifier.k_folds", "must be at least 2")
	}
	if c.Classifier.Threshold < 0 || c.Classifier.Threshold > 1 {
		return InvalidConfigError("classifier.threshold", "must be between 0 and 1")
	}
	switch c.CatalogDB.SSLMode {
	case "disable", "require", "verify-ca", "verify-full":
	default:
		return InvalidConfigError("catalogdb.ssl_mode", "must be one of disable, require, verify-ca, verify-full")
	}
	return nil
}
