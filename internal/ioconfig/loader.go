package ioconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/soweego-go/soweego/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// LoadResult contains the loaded configuration and metadata about the source.
type LoadResult struct {
	Config     *config.Config
	SourcePath string // Path to config file used, or empty if using defaults
	Source     string // "file", "defaults", or "defaults+env"
}

// Load reads configuration from a YAML file and returns a validated Config with source info.
// If configPath is empty, it searches default locations:
//   - ./soweego.yaml
//   - ~/.config/soweego/soweego.yaml
//
// Returns error if file is malformed or validation fails.
func Load(configPath string) (*LoadResult, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// Precedence: flags > env vars > config file > defaults
	v.SetEnvPrefix("SOWEEGO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	defaults := config.Defaults()
	v.SetDefault("catalogdb.host", defaults.CatalogDB.Host)
	v.SetDefault("catalogdb.port", defaults.CatalogDB.Port)
	v.SetDefault("catalogdb.user", defaults.CatalogDB.User)
	v.SetDefault("catalogdb.password", defaults.CatalogDB.Password)
	v.SetDefault("catalogdb.database", defaults.CatalogDB.Database)
	v.SetDefault("catalogdb.ssl_mode", defaults.CatalogDB.SSLMode)
	v.SetDefault("pipeline.kb_chunk_size", defaults.Pipeline.KBChunkSize)
	v.SetDefault("pipeline.catalog_chunk_size", defaults.Pipeline.CatalogChunkSize)
	v.SetDefault("pipeline.feature_chunk_size", defaults.Pipeline.FeatureChunkSize)
	v.SetDefault("pipeline.full_text_top_n", defaults.Pipeline.FullTextTopN)
	v.SetDefault("pipeline.api_bucket_size", defaults.Pipeline.APIBucketSize)
	v.SetDefault("pipeline.sparql_bucket_size", defaults.Pipeline.SPARQLBucketSize)
	v.SetDefault("classifier.default_algorithm", defaults.Classifier.DefaultAlgorithm)
	v.SetDefault("classifier.k_folds", defaults.Classifier.KFolds)
	v.SetDefault("classifier.threshold", defaults.Classifier.Threshold)
	v.SetDefault("classifier.name_rule_enabled", defaults.Classifier.NameRuleEnabled)
	v.SetDefault("classifier.self_link_overrides_high_confidence", defaults.Classifier.SelfLinkOverridesHighConfidence)
	v.SetDefault("external.kb_endpoint", defaults.External.KBEndpoint)
	v.SetDefault("external.sparql_endpoint", defaults.External.SPARQLEndpoint)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("log.destination", defaults.Log.Destination)
	v.SetDefault("jobs_number", defaults.JobsNumber)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else if _, statErr := os.Stat("soweego.yaml"); statErr == nil {
		v.SetConfigFile("soweego.yaml")
	} else if defaultPath, err := GetDefaultConfigPath(); err == nil {
		if _, statErr := os.Stat(defaultPath); statErr == nil {
			v.SetConfigFile(defaultPath)
		}
	}

	configFileRead := false
	usedConfigPath := ""

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if configPath != "" {
				return nil, fmt.Errorf("config file not found: %s", configPath)
			}
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileRead = true
		usedConfigPath = v.ConfigFileUsed()
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.MergeWithDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	source := "defaults"
	if configFileRead {
		source = "file"
	} else if hasEnvVars() {
		source = "defaults+env"
	}

	return &LoadResult{
		Config:     &cfg,
		SourcePath: usedConfigPath,
		Source:     source,
	}, nil
}

// hasEnvVars checks if any SOWEEGO_* environment variables are set.
func hasEnvVars() bool {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "SOWEEGO_") {
			return true
		}
	}
	return false
}

// BindFlags binds cobra command flags to viper and returns updated config.
// CLI flags take precedence over config file values.
func BindFlags(cmd *cobra.Command, cfg *config.Config) (*config.Config, error) {
	v := viper.New()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	if v.IsSet("host") {
		cfg.CatalogDB.Host = v.GetString("host")
	}
	if v.IsSet("port") {
		cfg.CatalogDB.Port = v.GetInt("port")
	}
	if v.IsSet("user") {
		cfg.CatalogDB.User = v.GetString("user")
	}
	if v.IsSet("password") {
		cfg.CatalogDB.Password = v.GetString("password")
	}
	if v.IsSet("database") {
		cfg.CatalogDB.Database = v.GetString("database")
	}
	if v.IsSet("ssl-mode") {
		cfg.CatalogDB.SSLMode = v.GetString("ssl-mode")
	}
	if v.IsSet("threshold") {
		cfg.Classifier.Threshold = v.GetFloat64("threshold")
	}
	if v.IsSet("k") {
		cfg.Classifier.KFolds = v.GetInt("k")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration after flag binding: %w", err)
	}

	return cfg, nil
}
