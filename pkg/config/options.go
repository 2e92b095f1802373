package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptCatalogDBHost sets the catalog store hostname or IP address.
func OptCatalogDBHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("CatalogDB Host", s) {
			c.CatalogDB.Host = s
		}
	}
}

// OptCatalogDBPort sets the catalog store port number.
func OptCatalogDBPort(i int) Option {
	return func(c *Config) {
		if isValidInt("CatalogDB Port", i) {
			c.CatalogDB.Port = i
		}
	}
}

// OptCatalogDBUser sets the catalog store username.
func OptCatalogDBUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("CatalogDB User", s) {
			c.CatalogDB.User = s
		}
	}
}

// OptCatalogDBPassword sets the catalog store password.
func OptCatalogDBPassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("CatalogDB Password", s) {
			c.CatalogDB.Password = s
		}
	}
}

// OptCatalogDBDatabase sets the catalog store database name.
func OptCatalogDBDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("CatalogDB Name", s) {
			c.CatalogDB.Database = s
		}
	}
}

// OptCatalogDBSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptCatalogDBSSLMode(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("CatalogDB.SSLMode", s) {
			c.CatalogDB.SSLMode = s
		}
	}
}

// OptKBChunkSize sets how many KB items are streamed per dataset chunk.
func OptKBChunkSize(i int) Option {
	return func(c *Config) {
		if isValidInt("KB Chunk Size", i) {
			c.Pipeline.KBChunkSize = i
		}
	}
}

// OptCatalogChunkSize sets how many catalog records are streamed per chunk.
func OptCatalogChunkSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Catalog Chunk Size", i) {
			c.Pipeline.CatalogChunkSize = i
		}
	}
}

// OptFeatureChunkSize sets how many pairs are processed per feature batch.
func OptFeatureChunkSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Feature Chunk Size", i) {
			c.Pipeline.FeatureChunkSize = i
		}
	}
}

// OptFullTextTopN bounds how many full-text hits are unioned per KB item.
func OptFullTextTopN(i int) Option {
	return func(c *Config) {
		if isValidInt("Full Text Top N", i) {
			c.Pipeline.FullTextTopN = i
		}
	}
}

// OptDefaultAlgorithm sets the classifier algorithm used when none is given.
func OptDefaultAlgorithm(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Default Algorithm", s) {
			c.Classifier.DefaultAlgorithm = s
		}
	}
}

// OptKFolds sets the number of stratified folds used for evaluation.
func OptKFolds(i int) Option {
	return func(c *Config) {
		if i >= 2 {
			c.Classifier.KFolds = i
		}
	}
}

// OptThreshold sets the default linking confidence threshold.
func OptThreshold(f float64) Option {
	return func(c *Config) {
		if isValidFloat("Threshold", f) {
			c.Classifier.Threshold = f
		}
	}
}

// OptKBEndpoint sets the knowledge-base web API endpoint.
func OptKBEndpoint(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("KB Endpoint", s) {
			c.External.KBEndpoint = s
		}
	}
}

// OptSPARQLEndpoint sets the SPARQL query service endpoint.
func OptSPARQLEndpoint(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("SPARQL Endpoint", s) {
			c.External.SPARQLEndpoint = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel operations.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
