package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// Config errors
	ConfigGenerateError
	ConfigLoadError
	ConfigValidateError

	// File system / cache errors
	CreateDirError
	CacheOpenError
	CacheMigrateError
	CacheReadError
	CacheWriteError

	// Catalog store errors
	CatalogDBConnectionError
	CatalogDBQueryError
	CatalogNotConnectedError

	// Dataset builder errors
	DatasetKBStreamError
	DatasetCatalogStreamError
	DatasetEmptyError

	// Preprocessor errors
	PreprocessSchemaError
	PreprocessColumnError

	// Blocker errors
	BlockFullTextQueryError
	BlockEmptyIndexError

	// Feature extraction errors
	FeatureComputeError
	FeatureOccupationLookupError

	// Classifier errors
	ClassifierUnknownAlgorithmError
	ClassifierNotFittedError
	ClassifierGridSearchUnsupportedError
	ClassifierModelNotFoundError
	ClassifierModelPersistError

	// Evaluator errors
	EvaluateFoldError

	// Validator errors
	ValidateDeadIDError
	ValidateLinksError
	ValidateBioDataError

	// External collaborator errors
	ExternalKBQueryError
	ExternalSPARQLQueryError
	ExternalEditSubmissionError
	ExternalUploadError

	// Text/URL normalizer errors
	URLResolveError
	URLValidateError

	// CLI errors
	CLIDependencyNotConfiguredError
	CLIBootstrapError
)
