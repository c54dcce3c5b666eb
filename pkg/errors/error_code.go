package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Configuration errors (100-199)
	ErrCodeInvalidConfiguration ErrorCode = 100
	ErrCodeInvalidDateMethod    ErrorCode = 101
	ErrCodeInvalidExpiry        ErrorCode = 102
	ErrCodeInvalidResolution    ErrorCode = 103
	ErrCodeMissingParameter     ErrorCode = 104
	ErrCodeInsufficientData     ErrorCode = 105
	ErrCodeInvalidRollYears     ErrorCode = 106
	ErrCodeIncompatibleVersion  ErrorCode = 107

	// Data availability errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeDataParseFailed       ErrorCode = 203
	ErrCodeInstrumentNotFound    ErrorCode = 204

	// Computation errors (300-399)
	ErrCodeComputationFailed ErrorCode = 300
	ErrCodeMisalignedSeries  ErrorCode = 301

	// Cache errors (400-499)
	ErrCodeCyclicComputation ErrorCode = 400
	ErrCodeCacheTypeMismatch ErrorCode = 401

	// Stage graph errors (500-599)
	ErrCodeStageNotFound      ErrorCode = 500
	ErrCodeStageAlreadyExists ErrorCode = 501
	ErrCodeCyclicDependency   ErrorCode = 502
	ErrCodeStageAttachFailed  ErrorCode = 503

	// Output errors (600-699)
	ErrCodeWriteFailed ErrorCode = 600
)

// Category groups error codes by the hundred range they live in.
type Category string

const (
	CategoryGeneral       Category = "general"
	CategoryConfiguration Category = "configuration"
	CategoryData          Category = "data"
	CategoryComputation   Category = "computation"
	CategoryCache         Category = "cache"
	CategoryStage         Category = "stage"
	CategoryOutput        Category = "output"
)

// Category returns the category of the error code.
func (c ErrorCode) Category() Category {
	switch {
	case c >= 100 && c < 200:
		return CategoryConfiguration
	case c >= 200 && c < 300:
		return CategoryData
	case c >= 300 && c < 400:
		return CategoryComputation
	case c >= 400 && c < 500:
		return CategoryCache
	case c >= 500 && c < 600:
		return CategoryStage
	case c >= 600 && c < 700:
		return CategoryOutput
	default:
		return CategoryGeneral
	}
}
