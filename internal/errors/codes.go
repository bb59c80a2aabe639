// Package errors provides structured error handling for catsearch.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: Storage errors (backing store, schema)
//   - 3XX: Source errors (bulk reads, timeouts)
//   - 4XX: Query validation errors
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryStorage indicates backing-store errors.
	CategoryStorage Category = "STORAGE"
	// CategorySource indicates bulk-read and index-build errors.
	CategorySource Category = "SOURCE"
	// CategoryValidation indicates query validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"

	// Storage errors (200-299)
	ErrCodeStorageOpen   = "ERR_201_STORAGE_OPEN"
	ErrCodeStorageQuery  = "ERR_202_STORAGE_QUERY"
	ErrCodeStorageSchema = "ERR_203_STORAGE_SCHEMA"

	// Source errors (300-399)
	ErrCodeSourceUnavailable = "ERR_301_SOURCE_UNAVAILABLE"
	ErrCodeSourceTimeout     = "ERR_302_SOURCE_TIMEOUT"

	// Validation errors (400-499)
	ErrCodeInvalidQuery = "ERR_401_INVALID_QUERY"
	ErrCodeInvalidSort  = "ERR_402_INVALID_SORT"
	ErrCodeInvalidRange = "ERR_403_INVALID_RANGE"

	// Internal errors (500-599)
	ErrCodeInternal     = "ERR_501_INTERNAL"
	ErrCodeSearchFailed = "ERR_502_SEARCH_FAILED"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryStorage
	case '3':
		return CategorySource
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// isRetryableCode reports whether operations failing with this code
// may succeed on retry. Source errors are transient by nature.
func isRetryableCode(code string) bool {
	switch code {
	case ErrCodeSourceUnavailable, ErrCodeSourceTimeout, ErrCodeStorageQuery:
		return true
	default:
		return false
	}
}
