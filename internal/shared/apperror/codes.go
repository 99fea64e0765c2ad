package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInvalidRange     = "INVALID_RANGE"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeAlreadyClockedIn = "ALREADY_CLOCKED_IN"
	CodeNoOpenEntry      = "NO_OPEN_ENTRY"

	// Server errors (5xx)
	CodeInternalError    = "INTERNAL_ERROR"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
)
