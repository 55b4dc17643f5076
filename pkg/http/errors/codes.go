package errors

// Error codes for standardized error responses
const (
	// Validation errors
	ErrCodeInvalidRequest    = "invalid_request"
	ErrCodeValidationFailed  = "validation_failed"
	ErrCodeInvalidDifficulty = "invalid_difficulty"

	// Resource errors
	ErrCodeNotFound     = "not_found"
	ErrCodeRoomNotFound = "room_not_found"

	// Auth errors
	ErrCodeInvalidToken = "invalid_token"

	// Business logic errors
	ErrCodeGenerationFailed   = "generation_failed"
	ErrCodeRoomCreationFailed = "room_creation_failed"
	ErrCodeRoomFetchFailed    = "room_fetch_failed"

	// Server errors
	ErrCodeInternalError = "internal_error"
	ErrCodeUpstreamError = "upstream_error"
)
