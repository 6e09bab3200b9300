package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	// Repository errors
	ErrRepoNotFound  = "REPO_NOT_FOUND"
	ErrRepoExists    = "REPO_EXISTS"
	ErrConfigInvalid = "CONFIG_INVALID"

	// Record errors
	ErrRecordNotFound = "RECORD_NOT_FOUND"
	ErrRecordInvalid  = "RECORD_INVALID"
	ErrRefAmbiguous   = "REF_AMBIGUOUS"

	// Link and status errors
	ErrLinkInvalid   = "LINK_INVALID"
	ErrStatusInvalid = "STATUS_INVALID"

	// Batch errors
	ErrCollision = "NUMBER_COLLISION"

	// File errors
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"
	ErrFormatInvalid  = "FORMAT_INVALID"

	// Doctor
	ErrBlockingFindings = "BLOCKING_FINDINGS"

	// Input errors
	ErrInvalidInput = "INVALID_INPUT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)
