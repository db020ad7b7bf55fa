package code

// HTTP status codes.
const (
	// StatusOK - 200: success.
	StatusOK = 200
	// StatusBadRequest - 400: invalid request parameters.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: unauthorized.
	StatusUnauthorized = 401
	// StatusForbidden - 403: access denied.
	StatusForbidden = 403
	// StatusNotFound - 404: resource not found.
	StatusNotFound = 404
	// StatusConflict - 409: conflicting state.
	StatusConflict = 409
	// StatusTooManyRequests - 429: too many requests.
	StatusTooManyRequests = 429
	// StatusInternalServerError - 500: internal server error.
	StatusInternalServerError = 500
)

// Common error codes (100xxx).
const (
	// ErrSuccess - 200: success.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: unknown error.
	ErrUnknown
	// ErrBind - 400: request binding error.
	ErrBind
	// ErrValidation - 400: request validation error.
	ErrValidation
	// ErrTokenInvalid - 401: invalid token.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: request rate too high.
	ErrTooManyRequests
	// ErrForbidden - 403: insufficient role.
	ErrForbidden
)

// User and auth error codes (101xxx).
const (
	// ErrUserNotFound - 404: user not found.
	ErrUserNotFound int = iota + 101000
	// ErrUserAlreadyExist - 400: user already exists.
	ErrUserAlreadyExist
	// ErrUserPasswordIncorrect - 401: incorrect credentials.
	ErrUserPasswordIncorrect
	// ErrPasswordPolicy - 400: password does not meet the policy.
	ErrPasswordPolicy
	// ErrOTPInvalid - 401: invalid or expired one-time code.
	ErrOTPInvalid
	// ErrSelfModification - 400: admins cannot demote or delete themselves.
	ErrSelfModification
)

// Resident error codes (102xxx).
const (
	// ErrResidentNotFound - 404: resident not found.
	ErrResidentNotFound int = iota + 102000
	// ErrResidentAlreadyExist - 400: resident already exists.
	ErrResidentAlreadyExist
	// ErrResidentArchived - 409: resident is archived.
	ErrResidentArchived
	// ErrBarangayIDTaken - 400: barangay ID already in use.
	ErrBarangayIDTaken
)

// Document error codes (103xxx).
const (
	// ErrDocumentNotFound - 404: document not found.
	ErrDocumentNotFound int = iota + 103000
	// ErrDocumentImmutable - 409: issued documents cannot be edited.
	ErrDocumentImmutable
	// ErrDocumentStatus - 409: operation not allowed in the current status.
	ErrDocumentStatus
	// ErrPhotoRequired - 400: the document type requires a photo.
	ErrPhotoRequired
	// ErrPDFGeneration - 500: PDF generation failed.
	ErrPDFGeneration
)

// Document type error codes (104xxx).
const (
	// ErrDocumentTypeNotFound - 404: document type not found.
	ErrDocumentTypeNotFound int = iota + 104000
	// ErrDocumentTypeExists - 400: document type already exists.
	ErrDocumentTypeExists
	// ErrDocumentTypeInUse - 409: document type is referenced by documents.
	ErrDocumentTypeInUse
)

// Database error codes (105xxx).
const (
	// ErrDatabase - 500: database error.
	ErrDatabase int = iota + 105000
	// ErrRecordNotFound - 404: record not found.
	ErrRecordNotFound
)

// Migration and backup error codes (109xxx).
const (
	// ErrMigrationFailed - 500: migration failed.
	ErrMigrationFailed int = iota + 109000
	// ErrBackupFailed - 500: backup failed.
	ErrBackupFailed
	// ErrRestoreFailed - 500: restore failed.
	ErrRestoreFailed
	// ErrConnectionFailed - 500: connection failed.
	ErrConnectionFailed
)
