package code

// Error code to message mapping
var codeMessageMap = map[int]string{
	// Common
	ErrSuccess:         "success",
	ErrUnknown:         "unknown error",
	ErrBind:            "failed to bind request parameters",
	ErrValidation:      "request validation failed",
	ErrTokenInvalid:    "invalid authentication token",
	ErrTooManyRequests: "too many requests, try again later",
	ErrForbidden:       "insufficient permissions",

	// Users and auth
	ErrUserNotFound:          "user not found",
	ErrUserAlreadyExist:      "user already exists",
	ErrUserPasswordIncorrect: "invalid username or password",
	ErrPasswordPolicy:        "password does not meet the security policy",
	ErrOTPInvalid:            "invalid or expired verification code",
	ErrSelfModification:      "operation not allowed on your own account",

	// Residents
	ErrResidentNotFound:     "resident not found",
	ErrResidentAlreadyExist: "a resident with the same name and birth date already exists",
	ErrResidentArchived:     "resident is archived",
	ErrBarangayIDTaken:      "barangay ID is already in use",

	// Documents
	ErrDocumentNotFound:  "document not found",
	ErrDocumentImmutable: "issued documents cannot be edited",
	ErrDocumentStatus:    "operation not allowed in the current document status",
	ErrPhotoRequired:     "this document type requires a photo",
	ErrPDFGeneration:     "failed to generate the document PDF",

	// Document types
	ErrDocumentTypeNotFound: "document type not found",
	ErrDocumentTypeExists:   "document type already exists",
	ErrDocumentTypeInUse:    "document type is still referenced by documents",

	// Database
	ErrDatabase:       "database error",
	ErrRecordNotFound: "record not found",

	// Migration and backups
	ErrMigrationFailed:  "migration failed",
	ErrBackupFailed:     "backup failed",
	ErrRestoreFailed:    "restore failed",
	ErrConnectionFailed: "connection failed",
}

// Error code to HTTP status mapping
var codeStatusMap = map[int]int{
	// Common
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrTooManyRequests: StatusTooManyRequests,
	ErrForbidden:       StatusForbidden,

	// Users and auth
	ErrUserNotFound:          StatusNotFound,
	ErrUserAlreadyExist:      StatusBadRequest,
	ErrUserPasswordIncorrect: StatusUnauthorized,
	ErrPasswordPolicy:        StatusBadRequest,
	ErrOTPInvalid:            StatusUnauthorized,
	ErrSelfModification:      StatusBadRequest,

	// Residents
	ErrResidentNotFound:     StatusNotFound,
	ErrResidentAlreadyExist: StatusBadRequest,
	ErrResidentArchived:     StatusConflict,
	ErrBarangayIDTaken:      StatusBadRequest,

	// Documents
	ErrDocumentNotFound:  StatusNotFound,
	ErrDocumentImmutable: StatusConflict,
	ErrDocumentStatus:    StatusConflict,
	ErrPhotoRequired:     StatusBadRequest,
	ErrPDFGeneration:     StatusInternalServerError,

	// Document types
	ErrDocumentTypeNotFound: StatusNotFound,
	ErrDocumentTypeExists:   StatusBadRequest,
	ErrDocumentTypeInUse:    StatusConflict,

	// Database
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,

	// Migration and backups
	ErrMigrationFailed:  StatusInternalServerError,
	ErrBackupFailed:     StatusInternalServerError,
	ErrRestoreFailed:    StatusInternalServerError,
	ErrConnectionFailed: StatusInternalServerError,
}

// GetMessage returns the message for an error code
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "unknown error"
}

// GetStatus returns the HTTP status for an error code
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
