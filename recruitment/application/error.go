package application

import (
	"net/http"

	"github.com/Abraxas-365/jobboard/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("APPLICATION")

// Error codes
var (
	CodeApplicationNotFound     = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Application not found")
	CodeAlreadyApplied          = ErrRegistry.Register("ALREADY_APPLIED", errx.TypeConflict, http.StatusConflict, "You already applied for this job")
	CodeResumeMissing           = ErrRegistry.Register("RESUME_MISSING", errx.TypeValidation, http.StatusBadRequest, "Resume file missing")
	CodeInvalidStatus           = ErrRegistry.Register("INVALID_STATUS", errx.TypeValidation, http.StatusBadRequest, "Invalid status")
	CodeInvalidContact          = ErrRegistry.Register("INVALID_CONTACT", errx.TypeValidation, http.StatusBadRequest, "Contact details could not be parsed")
	CodeContactIncomplete       = ErrRegistry.Register("CONTACT_INCOMPLETE", errx.TypeValidation, http.StatusBadRequest, "Name, email and phone are required")
	CodeInvalidExperience       = ErrRegistry.Register("INVALID_EXPERIENCE", errx.TypeValidation, http.StatusBadRequest, "Experience could not be parsed")
	CodeInvalidFileType         = ErrRegistry.Register("INVALID_FILE_TYPE", errx.TypeValidation, http.StatusBadRequest, "Invalid file type")
	CodeFileSizeTooLarge        = ErrRegistry.Register("FILE_SIZE_TOO_LARGE", errx.TypeValidation, http.StatusBadRequest, "File size exceeds maximum allowed")
	CodeUnreadableResume        = ErrRegistry.Register("UNREADABLE_RESUME", errx.TypeValidation, http.StatusBadRequest, "Resume file could not be read")
	CodeResumeTooLong           = ErrRegistry.Register("RESUME_TOO_LONG", errx.TypeValidation, http.StatusBadRequest, "Resume has too many pages")
	CodeResumeUploadFailed      = ErrRegistry.Register("RESUME_UPLOAD_FAILED", errx.TypeExternal, http.StatusBadGateway, "Resume upload failed")
	CodeInsufficientPermissions = ErrRegistry.Register("INSUFFICIENT_PERMISSIONS", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
	CodeInvalidRequest          = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

// Helper functions
func ErrApplicationNotFound() *errx.Error {
	return ErrRegistry.New(CodeApplicationNotFound)
}

func ErrAlreadyApplied() *errx.Error {
	return ErrRegistry.New(CodeAlreadyApplied)
}

func ErrResumeMissing() *errx.Error {
	return ErrRegistry.New(CodeResumeMissing)
}

func ErrInvalidStatus() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatus)
}

func ErrInvalidContact() *errx.Error {
	return ErrRegistry.New(CodeInvalidContact)
}

func ErrContactIncomplete() *errx.Error {
	return ErrRegistry.New(CodeContactIncomplete)
}

func ErrInvalidExperience() *errx.Error {
	return ErrRegistry.New(CodeInvalidExperience)
}

func ErrInvalidFileType() *errx.Error {
	return ErrRegistry.New(CodeInvalidFileType)
}

func ErrFileSizeTooLarge() *errx.Error {
	return ErrRegistry.New(CodeFileSizeTooLarge)
}

func ErrUnreadableResume() *errx.Error {
	return ErrRegistry.New(CodeUnreadableResume)
}

func ErrResumeTooLong() *errx.Error {
	return ErrRegistry.New(CodeResumeTooLong)
}

func ErrResumeUploadFailed() *errx.Error {
	return ErrRegistry.New(CodeResumeUploadFailed)
}

func ErrInsufficientPermissions() *errx.Error {
	return ErrRegistry.New(CodeInsufficientPermissions)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
