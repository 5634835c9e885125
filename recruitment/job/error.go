package job

import (
	"net/http"

	"github.com/Abraxas-365/jobboard/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("JOB")

// Error codes
var (
	CodeJobNotFound             = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job not found")
	CodeJobAlreadyExists        = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Job already exists")
	CodeJobNotOpen              = ErrRegistry.Register("NOT_OPEN", errx.TypeBusiness, http.StatusUnprocessableEntity, "Job is not accepting applications")
	CodeInvalidJob              = ErrRegistry.Register("INVALID", errx.TypeValidation, http.StatusBadRequest, "Invalid job")
	CodeInvalidStatus           = ErrRegistry.Register("INVALID_STATUS", errx.TypeValidation, http.StatusBadRequest, "Invalid job status")
	CodeInsufficientPermissions = ErrRegistry.Register("INSUFFICIENT_PERMISSIONS", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
)

// Helper functions
func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrJobAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeJobAlreadyExists)
}

func ErrJobNotOpen() *errx.Error {
	return ErrRegistry.New(CodeJobNotOpen)
}

func ErrInvalidJob() *errx.Error {
	return ErrRegistry.New(CodeInvalidJob)
}

func ErrInvalidStatus() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatus)
}

func ErrInsufficientPermissions() *errx.Error {
	return ErrRegistry.New(CodeInsufficientPermissions)
}
