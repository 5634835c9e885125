package user

import (
	"net/http"

	"github.com/Abraxas-365/jobboard/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("USER")

var (
	CodeUserNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "User not found")
)

func ErrUserNotFound() *errx.Error {
	return ErrRegistry.New(CodeUserNotFound)
}
