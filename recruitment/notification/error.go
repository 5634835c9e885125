package notification

import (
	"net/http"

	"github.com/Abraxas-365/jobboard/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("NOTIFICATION")

var (
	CodeNotificationNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Notification not found")
	CodeNotOwner             = ErrRegistry.Register("NOT_OWNER", errx.TypeAuthorization, http.StatusForbidden, "Notification belongs to another user")
)

func ErrNotificationNotFound() *errx.Error {
	return ErrRegistry.New(CodeNotificationNotFound)
}

func ErrNotOwner() *errx.Error {
	return ErrRegistry.New(CodeNotOwner)
}
