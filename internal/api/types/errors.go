package types

import (
	"net/http"

	appErr "github.com/starwars-blog/api/pkg/errors"
)

// MsgInternal hides storage failures from clients.
const MsgInternal = "Internal server error"

// StatusFor maps an error code to the HTTP status the API reports.
// Missing records and duplicate names both answer 404.
func StatusFor(err error) int {
	switch appErr.CodeOf(err) {
	case appErr.CodeNotFound, appErr.CodeAlreadyExists:
		return http.StatusNotFound
	case appErr.CodeInvalid:
		return http.StatusBadRequest
	case appErr.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// FromAppError builds the response body for err.
func FromAppError(err error) MessageResponse {
	if StatusFor(err) == http.StatusInternalServerError {
		return MessageResponse{Msg: MsgInternal}
	}
	return MessageResponse{Msg: appErr.MessageOf(err)}
}
