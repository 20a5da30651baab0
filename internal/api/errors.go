package api

import (
	"errors"
	"net/http"

	"github.com/simonhull/audioinfo"
	"github.com/simonhull/audioinfo/internal/validate"
)

// MsgInternal is the body message for every 5xx response.
const MsgInternal = "Internal server error"

// StatusFor maps an error from validation or extraction to an HTTP status
// and a client-safe message.
func StatusFor(err error) (int, string) {
	var verr *validate.Error
	if errors.As(err, &verr) {
		return verr.Status, verr.Message
	}

	var xerr *audioinfo.ExtractionError
	if errors.As(err, &xerr) {
		if xerr.Kind == audioinfo.KindInternal {
			return http.StatusInternalServerError, MsgInternal
		}
		return http.StatusBadRequest, xerr.Error()
	}
	return http.StatusInternalServerError, MsgInternal
}
