package api

import (
	"github.com/Muhammad-Raisul-Maharub/maasathi-health/store"
	"github.com/Muhammad-Raisul-Maharub/maasathi-health/syncer"
)

var (
	errorMessageMap = map[int64]string{
		999: "internal server error",

		1010: "invalid parameters",
		1011: "cannot parse request",

		1100: "invalid credentials",
		1101: syncer.ErrNotAuthenticated.Error(),

		1200: store.ErrDuplicateAssessment.Error(),
		1201: "assessment not found",

		1300: syncer.ErrNoConnection.Error(),
		1301: syncer.ErrSyncInProgress.Error(),
		1302: "sync failed",
	}

	errorInternalServer = errorJSON(999)

	errorInvalidParameters  = errorJSON(1010)
	errorCannotParseRequest = errorJSON(1011)

	errorInvalidCredentials = errorJSON(1100)
	errorNotAuthenticated   = errorJSON(1101)

	errorDuplicateAssessment = errorJSON(1200)
	errorAssessmentNotFound  = errorJSON(1201)

	errorNoConnection   = errorJSON(1300)
	errorSyncInProgress = errorJSON(1301)
	errorSyncFailed     = errorJSON(1302)
)

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}
