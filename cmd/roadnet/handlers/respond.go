package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gridworks/roadnet/common/apperr"
)

// errorBody is the structured failure shape every endpoint returns.
type errorBody struct {
	Kind    apperr.Kind `json:"kind"`
	Message string      `json:"message"`
}

// respondError maps an application error to its HTTP status and a
// structured body. Unexpected failures surface as a generic internal error;
// internals are never leaked to the caller.
func respondError(c echo.Context, err error) error {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"error": errorBody{Kind: apperr.KindStorage, Message: "internal error"},
		})
	}

	message := appErr.Message
	if appErr.Kind == apperr.KindImport && appErr.Err != nil {
		message = appErr.Message + ": " + appErr.Err.Error()
	}
	if appErr.Kind == apperr.KindStorage {
		message = "internal error"
	}

	return c.JSON(statusForKind(appErr.Kind), map[string]any{
		"error": errorBody{Kind: appErr.Kind, Message: message},
	})
}

func statusForKind(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindImport:
		return http.StatusBadRequest
	case apperr.KindAccessDenied:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindDuplicateName, apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
