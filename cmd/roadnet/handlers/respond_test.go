package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridworks/roadnet/common/apperr"
)

func recordError(t *testing.T, err error) (int, errorBody) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, respondError(c, err))

	var body struct {
		Error errorBody `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body.Error
}

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		kind   apperr.Kind
	}{
		{"validation", apperr.Validation("bad name"), http.StatusBadRequest, apperr.KindValidation},
		{"import", apperr.Import(2, errors.New("unknown type")), http.StatusBadRequest, apperr.KindImport},
		{"access denied", apperr.AccessDenied("access denied"), http.StatusUnauthorized, apperr.KindAccessDenied},
		{"not found", apperr.NotFound("no such network"), http.StatusNotFound, apperr.KindNotFound},
		{"duplicate name", apperr.DuplicateName("name taken"), http.StatusConflict, apperr.KindDuplicateName},
		{"conflict", apperr.Conflict("version already written"), http.StatusConflict, apperr.KindConflict},
		{"storage", apperr.Storage(errors.New("connection reset")), http.StatusInternalServerError, apperr.KindStorage},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := recordError(t, tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.kind, body.Kind)
		})
	}
}

func TestRespondErrorImportIncludesFeatureReason(t *testing.T) {
	_, body := recordError(t, apperr.Import(3, errors.New("unsupported geometry type 'Circle'")))
	assert.Contains(t, body.Message, "unsupported geometry type 'Circle'")
}

// Storage failures and unrecognized errors never leak internals to the
// caller.
func TestRespondErrorMasksInternals(t *testing.T) {
	status, body := recordError(t, apperr.Storage(errors.New("pq: relation missing")))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal error", body.Message)

	status, body = recordError(t, errors.New("plain error"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal error", body.Message)
}
