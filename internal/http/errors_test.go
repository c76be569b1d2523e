package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/nardonidigital/agency-api/internal/errors"
)

func TestAppErrorStatus(t *testing.T) {
	cases := []struct {
		code apperrors.ErrorCode
		want int
	}{
		{apperrors.ErrCodeNotFound, http.StatusNotFound},
		{apperrors.ErrCodeConflict, http.StatusConflict},
		{apperrors.ErrCodeForeignKey, http.StatusConflict},
		{apperrors.ErrCodeValidation, http.StatusBadRequest},
		{apperrors.ErrCodeUnauthorized, http.StatusUnauthorized},
		{apperrors.ErrCodeForbidden, http.StatusForbidden},
		{apperrors.ErrCodeTimeout, http.StatusGatewayTimeout},
		{apperrors.ErrCodeCanceled, http.StatusServiceUnavailable},
		{apperrors.ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, appErrorStatus(tc.code), string(tc.code))
	}
}

func TestWriteServiceError_ClassifiedError(t *testing.T) {
	err := apperrors.Wrap(apperrors.ErrCodeConflict,
		"This value already exists. Please choose a different one.",
		errors.New("ERROR: duplicate key value violates unique constraint"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/clients", nil)
	logger := slog.New(slog.NewTextHandler(testWriter{t}, nil))

	writeServiceError(rec, req, logger, err, "client create failed", "could not create client")

	require.Equal(t, http.StatusConflict, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "conflict", body["error"])
	// The response carries the user-facing message, never the database cause.
	assert.Equal(t, "This value already exists. Please choose a different one.", body["message"])
	assert.NotContains(t, rec.Body.String(), "duplicate key")
}

func TestWriteServiceError_UnclassifiedErrorIsGeneric500(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/clients", nil)
	logger := slog.New(slog.NewTextHandler(testWriter{t}, nil))

	writeServiceError(rec, req, logger, errors.New("dial tcp: connection refused"), "client list failed", "could not list clients")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal_error", body["error"])
	assert.Equal(t, "could not list clients", body["message"])
}
