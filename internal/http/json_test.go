package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	decode := func(body string) (*httptest.ResponseRecorder, bool) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/admin/clients", strings.NewReader(body))
		var p payload
		return rec, DecodeJSON(rec, req, &p)
	}

	t.Run("valid body", func(t *testing.T) {
		_, ok := decode(`{"name": "Acme"}`)
		assert.True(t, ok)
	})

	t.Run("unknown field", func(t *testing.T) {
		rec, ok := decode(`{"name": "Acme", "surprise": true}`)
		require.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid_json")
	})

	t.Run("trailing data", func(t *testing.T) {
		rec, ok := decode(`{"name": "Acme"}{"name": "Again"}`)
		require.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("oversized body", func(t *testing.T) {
		big := `{"name": "` + strings.Repeat("x", maxJSONBodyBytes) + `"}`
		rec, ok := decode(big)
		require.False(t, ok)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Contains(t, rec.Body.String(), "body_too_large")
	})
}
