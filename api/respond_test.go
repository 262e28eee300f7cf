package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pagepilot-ai/backend/errs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestWriteJSONWithStatus(t *testing.T) {
	responder := NewResponder(zerolog.Nop())
	rec := httptest.NewRecorder()

	responder.WriteJSONWithStatus(rec, http.StatusCreated, map[string]string{"name": "gemini"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"name":"gemini"}`, rec.Body.String())
}

func TestWriteJSONDefaultsToOK(t *testing.T) {
	responder := NewResponder(zerolog.Nop())
	rec := httptest.NewRecorder()

	responder.WriteJSON(rec, map[string]string{"status": "success"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestWriteErrorKeepsJSONContentType(t *testing.T) {
	responder := NewResponder(zerolog.Nop())
	rec := httptest.NewRecorder()

	responder.WriteError(rec, errs.NewNotFoundError("project not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "project not found")
}
