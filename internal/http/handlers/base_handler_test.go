// README: Tests for the module error to HTTP status mapping.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"physio/internal/modules/catalog"
	"physio/internal/modules/client"
)

func recordedStatus(t *testing.T, write func(c *gin.Context)) (int, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	write(c)

	var resp errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body %q: %v", w.Body.String(), err)
	}
	return w.Code, resp.Error
}

func TestWriteCatalogError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"bad request", catalog.ErrBadRequest, http.StatusBadRequest, catalog.ErrBadRequest.Error()},
		{"not found", catalog.ErrNotFound, http.StatusNotFound, catalog.ErrNotFound.Error()},
		// Duplicate name or slug is a 400 with the friendly message.
		{"unique violation", catalog.ErrConflict, http.StatusBadRequest, catalog.ErrConflict.Error()},
		{"wrapped conflict", fmt.Errorf("create specialty: %w", catalog.ErrConflict), http.StatusBadRequest, "create specialty: " + catalog.ErrConflict.Error()},
		{"unknown", errors.New("pool exhausted"), http.StatusInternalServerError, "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := recordedStatus(t, func(c *gin.Context) {
				writeCatalogError(c, tt.err)
			})
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if msg != tt.wantMsg {
				t.Errorf("error = %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestWriteClientError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"bad request", client.ErrBadRequest, http.StatusBadRequest},
		{"not found", client.ErrNotFound, http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := recordedStatus(t, func(c *gin.Context) {
				writeClientError(c, tt.err)
			})
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
		})
	}
}
