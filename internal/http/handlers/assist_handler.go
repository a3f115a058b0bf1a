// README: AI assistant handlers (query classification and intent execution).
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"physio/internal/modules/assist"
)

type AssistHandler struct {
	assist *assist.Service
}

func NewAssistHandler(svc *assist.Service) *AssistHandler {
	return &AssistHandler{assist: svc}
}

type searchReq struct {
	Query string `json:"query"`
}

// Search handles POST /api/ai/search: classify the free-text query into
// a validated intent and return it. The caller forwards the intent to
// Execute to actually run it.
func (h *AssistHandler) Search(c *gin.Context) {
	var req searchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		writeError(c, http.StatusBadRequest, "missing query")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	intent, err := h.assist.Classify(ctx, req.Query)
	if err != nil {
		// Any classification failure is opaque to the caller.
		writeError(c, http.StatusBadRequest, "Invalid AI response")
		return
	}

	writeJSON(c, http.StatusOK, intent)
}

// Execute handles POST /api/ai/execute: run an already-classified intent.
// The payload is revalidated so hand-crafted intents obey the same schema
// as classifier output.
func (h *AssistHandler) Execute(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	intent, err := assist.ValidateIntent(raw)
	if err != nil {
		writeError(c, http.StatusBadRequest, "Invalid AI response")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	h.run(ctx, c, *intent)
}

func (h *AssistHandler) run(ctx context.Context, c *gin.Context, intent assist.Intent) {
	result, err := h.assist.Execute(ctx, intent)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	switch result.Kind {
	case assist.ResultBookings:
		writeJSON(c, http.StatusOK, gin.H{"results": result.Bookings})
	case assist.ResultRevenue:
		writeJSON(c, http.StatusOK, gin.H{"revenue": result.Revenue})
	default:
		writeJSON(c, http.StatusOK, gin.H{"message": "Not implemented yet"})
	}
}
