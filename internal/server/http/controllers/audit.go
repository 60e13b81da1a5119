package controllers

import (
	"net/http"

	"github.com/epochline/epochline/internal/runtime"
	eventsvc "github.com/epochline/epochline/internal/services/events"
)

// AuditController exposes the local audit trail. Owner only.
type AuditController struct {
	rt         *runtime.Runtime
	svc        *eventsvc.Service
	ownerToken string
}

// NewAuditController creates a new audit controller.
func NewAuditController(rt *runtime.Runtime, svc *eventsvc.Service) *AuditController {
	return &AuditController{
		rt:         rt,
		svc:        svc,
		ownerToken: rt.Config().Owner.Token,
	}
}

// RegisterRoutes registers audit routes with the given mux.
func (c *AuditController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/audit/list", c.handleList)
}

// handleList returns recent audit entries, newest first. Query parameter:
// limit.
func (c *AuditController) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	entries, err := c.svc.History(r.Context(), callerFromRequest(r, c.ownerToken), parseLimit(r.URL.Query().Get("limit")))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, map[string]any{"entries": entries})
}
