package controllers

import (
	"net/http"

	"github.com/epochline/epochline/internal/runtime"
	eventsvc "github.com/epochline/epochline/internal/services/events"
)

// GeneralController handles general HTTP endpoints like health and the
// category set.
type GeneralController struct {
	rt  *runtime.Runtime
	svc *eventsvc.Service
}

// NewGeneralController creates a new general controller.
func NewGeneralController(rt *runtime.Runtime, svc *eventsvc.Service) *GeneralController {
	return &GeneralController{
		rt:  rt,
		svc: svc,
	}
}

// RegisterRoutes registers general routes with the given mux.
func (c *GeneralController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/healthz", c.handleHealth)
	mux.HandleFunc("/v1/categories", c.handleCategories)
}

// handleHealth returns the health status of the service.
//
// Returns 200 OK with {"status": "ok"} if healthy, 503 Service Unavailable
// otherwise. Health covers only local state; the remote store surfaces its
// own failures per request.
func (c *GeneralController) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := c.rt.CheckHealth(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "not_serving")
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleCategories returns the closed category set in display order.
func (c *GeneralController) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"categories": c.svc.Categories()})
}
