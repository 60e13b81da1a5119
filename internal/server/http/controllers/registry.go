package controllers

import (
	"net/http"

	"github.com/epochline/epochline/internal/runtime"
	eventsvc "github.com/epochline/epochline/internal/services/events"
)

// ControllerRegistry manages all HTTP controllers.
//
// It provides a centralized way to register all controller routes.
type ControllerRegistry struct {
	general *GeneralController
	events  *EventsController
	audit   *AuditController
}

// NewControllerRegistry creates a new controller registry.
//
// It initializes all controllers with the provided runtime and service.
func NewControllerRegistry(rt *runtime.Runtime, svc *eventsvc.Service) *ControllerRegistry {
	return &ControllerRegistry{
		general: NewGeneralController(rt, svc),
		events:  NewEventsController(rt, svc),
		audit:   NewAuditController(rt, svc),
	}
}

// RegisterAllRoutes registers all controller routes with the given mux.
//
// This sets up the health and category endpoints, the public event listing,
// the owner-gated mutation endpoints, and the audit trail.
func (r *ControllerRegistry) RegisterAllRoutes(mux *http.ServeMux) {
	r.general.RegisterRoutes(mux)
	r.events.RegisterRoutes(mux)
	r.audit.RegisterRoutes(mux)
}
