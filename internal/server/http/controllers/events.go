package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/epochline/epochline/internal/runtime"
	eventsvc "github.com/epochline/epochline/internal/services/events"
	"github.com/epochline/epochline/internal/timeline"
)

// EventsController handles all timeline event HTTP endpoints.
//
// Listing is public; create, update, delete, and seed require the owner
// bearer token.
type EventsController struct {
	rt         *runtime.Runtime
	svc        *eventsvc.Service
	ownerToken string
}

// NewEventsController creates a new events controller.
func NewEventsController(rt *runtime.Runtime, svc *eventsvc.Service) *EventsController {
	return &EventsController{
		rt:         rt,
		svc:        svc,
		ownerToken: rt.Config().Owner.Token,
	}
}

// RegisterRoutes registers all event routes with the given mux.
func (c *EventsController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/events/list", c.handleList)
	mux.HandleFunc("/v1/events/create", c.handleCreate)
	mux.HandleFunc("/v1/events/update", c.handleUpdate)
	mux.HandleFunc("/v1/events/delete", c.handleDelete)
	mux.HandleFunc("/v1/events/seed", c.handleSeed)
}

// handleList returns events newest-year-first. Query parameters: category,
// filter (CEL expression), limit.
func (c *EventsController) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	q := r.URL.Query()
	events, err := c.svc.List(r.Context(), eventsvc.ListOptions{
		Category: q.Get("category"),
		Filter:   q.Get("filter"),
		Limit:    parseLimit(q.Get("limit")),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, eventsResp{Events: events})
}

// handleCreate adds a new event. The id is assigned server-side and the
// created event is returned.
func (c *EventsController) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var req timeline.NewEvent
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	ev, err := c.svc.Create(r.Context(), callerFromRequest(r, c.ownerToken), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(ev)
}

// handleUpdate patches an existing event and returns the merged result.
func (c *EventsController) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var req updateEventReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	ev, err := c.svc.Update(r.Context(), callerFromRequest(r, c.ownerToken), req.ID, req.Patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, ev)
}

// handleDelete removes an event by id.
func (c *EventsController) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var req deleteEventReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := c.svc.Delete(r.Context(), callerFromRequest(r, c.ownerToken), req.ID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSeed writes the starter document. Fails with 409 when the remote
// document already exists.
func (c *EventsController) handleSeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if err := c.svc.Seed(r.Context(), callerFromRequest(r, c.ownerToken)); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}
