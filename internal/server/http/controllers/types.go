package controllers

import "github.com/epochline/epochline/internal/timeline"

// Common request/response types for HTTP controllers

// updateEventReq represents a request to patch an existing event.
type updateEventReq struct {
	ID    string         `json:"id"`
	Patch timeline.Patch `json:"patch"`
}

// deleteEventReq represents a request to delete an event by id.
type deleteEventReq struct {
	ID string `json:"id"`
}

// eventsResp wraps a list of events for the public listing.
type eventsResp struct {
	Events []timeline.Event `json:"events"`
}
