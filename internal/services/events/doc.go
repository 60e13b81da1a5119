// Package eventsvc implements the application service over the timeline
// document: public listing with optional CEL filtering, and owner-gated
// create/update/delete mutations run through the store's conflict-retrying
// mutator. Every successful mutation is recorded in the local audit trail.
//
// Example:
//
//	svc := eventsvc.New(rt)
//	events, _ := svc.List(ctx, eventsvc.ListOptions{Filter: `category == "invention"`})
//	ev, _ := svc.Create(ctx, eventsvc.Caller{Owner: true}, timeline.NewEvent{Year: 1440, Name: "Printing press", Category: timeline.CategoryInvention})
package eventsvc
