// Package timeline defines the event collection domain model: the Event
// record, its category enumeration, the Collection document shape stored
// remotely, and input validation for create/update operations.
//
// The whole collection is one JSON document, `{"events":[...]}`. Order inside
// the stored document carries no meaning; consumers compute display order.
package timeline
