package timeline

// Category classifies an event. The set is closed; the write path rejects
// anything outside it.
type Category string

// The five categories.
const (
	CategoryInvention    Category = "invention"
	CategoryEvent        Category = "event"
	CategoryPerson       Category = "person"
	CategoryDiscovery    Category = "discovery"
	CategoryCivilization Category = "civilization"
)

// Categories returns the closed category set in display order.
func Categories() []Category {
	return []Category{
		CategoryInvention,
		CategoryEvent,
		CategoryPerson,
		CategoryDiscovery,
		CategoryCivilization,
	}
}

// Valid reports whether c belongs to the closed set.
func (c Category) Valid() bool {
	switch c {
	case CategoryInvention, CategoryEvent, CategoryPerson, CategoryDiscovery, CategoryCivilization:
		return true
	default:
		return false
	}
}

// Event is one timeline entry. Negative years denote years before the
// reference epoch; display formatting is up to consumers.
type Event struct {
	ID          string   `json:"id"`
	Year        int      `json:"year"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	EndYear     *int     `json:"endYear,omitempty"`
	Region      string   `json:"region,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Clone returns a deep copy of the event.
func (e Event) Clone() Event {
	out := e
	if e.EndYear != nil {
		y := *e.EndYear
		out.EndYear = &y
	}
	return out
}

// Collection is the single stored document: the full set of events.
type Collection struct {
	Events []Event `json:"events"`
}

// Clone returns a deep copy of the collection.
func (c Collection) Clone() Collection {
	if c.Events == nil {
		return Collection{}
	}
	out := Collection{Events: make([]Event, len(c.Events))}
	for i, ev := range c.Events {
		out.Events[i] = ev.Clone()
	}
	return out
}

// Find returns the index of the event with the given id, or -1.
func (c Collection) Find(id string) int {
	for i := range c.Events {
		if c.Events[i].ID == id {
			return i
		}
	}
	return -1
}

// NewEvent carries caller-supplied fields for a create. The id is always
// assigned by the system.
type NewEvent struct {
	Year        int      `json:"year"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	EndYear     *int     `json:"endYear,omitempty"`
	Region      string   `json:"region,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Materialize builds the stored Event with the assigned id.
func (n NewEvent) Materialize(id string) Event {
	ev := Event{
		ID:          id,
		Year:        n.Year,
		Name:        n.Name,
		Category:    n.Category,
		Region:      n.Region,
		Description: n.Description,
	}
	if n.EndYear != nil {
		y := *n.EndYear
		ev.EndYear = &y
	}
	return ev
}

// Patch carries caller-supplied fields for an update. Nil pointers leave the
// existing value untouched. The id of the target event is never changed.
type Patch struct {
	Year        *int      `json:"year,omitempty"`
	Name        *string   `json:"name,omitempty"`
	Category    *Category `json:"category,omitempty"`
	EndYear     *int      `json:"endYear,omitempty"`
	Region      *string   `json:"region,omitempty"`
	Description *string   `json:"description,omitempty"`
}

// Apply merges the patch onto ev and returns the result. The original id is
// forced back regardless of the patch contents.
func (p Patch) Apply(ev Event) Event {
	out := ev.Clone()
	if p.Year != nil {
		out.Year = *p.Year
	}
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.EndYear != nil {
		y := *p.EndYear
		out.EndYear = &y
	}
	if p.Region != nil {
		out.Region = *p.Region
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	out.ID = ev.ID
	return out
}
