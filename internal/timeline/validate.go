package timeline

import "fmt"

// Validation constraints for event fields.
const (
	MinYear           = -9999
	MaxYear           = 9999
	MaxNameLen        = 500
	MaxRegionLen      = 200
	MaxDescriptionLen = 2000
)

func yearInRange(y int) bool { return y >= MinYear && y <= MaxYear }

// Validate checks a create request. All checks are cheap and deterministic so
// malformed input never reaches the store.
func (n NewEvent) Validate() error {
	var errs []FieldError

	if !yearInRange(n.Year) {
		errs = append(errs, FieldError{"year", fmt.Sprintf("must be between %d and %d", MinYear, MaxYear)})
	}
	if n.Name == "" {
		errs = append(errs, FieldError{"name", "required"})
	} else if len(n.Name) > MaxNameLen {
		errs = append(errs, FieldError{"name", fmt.Sprintf("max length %d", MaxNameLen)})
	}
	if n.Category == "" {
		errs = append(errs, FieldError{"category", "required"})
	} else if !n.Category.Valid() {
		errs = append(errs, FieldError{"category", fmt.Sprintf("unknown category %q", n.Category)})
	}
	if n.EndYear != nil && !yearInRange(*n.EndYear) {
		errs = append(errs, FieldError{"endYear", fmt.Sprintf("must be between %d and %d", MinYear, MaxYear)})
	}
	if len(n.Region) > MaxRegionLen {
		errs = append(errs, FieldError{"region", fmt.Sprintf("max length %d", MaxRegionLen)})
	}
	if len(n.Description) > MaxDescriptionLen {
		errs = append(errs, FieldError{"description", fmt.Sprintf("max length %d", MaxDescriptionLen)})
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// Validate checks an update request. Only supplied fields are checked.
// Note: endYear >= year is deliberately not enforced, matching the write
// path's permissive contract.
func (p Patch) Validate() error {
	var errs []FieldError

	if p.Year != nil && !yearInRange(*p.Year) {
		errs = append(errs, FieldError{"year", fmt.Sprintf("must be between %d and %d", MinYear, MaxYear)})
	}
	if p.Name != nil {
		if *p.Name == "" {
			errs = append(errs, FieldError{"name", "must be non-empty"})
		} else if len(*p.Name) > MaxNameLen {
			errs = append(errs, FieldError{"name", fmt.Sprintf("max length %d", MaxNameLen)})
		}
	}
	if p.Category != nil && !p.Category.Valid() {
		errs = append(errs, FieldError{"category", fmt.Sprintf("unknown category %q", *p.Category)})
	}
	if p.EndYear != nil && !yearInRange(*p.EndYear) {
		errs = append(errs, FieldError{"endYear", fmt.Sprintf("must be between %d and %d", MinYear, MaxYear)})
	}
	if p.Region != nil && len(*p.Region) > MaxRegionLen {
		errs = append(errs, FieldError{"region", fmt.Sprintf("max length %d", MaxRegionLen)})
	}
	if p.Description != nil && len(*p.Description) > MaxDescriptionLen {
		errs = append(errs, FieldError{"description", fmt.Sprintf("max length %d", MaxDescriptionLen)})
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
