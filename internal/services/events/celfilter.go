package eventsvc

import (
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/epochline/epochline/internal/timeline"
)

// celFilter wraps a compiled CEL program evaluated per event during listing.
// When disabled, Eval always returns true.
type celFilter struct {
	prog    cel.Program
	enabled bool
}

func newCELFilter(expr string) (celFilter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return celFilter{enabled: false}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("year", cel.IntType),
		cel.Variable("end_year", cel.IntType),
		cel.Variable("has_end_year", cel.BoolType),
		cel.Variable("name", cel.StringType),
		cel.Variable("category", cel.StringType),
		cel.Variable("region", cel.StringType),
		cel.Variable("description", cel.StringType),
	)
	if err != nil {
		return celFilter{}, err
	}
	ast, iss := env.Parse(expr)
	if iss != nil && iss.Err() != nil {
		return celFilter{}, iss.Err()
	}
	checked, iss2 := env.Check(ast)
	if iss2 != nil && iss2.Err() != nil {
		return celFilter{}, iss2.Err()
	}
	prog, err := env.Program(checked)
	if err != nil {
		return celFilter{}, err
	}
	return celFilter{prog: prog, enabled: true}, nil
}

// Eval evaluates the compiled expression against one event. Evaluation
// errors count as non-matches.
func (f celFilter) Eval(ev timeline.Event) bool {
	if !f.enabled {
		return true
	}
	endYear := 0
	if ev.EndYear != nil {
		endYear = *ev.EndYear
	}
	out, _, err := f.prog.Eval(map[string]any{
		"year":         int64(ev.Year),
		"end_year":     int64(endYear),
		"has_end_year": ev.EndYear != nil,
		"name":         ev.Name,
		"category":     string(ev.Category),
		"region":       ev.Region,
		"description":  ev.Description,
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}
