// Package filter evaluates expr-lang expressions against media entries.
//
// Expressions see the fields of a media entry as plain variables:
//
//	Score >= 80 && "Action" in Genres
//	Episodes > 0 && Episodes <= 26 && StartYear >= 2010
//
// The browse command uses this to narrow paged search results client-side,
// beyond what the service's own filter variables can express.
package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/aniquery/aniquery/anilist"
)

// Filter is a compiled boolean expression over media fields.
type Filter struct {
	expression string
	program    *vm.Program
}

// CompilationError describes an expression that failed to compile.
type CompilationError struct {
	Expression string
	Reason     string
}

// Error implements the error interface
func (e *CompilationError) Error() string {
	return fmt.Sprintf("failed to compile filter %q: %s", e.Expression, e.Reason)
}

// Compile compiles an expression into an executable filter.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	program, err := expr.Compile(expression,
		expr.AllowUndefinedVariables(), // media fields are injected at run time
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     err.Error(),
		}
	}

	return &Filter{expression: expression, program: program}, nil
}

// Expression returns the source expression.
func (f *Filter) Expression() string {
	return f.expression
}

// Match evaluates the filter against a single media entry.
func (f *Filter) Match(m *anilist.Media) (bool, error) {
	result, err := expr.Run(f.program, environment(m))
	if err != nil {
		return false, fmt.Errorf("filter evaluation failed: %w", err)
	}

	ok, isBool := result.(bool)
	if !isBool {
		return false, fmt.Errorf("filter %q did not evaluate to a boolean", f.expression)
	}
	return ok, nil
}

// Apply keeps the entries the filter matches, preserving order.
func (f *Filter) Apply(media []*anilist.Media) ([]*anilist.Media, error) {
	matched := make([]*anilist.Media, 0, len(media))
	for _, m := range media {
		ok, err := f.Match(m)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, m)
		}
	}
	return matched, nil
}

// environment builds the variable map an expression evaluates against.
func environment(m *anilist.Media) map[string]any {
	genres := m.Genres
	if genres == nil {
		genres = []string{}
	}

	return map[string]any{
		"ID":          m.ID,
		"Title":       m.PreferredTitle(),
		"TitleRomaji": m.Title.Romaji,
		"Type":        string(m.Type),
		"Format":      m.Format,
		"Status":      m.Status,
		"Episodes":    m.Episodes,
		"Chapters":    m.Chapters,
		"Volumes":     m.Volumes,
		"Score":       m.AverageScore,
		"Popularity":  m.Popularity,
		"IsAdult":     m.IsAdult,
		"Genres":      genres,
		"StartYear":   m.StartDate.Year,
		"EndYear":     m.EndDate.Year,

		"hasGenre": func(genre string) bool {
			for _, g := range genres {
				if strings.EqualFold(g, genre) {
					return true
				}
			}
			return false
		},
	}
}
