// Package macro turns scenarios tagged @macro(name) into reusable step
// sequences. A definition is removed from the output and every step
// "macro(name) is executed" is replaced by a copy of its steps.
package macro

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/chriserin/gpc/internal/ast"
	"github.com/chriserin/gpc/internal/compiler"
)

var (
	ErrDuplicate = errors.New("macro already defined")
	ErrUndefined = errors.New("macro not defined")
	ErrNoSteps   = errors.New("macro has no steps")
	ErrNoName    = errors.New("macro has no name")
	ErrCycle     = errors.New("macro calls itself")
)

var (
	definition = regexp.MustCompile(`^@macro\((.*)\)$`)
	call       = regexp.MustCompile(`^macro\((.*)\) is executed$`)
)

// Macro is scoped to one document; definitions do not leak across features.
type Macro struct {
	steps map[string][]*ast.Step
}

func New() *Macro {
	return &Macro{}
}

func (m *Macro) Hooks() *compiler.Hooks {
	return &compiler.Hooks{
		Name: "macro",
		PreFeature: func(context.Context, *ast.Feature, ast.Node) (bool, error) {
			m.steps = map[string][]*ast.Step{}
			return true, nil
		},
		PreScenario: m.define,
		OnStep: func(_ context.Context, s *ast.Step, _ ast.Node, _ int) (compiler.Result[*ast.Step], error) {
			match := call.FindStringSubmatch(s.Text)
			if match == nil {
				return compiler.Keep[*ast.Step](), nil
			}
			steps, err := m.expand(strings.TrimSpace(match[1]), nil)
			if err != nil {
				return compiler.Result[*ast.Step]{}, err
			}
			return compiler.Expand(steps...), nil
		},
	}
}

// define records a macro scenario and drops it. Other scenarios are kept.
func (m *Macro) define(_ context.Context, s *ast.Scenario, _ ast.Node, _ int) (bool, error) {
	for _, t := range s.Tags {
		match := definition.FindStringSubmatch(t.Name)
		if match == nil {
			continue
		}
		name := strings.TrimSpace(match[1])
		switch {
		case name == "":
			return false, fmt.Errorf("scenario %q: %w", s.Name, ErrNoName)
		case m.steps[name] != nil:
			return false, fmt.Errorf("%s: %w", name, ErrDuplicate)
		case len(s.Steps) == 0:
			return false, fmt.Errorf("%s: %w", name, ErrNoSteps)
		}
		m.steps[name] = s.Steps
		return false, nil
	}
	return true, nil
}

// expand returns copies of the steps of macro name with nested calls
// resolved. stack holds the macros being expanded.
func (m *Macro) expand(name string, stack []string) ([]*ast.Step, error) {
	for _, s := range stack {
		if s == name {
			return nil, fmt.Errorf("%s: %w", strings.Join(append(stack, name), " -> "), ErrCycle)
		}
	}
	steps, ok := m.steps[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrUndefined)
	}

	var out []*ast.Step
	for _, s := range steps {
		match := call.FindStringSubmatch(s.Text)
		if match == nil {
			out = append(out, s.Clone())
			continue
		}
		nested, err := m.expand(strings.TrimSpace(match[1]), append(stack, name))
		if err != nil {
			return nil, err
		}
		out = append(out, nested...)
	}
	return out, nil
}
