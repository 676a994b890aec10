package compiler

import (
	"context"

	"github.com/chriserin/gpc/internal/ast"
)

// Filter decides whether a list item is kept. Pre-filters see the item's
// index in the original list; post-filters see its index after transforms.
type Filter[T any] func(ctx context.Context, node T, parent ast.Node, i int) (bool, error)

// Transform rewrites a list item. The cursor index i moves with deletions
// and expansions made earlier in the same list.
type Transform[T, R any] func(ctx context.Context, node T, parent ast.Node, i int) (Result[R], error)

// SlotFilter decides whether a node held in a single optional field is kept.
type SlotFilter[T any] func(ctx context.Context, node T, parent ast.Node) (bool, error)

// SlotTransform rewrites a node held in a single optional field.
type SlotTransform[T any] func(ctx context.Context, node T, parent ast.Node) (Result[T], error)

// Hooks is one pass: a sparse set of pre-filter, transform and post-filter
// functions per node kind. Nil fields are no-ops, so a zero Hooks is an
// identity pass.
//
// Hooks are called one at a time, depth-first in document order. A hook that
// returns an error aborts the run.
type Hooks struct {
	// Name identifies the pass in logs and errors.
	Name string

	// Feature is a single slot of the Document; OnFeature may still expand,
	// which fans the document out into one output document per feature.
	PreFeature  SlotFilter[*ast.Feature]
	OnFeature   SlotTransform[*ast.Feature]
	PostFeature SlotFilter[*ast.Feature]

	PreRule  Filter[*ast.Rule]
	OnRule   Transform[*ast.Rule, *ast.Rule]
	PostRule Filter[*ast.Rule]

	PreBackground  Filter[*ast.Background]
	OnBackground   Transform[*ast.Background, *ast.Background]
	PostBackground Filter[*ast.Background]

	PreScenario  Filter[*ast.Scenario]
	OnScenario   Transform[*ast.Scenario, *ast.Scenario]
	PostScenario Filter[*ast.Scenario]

	// OnScenarioOutline may return other element kinds, typically Scenarios.
	// Post-filters and child processing follow the kind that was returned.
	PreScenarioOutline  Filter[*ast.ScenarioOutline]
	OnScenarioOutline   Transform[*ast.ScenarioOutline, ast.Element]
	PostScenarioOutline Filter[*ast.ScenarioOutline]

	PreStep  Filter[*ast.Step]
	OnStep   Transform[*ast.Step, *ast.Step]
	PostStep Filter[*ast.Step]

	PreTag  Filter[*ast.Tag]
	OnTag   Transform[*ast.Tag, *ast.Tag]
	PostTag Filter[*ast.Tag]

	PreDocString  SlotFilter[*ast.DocString]
	OnDocString   SlotTransform[*ast.DocString]
	PostDocString SlotFilter[*ast.DocString]

	PreDataTable  SlotFilter[*ast.DataTable]
	OnDataTable   SlotTransform[*ast.DataTable]
	PostDataTable SlotFilter[*ast.DataTable]

	PreExamples  Filter[*ast.Examples]
	OnExamples   Transform[*ast.Examples, *ast.Examples]
	PostExamples Filter[*ast.Examples]

	PreTableHeader  SlotFilter[*ast.TableRow]
	OnTableHeader   SlotTransform[*ast.TableRow]
	PostTableHeader SlotFilter[*ast.TableRow]

	// TableRow hooks see body rows of both data tables and examples.
	PreTableRow  Filter[*ast.TableRow]
	OnTableRow   Transform[*ast.TableRow, *ast.TableRow]
	PostTableRow Filter[*ast.TableRow]
}

func (h *Hooks) name() string {
	if h.Name == "" {
		return "anonymous"
	}
	return h.Name
}
