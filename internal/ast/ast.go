// Package ast defines the Gherkin document tree the compiler rewrites.
//
// The tree has a fixed shape: a Document owns at most one Feature, a Feature
// owns tags and a list of children that are either Rules or Elements
// (Background, Scenario, ScenarioOutline), and so on down to table rows.
// Every node is owned by exactly one parent slot; Clone methods return deep
// copies so a pass never aliases its input.
package ast

// Node is any node of a Document tree. Hooks receive the parent of the node
// they visit as a Node.
type Node interface {
	node()
}

// Kind tags the concrete type of a Feature or Rule child.
type Kind int

// Kind values. The set is closed: the compiler matches on it exhaustively.
const (
	KindBackground Kind = iota + 1
	KindScenario
	KindScenarioOutline
	KindRule
)

func (k Kind) String() string {
	switch k {
	case KindBackground:
		return "Background"
	case KindScenario:
		return "Scenario"
	case KindScenarioOutline:
		return "Scenario Outline"
	case KindRule:
		return "Rule"
	}
	return "Unknown"
}

// Child is an item of Feature.Children or Rule.Children.
type Child interface {
	Node
	Kind() Kind
	CloneChild() Child
}

// Element is a Child that is not a Rule: a Background, Scenario or
// ScenarioOutline.
type Element interface {
	Child
	element()
}

type Document struct {
	URI     string
	Feature *Feature
}

type Feature struct {
	Tags        []*Tag
	Language    string
	Keyword     string
	Name        string
	Description string
	// Children holds either Rules or Elements. A Feature with at least one
	// Rule is processed in rule mode and its non-Rule children are opaque.
	Children []Child
}

type Rule struct {
	Tags        []*Tag
	Keyword     string
	Name        string
	Description string
	Children    []Child
}

type Background struct {
	Keyword     string
	Name        string
	Description string
	Steps       []*Step
}

type Scenario struct {
	Tags        []*Tag
	Keyword     string
	Name        string
	Description string
	Steps       []*Step
}

type ScenarioOutline struct {
	Tags        []*Tag
	Keyword     string
	Name        string
	Description string
	Steps       []*Step
	Examples    []*Examples
}

// Step holds at most one argument: DocString and DataTable are mutually
// exclusive.
type Step struct {
	Keyword   string // Given, When, Then, And, But, *
	Text      string
	DocString *DocString
	DataTable *DataTable
}

type DocString struct {
	Delimiter string // """ or ```
	MediaType string
	Content   string
}

type DataTable struct {
	Rows []*TableRow
}

type Examples struct {
	Tags        []*Tag
	Keyword     string
	Name        string
	Description string
	Header      *TableRow
	Body        []*TableRow
}

type TableRow struct {
	Cells []string
}

type Tag struct {
	Name string // e.g. "@smoke", "@loop(3)"
}

func (*Document) node()        {}
func (*Feature) node()         {}
func (*Rule) node()            {}
func (*Background) node()      {}
func (*Scenario) node()        {}
func (*ScenarioOutline) node() {}
func (*Step) node()            {}
func (*DocString) node()       {}
func (*DataTable) node()       {}
func (*Examples) node()        {}
func (*TableRow) node()        {}
func (*Tag) node()             {}

func (*Background) element()      {}
func (*Scenario) element()        {}
func (*ScenarioOutline) element() {}

func (*Rule) Kind() Kind            { return KindRule }
func (*Background) Kind() Kind      { return KindBackground }
func (*Scenario) Kind() Kind        { return KindScenario }
func (*ScenarioOutline) Kind() Kind { return KindScenarioOutline }
