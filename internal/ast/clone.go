package ast

import "slices"

// cloneAll deep-copies a slice of nodes. Returns nil when s is nil.
func cloneAll[T interface{ Clone() T }](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	for i, n := range s {
		out[i] = n.Clone()
	}
	return out
}

func cloneChildren(s []Child) []Child {
	if s == nil {
		return nil
	}
	out := make([]Child, len(s))
	for i, c := range s {
		out[i] = c.CloneChild()
	}
	return out
}

// Clone returns a deep copy of the Document.
func (d *Document) Clone() *Document {
	c := d.Shell()
	if d.Feature != nil {
		c.Feature = d.Feature.Clone()
	}
	return c
}

// Shell returns a copy of the Document without its Feature.
func (d *Document) Shell() *Document {
	return &Document{URI: d.URI}
}

func (f *Feature) Clone() *Feature {
	c := *f
	c.Tags = cloneAll(f.Tags)
	c.Children = cloneChildren(f.Children)
	return &c
}

func (r *Rule) Clone() *Rule {
	c := *r
	c.Tags = cloneAll(r.Tags)
	c.Children = cloneChildren(r.Children)
	return &c
}

func (b *Background) Clone() *Background {
	c := *b
	c.Steps = cloneAll(b.Steps)
	return &c
}

func (s *Scenario) Clone() *Scenario {
	c := *s
	c.Tags = cloneAll(s.Tags)
	c.Steps = cloneAll(s.Steps)
	return &c
}

func (o *ScenarioOutline) Clone() *ScenarioOutline {
	c := *o
	c.Tags = cloneAll(o.Tags)
	c.Steps = cloneAll(o.Steps)
	c.Examples = cloneAll(o.Examples)
	return &c
}

func (s *Step) Clone() *Step {
	c := *s
	if s.DocString != nil {
		c.DocString = s.DocString.Clone()
	}
	if s.DataTable != nil {
		c.DataTable = s.DataTable.Clone()
	}
	return &c
}

func (d *DocString) Clone() *DocString {
	c := *d
	return &c
}

func (t *DataTable) Clone() *DataTable {
	return &DataTable{Rows: cloneAll(t.Rows)}
}

func (e *Examples) Clone() *Examples {
	c := *e
	c.Tags = cloneAll(e.Tags)
	if e.Header != nil {
		c.Header = e.Header.Clone()
	}
	c.Body = cloneAll(e.Body)
	return &c
}

func (r *TableRow) Clone() *TableRow {
	return &TableRow{Cells: slices.Clone(r.Cells)}
}

func (t *Tag) Clone() *Tag {
	c := *t
	return &c
}

func (r *Rule) CloneChild() Child            { return r.Clone() }
func (b *Background) CloneChild() Child      { return b.Clone() }
func (s *Scenario) CloneChild() Child        { return s.Clone() }
func (o *ScenarioOutline) CloneChild() Child { return o.Clone() }

// ToScenario converts the outline into a plain Scenario carrying the same
// tags, name, description and steps. Examples are dropped.
func (o *ScenarioOutline) ToScenario() *Scenario {
	return &Scenario{
		Tags:        cloneAll(o.Tags),
		Keyword:     "Scenario",
		Name:        o.Name,
		Description: o.Description,
		Steps:       cloneAll(o.Steps),
	}
}
