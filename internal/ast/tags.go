package ast

import "strings"

// NewTags builds tags from names, adding a leading "@" when missing.
func NewTags(names ...string) []*Tag {
	tags := make([]*Tag, 0, len(names))
	for _, n := range names {
		if !strings.HasPrefix(n, "@") {
			n = "@" + n
		}
		tags = append(tags, &Tag{Name: n})
	}
	return tags
}

// TagNames returns the names of tags in order.
func TagNames(tags []*Tag) []string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names
}

// HasTag reports whether tags contains a tag named name.
func HasTag(tags []*Tag, name string) bool {
	for _, t := range tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

// TagsOf returns the tags owned by n, or nil for nodes that carry none.
func TagsOf(n Node) []*Tag {
	switch v := n.(type) {
	case *Feature:
		return v.Tags
	case *Rule:
		return v.Tags
	case *Scenario:
		return v.Tags
	case *ScenarioOutline:
		return v.Tags
	case *Examples:
		return v.Tags
	}
	return nil
}
