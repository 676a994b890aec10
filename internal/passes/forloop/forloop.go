// Package forloop repeats scenarios tagged @loop(N) N times.
package forloop

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/chriserin/gpc/internal/ast"
	"github.com/chriserin/gpc/internal/compiler"
)

var (
	ErrInvalidCount = errors.New("loop count is not a number")
	ErrCountRange   = errors.New("loop count out of range")
	ErrInvalidMax   = errors.New("maxValue must be at least 1")
)

type Options struct {
	// MaxValue is the largest accepted loop count.
	MaxValue int `mapstructure:"maxValue"`
	// TagName is the tag name without @ or arguments.
	TagName string `mapstructure:"tagName"`
	// Format renders an iteration name from ${i} and ${name}.
	Format string `mapstructure:"format"`
}

func DefaultOptions() Options {
	return Options{MaxValue: 10, TagName: "loop", Format: "${name} (${i})"}
}

type ForLoop struct {
	opts Options
	tag  *regexp.Regexp
}

func New(opts Options) (*ForLoop, error) {
	def := DefaultOptions()
	if opts.TagName == "" {
		opts.TagName = def.TagName
	}
	if opts.Format == "" {
		opts.Format = def.Format
	}
	if opts.MaxValue < 1 {
		return nil, ErrInvalidMax
	}
	return &ForLoop{
		opts: opts,
		tag:  regexp.MustCompile(`^@` + regexp.QuoteMeta(opts.TagName) + `\((.*)\)$`),
	}, nil
}

// count finds the loop tag in tags. It returns the tag's index, or -1 when
// there is none.
func (l *ForLoop) count(tags []*ast.Tag) (int, int, error) {
	for i, t := range tags {
		m := l.tag.FindStringSubmatch(t.Name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(m[1]))
		if err != nil {
			return 0, i, fmt.Errorf("%s: %w", t.Name, ErrInvalidCount)
		}
		if n < 1 || n > l.opts.MaxValue {
			return 0, i, fmt.Errorf("%s: %w: must be between 1 and %d", t.Name, ErrCountRange, l.opts.MaxValue)
		}
		return n, i, nil
	}
	return 0, -1, nil
}

func (l *ForLoop) name(name string, i int) string {
	return strings.NewReplacer("${i}", strconv.Itoa(i), "${name}", name).Replace(l.opts.Format)
}

func withoutTag(tags []*ast.Tag, at int) []*ast.Tag {
	out := make([]*ast.Tag, 0, len(tags)-1)
	out = append(out, tags[:at]...)
	return append(out, tags[at+1:]...)
}

// Hooks replaces every looped scenario or outline with its iterations. The
// loop tag is removed from each copy.
func (l *ForLoop) Hooks() *compiler.Hooks {
	return &compiler.Hooks{
		Name: "for-loop",
		OnScenario: func(_ context.Context, s *ast.Scenario, _ ast.Node, _ int) (compiler.Result[*ast.Scenario], error) {
			n, at, err := l.count(s.Tags)
			if err != nil || at < 0 {
				return compiler.Keep[*ast.Scenario](), err
			}
			out := make([]*ast.Scenario, n)
			for i := 0; i < n; i++ {
				c := s.Clone()
				c.Tags = withoutTag(c.Tags, at)
				c.Name = l.name(s.Name, i+1)
				out[i] = c
			}
			return compiler.Expand(out...), nil
		},
		OnScenarioOutline: func(_ context.Context, o *ast.ScenarioOutline, _ ast.Node, _ int) (compiler.Result[ast.Element], error) {
			n, at, err := l.count(o.Tags)
			if err != nil || at < 0 {
				return compiler.Keep[ast.Element](), err
			}
			out := make([]ast.Element, n)
			for i := 0; i < n; i++ {
				c := o.Clone()
				c.Tags = withoutTag(c.Tags, at)
				c.Name = l.name(o.Name, i+1)
				out[i] = c
			}
			return compiler.Expand(out...), nil
		},
	}
}
