// Package passes builds the bundled compiler passes by name from
// configuration.
package passes

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mitchellh/mapstructure"

	"github.com/chriserin/gpc/internal/compiler"
	"github.com/chriserin/gpc/internal/passes/dedupe"
	"github.com/chriserin/gpc/internal/passes/expander"
	"github.com/chriserin/gpc/internal/passes/filter"
	"github.com/chriserin/gpc/internal/passes/forloop"
	"github.com/chriserin/gpc/internal/passes/macro"
	"github.com/chriserin/gpc/internal/passes/numbering"
	"github.com/chriserin/gpc/internal/passes/replacer"
)

var ErrUnknownPass = errors.New("unknown pass")

// Factory builds a fresh pass from its raw options.
type Factory func(options map[string]any) (*compiler.Hooks, error)

type entry struct {
	summary string
	build   Factory
}

var registry = map[string]entry{
	"replacer": {
		summary: "replace ${key} placeholders with configured values",
		build: func(options map[string]any) (*compiler.Hooks, error) {
			values := make(map[string]string, len(options))
			for k, v := range options {
				values[k] = fmt.Sprint(v)
			}
			r, err := replacer.New(values)
			if err != nil {
				return nil, err
			}
			return r.Hooks(), nil
		},
	},
	"remove-duplicates": {
		summary: "drop repeated tags and, optionally, repeated table rows",
		build: func(options map[string]any) (*compiler.Hooks, error) {
			opts := dedupe.DefaultOptions()
			if err := decode(options, &opts); err != nil {
				return nil, err
			}
			return dedupe.New(opts).Hooks(), nil
		},
	},
	"scenario-numbering": {
		summary: "prefix scenario names with their position",
		build: func(options map[string]any) (*compiler.Hooks, error) {
			opts := numbering.DefaultOptions()
			if err := decode(options, &opts); err != nil {
				return nil, err
			}
			n, err := numbering.New(opts)
			if err != nil {
				return nil, err
			}
			return n.Hooks(), nil
		},
	},
	"for-loop": {
		summary: "repeat scenarios tagged @loop(N)",
		build: func(options map[string]any) (*compiler.Hooks, error) {
			opts := forloop.DefaultOptions()
			if err := decode(options, &opts); err != nil {
				return nil, err
			}
			l, err := forloop.New(opts)
			if err != nil {
				return nil, err
			}
			return l.Hooks(), nil
		},
	},
	"macro": {
		summary: "define step macros with @macro(name) and call them",
		build: func(options map[string]any) (*compiler.Hooks, error) {
			if err := decode(options, &struct{}{}); err != nil {
				return nil, err
			}
			return macro.New().Hooks(), nil
		},
	},
	"scenario-outline-expander": {
		summary: "replace outlines with one scenario per examples row",
		build: func(options map[string]any) (*compiler.Hooks, error) {
			opts := expander.DefaultOptions()
			if err := decode(options, &opts); err != nil {
				return nil, err
			}
			return expander.New(opts).Hooks(), nil
		},
	},
	"filter": {
		summary: "keep scenarios matching a tag expression",
		build: func(options map[string]any) (*compiler.Hooks, error) {
			opts := filter.DefaultOptions()
			if err := decode(options, &opts); err != nil {
				return nil, err
			}
			f, err := filter.New(opts)
			if err != nil {
				return nil, err
			}
			return f.Hooks(), nil
		},
	},
}

// decode copies options onto out. Unknown keys are an error; strings are
// converted to numbers and booleans so values from the environment work.
func decode(options map[string]any, out any) error {
	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return d.Decode(options)
}

// Names lists the registered passes in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Summary returns the one-line description of a registered pass.
func Summary(name string) string {
	return registry[name].summary
}

// Build creates the pass registered under name.
func Build(name string, options map[string]any) (*compiler.Hooks, error) {
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownPass)
	}
	h, err := e.build(options)
	if err != nil {
		return nil, fmt.Errorf("pass %s: %w", name, err)
	}
	return h, nil
}
