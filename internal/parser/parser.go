// Package parser reads Gherkin feature files into ast Documents.
//
// Parsing is delegated to the official cucumber Gherkin parser; Transform
// converts its message tree into the ast model the compiler rewrites.
package parser

import (
	"bytes"
	"fmt"
	"strconv"

	gherkin "github.com/cucumber/gherkin/go/v26"

	"github.com/chriserin/gpc/internal/ast"
)

// Parse parses the content of a .feature file. The filename is recorded as the
// document URI. A file with no Feature yields a Document with a nil Feature.
func Parse(filename string, content []byte) (*ast.Document, error) {
	gd, err := gherkin.ParseGherkinDocument(bytes.NewReader(content), newIDs())
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	return Transform(gd, filename), nil
}

// newIDs returns an id generator for the parser. The ids never reach the ast,
// they only need to be unique within one parse.
func newIDs() func() string {
	next := 0
	return func() string {
		id := strconv.Itoa(next)
		next++
		return id
	}
}
