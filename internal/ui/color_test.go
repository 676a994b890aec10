package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/chriserin/gpc/internal/db"
)

func TestLines(t *testing.T) {
	var buf bytes.Buffer
	OutLine(&buf, "dist/a.feature")
	NoneLine(&buf, "features/b.feature")
	SummaryLine(&buf, 2, 1)

	assert.Equal(t, "out   dist/a.feature\nnone  features/b.feature\ncompiled 2 files into 1 outputs\n", buf.String())
}

func TestRunRow(t *testing.T) {
	var buf bytes.Buffer
	RunRow(&buf, db.Run{ID: "abc", StartedAt: time.Now(), Inputs: 2, Outputs: 3}, 5)

	assert.Contains(t, buf.String(), "abc    ")
	assert.Contains(t, buf.String(), "2 -> 3  -\n")
}

func TestShowGherkin_KeepsText(t *testing.T) {
	text := "@smoke\nFeature: Login\n\n  Scenario: In\n    Given x\n      | a |\n"
	var buf bytes.Buffer
	ShowGherkin(&buf, text)

	assert.Equal(t, text, buf.String())
}
