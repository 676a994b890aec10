package cmd

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/gpc/internal/config"
)

func runShow(t *testing.T, cfg *config.Config, path string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunShow(context.Background(), &buf, cfg, path))
	return buf.String()
}

func TestShow_PrintsCompiledDocument(t *testing.T) {
	inTempDir(t)
	writeFeature(t, "features/login.feature", loginFeature)

	out := runShow(t, config.Default(), "features/login.feature")

	assert.Contains(t, out, "features/login.feature  (1 documents)")
	assert.Contains(t, out, "  Scenario: Log in as admin\n    Given the user admin\n")
	assert.NotContains(t, out, "Remember me")
}

func TestShow_WritesNothing(t *testing.T) {
	inTempDir(t)
	writeFeature(t, "features/login.feature", loginFeature)

	runShow(t, config.Default(), "features/login.feature")

	_, err := os.Stat("dist")
	assert.True(t, os.IsNotExist(err))
}

func TestShow_NoPasses(t *testing.T) {
	inTempDir(t)
	writeFeature(t, "one.feature", "Feature: One\n\n  Scenario: S\n    Given x\n")

	out := runShow(t, testConfig(), "one.feature")
	assert.Contains(t, out, "one.feature  (1 documents)\n\nFeature: One\n")
}

func TestShow_MissingFile(t *testing.T) {
	inTempDir(t)
	err := RunShow(context.Background(), &bytes.Buffer{}, testConfig(), "nope.feature")
	assert.ErrorContains(t, err, "reading nope.feature")
}

func TestShow_ReplacerOptionFromConfigFile(t *testing.T) {
	inTempDir(t)
	writeFeature(t, config.FileName, `source: "*.feature"
base: .
destination: dist
passes:
  - name: replacer
    options:
      userName: Bob
`)
	writeFeature(t, "login.feature", "Feature: Login\n\n  Scenario: S\n    Given ${userName} logs in\n")

	cfg, err := config.Load("")
	require.NoError(t, err)

	out := runShow(t, cfg, "login.feature")
	assert.Contains(t, out, "    Given Bob logs in\n")
}
