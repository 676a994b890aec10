package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/gpc/internal/config"
)

func runHistory(t *testing.T, limit int, outputs bool) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunHistory(&buf, limit, outputs))
	return buf.String()
}

func TestHistory_RequiresLedger(t *testing.T) {
	inTempDir(t)
	err := RunHistory(&bytes.Buffer{}, 0, false)
	assert.ErrorContains(t, err, "gpc init")
}

func TestHistory_Empty(t *testing.T) {
	inTempDir(t)
	runInit(t)

	assert.Equal(t, "no runs recorded\n", runHistory(t, 0, false))
}

func TestHistory_ListsRecordedRuns(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "features/login.feature", loginFeature)

	cfg := config.Default()
	cfg.Record = true
	runCompile(t, cfg)
	runCompile(t, cfg)

	out := runHistory(t, 0, false)
	lines := bytes.Split(bytes.TrimSpace([]byte(out)), []byte("\n"))
	assert.Len(t, lines, 2)
	assert.Contains(t, out, "1 -> 1  filter,macro,scenario-outline-expander")

	assert.Len(t, bytes.Split(bytes.TrimSpace([]byte(runHistory(t, 1, false))), []byte("\n")), 1)
}

func TestHistory_Outputs(t *testing.T) {
	inTempDir(t)
	writeFeature(t, "features/login.feature", loginFeature)

	cfg := testConfig()
	cfg.Record = true
	runCompile(t, cfg)

	out := runHistory(t, 0, true)
	assert.Contains(t, out, "  out   dist/login.feature\n")
	assert.Contains(t, out, "1 -> 1  -\n")
}
