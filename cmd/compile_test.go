package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/gpc/internal/config"
	"github.com/chriserin/gpc/internal/db"
	"github.com/chriserin/gpc/internal/passes"
)

const loginFeature = `Feature: Login

  @wip
  Scenario: Remember me
    Given a returning user

  Scenario Outline: Log in as <user>
    Given the user <user>

    Examples:
      | user  |
      | admin |
      | guest |
`

func writeFeature(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func testConfig(passes ...config.PassConfig) *config.Config {
	cfg := config.Default()
	cfg.Passes = passes
	return cfg
}

func runCompile(t *testing.T, cfg *config.Config) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunCompile(context.Background(), &buf, cfg))
	return buf.String()
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestCompile_DefaultPasses(t *testing.T) {
	inTempDir(t)
	writeFeature(t, "features/auth/login.feature", loginFeature)

	out := runCompile(t, config.Default())

	assert.Equal(t, `Feature: Login

  Scenario: Log in as admin
    Given the user admin

  Scenario: Log in as guest
    Given the user guest
`, readFile(t, "dist/auth/login.feature"))
	assert.Contains(t, out, "out   "+filepath.Join("dist", "auth", "login.feature"))
	assert.Contains(t, out, "compiled 1 files into 1 outputs")
}

func TestCompile_NoPassesCopiesCanonicalText(t *testing.T) {
	inTempDir(t)
	writeFeature(t, "features/login.feature", loginFeature)

	runCompile(t, testConfig())

	assert.Equal(t, loginFeature, readFile(t, "dist/login.feature"))
}

func TestCompile_IndentOption(t *testing.T) {
	inTempDir(t)
	writeFeature(t, "features/login.feature", "Feature: A\n\n  Scenario: B\n    Given c\n")

	cfg := testConfig()
	cfg.Format.Indent = 4
	runCompile(t, cfg)

	assert.Equal(t, "Feature: A\n\n    Scenario: B\n        Given c\n", readFile(t, "dist/login.feature"))
}

func TestCompile_EmptyFileWritesNothing(t *testing.T) {
	inTempDir(t)
	writeFeature(t, "features/empty.feature", "# nothing here\n")

	out := runCompile(t, testConfig())

	_, err := os.Stat("dist/empty.feature")
	assert.True(t, os.IsNotExist(err))
	assert.Contains(t, out, "none  "+filepath.Join("features", "empty.feature"))
	assert.Contains(t, out, "compiled 1 files into 0 outputs")
}

func TestCompile_Clean(t *testing.T) {
	inTempDir(t)
	writeFeature(t, "features/login.feature", loginFeature)
	writeFeature(t, "dist/stale.feature", "Feature: Stale\n")

	cfg := testConfig()
	runCompile(t, cfg)
	_, err := os.Stat("dist/stale.feature")
	require.NoError(t, err)

	cfg.Clean = true
	runCompile(t, cfg)
	_, err = os.Stat("dist/stale.feature")
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat("dist/login.feature")
	assert.NoError(t, err)
}

func TestCompile_UnknownPassFailsBeforeReading(t *testing.T) {
	inTempDir(t)
	writeFeature(t, "features/broken.feature", "not gherkin at all\n  Scenario")

	var buf bytes.Buffer
	err := RunCompile(context.Background(), &buf, testConfig(config.PassConfig{Name: "nope"}))

	assert.ErrorIs(t, err, passes.ErrUnknownPass)
	assert.Empty(t, buf.String())
}

func TestCompile_ParseError(t *testing.T) {
	inTempDir(t)
	writeFeature(t, "features/broken.feature", "Feature: A\n  Scenario: S\n    Given x\n    this is not a step\n")

	var buf bytes.Buffer
	err := RunCompile(context.Background(), &buf, testConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), filepath.Join("features", "broken.feature"))
}

func TestCompile_HookErrorNamesFile(t *testing.T) {
	inTempDir(t)
	writeFeature(t, "features/loop.feature", "Feature: A\n\n  @loop(99)\n  Scenario: S\n    Given x\n")

	var buf bytes.Buffer
	err := RunCompile(context.Background(), &buf, testConfig(config.PassConfig{Name: "for-loop"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compiling "+filepath.Join("features", "loop.feature"))
	assert.Contains(t, err.Error(), "pass for-loop")
}

func TestCompile_CancelledContext(t *testing.T) {
	inTempDir(t)
	writeFeature(t, "features/login.feature", loginFeature)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RunCompile(ctx, &bytes.Buffer{}, testConfig())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompile_Record(t *testing.T) {
	inTempDir(t)
	writeFeature(t, "features/a.feature", loginFeature)
	writeFeature(t, "features/b.feature", "Feature: B\n\n  Scenario: S\n    Given x\n")

	cfg := config.Default()
	cfg.Record = true
	out := runCompile(t, cfg)
	assert.Contains(t, out, "run   ")

	sqlDB, err := db.Open(dbPath)
	require.NoError(t, err)
	defer sqlDB.Close()

	runs, err := db.ListRuns(sqlDB, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, []string{"filter", "macro", "scenario-outline-expander"}, runs[0].Passes)
	assert.Equal(t, 2, runs[0].Inputs)
	assert.Equal(t, 2, runs[0].Outputs)
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.WriteFile(config.FileName, []byte("source: a/*.feature\ndestination: out\n"), 0o644))

	cmd := compileCmd
	t.Cleanup(func() {
		for _, name := range []string{"destination", "clean"} {
			f := cmd.Flags().Lookup(name)
			f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})
	require.NoError(t, cmd.Flags().Set("destination", "elsewhere"))
	require.NoError(t, cmd.Flags().Set("clean", "true"))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "a/*.feature", cfg.Source)
	assert.Equal(t, "elsewhere", cfg.Destination)
	assert.True(t, cfg.Clean)
	assert.False(t, cfg.Record)
}
