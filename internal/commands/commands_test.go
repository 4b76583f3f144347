package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/recon/internal/commands"
	"github.com/cleared-dev/recon/internal/config"
	"github.com/cleared-dev/recon/internal/importer"
)

const testdata = "../../testdata"

func runRecon(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// copyTestdata copies the sample exports into a fresh directory.
func copyTestdata(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"ing.csv", "ofx.csv", "mm.csv"} {
		data, err := os.ReadFile(filepath.Join(testdata, name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}
	return dir
}

func TestRun_Defaults(t *testing.T) {
	out, err := runRecon(t, "run", "--base-dir", testdata)
	require.NoError(t, err)

	assert.Contains(t, out, "== ing: ing vs app/Accounts ==")
	assert.Contains(t, out, "4 mismatched amounts")
	assert.Contains(t, out, "Albert Heijn")
	assert.Contains(t, out, "Restaurant")
	assert.Contains(t, out, "Possible mistyped amounts")
	assert.NotContains(t, out, "GitHub", "matched rows are not reported")

	assert.Contains(t, out, "== amex: amex vs app/AMEX FB card ==")
	assert.Contains(t, out, "No mismatches.")
}

func TestRun_ConfigFile(t *testing.T) {
	dir := copyTestdata(t)
	cfg := config.Default(dir)
	cfg.Reconciliations = cfg.Reconciliations[:1]
	cfg.Similarity = 0
	path := filepath.Join(dir, config.FileName)
	require.NoError(t, config.Save(path, cfg))

	out, err := runRecon(t, "run", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "4 mismatched amounts")
	assert.NotContains(t, out, "amex")
	assert.NotContains(t, out, "Possible mistyped amounts")
}

func TestRun_MissingExplicitConfig(t *testing.T) {
	_, err := runRecon(t, "run", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_BadDateAbortsWithoutOutput(t *testing.T) {
	dir := copyTestdata(t)
	bad := "Datum;Naam / Omschrijving;Bedrag (EUR)\n20230230;x;1,00\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ing.csv"), []byte(bad), 0o644))

	out, err := runRecon(t, "run", "--base-dir", dir)
	var fe *importer.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Empty(t, out)
}

func TestRun_MissingSourceFile(t *testing.T) {
	dir := copyTestdata(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "ofx.csv")))

	out, err := runRecon(t, "run", "--base-dir", dir)
	var pe *importer.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, err.Error(), "source amex")
	assert.Empty(t, out)
}

func TestRun_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default(dir)
	cfg.Sources[0].Dialect = "rabobank"
	path := filepath.Join(dir, config.FileName)
	require.NoError(t, config.Save(path, cfg))

	_, err := runRecon(t, "run", "--config", path)
	assert.ErrorContains(t, err, `unknown dialect "rabobank"`)
}

func TestDiff_Account(t *testing.T) {
	out, err := runRecon(t, "diff",
		filepath.Join(testdata, "ing.csv"), filepath.Join(testdata, "mm.csv"),
		"--account", "Accounts")
	require.NoError(t, err)
	assert.Contains(t, out, "== diff: bank vs app/Accounts ==")
	assert.Contains(t, out, "4 mismatched amounts")
}

func TestDiff_WholeApp(t *testing.T) {
	out, err := runRecon(t, "diff", filepath.Join(testdata, "ing.csv"), filepath.Join(testdata, "mm.csv"))
	require.NoError(t, err)
	assert.Contains(t, out, "6 mismatched amounts")
	assert.Contains(t, out, "Bol.com")
}

func TestDiff_AmexDialect(t *testing.T) {
	out, err := runRecon(t, "diff",
		filepath.Join(testdata, "ofx.csv"), filepath.Join(testdata, "mm.csv"),
		"--bank-dialect", "amex", "--account", "AMEX FB card")
	require.NoError(t, err)
	assert.Contains(t, out, "No mismatches.")
}

func TestDiff_UnknownDialect(t *testing.T) {
	_, err := runRecon(t, "diff", "a.csv", "b.csv", "--bank-dialect", "rabobank")
	assert.ErrorContains(t, err, `unknown bank dialect "rabobank"`)
}

func TestDiff_RequiresTwoFiles(t *testing.T) {
	_, err := runRecon(t, "diff", "a.csv")
	assert.Error(t, err)
}

func TestInit_WritesConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "finance")
	out, err := runRecon(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.BaseDir)
	assert.Len(t, cfg.Reconciliations, 2)
}

func TestInit_BaseDir(t *testing.T) {
	dir := t.TempDir()
	_, err := runRecon(t, "init", dir, "--base-dir", "/data/exports")
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "/data/exports", cfg.BaseDir)
}

func TestInit_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	_, err := runRecon(t, "init", dir)
	require.NoError(t, err)

	_, err = runRecon(t, "init", dir)
	assert.ErrorContains(t, err, "already exists")

	_, err = runRecon(t, "init", dir, "--force")
	assert.NoError(t, err)
}

func TestVersion(t *testing.T) {
	out, err := runRecon(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "dev")
}
