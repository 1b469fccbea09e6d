package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tsawler/finscan"
	"github.com/tsawler/finscan/config"
	"github.com/tsawler/finscan/model"
)

const ocrText = `XYZ Limited
Statement of Profit and Loss for the year ended 31 March 2024
Sales    12,500    10,250
Other income    300    275
` + "\f" + `Notes to accounts
Cash Flow Statement
Net cash from operating activities    4,100.25    3,900`

// isolate points config lookups at an empty temp config and clears the
// environment overrides.
func isolate(t *testing.T) string {
	t.Helper()
	for _, key := range []string{config.EnvDPI, config.EnvWorkers, config.EnvLanguage, config.EnvFormat} {
		t.Setenv(key, "")
	}
	path := filepath.Join(t.TempDir(), "finscan.yaml")
	require.NoError(t, config.WriteDefault(path))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCmd(t *testing.T) {
	cmd := NewRootCmd()
	assert.Equal(t, "finscan", cmd.Use)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"convert", "extract", "init", "version"} {
		assert.Contains(t, names, want)
	}

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
}

func TestVersionCmd(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "finscan version")
	assert.Contains(t, out, "commit:")
}

func TestParsePageSpec(t *testing.T) {
	tests := []struct {
		spec    string
		want    []pageRange
		wantErr bool
	}{
		{"1", []pageRange{{1, 1}}, false},
		{"1,3-5", []pageRange{{1, 1}, {3, 5}}, false},
		{" 2 , 4 - 5 ", []pageRange{{2, 2}, {4, 5}}, false},
		{"3-3", []pageRange{{3, 3}}, false},
		{"1-2000000000", []pageRange{{1, 2000000000}}, false},
		{"0", nil, true},
		{"5-2", nil, true},
		{"a-b", nil, true},
		{",", nil, true},
	}
	for _, tt := range tests {
		got, err := parsePageSpec(tt.spec)
		if tt.wantErr {
			assert.Error(t, err, tt.spec)
			continue
		}
		require.NoError(t, err, tt.spec)
		assert.Equal(t, tt.want, got, tt.spec)
	}
}

func TestExtractCmd_StdinJSON(t *testing.T) {
	cfg := isolate(t)

	out, _, err := run(t, ocrText, "extract", "-c", cfg)
	require.NoError(t, err)

	var doc model.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 2, doc.Pages)
	require.Len(t, doc.Tables, 2)
	assert.Equal(t, "Statement of Profit and Loss for the year ended 31 March 2024", doc.Tables[0].Name)
	assert.Equal(t, 1, doc.Tables[0].Page)
	assert.Equal(t, []float64{12500, 10250}, doc.Tables[0].Data[0].Values)
	assert.Equal(t, 2, doc.Tables[1].Page)
	assert.Equal(t, []float64{4100.25, 3900}, doc.Tables[1].Data[0].Values)
}

func TestExtractCmd_FileMarkdown(t *testing.T) {
	cfg := isolate(t)
	input := filepath.Join(t.TempDir(), "ocr.txt")
	require.NoError(t, os.WriteFile(input, []byte(ocrText), 0o600))

	out, _, err := run(t, "", "extract", input, "-c", cfg, "--format", "markdown", "--locale", "en-US")
	require.NoError(t, err)
	assert.Contains(t, out, "# ocr.txt")
	assert.Contains(t, out, "## Cash Flow Statement")
	assert.Contains(t, out, "4,100.25")
}

func TestExtractCmd_CustomKeywords(t *testing.T) {
	cfg := isolate(t)

	out, _, err := run(t, "Schedule of fixed assets\nLand    500\n", "extract", "-c", cfg, "--keywords", "Schedule")
	require.NoError(t, err)

	var doc model.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Tables, 1)
	assert.Equal(t, "Schedule of fixed assets", doc.Tables[0].Name)
}

func TestExtractCmd_UnknownDetector(t *testing.T) {
	cfg := isolate(t)

	_, _, err := run(t, ocrText, "extract", "-c", cfg, "--detector", "layout")
	assert.ErrorIs(t, err, config.ErrUnknownDetector)
}

func TestExtractCmd_WorkbookNeedsOutput(t *testing.T) {
	cfg := isolate(t)

	_, _, err := run(t, ocrText, "extract", "-c", cfg, "--format", "xlsx")
	assert.Error(t, err)
}

func TestConvertCmd_DefaultOutput(t *testing.T) {
	cfg := isolate(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "fy24.txt")
	require.NoError(t, os.WriteFile(input, []byte(ocrText), 0o600))

	out, _, err := run(t, "", "convert", input, "-c", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 2 tables (3 rows) from 2 pages")

	f, err := excelize.OpenFile(filepath.Join(dir, "fy24.xlsx"))
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, f.GetSheetList(), 3)
}

func TestConvertCmd_OutputExtensionPicksFormat(t *testing.T) {
	cfg := isolate(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "fy24.txt")
	require.NoError(t, os.WriteFile(input, []byte(ocrText), 0o600))
	output := filepath.Join(dir, "out", "fy24.csv")

	_, _, err := run(t, "", "convert", input, "-c", cfg, "-o", output, "--pages", "2")
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "page,table,row,description,column,value", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2,Cash Flow Statement,1,"))
}

func TestConvertCmd_Errors(t *testing.T) {
	cfg := isolate(t)
	input := filepath.Join(t.TempDir(), "fy24.txt")
	require.NoError(t, os.WriteFile(input, []byte(ocrText), 0o600))

	_, _, err := run(t, "", "convert", input, "-c", cfg, "--dpi", "10")
	assert.ErrorIs(t, err, config.ErrInvalidDPI)

	_, _, err = run(t, "", "convert", input, "-c", cfg, "--source", "camera")
	assert.ErrorIs(t, err, config.ErrUnknownSource)

	_, _, err = run(t, "", "convert", input, "-c", cfg, "--pages", "4-2")
	assert.Error(t, err)

	_, _, err = run(t, "", "convert", input, "-c", cfg, "--pages", "9")
	assert.ErrorIs(t, err, finscan.ErrInvalidPage)

	_, _, err = run(t, "", "convert", input, "-c", cfg, "--pages", "1-2000000000")
	assert.ErrorIs(t, err, finscan.ErrInvalidPage)

	_, _, err = run(t, "", "convert", "-c", cfg)
	assert.Error(t, err)

	_, _, err = run(t, "", "convert", input, "-c", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, config.ErrConfigNotFound)
}

func TestConvertCmd_EnvOverridesFile(t *testing.T) {
	cfg := isolate(t)
	input := filepath.Join(t.TempDir(), "fy24.txt")
	require.NoError(t, os.WriteFile(input, []byte(ocrText), 0o600))

	t.Setenv(config.EnvFormat, "json")
	out, _, err := run(t, "", "convert", input, "-c", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "fy24.json")

	_, err = os.Stat(strings.TrimSuffix(input, ".txt") + ".json")
	assert.NoError(t, err)
}

func TestInitCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "finscan.yaml")

	out, _, err := run(t, "", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())

	_, _, err = run(t, "", "init", "-o", path)
	assert.ErrorIs(t, err, config.ErrConfigExists)

	_, _, err = run(t, "", "init", "-o", path, "--force")
	assert.NoError(t, err)
}
