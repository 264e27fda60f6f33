package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"globalalpha/internal/infrastructure"
)

func setupBase(t *testing.T) string {
	t.Helper()
	infrastructure.ResetLoggerForTesting()
	t.Cleanup(infrastructure.ResetLoggerForTesting)
	t.Setenv("ALPHA_LOGGING_OUTPUT", "file")

	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "data"), 0755))
	return base
}

func writeMapping(t *testing.T, path string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Account_Mapping"))
	_, err := f.NewSheet("Currency_Master")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Account_Mapping", "A1", &[]interface{}{"Entity_Name", "Local_Account_Code", "Group_Category"}))
	require.NoError(t, f.SetSheetRow("Currency_Master", "A1", &[]interface{}{"Country", "FX_Rate_to_USD"}))
	require.NoError(t, f.SaveAs(path))
}

func TestRun_BadFlag(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 2, run([]string{"-nope"}, &out))
}

func TestRun_MissingMappingWorkbook(t *testing.T) {
	base := setupBase(t)

	var out bytes.Buffer
	code := run([]string{"-base", base}, &out)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "--- STARTING GLOBAL ALPHA ETL PIPELINE ---")
	assert.Contains(t, out.String(), "❌ Error: Could not find mapping file in "+filepath.Join(base, "data"))
}

func TestRun_NoExtracts(t *testing.T) {
	base := setupBase(t)
	writeMapping(t, filepath.Join(base, "data", "dim_Mapping_Logic.xlsx.xlsx"))

	var out bytes.Buffer
	code := run([]string{"-base", base}, &out)

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "✅ Mapping Logic Loaded.")
	assert.NoFileExists(t, filepath.Join(base, "data", "Master_Consolidated_Fact.csv"))
	assert.DirExists(t, filepath.Join(base, "logs"))
}

func TestRun_ConfigFile(t *testing.T) {
	base := setupBase(t)
	configPath := filepath.Join(base, "alpha.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("paths:\n  data_dir: inputs\n"), 0644))

	var out bytes.Buffer
	code := run([]string{"-base", base, "-config", configPath}, &out)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "Could not find mapping file in "+filepath.Join(base, "inputs"))
}
