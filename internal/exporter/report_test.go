package exporter

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gonum.org/v1/plot/vg"

	"globalalpha/pkg/contracts/domain"
)

func ptr(f float64) *float64 { return &f }

func sampleReport() *domain.ROICReport {
	return &domain.ROICReport{
		TaxRate:    0.25,
		HurdleRate: 10,
		Rows: []domain.ROICRow{
			{Entity: "BioGrowth", Revenue: 1000, Assets: 2000, NOPAT: 750, ROIC: ptr(37.5)},
			{Entity: "CryptoFlow", Revenue: 500, Assets: 0, NOPAT: 375},
			{Entity: "Terra-Grid", Revenue: 100, Assets: 1000, NOPAT: 75, ROIC: ptr(7.5)},
		},
	}
}

func TestFactWriter_Write(t *testing.T) {
	_, paths := setupTestEnv(t)
	w := NewFactWriter(paths, nil)

	table := domain.NewTable("Account_Code", "Local_Amount", "Entity", "Amount_USD")
	table.Rows = [][]string{
		{"4000", "1000", "BioGrowth", "1100.0"},
		{"9999", "abc", "BioGrowth"},
		{"5000", " 250", "BioGrowth", "250.0"},
	}

	require.NoError(t, w.Write(context.Background(), "fact.csv", table))
	first, err := os.ReadFile(paths.GetDataPath("fact.csv"))
	require.NoError(t, err)
	assert.Equal(t,
		"Account_Code,Local_Amount,Entity,Amount_USD\n4000,1000,BioGrowth,1100.0\n9999,abc,BioGrowth,\n5000,\" 250\",BioGrowth,250.0\n",
		string(first))

	// byte-identical on rewrite
	require.NoError(t, w.Write(context.Background(), "fact.csv", table))
	second, err := os.ReadFile(paths.GetDataPath("fact.csv"))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Error(t, w.Write(context.Background(), "empty.csv", &domain.Table{}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, w.Write(ctx, "cancelled.csv", table), context.Canceled)
}

func TestReportWriter_WriteCSV(t *testing.T) {
	_, paths := setupTestEnv(t)
	w := NewReportWriter(paths, nil)

	require.NoError(t, w.WriteCSV(context.Background(), "Final_ROIC_Report.csv", sampleReport()))

	content, err := os.ReadFile(paths.GetDataPath("Final_ROIC_Report.csv"))
	require.NoError(t, err)
	assert.Equal(t,
		"entity,revenue,assets,nopat,roic_%\n"+
			"BioGrowth,1000.0,2000.0,750.0,37.5\n"+
			"CryptoFlow,500.0,0.0,375.0,\n"+
			"Terra-Grid,100.0,1000.0,75.0,7.5\n",
		string(content))
}

func TestReportWriter_WriteXLSX(t *testing.T) {
	_, paths := setupTestEnv(t)
	w := NewReportWriter(paths, nil)

	require.NoError(t, w.WriteXLSX(context.Background(), "summary.xlsx", sampleReport()))

	f, err := excelize.OpenFile(paths.GetDataPath("summary.xlsx"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ReportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, domain.ReportColumns, rows[0])
	assert.Equal(t, []string{"BioGrowth", "1000", "2000", "750", "37.5"}, rows[1])
	// nil ROIC leaves a blank trailing cell, which GetRows trims
	assert.Equal(t, []string{"CryptoFlow", "500", "0", "375"}, rows[2])

	styleID, err := f.GetCellStyle(ReportSheet, "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
}

func TestRenderROICChart(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "images", "roic.png")

	opts := DefaultChartOptions(10, 72)
	require.NoError(t, RenderROICChart(target, sampleReport(), opts))

	f, err := os.Open(target)
	require.NoError(t, err)
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, int(10*72), cfg.Width)
	assert.Equal(t, int(6*72), cfg.Height)
	assert.Equal(t, 10*vg.Inch, opts.Width)
}

func TestRenderROICChart_NothingToPlot(t *testing.T) {
	report := &domain.ROICReport{Rows: []domain.ROICRow{{Entity: "CryptoFlow", Revenue: 1}}}
	err := RenderROICChart(filepath.Join(t.TempDir(), "roic.png"), report, DefaultChartOptions(10, 72))
	assert.Error(t, err)
}

func TestChartHelpers(t *testing.T) {
	c, err := ParseHexColor("#2ecc71")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x2e), c.R)
	assert.Equal(t, uint8(0xcc), c.G)
	assert.Equal(t, uint8(0x71), c.B)
	assert.Equal(t, uint8(0xff), c.A)

	_, err = ParseHexColor("red")
	assert.Error(t, err)

	assert.Equal(t, "10% Hurdle Rate", HurdleLabel(10))
	assert.Equal(t, "12.5% Hurdle Rate", HurdleLabel(12.5))
}
