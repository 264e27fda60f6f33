package analytics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"globalalpha/pkg/contracts/domain"
)

func ptr(f float64) *float64 { return &f }

func sampleReport() *domain.ROICReport {
	return &domain.ROICReport{
		TaxRate:    0.25,
		HurdleRate: 10,
		Rows: []domain.ROICRow{
			{Entity: "BioGrowth", Revenue: 1000, Assets: 2000, NOPAT: 750, ROIC: ptr(37.5)},
			{Entity: "CryptoFlow", Revenue: 500, NOPAT: 375},
			{Entity: "Omni-Retail", Revenue: 1200, Assets: 12000, NOPAT: 900, ROIC: ptr(7.5)},
			{Entity: "Terra-Grid", Revenue: 400, Assets: 1500, NOPAT: 300, ROIC: ptr(20)},
		},
	}
}

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$1,250.00", FormatUSD(1250))
	assert.Equal(t, "$0.00", FormatUSD(0))
	assert.Equal(t, "$1,234,567.89", FormatUSD(1234567.891))
}

func TestSummarize(t *testing.T) {
	s, ok := Summarize(sampleReport())
	require.True(t, ok)

	assert.Equal(t, 3, s.Entities)
	assert.Equal(t, 2, s.AboveHurdle)
	assert.InDelta(t, 65.0/3, s.Mean, 1e-9)
	assert.Equal(t, 20.0, s.Median)
	assert.Equal(t, 7.5, s.Min)
	assert.Equal(t, 37.5, s.Max)

	_, ok = Summarize(&domain.ROICReport{Rows: []domain.ROICRow{{Entity: "A"}}})
	assert.False(t, ok)
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	PrintReport(&buf, sampleReport())
	out := buf.String()

	rule := strings.Repeat("=", 65)
	assert.Equal(t, 3, strings.Count(out, rule))
	assert.Contains(t, out, "GLOBAL ALPHA PORTFOLIO STRATEGY REPORT")
	assert.Contains(t, out, "roic_%")
	assert.Contains(t, out, "$2,000.00")
	assert.Contains(t, out, "37.50")
	assert.Contains(t, out, "NaN")
	assert.Contains(t, out, "2/3 at or above 10% Hurdle Rate")
}
