package analytics

import (
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"globalalpha/internal/dataprocessing"
	"globalalpha/internal/validation"
	"globalalpha/pkg/contracts/domain"
)

// Fact table columns after NormalizeHeaders
const (
	ColumnEntity        = "entity"
	ColumnGroupCategory = "group_category"
	ColumnAmountUSD     = "amount_usd"
)

// Category filters, matched as case-insensitive substrings
const (
	RevenueCategory = "revenue"
	AssetsCategory  = "assets"
)

// NormalizeHeaders trims and lower-cases every column name of t in place
func NormalizeHeaders(t *domain.Table) {
	for i, c := range t.Columns {
		t.Columns[i] = strings.ToLower(strings.TrimSpace(c))
	}
}

// CategoryTotals sums amount_usd per entity over the rows whose group
// category contains match. Null amounts add nothing but still put the entity
// in the result, and rows without an entity are dropped.
func CategoryTotals(fact *domain.Table, match string) map[string]float64 {
	entityIdx := fact.ColumnIndex(ColumnEntity)
	categoryIdx := fact.ColumnIndex(ColumnGroupCategory)
	amountIdx := fact.ColumnIndex(ColumnAmountUSD)
	match = strings.ToLower(match)

	totals := make(map[string]float64)
	for _, row := range fact.Rows {
		entity, category := cell(row, entityIdx), cell(row, categoryIdx)
		if entity == "" || category == "" {
			continue
		}
		if !strings.Contains(strings.ToLower(category), match) {
			continue
		}
		amount, _ := dataprocessing.ParseNumeric(cell(row, amountIdx))
		totals[entity] += amount
	}
	return totals
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// BuildReport pivots a header-normalized fact table into one ROIC row per
// entity, ordered by entity name. Entities missing from one category get 0
// there. ROIC is nil when the asset base is 0.
func BuildReport(fact *domain.Table, taxRate, hurdleRate float64) (*domain.ROICReport, error) {
	if err := validation.RequireColumns("master fact table", fact.Columns,
		ColumnEntity, ColumnGroupCategory, ColumnAmountUSD); err != nil {
		return nil, err
	}

	revenue := CategoryTotals(fact, RevenueCategory)
	assets := CategoryTotals(fact, AssetsCategory)

	entities := make([]string, 0, len(revenue)+len(assets))
	for e := range revenue {
		entities = append(entities, e)
	}
	for e := range assets {
		if _, ok := revenue[e]; !ok {
			entities = append(entities, e)
		}
	}
	sort.Strings(entities)

	report := &domain.ROICReport{
		TaxRate:    taxRate,
		HurdleRate: hurdleRate,
		Rows:       make([]domain.ROICRow, 0, len(entities)),
	}
	for _, e := range entities {
		row := domain.ROICRow{
			Entity:  e,
			Revenue: revenue[e],
			Assets:  assets[e],
		}
		row.NOPAT = row.Revenue * (1 - taxRate)
		if row.Assets != 0 {
			roic := RoundROIC(row.NOPAT / row.Assets * 100)
			row.ROIC = &roic
		}
		report.Rows = append(report.Rows, row)
	}
	return report, nil
}

// RoundROIC rounds v to two decimals. v is scaled by 100 in float64 first
// and ties go to the even neighbour, so 0.125 becomes 0.12.
func RoundROIC(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v * 100).RoundBank(0).Shift(-2).InexactFloat64()
}
