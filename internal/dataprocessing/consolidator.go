package dataprocessing

import (
	"context"
	"log/slog"

	"globalalpha/internal/exporter"
	"globalalpha/internal/validation"
	"globalalpha/pkg/contracts/domain"
)

// ConsolidationStats summarizes the joins of a consolidation run
type ConsolidationStats struct {
	Entities            int
	Rows                int
	UnmatchedAccounts   int
	UnmatchedCurrencies int
	NonNumericAmounts   int
	MissingFXRates      int
}

// LogValue renders the stats as a log group
func (s ConsolidationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("entities", s.Entities),
		slog.Int("rows", s.Rows),
		slog.Int("unmatched_accounts", s.UnmatchedAccounts),
		slog.Int("unmatched_currencies", s.UnmatchedCurrencies),
		slog.Int("non_numeric_amounts", s.NonNumericAmounts),
		slog.Int("missing_fx_rates", s.MissingFXRates),
	)
}

// Consolidator merges entity extracts into the master fact table
type Consolidator struct {
	countries map[string]string
	logger    *slog.Logger
}

// NewConsolidator creates a consolidator using the entity to country table
func NewConsolidator(countries map[string]string, logger *slog.Logger) *Consolidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Consolidator{
		countries: countries,
		logger:    logger.With("component", "consolidator"),
	}
}

// Consolidate stacks the extracts, maps their accounts, attaches the FX rate
// of each entity's country and computes Amount_USD. Unmatched joins and
// non-numeric amounts leave nulls instead of failing the row.
func (c *Consolidator) Consolidate(ctx context.Context, extracts []LoadedExtract, ref *ReferenceData) (*domain.Table, ConsolidationStats, error) {
	var stats ConsolidationStats
	stats.Entities = len(extracts)

	tables := make([]*domain.Table, len(extracts))
	for i, ex := range extracts {
		tables[i] = ex.Table
	}
	raw := Concat(tables...)
	if err := validation.RequireColumns("raw extracts", raw.Columns,
		domain.ColumnAccountCode, domain.ColumnLocalAmount); err != nil {
		return nil, stats, err
	}

	raw.SetColumn(domain.ColumnAccountCode, normalizeCodes(raw.Column(domain.ColumnAccountCode)))
	mapping := ref.Mapping.Clone()
	mapping.SetColumn(domain.ColumnLocalAccountCode, normalizeCodes(mapping.Column(domain.ColumnLocalAccountCode)))

	master, accountMatches, err := LeftJoin(raw, mapping,
		[]string{domain.ColumnEntity, domain.ColumnAccountCode},
		[]string{domain.ColumnEntityName, domain.ColumnLocalAccountCode})
	if err != nil {
		return nil, stats, err
	}
	stats.UnmatchedAccounts = countZero(accountMatches)

	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	entities := master.Column(domain.ColumnEntity)
	countries := make([]string, len(entities))
	for i, e := range entities {
		countries[i] = c.countries[e]
	}
	master.SetColumn(domain.ColumnCountry, countries)

	master, currencyMatches, err := LeftJoin(master, ref.Currencies,
		[]string{domain.ColumnCountry}, []string{domain.ColumnCountry})
	if err != nil {
		return nil, stats, err
	}
	stats.UnmatchedCurrencies = countZero(currencyMatches)

	if err := validation.RequireColumns("fact table", master.Columns,
		domain.ColumnLocalAmount, domain.ColumnFXRateToUSD); err != nil {
		return nil, stats, err
	}

	amounts := master.Column(domain.ColumnLocalAmount)
	rates := master.Column(domain.ColumnFXRateToUSD)
	usd := make([]string, len(amounts))
	for i := range amounts {
		fx, ok := ParseNumeric(rates[i])
		if !ok {
			fx = 1.0
			stats.MissingFXRates++
		}
		amount, ok := ParseNumeric(amounts[i])
		if !ok {
			stats.NonNumericAmounts++
			continue
		}
		usd[i] = exporter.FormatFloat(amount * fx)
	}
	master.SetColumn(domain.ColumnAmountUSD, usd)
	stats.Rows = master.Len()

	c.logger.InfoContext(ctx, "Consolidation complete", slog.Any("stats", stats))
	return master, stats, nil
}

func normalizeCodes(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = NormalizeCode(v)
	}
	return out
}

func countZero(counts []int) int {
	n := 0
	for _, c := range counts {
		if c == 0 {
			n++
		}
	}
	return n
}
