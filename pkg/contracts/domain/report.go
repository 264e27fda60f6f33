package domain

// Column headers of the ROIC report
const (
	ReportColumnEntity  = "entity"
	ReportColumnRevenue = "revenue"
	ReportColumnAssets  = "assets"
	ReportColumnNOPAT   = "nopat"
	ReportColumnROIC    = "roic_%"
)

// ReportColumns lists the ROIC report headers in output order
var ReportColumns = []string{
	ReportColumnEntity,
	ReportColumnRevenue,
	ReportColumnAssets,
	ReportColumnNOPAT,
	ReportColumnROIC,
}

// ROICRow is one entity line of the ROIC report. ROIC is nil when the entity
// has no asset base.
type ROICRow struct {
	Entity  string   `json:"entity" validate:"required"`
	Revenue float64  `json:"revenue"`
	Assets  float64  `json:"assets"`
	NOPAT   float64  `json:"nopat"`
	ROIC    *float64 `json:"roic_pct,omitempty"`
}

// MeetsHurdle reports whether the row has a ROIC at or above hurdle percent
func (r ROICRow) MeetsHurdle(hurdle float64) bool {
	return r.ROIC != nil && *r.ROIC >= hurdle
}

// ROICReport is the per-entity ROIC table, ordered by entity name
type ROICReport struct {
	TaxRate    float64   `json:"tax_rate"`
	HurdleRate float64   `json:"hurdle_rate"`
	Rows       []ROICRow `json:"rows"`
}

// Plottable returns the rows that carry a ROIC value
func (r *ROICReport) Plottable() []ROICRow {
	out := make([]ROICRow, 0, len(r.Rows))
	for _, row := range r.Rows {
		if row.ROIC != nil {
			out = append(out, row)
		}
	}
	return out
}
