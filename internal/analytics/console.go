package analytics

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/Rhymond/go-money"
	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"

	"globalalpha/internal/exporter"
	"globalalpha/pkg/contracts/domain"
)

const (
	bannerTitle = "GLOBAL ALPHA PORTFOLIO STRATEGY REPORT"
	bannerWidth = 65
)

// FormatUSD renders an amount as US dollars, e.g. $1,250.00
func FormatUSD(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return exporter.FormatFloat(amount)
	}
	cur := money.GetCurrency(money.USD)
	cents := decimal.NewFromFloat(amount).Shift(int32(cur.Fraction)).Round(0)
	return money.New(cents.IntPart(), money.USD).Display()
}

// Summary describes the spread of ROIC across the portfolio
type Summary struct {
	Entities    int
	AboveHurdle int
	Mean        float64
	Median      float64
	Min         float64
	Max         float64
}

// Summarize computes the ROIC spread over the rows that have one. It reports
// false when no row has a ROIC.
func Summarize(report *domain.ROICReport) (Summary, bool) {
	rows := report.Plottable()
	if len(rows) == 0 {
		return Summary{}, false
	}

	data := make(stats.Float64Data, len(rows))
	s := Summary{Entities: len(rows)}
	for i, row := range rows {
		data[i] = *row.ROIC
		if row.MeetsHurdle(report.HurdleRate) {
			s.AboveHurdle++
		}
	}

	// errors only occur on empty input
	s.Mean, _ = data.Mean()
	s.Median, _ = data.Median()
	s.Min, _ = data.Min()
	s.Max, _ = data.Max()
	return s, true
}

// PrintReport writes the report table under the strategy banner, followed
// by the portfolio summary line
func PrintReport(w io.Writer, report *domain.ROICReport) {
	rule := strings.Repeat("=", bannerWidth)
	pad := (bannerWidth - len(bannerTitle)) / 2

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, strings.Repeat(" ", pad)+bannerTitle)
	fmt.Fprintln(w, rule)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(domain.ReportColumns, "\t")+"\t")
	for _, row := range report.Rows {
		roic := "NaN"
		if row.ROIC != nil {
			roic = fmt.Sprintf("%.2f", *row.ROIC)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n",
			row.Entity, FormatUSD(row.Revenue), FormatUSD(row.Assets), FormatUSD(row.NOPAT), roic)
	}
	tw.Flush()
	fmt.Fprintln(w, rule)

	if s, ok := Summarize(report); ok {
		fmt.Fprintf(w, "ROIC mean %.2f%% | median %.2f%% | min %.2f%% | max %.2f%% | %d/%d at or above %s\n",
			s.Mean, s.Median, s.Min, s.Max, s.AboveHurdle, s.Entities, exporter.HurdleLabel(report.HurdleRate))
	}
}
