package exporter

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"globalalpha/internal/config"
	apperrors "globalalpha/internal/errors"
	"globalalpha/pkg/contracts/domain"
)

// ChartOptions controls the ROIC bar chart
type ChartOptions struct {
	Title      string
	XLabel     string
	YLabel     string
	HurdleRate float64
	DPI        int
	Width      vg.Length
	Height     vg.Length
	AboveColor color.Color
	BelowColor color.Color
}

// DefaultChartOptions returns the executive chart layout for a hurdle rate
// and resolution
func DefaultChartOptions(hurdle float64, dpi int) ChartOptions {
	above, _ := ParseHexColor(config.ColorAboveHurdle)
	below, _ := ParseHexColor(config.ColorBelowHurdle)
	return ChartOptions{
		Title:      "Global Subsidiary Performance: ROIC Benchmarking",
		XLabel:     "entity",
		YLabel:     "ROIC %",
		HurdleRate: hurdle,
		DPI:        dpi,
		Width:      10 * vg.Inch,
		Height:     6 * vg.Inch,
		AboveColor: above,
		BelowColor: below,
	}
}

// HurdleLabel is the legend entry of the hurdle line
func HurdleLabel(hurdle float64) string {
	return strconv.FormatFloat(hurdle, 'f', -1, 64) + "% Hurdle Rate"
}

// RenderROICChart draws one bar per entity that has a ROIC, coloured by the
// hurdle, with a dashed hurdle line, and writes it as PNG to filePath.
func RenderROICChart(filePath string, report *domain.ROICReport, opts ChartOptions) error {
	rows := report.Plottable()
	if len(rows) == 0 {
		return apperrors.NewValidationError("no entity has a ROIC value to plot")
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Title.TextStyle.Font.Weight = xfont.WeightBold
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	p.Add(grid)

	barWidth := (opts.Width - vg.Inch) * 0.8 / vg.Length(len(rows))
	names := make([]string, len(rows))
	minY, maxY := 0.0, 0.0
	for i, row := range rows {
		bars, err := plotter.NewBarChart(plotter.Values{*row.ROIC}, barWidth)
		if err != nil {
			return apperrors.NewValidationError(fmt.Sprintf("invalid ROIC for %s: %v", row.Entity, err))
		}
		bars.XMin = float64(i)
		bars.LineStyle.Width = 0
		bars.Color = opts.BelowColor
		if row.MeetsHurdle(opts.HurdleRate) {
			bars.Color = opts.AboveColor
		}
		p.Add(bars)

		names[i] = row.Entity
		minY = math.Min(minY, *row.ROIC)
		maxY = math.Max(maxY, *row.ROIC)
	}

	hurdle := plotter.NewFunction(func(float64) float64 { return opts.HurdleRate })
	hurdle.Color = color.Black
	hurdle.Width = vg.Points(1.5)
	hurdle.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
	p.Add(hurdle)
	p.Legend.Add(HurdleLabel(opts.HurdleRate), hurdle)
	p.Legend.Top = true

	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 12
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Min = -0.5
	p.X.Max = float64(len(rows)) - 0.5

	minY = math.Min(minY, opts.HurdleRate)
	maxY = math.Max(maxY, opts.HurdleRate)
	pad := (maxY - minY) * 0.05
	if pad == 0 {
		pad = 1
	}
	p.Y.Min = minY
	if minY < 0 {
		p.Y.Min = minY - pad
	}
	p.Y.Max = maxY + pad

	img := vgimg.NewWith(vgimg.UseWH(opts.Width, opts.Height), vgimg.UseDPI(opts.DPI))
	p.Draw(draw.New(img))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return apperrors.NewStorageError("failed to create chart directory", err)
	}
	f, err := os.Create(filePath)
	if err != nil {
		return apperrors.NewStorageError("failed to create chart file", err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		return apperrors.NewStorageError("failed to encode chart", err)
	}
	if err := f.Close(); err != nil {
		return apperrors.NewStorageError("failed to close chart file", err)
	}
	return nil
}

// ParseHexColor parses "#rrggbb" into an opaque colour
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
