package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/compbench/internal/bench"
)

// renderPlot writes a self-contained HTML page with a ratio chart and a
// throughput chart. Methods without measurements are omitted; the table
// and structured formats remain the place to see attempted-but-missing
// tools.
func renderPlot(w io.Writer, rows []bench.Row) error {
	var (
		labels     []string
		ratios     []opts.BarData
		blockRatio []opts.BarData
		speeds     []opts.BarData
	)

	for _, row := range rows {
		if !row.Defined {
			continue
		}

		labels = append(labels, row.Method)
		ratios = append(ratios, opts.BarData{Value: row.RatioPct})
		blockRatio = append(blockRatio, opts.BarData{Value: row.BlockRatioPct})
		speeds = append(speeds, opts.BarData{Value: row.BytesPerSecond / bytesPerMiB})
	}

	page := components.NewPage()
	page.PageTitle = "compbench report"
	page.AddCharts(
		ratioChart(labels, ratios, blockRatio),
		speedChart(labels, speeds),
	)

	err := page.Render(w)
	if err != nil {
		return fmt.Errorf("render plot report: %w", err)
	}

	return nil
}

func ratioChart(labels []string, ratios, blockRatios []opts.BarData) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Compression ratio"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "ratio %"}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)
	bar.SetXAxis(labels)
	bar.AddSeries("ratio", ratios)
	bar.AddSeries("ratio (4k blocks)", blockRatios)

	return bar
}

func speedChart(labels []string, speeds []opts.BarData) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Throughput"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "MiB/s"}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)
	bar.SetXAxis(labels)
	bar.AddSeries("speed", speeds)

	return bar
}
