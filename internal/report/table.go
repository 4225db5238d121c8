package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Sumatoshi-tech/compbench/internal/bench"
)

const bytesPerMiB = 1 << 20

func renderTable(w io.Writer, rows []bench.Row) error {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)

	tbl.AppendHeader(table.Row{
		"comp", "count", "in_size", "out_size", "ratio", "min-max",
		"in_size4k", "out_size4k", "ratio4k", "min-max4k", "speed",
	})

	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
		{Number: 8, Align: text.AlignRight},
		{Number: 9, Align: text.AlignRight},
		{Number: 10, Align: text.AlignRight},
		{Number: 11, Align: text.AlignRight},
	})

	for _, row := range rows {
		tbl.AppendRow(table.Row{
			row.Method,
			row.Count,
			humanize.Comma(row.InBytes),
			humanize.Comma(row.OutBytes),
			ratioCell(row, row.RatioPct),
			rangeCell(row, row.MinRatioPct, row.MaxRatioPct),
			humanize.Comma(row.InBlockBytes),
			humanize.Comma(row.OutBlockBytes),
			ratioCell(row, row.BlockRatioPct),
			rangeCell(row, row.MinBlockRatioPct, row.MaxBlockRatioPct),
			speedCell(row),
		})
	}

	tbl.Render()

	return nil
}

// ratioCell renders an aggregate percentage, blank when the method had no
// successful measurements.
func ratioCell(row bench.Row, pct float64) string {
	if !row.Defined {
		return ""
	}

	return fmt.Sprintf("%.2f%%", pct)
}

func rangeCell(row bench.Row, minPct, maxPct float64) string {
	if !row.Defined {
		return ""
	}

	return fmt.Sprintf("%.1f - %.1f%%", minPct, maxPct)
}

func speedCell(row bench.Row) string {
	if !row.Defined {
		return ""
	}

	return fmt.Sprintf("%.2f MiB/s", row.BytesPerSecond/bytesPerMiB)
}
