package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/apparentlymart/cfdecode/coldfire"
)

type mnemonicCount struct {
	Name  string
	Count int
}

type stats struct {
	Counts    []mnemonicCount // most frequent first
	Stmts     int
	Undecoded int // words emitted as data
}

func collectStats(dec *coldfire.Decoder, buf []byte) stats {
	var st stats
	counts := make(map[string]int)
	d := disassembler{dec: dec}
	d.walk(buf, func(l line) error {
		if l.Stmt == nil {
			st.Undecoded++
			return nil
		}
		st.Stmts++
		counts[l.Stmt.Op.Name]++
		return nil
	})

	for name, n := range counts {
		st.Counts = append(st.Counts, mnemonicCount{Name: name, Count: n})
	}
	sort.Slice(st.Counts, func(i, j int) bool {
		if st.Counts[i].Count != st.Counts[j].Count {
			return st.Counts[i].Count > st.Counts[j].Count
		}
		return st.Counts[i].Name < st.Counts[j].Name
	})
	return st
}

func writeStats(w io.Writer, st stats) {
	for _, c := range st.Counts {
		fmt.Fprintf(w, "%-12s %6d\n", c.Name, c.Count)
	}
	fmt.Fprintf(w, "%d statements, %d undecoded words\n", st.Stmts, st.Undecoded)
}

// renderChart writes an HTML page with a bar chart of the mnemonic counts.
func renderChart(w io.Writer, title string, st stats) error {
	names := make([]string, len(st.Counts))
	data := make([]opts.BarData, len(st.Counts))
	for i, c := range st.Counts {
		names[i] = c.Name
		data[i] = opts.BarData{Value: c.Count}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Mnemonic frequency",
			Subtitle: title,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(names).AddSeries("count", data)
	return bar.Render(w)
}
