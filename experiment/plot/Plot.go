// Package plot draws HTML charts of experiment results
package plot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Series is a named sequence of values, one per episode
type Series struct {
	Name   string
	Values []float64
}

// Line writes an HTML line chart of the argument series to w. The
// first value of each series is labelled as episode firstEpisode.
func Line(w io.Writer, title string, firstEpisode int,
	series ...Series) error {
	if len(series) == 0 {
		return fmt.Errorf("line: at least one series is required")
	}

	numEpisodes := 0
	for _, s := range series {
		if len(s.Values) > numEpisodes {
			numEpisodes = len(s.Values)
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Episode"}),
	)

	episodes := make([]string, numEpisodes)
	for i := range episodes {
		episodes[i] = fmt.Sprintf("%d", firstEpisode+i)
	}
	line = line.SetXAxis(episodes)

	for _, s := range series {
		items := make([]opts.LineData, 0, len(s.Values))
		for _, v := range s.Values {
			items = append(items, opts.LineData{Value: v})
		}
		line.AddSeries(s.Name, items)
	}

	page := components.NewPage()
	page.AddCharts(line)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("line: %w", err)
	}
	return nil
}

// SaveLine saves an HTML line chart of the argument series to filename,
// creating its directory if needed
func SaveLine(filename, title string, firstEpisode int,
	series ...Series) error {
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("saveLine: %w", err)
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("saveLine: %w", err)
	}
	defer f.Close()

	if err := Line(f, title, firstEpisode, series...); err != nil {
		return fmt.Errorf("saveLine: %w", err)
	}
	return f.Close()
}
