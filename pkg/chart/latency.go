// Package chart renders the latency trend chart for a run's measurements.
package chart

import (
	"fmt"
	"io"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ccollicutt/fivegscan/pkg/analyzer"
	"github.com/ccollicutt/fivegscan/pkg/config"
)

var (
	spikeColor  = drawing.ColorFromHex("d62728")
	normalColor = drawing.ColorFromHex("2ca02c")
	trendColor  = drawing.Color{R: 128, G: 128, B: 128, A: 128}
	gridColor   = drawing.ColorFromHex("e0e0e0")
)

// Options controls chart rendering.
type Options struct {
	Width  int
	Height int
	Format config.ChartFormat
	Title  string
}

// OptionsFromConfig builds rendering options from chart configuration.
func OptionsFromConfig(c config.ChartConfig) Options {
	return Options{
		Width:  c.Width,
		Height: c.Height,
		Format: c.Format,
		Title:  c.Title,
	}
}

// RenderLatency draws RTT over time: a dashed trend line through every sample
// and one dot per sample, red for spikes and green otherwise. Samples are
// placed by index and labelled with their timestamp strings.
//
// Returns analyzer.ErrNoMeasurementData when there is nothing to draw.
func RenderLatency(w io.Writer, ms []analyzer.Measurement, opts Options) error {
	if len(ms) == 0 {
		return analyzer.ErrNoMeasurementData
	}

	ch := Build(ms, opts)

	provider := gochart.PNG
	switch opts.Format {
	case config.ChartFormatSVG:
		provider = gochart.SVG
	case config.ChartFormatPNG, "":
	default:
		return fmt.Errorf("unsupported chart format %q", opts.Format)
	}

	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("rendering latency chart: %w", err)
	}
	return nil
}

// Build assembles the chart definition without rendering it.
func Build(ms []analyzer.Measurement, opts Options) gochart.Chart {
	xs := make([]float64, len(ms))
	ys := make([]float64, len(ms))
	ticks := make([]gochart.Tick, len(ms))
	maxRTT := 0.0
	for i, m := range ms {
		xs[i] = float64(i)
		ys[i] = float64(m.RTTMs)
		ticks[i] = gochart.Tick{Value: float64(i), Label: m.Timestamp}
		if ys[i] > maxRTT {
			maxRTT = ys[i]
		}
	}

	trend := gochart.ContinuousSeries{
		Name:    "RTT",
		XValues: xs,
		YValues: ys,
		Style: gochart.Style{
			StrokeColor:     trendColor,
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 5.0},
		},
	}

	points := gochart.ContinuousSeries{
		Name:    "Samples",
		XValues: xs,
		YValues: ys,
		Style: gochart.Style{
			StrokeWidth: gochart.Disabled,
			DotWidth:    4,
			DotColorProvider: func(_, _ gochart.Range, index int, _, _ float64) drawing.Color {
				return pointColor(ms[index].RTTMs)
			},
		},
	}

	// An explicit range keeps single-sample and flat series renderable.
	yMax := maxRTT * 1.1
	if yMax < analyzer.SpikeThresholdMs {
		yMax = analyzer.SpikeThresholdMs * 1.1
	}

	ch := gochart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: gochart.XAxis{
			Name:           "Timestamp",
			Range:          &gochart.ContinuousRange{Min: -0.5, Max: float64(len(ms)) - 0.5},
			Ticks:          thinTicks(ticks, 12),
			GridMajorStyle: gochart.Style{StrokeColor: gridColor, StrokeWidth: 1.0},
		},
		YAxis: gochart.YAxis{
			Name:           "RTT (ms)",
			Range:          &gochart.ContinuousRange{Min: 0, Max: yMax},
			GridMajorStyle: gochart.Style{StrokeColor: gridColor, StrokeWidth: 1.0},
		},
		Series: []gochart.Series{trend, points},
	}

	return ch
}

// pointColor returns the marker colour for a sample.
func pointColor(rtt int) drawing.Color {
	if analyzer.IsSpike(rtt) {
		return spikeColor
	}
	return normalColor
}

// thinTicks keeps roughly limit evenly spaced labels, always including the last.
func thinTicks(ticks []gochart.Tick, limit int) []gochart.Tick {
	if len(ticks) <= limit || limit < 2 {
		return ticks
	}
	step := (len(ticks) + limit - 1) / limit
	out := make([]gochart.Tick, 0, limit+1)
	for i := 0; i < len(ticks); i += step {
		out = append(out, ticks[i])
	}
	if last := ticks[len(ticks)-1]; out[len(out)-1].Value != last.Value {
		out = append(out, last)
	}
	return out
}
