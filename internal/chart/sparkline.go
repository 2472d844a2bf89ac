// Package chart renders holding sparklines as small images.
package chart

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format is an output image format.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat maps a file extension ("png", ".svg") to a Format.
func ParseFormat(ext string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "png":
		return PNG, nil
	case "svg":
		return SVG, nil
	}
	return "", fmt.Errorf("unsupported chart format %q", ext)
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

const (
	sparklineWidth  = 160
	sparklineHeight = 48
)

var (
	upColor   = drawing.ColorFromHex("16a34a") // green-600
	downColor = drawing.ColorFromHex("dc2626") // red-600
)

// RenderSparkline draws samples as an axis-less line chart. The line is
// green when the last sample is at or above the first, red otherwise.
func RenderSparkline(symbol string, samples []float64, format Format) ([]byte, error) {
	if len(samples) < 2 {
		return nil, fmt.Errorf("need at least 2 samples for %s, got %d", symbol, len(samples))
	}

	xValues := make([]float64, len(samples))
	for i := range samples {
		xValues[i] = float64(i)
	}

	color := upColor
	if samples[len(samples)-1] < samples[0] {
		color = downColor
	}

	yAxis := chart.YAxis{Style: chart.Hidden()}
	if lo, hi := bounds(samples); lo == hi {
		// go-chart rejects a zero-height range.
		yAxis.Range = &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}

	graph := chart.Chart{
		Width:  sparklineWidth,
		Height: sparklineHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 4, Left: 4, Right: 4, Bottom: 4},
		},
		XAxis: chart.XAxis{Style: chart.Hidden()},
		YAxis: yAxis,
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: symbol,
				Style: chart.Style{
					StrokeColor: color,
					StrokeWidth: 2,
				},
				XValues: xValues,
				YValues: samples,
			},
		},
	}

	renderer := chart.PNG
	if format == SVG {
		renderer = chart.SVG
	}

	var buf bytes.Buffer
	if err := graph.Render(renderer, &buf); err != nil {
		return nil, fmt.Errorf("sparkline render failed for %s: %w", symbol, err)
	}
	return buf.Bytes(), nil
}

func bounds(samples []float64) (lo, hi float64) {
	lo, hi = samples[0], samples[0]
	for _, v := range samples[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
