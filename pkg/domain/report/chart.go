package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
)

const (
	chartImageWidth  = 780
	chartImageHeight = 510
	batterySlots     = 8
)

// voltageChart renders the per-battery voltage readings as a labelled bar
// chart PNG. Readings are free-text; anything that does not parse as a
// number charts as zero.
func voltageChart(readings []string) ([]byte, error) {
	bars := make([]chart.Value, 0, batterySlots)
	maxV := 0.0
	for i := 0; i < batterySlots; i++ {
		v := 0.0
		if i < len(readings) {
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(readings[i]), 64); err == nil {
				v = parsed
			}
		}
		if v > maxV {
			maxV = v
		}
		label := fmt.Sprintf("Bat %d", i+1)
		if v > 0 {
			label = fmt.Sprintf("Bat %d (%gV)", i+1, v)
		}
		bars = append(bars, chart.Value{Value: v, Label: label})
	}

	// A zero value range makes go-chart refuse to render.
	if maxV == 0 {
		maxV = 12
	}

	graph := chart.BarChart{
		Width:      chartImageWidth,
		Height:     chartImageHeight,
		BarWidth:   60,
		BarSpacing: 24,
		XAxis: chart.Style{
			FontSize:  14,
			FontColor: chart.ColorBlack,
		},
		YAxis: chart.YAxis{
			Style: chart.Hidden(),
			Range: &chart.ContinuousRange{Min: 0, Max: maxV * 1.2},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render voltage chart: %w", err)
	}
	return buf.Bytes(), nil
}
