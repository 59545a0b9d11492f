package render

import (
	"fmt"

	"sunlight-forecast/internal/domain"
)

// RenderTrend disposes previous (if any) and binds the weekly trend chart
// for series to the trend target.
func RenderTrend(
	surface *Surface,
	series domain.ForecastSeries,
	labels []string,
	previous *ChartHandle,
) (*ChartHandle, error) {
	if len(labels) != len(series) {
		return nil, fmt.Errorf("render trend: %d labels for %d days", len(labels), len(series))
	}

	surface.Dispose(previous)

	h, err := surface.Bind(TrendTarget, TrendChart(series, labels))
	if err != nil {
		return nil, fmt.Errorf("render trend: %w", err)
	}
	return h, nil
}

// TrendChart plots radiation on the left axis and cloud cover on the right,
// over the date labels. Only the left axis draws gridlines.
func TrendChart(series domain.ForecastSeries, labels []string) ChartSpec {
	return ChartSpec{
		Kind:       LineChart,
		Categories: append([]string(nil), labels...),
		Axes: []ValueAxis{
			{Title: "Sunlight MJ/m²", Side: AxisLeft, Gridlines: true},
			{Title: "Cloud Cover %", Side: AxisRight, Gridlines: false},
		},
		Series: []Series{
			{
				Name:   "Sunlight Energy (MJ/m²)",
				Values: series.Radiation(),
				Colors: []string{SunlightColor},
				Axis:   0,
				Symbol: "circle",
			},
			{
				Name:   "Cloud Cover (%)",
				Values: series.CloudCover(),
				Colors: []string{CloudCoverColor},
				Axis:   1,
				Symbol: "roundRect",
			},
		},
		Legend:      true,
		SharedHover: true,
	}
}
