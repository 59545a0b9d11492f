package render

import (
	"fmt"

	"sunlight-forecast/internal/domain"
	"sunlight-forecast/internal/services"
)

// Card is the rendered summary of one forecast day.
type Card struct {
	Label      string
	Sunlight   string
	CloudCover string
	Chart      *ChartHandle
}

// RenderCards clears every card chart on surface and renders one card per
// point. labels[i] is the formatted date of series[i].
func RenderCards(surface *Surface, series domain.ForecastSeries, labels []string) ([]Card, error) {
	if len(labels) != len(series) {
		return nil, fmt.Errorf("render cards: %d labels for %d days", len(labels), len(series))
	}

	surface.ClearCards()

	cards := make([]Card, 0, len(series))
	for i, p := range series {
		h, err := surface.Bind(CardTarget(i), CardChart(labels[i], p))
		if err != nil {
			return nil, fmt.Errorf("render cards: day %d: %w", i, err)
		}

		cards = append(cards, Card{
			Label:      labels[i],
			Sunlight:   services.FormatSunlightLine(p.RadiationMJm2),
			CloudCover: services.FormatCloudCoverLine(p.CloudCoverPercent),
			Chart:      h,
		})
	}

	return cards, nil
}

// CardChart compares the two metrics of a single day as two bars.
// Both bars share one linear axis from zero; the values are not rescaled.
func CardChart(label string, p domain.DailyForecastPoint) ChartSpec {
	return ChartSpec{
		Kind:       BarChart,
		Title:      label,
		Categories: []string{string(services.Sunlight), string(services.CloudCover)},
		Axes:       []ValueAxis{{Side: AxisLeft, Gridlines: true, BeginAtZero: true}},
		Series: []Series{{
			Name:   label,
			Values: []float64{p.RadiationMJm2, p.CloudCoverPercent},
			Colors: []string{SunlightColor, CloudCoverColor},
			Tooltips: []string{
				services.FormatMetric(services.Sunlight, p.RadiationMJm2),
				services.FormatMetric(services.CloudCover, p.CloudCoverPercent),
			},
		}},
	}
}
