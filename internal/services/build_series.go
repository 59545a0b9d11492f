package services

import (
	"fmt"
	"strings"
	"time"

	"sunlight-forecast/internal/domain"
)

// BuildSeries zips the daily arrays into at most domain.MaxForecastDays
// points, keeping the order they were received in.
//
// The three arrays must be present and of equal length. A short response
// produces a short series; nothing is padded.
func BuildSeries(raw domain.RawForecast) (domain.ForecastSeries, error) {
	if !raw.Complete() {
		return nil, fmt.Errorf("build series: missing daily arrays: %w", domain.ErrDataUnavailable)
	}

	nDates := len(raw.Time)
	if len(raw.ShortwaveRadiationSum) != nDates || len(raw.CloudCoverMean) != nDates {
		return nil, fmt.Errorf(
			"build series: array lengths differ (time=%d radiation=%d cloudcover=%d): %w",
			nDates, len(raw.ShortwaveRadiationSum), len(raw.CloudCoverMean), domain.ErrDataUnavailable,
		)
	}

	n := min(domain.MaxForecastDays, nDates)

	series := make(domain.ForecastSeries, 0, n)
	for i := 0; i < n; i++ {
		date, err := time.Parse(time.DateOnly, strings.TrimSpace(raw.Time[i]))
		if err != nil {
			return nil, fmt.Errorf("build series: day %d date %q: %v: %w", i, raw.Time[i], err, domain.ErrDataUnavailable)
		}

		rad, cloud := raw.ShortwaveRadiationSum[i], raw.CloudCoverMean[i]
		if rad == nil || cloud == nil {
			return nil, fmt.Errorf("build series: day %d has null values: %w", i, domain.ErrDataUnavailable)
		}

		series = append(series, domain.DailyForecastPoint{
			Date:              date,
			RadiationMJm2:     *rad,
			CloudCoverPercent: *cloud,
		})
	}

	return series, nil
}
