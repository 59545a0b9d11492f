package domain

import "time"

// Maximum number of days shown by the widget.
const MaxForecastDays = 7

// Daily arrays as returned by the forecast service.
// A nil slice means the array was absent or null in the response;
// nil elements are null entries inside a present array.
type RawForecast struct {
	Time                  []string
	ShortwaveRadiationSum []*float64
	CloudCoverMean        []*float64
}

// Complete reports whether all three arrays are present.
func (r RawForecast) Complete() bool {
	return r.Time != nil && r.ShortwaveRadiationSum != nil && r.CloudCoverMean != nil
}

// One day of the forecast. Date is the calendar day at midnight UTC.
type DailyForecastPoint struct {
	Date              time.Time
	RadiationMJm2     float64
	CloudCoverPercent float64
}

// Chronological sequence of daily points, at most MaxForecastDays long.
type ForecastSeries []DailyForecastPoint

func (s ForecastSeries) Radiation() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.RadiationMJm2
	}
	return out
}

func (s ForecastSeries) CloudCover() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.CloudCoverPercent
	}
	return out
}

func (s ForecastSeries) Dates() []time.Time {
	out := make([]time.Time, len(s))
	for i, p := range s {
		out[i] = p.Date
	}
	return out
}
