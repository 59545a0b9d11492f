package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
)

// Metric identifies one of the two daily quantities shown by the widget.
type Metric string

const (
	Sunlight   Metric = "Sunlight"
	CloudCover Metric = "Cloud Cover"
)

// FormatMetric renders value with the precision and unit of metric:
// one decimal in MJ/m² for sunlight, whole percent for cloud cover.
// Halves round away from zero (10.25 -> 10.3, 42.5 -> 43).
func FormatMetric(metric Metric, value float64) string {
	switch metric {
	case Sunlight:
		return fmt.Sprintf("%.1f MJ/m²", roundTo(value, 1))
	case CloudCover:
		return fmt.Sprintf("%.0f %%", roundTo(value, 0))
	default:
		return fmt.Sprintf("%g", value)
	}
}

// Card lines use the compact "20%" form for cloud cover.
func FormatSunlightLine(value float64) string {
	return "Sunlight: " + FormatMetric(Sunlight, value)
}

func FormatCloudCoverLine(value float64) string {
	return fmt.Sprintf("Cloud Cover: %.0f%%", roundTo(value, 0))
}

// roundTo rounds v to the given number of decimals, halves away from zero.
// fmt alone rounds binary halves to even.
func roundTo(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	r := math.Round(v*p) / p
	if r == 0 {
		return 0 // no "-0.0"
	}
	return r
}

// Short weekday, day and short month in each locale's own order.
// Locales missing here use the US layout.
const defaultDateLayout = "Mon, Jan 2"

var dateLayouts = map[monday.Locale]string{
	monday.LocaleEnUS: defaultDateLayout,
	monday.LocaleEnGB: "Mon 2 Jan",
	monday.LocaleDeDE: "Mon., 2. Jan",
	monday.LocaleFrFR: "Mon 2 Jan",
	monday.LocaleEsES: "Mon, 2 Jan",
	monday.LocaleItIT: "Mon 2 Jan",
	monday.LocaleNlNL: "Mon 2 Jan",
	monday.LocalePtBR: "Mon, 2 Jan",
	monday.LocalePtPT: "Mon, 2 Jan",
	monday.LocalePlPL: "Mon, 2 Jan",
	monday.LocaleSvSE: "Mon 2 Jan",
	monday.LocaleFiFI: "Mon 2.1.",
	monday.LocaleDaDK: "Mon. 2. Jan",
	monday.LocaleNbNO: "Mon. 2. Jan",
	monday.LocaleRuRU: "Mon, 2 Jan",
}

var dateLocales = []monday.Locale{
	monday.LocaleEnUS,
	monday.LocaleEnGB,
	monday.LocaleDeDE,
	monday.LocaleFrFR,
	monday.LocaleEsES,
	monday.LocaleItIT,
	monday.LocaleNlNL,
	monday.LocalePtBR,
	monday.LocalePtPT,
	monday.LocalePlPL,
	monday.LocaleSvSE,
	monday.LocaleFiFI,
	monday.LocaleDaDK,
	monday.LocaleNbNO,
	monday.LocaleRuRU,
}

var dateMatcher = language.NewMatcher(localeTags())

func localeTags() []language.Tag {
	tags := make([]language.Tag, len(dateLocales))
	for i, l := range dateLocales {
		tags[i] = language.Make(strings.ReplaceAll(string(l), "_", "-"))
	}
	return tags
}

// DateFormatter renders forecast dates as locale-aware labels ("Mon, Jan 5").
type DateFormatter struct {
	locale monday.Locale
}

// NewDateFormatter resolves a BCP-47 tag ("de-DE") or POSIX locale
// ("de_DE.UTF-8") to the closest supported locale, defaulting to en_US.
func NewDateFormatter(locale string) DateFormatter {
	return DateFormatter{locale: matchLocale([]language.Tag{parseLocale(locale)})}
}

// DateFormatterForAcceptLanguage picks a locale from an Accept-Language
// header, or returns fallback when the header is empty or unusable.
func DateFormatterForAcceptLanguage(header string, fallback DateFormatter) DateFormatter {
	if strings.TrimSpace(header) == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	return DateFormatter{locale: matchLocale(tags)}
}

func (f DateFormatter) Locale() string {
	if f.locale == "" {
		return string(monday.LocaleEnUS)
	}
	return string(f.locale)
}

// Format renders the calendar day of t without converting its timezone.
func (f DateFormatter) Format(t time.Time) string {
	locale := f.locale
	if locale == "" {
		locale = monday.LocaleEnUS
	}
	layout, ok := dateLayouts[locale]
	if !ok {
		layout = defaultDateLayout
	}
	return monday.Format(t, layout, locale)
}

func (f DateFormatter) Labels(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = f.Format(d)
	}
	return out
}

func parseLocale(s string) language.Tag {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, "_", "-")
	if s == "" || s == "C" || s == "POSIX" {
		return language.AmericanEnglish
	}

	tag, err := language.Parse(s)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}

func matchLocale(tags []language.Tag) monday.Locale {
	_, idx, conf := dateMatcher.Match(tags...)
	if conf == language.No {
		return monday.LocaleEnUS
	}
	return dateLocales[idx]
}
