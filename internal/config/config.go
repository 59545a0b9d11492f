package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Runtime configuration read from the environment (optionally seeded by a .env file).
type Config struct {
	Port             string
	NominatimURL     string
	OpenMeteoURL     string
	UserAgent        string
	ForecastTimezone string
	Locale           string
	GeocodeRPS       float64
	HTTPTimeout      time.Duration
	// Widget sessions idle longer than SessionTTL are evicted every SessionSweep.
	SessionTTL       time.Duration
	SessionSweep     time.Duration
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func Load() (Config, error) {
	cfg := Config{
		Port:             Get("PORT", "8080"),
		NominatimURL:     strings.TrimRight(Get("NOMINATIM_URL", "https://nominatim.openstreetmap.org"), "/"),
		OpenMeteoURL:     strings.TrimRight(Get("OPEN_METEO_URL", "https://api.open-meteo.com"), "/"),
		UserAgent:        Get("USER_AGENT", "sunlight-forecast/1.0"),
		ForecastTimezone: Get("FORECAST_TIMEZONE", "auto"),
		Locale:           Get("LOCALE", Get("LANG", "en_US")),
	}

	rps, err := strconv.ParseFloat(Get("GEOCODE_RPS", "1"), 64)
	if err != nil {
		return Config{}, fmt.Errorf("load config: GEOCODE_RPS: %w", err)
	}
	if rps <= 0 {
		return Config{}, fmt.Errorf("load config: GEOCODE_RPS must be positive, got %v", rps)
	}
	cfg.GeocodeRPS = rps

	timeout, err := time.ParseDuration(Get("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("load config: HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	if cfg.SessionTTL, err = positiveDuration("SESSION_TTL", "30m"); err != nil {
		return Config{}, err
	}
	if cfg.SessionSweep, err = positiveDuration("SESSION_SWEEP", "1m"); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func positiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(Get(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("load config: %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("load config: %s must be positive, got %v", key, d)
	}
	return d, nil
}
