package forecast

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"sunlight-forecast/internal/adapters/httpclient"
	"sunlight-forecast/internal/domain"
	"sunlight-forecast/internal/platform/obs"
)

// Daily variables requested from Open-Meteo, in response order.
const dailyMetrics = "shortwave_radiation_sum,cloudcover_mean"

type forecastResponse struct {
	Daily *struct {
		Time                  []string   `json:"time"`
		ShortwaveRadiationSum []*float64 `json:"shortwave_radiation_sum"`
		CloudCoverMean        []*float64 `json:"cloudcover_mean"`
	} `json:"daily"`
}

// OpenMeteoClient implements ports.ForecastProvider against the Open-Meteo
// /v1/forecast endpoint.
type OpenMeteoClient struct {
	client   *httpclient.Client
	baseURL  string
	timezone string
}

func NewOpenMeteoClient(client *httpclient.Client, baseURL, timezone string) (*OpenMeteoClient, error) {
	if client == nil {
		return nil, errors.New("open-meteo client: http client is nil")
	}
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("open-meteo client: base url is empty")
	}
	if timezone == "" {
		timezone = "auto"
	}

	return &OpenMeteoClient{
		client:   client,
		baseURL:  strings.TrimRight(baseURL, "/"),
		timezone: timezone,
	}, nil
}

func (c *OpenMeteoClient) FetchDaily(ctx context.Context, loc domain.Location) (_ domain.RawForecast, err error) {
	defer obs.Time(ctx, "openmeteo.FetchDaily")(&err)

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(loc.Lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(loc.Lon, 'f', -1, 64))
	params.Set("daily", dailyMetrics)
	params.Set("timezone", c.timezone)

	var decoded forecastResponse
	if err := c.client.GetJSON(ctx, "forecast", c.baseURL+"/v1/forecast", params, &decoded); err != nil {
		return domain.RawForecast{}, fmt.Errorf("fetch forecast lat=%v lon=%v: %w", loc.Lat, loc.Lon, err)
	}

	if decoded.Daily == nil {
		return domain.RawForecast{}, fmt.Errorf("fetch forecast: no daily block: %w", domain.ErrDataUnavailable)
	}

	raw := domain.RawForecast{
		Time:                  decoded.Daily.Time,
		ShortwaveRadiationSum: decoded.Daily.ShortwaveRadiationSum,
		CloudCoverMean:        decoded.Daily.CloudCoverMean,
	}
	if !raw.Complete() {
		return domain.RawForecast{}, fmt.Errorf("fetch forecast: missing daily arrays: %w", domain.ErrDataUnavailable)
	}

	return raw, nil
}
