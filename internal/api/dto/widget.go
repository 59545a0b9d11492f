package dto

import "encoding/json"

type ForecastRequest struct {
	City string `json:"city"`
}

type ChartResponse struct {
	ID     string          `json:"id"`
	Target string          `json:"target"`
	Kind   string          `json:"kind"`
	PNGURL string          `json:"png_url"`
	Option json.RawMessage `json:"option"`
}

type CardResponse struct {
	Label      string        `json:"label"`
	Sunlight   string        `json:"sunlight"`
	CloudCover string        `json:"cloud_cover"`
	Chart      ChartResponse `json:"chart"`
}

type WidgetResponse struct {
	State   string         `json:"state"`
	City    string         `json:"city"`
	Loading bool           `json:"loading"`
	Error   string         `json:"error"`
	Cards   []CardResponse `json:"cards"`
	Trend   *ChartResponse `json:"trend"`
}
