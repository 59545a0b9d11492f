package render

import (
	"encoding/json"
	"fmt"
)

// EChartsOption converts spec into an echarts option object.
func EChartsOption(spec ChartSpec) map[string]any {
	trigger := "item"
	if spec.SharedHover {
		trigger = "axis"
	}

	option := map[string]any{
		"tooltip": map[string]any{"trigger": trigger},
		"legend":  map[string]any{"show": spec.Legend, "top": 0},
		"xAxis":   map[string]any{"type": "category", "data": spec.Categories},
		"grid":    map[string]any{"left": "8%", "right": "8%", "containLabel": true},
	}
	if spec.Title != "" && spec.Kind != BarChart {
		option["title"] = map[string]any{"text": spec.Title, "left": "center"}
	}

	yAxes := make([]any, 0, len(spec.Axes))
	for _, a := range spec.Axes {
		axis := map[string]any{
			"type":      "value",
			"position":  string(a.Side),
			"splitLine": map[string]any{"show": a.Gridlines},
			"scale":     !a.BeginAtZero,
		}
		if a.Title != "" {
			axis["name"] = a.Title
		}
		if a.BeginAtZero {
			axis["min"] = 0
		}
		yAxes = append(yAxes, axis)
	}
	option["yAxis"] = yAxes

	seriesOut := make([]any, 0, len(spec.Series))
	legend := make([]string, 0, len(spec.Series))
	for _, s := range spec.Series {
		legend = append(legend, s.Name)
		switch spec.Kind {
		case BarChart:
			seriesOut = append(seriesOut, barSeries(s))
		default:
			seriesOut = append(seriesOut, lineSeries(s))
		}
	}
	option["series"] = seriesOut
	if spec.Legend {
		option["legend"].(map[string]any)["data"] = legend
	}

	return option
}

func barSeries(s Series) map[string]any {
	data := make([]any, len(s.Values))
	for i, v := range s.Values {
		item := map[string]any{
			"value":     v,
			"itemStyle": map[string]any{"color": colorAt(s.Colors, i), "borderRadius": 6},
		}
		if i < len(s.Tooltips) {
			item["tooltip"] = map[string]any{"formatter": s.Tooltips[i]}
		}
		data[i] = item
	}

	return map[string]any{
		"name":       s.Name,
		"type":       "bar",
		"yAxisIndex": s.Axis,
		"data":       data,
	}
}

func lineSeries(s Series) map[string]any {
	color := colorAt(s.Colors, 0)
	out := map[string]any{
		"name":       s.Name,
		"type":       "line",
		"yAxisIndex": s.Axis,
		"data":       s.Values,
		"smooth":     0.4,
		"showSymbol": true,
		"symbolSize": 12,
		"itemStyle":  map[string]any{"color": color},
		"lineStyle":  map[string]any{"color": color},
	}
	if s.Symbol != "" {
		out["symbol"] = s.Symbol
	}
	return out
}

// OptionJSON returns the echarts option for spec as JSON.
func OptionJSON(spec ChartSpec) ([]byte, error) {
	b, err := json.Marshal(EChartsOption(spec))
	if err != nil {
		return nil, fmt.Errorf("marshal echarts option: %w", err)
	}
	return b, nil
}
