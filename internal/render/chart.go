package render

// ChartKind selects the visualization type of a ChartSpec.
type ChartKind string

const (
	BarChart  ChartKind = "bar"
	LineChart ChartKind = "line"
)

const (
	SunlightColor   = "#f6c90e"
	CloudCoverColor = "#0077b6"
)

// AxisSide is the edge a value axis is drawn on.
type AxisSide string

const (
	AxisLeft  AxisSide = "left"
	AxisRight AxisSide = "right"
)

// ValueAxis describes one independently scaled numeric axis.
type ValueAxis struct {
	Title       string
	Side        AxisSide
	Gridlines   bool
	BeginAtZero bool
}

// Series is one named sequence of values plotted against the category axis.
// Colors holds either one color for the whole series or one per value.
// Tooltips, when set, holds the hover text for each value.
type Series struct {
	Name     string
	Values   []float64
	Colors   []string
	Axis     int
	Tooltips []string
	Symbol   string
}

// ChartSpec is an engine-neutral chart description. It is turned into
// echarts options for the page and rasterised with go-chart for PNG output.
type ChartSpec struct {
	Kind       ChartKind
	Title      string
	Categories []string
	Axes       []ValueAxis
	Series     []Series
	Legend     bool
	// Hovering an x position highlights every series at that index.
	SharedHover bool
}

// Empty reports whether the chart has no data points to draw.
func (s ChartSpec) Empty() bool {
	if len(s.Categories) == 0 {
		return true
	}
	for _, ser := range s.Series {
		if len(ser.Values) > 0 {
			return false
		}
	}
	return true
}

func colorAt(colors []string, i int) string {
	switch {
	case len(colors) == 0:
		return ""
	case len(colors) == 1:
		return colors[0]
	case i < len(colors):
		return colors[i]
	default:
		return colors[len(colors)-1]
	}
}
