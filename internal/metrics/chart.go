package metrics

import (
	"github.com/samber/lo"          // Collection helpers
	"github.com/shopspring/decimal" // Exact chart values
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true // Chart values render as plain JSON numbers
}

// ChartKind tags the chart variant
type ChartKind string

const (
	KindPie ChartKind = "pie"
	KindBar ChartKind = "bar"
)

// Fixed pie presentation
const (
	pieRadius       = "50%"
	pieTitleAlign   = "center"
	pieLegendOrient = "vertical"
	pieLegendAlign  = "left"
	pieTooltip      = "item"
)

// Chart is a renderable chart descriptor, either PieChart or BarChart
type Chart interface {
	Kind() ChartKind
	chart()
}

type Title struct {
	Text string `json:"text"`
	Left string `json:"left,omitempty"`
}

type Tooltip struct {
	Trigger string `json:"trigger,omitempty"`
	Show    bool   `json:"show,omitempty"`
}

type Legend struct {
	Orient string `json:"orient"`
	Left   string `json:"left"`
}

// CategoryAxis lists the bar labels
type CategoryAxis struct {
	Data []string `json:"data"`
}

// ValueAxis is left to the renderer's defaults
type ValueAxis struct{}

type PiePoint struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

type PieSeries struct {
	Name   string     `json:"name"`
	Type   ChartKind  `json:"type"`
	Radius string     `json:"radius"`
	Data   []PiePoint `json:"data"`
}

type BarSeries struct {
	Name string            `json:"name"`
	Type ChartKind         `json:"type"`
	Data []decimal.Decimal `json:"data"`
}

// PieChart mirrors an ECharts pie option
type PieChart struct {
	Title   Title       `json:"title"`
	Tooltip Tooltip     `json:"tooltip"`
	Legend  Legend      `json:"legend"`
	Series  []PieSeries `json:"series"`
}

func (PieChart) Kind() ChartKind { return KindPie }
func (PieChart) chart()          {}

// BarChart mirrors an ECharts bar option
type BarChart struct {
	Title   Title        `json:"title"`
	Tooltip Tooltip      `json:"tooltip"`
	XAxis   CategoryAxis `json:"xAxis"`
	YAxis   ValueAxis    `json:"yAxis"`
	Series  []BarSeries  `json:"series"`
}

func (BarChart) Kind() ChartKind { return KindBar }
func (BarChart) chart()          {}

// ToPie emits one point per entry in entry order
func ToPie(title string, entries []AggregateEntry) PieChart {
	points := lo.Map(entries, func(e AggregateEntry, _ int) PiePoint {
		return PiePoint{Name: e.Label, Value: e.Value}
	})
	return PieChart{
		Title:   Title{Text: title, Left: pieTitleAlign},
		Tooltip: Tooltip{Trigger: pieTooltip},
		Legend:  Legend{Orient: pieLegendOrient, Left: pieLegendAlign},
		Series: []PieSeries{{
			Name:   title,
			Type:   KindPie,
			Radius: pieRadius,
			Data:   points,
		}},
	}
}

// ToBar emits parallel category and value lists in entry order
func ToBar(title string, entries []AggregateEntry) BarChart {
	labels := lo.Map(entries, func(e AggregateEntry, _ int) string { return e.Label })          // Category axis
	values := lo.Map(entries, func(e AggregateEntry, _ int) decimal.Decimal { return e.Value }) // Same order as labels
	return BarChart{
		Title:   Title{Text: title},
		Tooltip: Tooltip{Show: true},
		XAxis:   CategoryAxis{Data: labels},
		Series: []BarSeries{{
			Name: title,
			Type: KindBar,
			Data: values,
		}},
	}
}

// Charts builds the pie and bar pair served by the dashboard endpoints
func Charts(title string, entries []AggregateEntry) []Chart {
	return []Chart{ToPie(title, entries), ToBar(title, entries)}
}
