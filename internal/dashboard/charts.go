package dashboard

import (
	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
)

// Figure is a plotly.js figure specification. The browser hands it to
// Plotly.newPlot unchanged.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

type Trace struct {
	Type         string   `json:"type"`
	Orientation  string   `json:"orientation,omitempty"`
	X            []int    `json:"x,omitempty"`
	Y            []string `json:"y,omitempty"`
	Text         []int    `json:"text,omitempty"`
	TextPosition string   `json:"textposition,omitempty"`
	Values       []int    `json:"values,omitempty"`
	Labels       []string `json:"labels,omitempty"`
	Hole         float64  `json:"hole,omitempty"`
	TextInfo     string   `json:"textinfo,omitempty"`
	Marker       *Marker  `json:"marker,omitempty"`
}

type Marker struct {
	Color  string   `json:"color,omitempty"`
	Colors []string `json:"colors,omitempty"`
}

type Layout struct {
	Height      int     `json:"height"`
	PlotBGColor string  `json:"plot_bgcolor,omitempty"`
	Margin      Margin  `json:"margin"`
	XAxis       *Axis   `json:"xaxis,omitempty"`
	YAxis       *Axis   `json:"yaxis,omitempty"`
	ShowLegend  *bool   `json:"showlegend,omitempty"`
	Legend      *Legend `json:"legend,omitempty"`
}

type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

type Axis struct {
	Visible *bool   `json:"visible,omitempty"`
	Title   *string `json:"title"`
}

type Legend struct {
	Orientation string  `json:"orientation"`
	YAnchor     string  `json:"yanchor"`
	Y           float64 `json:"y"`
	XAnchor     string  `json:"xanchor"`
	X           float64 `json:"x"`
}

const (
	chartHeight = 350
	barColor    = "#D32F2F"
)

var donutPalette = []string{"#8b0000", "#c62828", "#e53935", "#ef5350", "#ffcdd2"}

// BarChart draws the quantity ranking as horizontal bars with the value
// printed outside each bar. Plotly stacks categories bottom-up, so the
// ascending ranking puts the largest quantity on top.
func BarChart(top []models.Product) Figure {
	tr := Trace{
		Type:         "bar",
		Orientation:  "h",
		X:            make([]int, len(top)),
		Y:            make([]string, len(top)),
		Text:         make([]int, len(top)),
		TextPosition: "outside",
		Marker:       &Marker{Color: barColor},
	}
	for i, p := range top {
		tr.X[i] = p.Quantity
		tr.Y[i] = p.Name
		tr.Text[i] = p.Quantity
	}

	hidden := false
	return Figure{
		Data: []Trace{tr},
		Layout: Layout{
			Height:      chartHeight,
			PlotBGColor: "rgba(0,0,0,0)",
			XAxis:       &Axis{Visible: &hidden},
			YAxis:       &Axis{},
		},
	}
}

// DonutChart draws each category's share of the total quantity.
func DonutChart(totals []CategoryTotal) Figure {
	tr := Trace{
		Type:     "pie",
		Values:   make([]int, len(totals)),
		Labels:   make([]string, len(totals)),
		Hole:     0.6,
		TextInfo: "percent+label",
		Marker:   &Marker{Colors: donutPalette},
	}
	for i, c := range totals {
		tr.Values[i] = c.Quantity
		tr.Labels[i] = c.Category
	}

	show := true
	return Figure{
		Data: []Trace{tr},
		Layout: Layout{
			Height:     chartHeight,
			ShowLegend: &show,
			Legend: &Legend{
				Orientation: "h",
				YAnchor:     "bottom",
				Y:           -0.2,
				XAnchor:     "center",
				X:           0.5,
			},
		},
	}
}
