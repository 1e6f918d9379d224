package model

import "regexp"

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidHexColor reports whether s is a #rrggbb color value.
func ValidHexColor(s string) bool {
	return hexColorRe.MatchString(s)
}

// Status is the comparison's fetch state. The four values are mutually
// exclusive and owned by the store; they change only through defined
// transitions (trigger, commit, fail, clear).
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusError   Status = "error"
	StatusReady   Status = "ready"
)

// Axis binding for a chart dataset.
const (
	AxisLeft  = "left"
	AxisRight = "right"
)

// ChartDataset is one renderable series of the comparison chart.
type ChartDataset struct {
	Label       string    `json:"label"`
	Data        []float64 `json:"data"`
	BorderColor string    `json:"borderColor"`
	FillColor   string    `json:"fillColor"`
	Axis        string    `json:"axis"`
	AxisTitle   string    `json:"axisTitle"`
	HideGrid    bool      `json:"hideGrid"`
}

// ComparisonView is the render-ready description of the chart. It is a
// pure derivation of current state, recomputed and replaced whole on every
// relevant change, never mutated in place.
type ComparisonView struct {
	Status   Status         `json:"status"`
	Title    string         `json:"title"`
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
	Error    string         `json:"error,omitempty"`
}
