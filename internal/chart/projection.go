// Package chart derives the render-ready comparison view from current
// state. Build is a pure function: it never triggers fetches and never
// mutates its inputs.
package chart

import (
	"fmt"

	"CoinCompare/internal/model"
)

// DefaultTitle is shown while fewer than two coins are selected.
const DefaultTitle = "Select two coins to compare"

// fillAlpha is the hex alpha suffix applied to a line color to derive
// its fill color (~20% opacity).
const fillAlpha = "33"

// Input carries everything the projection depends on.
type Input struct {
	SeriesA *model.PriceSeries
	SeriesB *model.PriceSeries
	ColorA  string
	ColorB  string
	Status  model.Status
	Error   string
}

// Build computes the comparison view. Slot A binds to the left axis,
// slot B to the right; the right axis suppresses gridlines so the two
// scales don't visually overlap. Absent series are omitted entirely.
// Labels come from series A's timestamps; both series are assumed to
// share the same timeline.
func Build(in Input) model.ComparisonView {
	view := model.ComparisonView{
		Status: in.Status,
		Title:  DefaultTitle,
		Error:  in.Error,
	}

	if in.SeriesA != nil {
		view.Labels = timelineLabels(in.SeriesA.Points)
	} else if in.SeriesB != nil {
		view.Labels = timelineLabels(in.SeriesB.Points)
	}

	if in.SeriesA != nil {
		view.Datasets = append(view.Datasets, dataset(in.SeriesA, in.ColorA, model.AxisLeft, false))
	}
	if in.SeriesB != nil {
		view.Datasets = append(view.Datasets, dataset(in.SeriesB, in.ColorB, model.AxisRight, true))
	}

	if in.SeriesA != nil && in.SeriesB != nil {
		view.Title = fmt.Sprintf("%s vs %s", in.SeriesA.Name, in.SeriesB.Name)
	}

	return view
}

func dataset(s *model.PriceSeries, color, axis string, hideGrid bool) model.ChartDataset {
	data := make([]float64, len(s.Points))
	for i, p := range s.Points {
		data[i] = p.Price
	}
	return model.ChartDataset{
		Label:       s.Name,
		Data:        data,
		BorderColor: color,
		FillColor:   color + fillAlpha,
		Axis:        axis,
		AxisTitle:   s.Name,
		HideGrid:    hideGrid,
	}
}

func timelineLabels(points []model.PricePoint) []string {
	labels := make([]string, len(points))
	for i, p := range points {
		labels[i] = p.Time.Format("Jan 2")
	}
	return labels
}
