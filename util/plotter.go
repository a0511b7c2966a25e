package util

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"course-server/models"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

var ErrNoWeightedAssessments = errors.New("no weighted assessments to plot")

// RenderAssessmentChart writes an HTML pie chart of a course's assessment weights.
// Components without a weight are left out.
func RenderAssessmentChart(w io.Writer, title string, assessments models.Assessments) error {
	names := make([]string, 0, len(assessments))
	for name, weight := range assessments {
		if weight != nil {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return ErrNoWeightedAssessments
	}
	sort.Strings(names)

	items := make([]opts.PieData, 0, len(names))
	for _, name := range names {
		items = append(items, opts.PieData{Name: name, Value: *assessments[name]})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "800px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
	)
	pie.AddSeries("Assessments", items).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}: {c}",
		}))

	if err := pie.Render(w); err != nil {
		return fmt.Errorf("failed to render assessment chart: %w", err)
	}
	return nil
}
