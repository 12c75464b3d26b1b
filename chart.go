package main

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"
)

// WriteDistributionChart renders the target and simulated probability
// distributions as a grouped bar chart and writes a standalone HTML page to
// path. One bar pair per basis state.
func WriteDistributionChart(path string, p GaussianParams, target, simulated []float64) error {
	if len(target) != len(simulated) {
		return fmt.Errorf("distribution chart: length mismatch, target %d vs simulated %d",
			len(target), len(simulated))
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Discrete periodic Gaussian state preparation",
			Subtitle: fmt.Sprintf("μ=%g  σ=%g  radius=%d", p.Mu, p.Sigma, p.Radius),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "basis state"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "probability"}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: opts.Bool(true),
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{Show: opts.Bool(true)},
			},
		}),
	)

	labels := make([]string, len(target))
	targetData := make([]opts.BarData, len(target))
	simulatedData := make([]opts.BarData, len(simulated))
	for i := range target {
		labels[i] = fmt.Sprintf("%d", i)
		targetData[i] = opts.BarData{Value: target[i]}
		simulatedData[i] = opts.BarData{Value: simulated[i]}
	}

	bar.SetXAxis(labels).
		AddSeries("target", targetData).
		AddSeries("simulated", simulatedData)

	page := components.NewPage().SetPageTitle("Gaussian state preparation")
	page.AddCharts(bar)

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "distribution chart: create output")
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		return errors.Wrap(err, "distribution chart: render")
	}
	return nil
}
