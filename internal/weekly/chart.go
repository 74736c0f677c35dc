package weekly

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	barColor  = "#F97316"
	overColor = "#DC2626"
	yAxisMax  = 2500
)

// RenderChart writes an HTML bar chart of one week: a bar per item, the
// recommended reference line and the week's mean.
func RenderChart(w io.Writer, title string, week *Week) error {
	if week == nil {
		return fmt.Errorf("render chart: no week selected")
	}

	days := make([]string, 0, len(week.Items))
	data := make([]opts.BarData, 0, len(week.Items))
	for _, it := range week.Items {
		color := barColor
		if it.Calories > RecommendedKcal {
			color = overColor
		}
		days = append(days, it.Day)
		data = append(data, opts.BarData{
			Value:     it.Calories,
			ItemStyle: &opts.ItemStyle{Color: color},
		})
	}

	mean := math.Round(week.Mean())
	max := yAxisMax
	for _, it := range week.Items {
		if it.Calories > max {
			max = it.Calories
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "900px",
			Height:    "420px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: week.Label,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "칼로리 (kcal)",
			Min:  0,
			Max:  max,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	bar.SetXAxis(days).AddSeries("kcal", data,
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Position: "top",
		}),
		charts.WithMarkLineNameYAxisItemOpts(
			opts.MarkLineNameYAxisItem{Name: "권장 2,000 kcal", YAxis: RecommendedKcal},
			opts.MarkLineNameYAxisItem{Name: fmt.Sprintf("평균 %.0f kcal", mean), YAxis: mean},
		),
	)

	return bar.Render(w)
}
