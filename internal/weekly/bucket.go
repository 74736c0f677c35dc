// Package weekly groups daily calorie totals into Sunday-anchored weeks for
// the intake chart.
package weekly

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// RecommendedKcal is the fixed daily reference drawn on the chart.
const RecommendedKcal = 2000

// DayNames is indexed by time.Weekday (0 = Sunday).
var DayNames = [7]string{"일", "월", "화", "수", "목", "금", "토"}

// Sample is one day's total intake.
type Sample struct {
	Date      time.Time `json:"date"`
	TotalKcal float64   `json:"total_kcal"`
}

// DayCalories is one bar of the chart.
type DayCalories struct {
	Day      string `json:"day"`
	Calories int    `json:"calories"`
}

// Week is a Sunday..Saturday bucket. Items keep the order samples arrived in.
type Week struct {
	Label string        `json:"label"`
	Start time.Time     `json:"start"`
	End   time.Time     `json:"end"`
	Items []DayCalories `json:"items"`
}

// Mean is the average of the week's calories, or 0 for an empty week.
func (w *Week) Mean() float64 {
	if w == nil || len(w.Items) == 0 {
		return 0
	}
	sum := 0
	for _, it := range w.Items {
		sum += it.Calories
	}
	return float64(sum) / float64(len(w.Items))
}

// Result is the outcome of Bucket. Default is empty when there is no data.
type Result struct {
	Weeks   map[string]*Week
	Default string
}

// Labels returns the week labels ordered by week start.
func (r Result) Labels() []string {
	labels := make([]string, 0, len(r.Weeks))
	for l := range r.Weeks {
		labels = append(labels, l)
	}
	sort.SliceStable(labels, func(i, j int) bool {
		return r.Weeks[labels[i]].Start.Before(r.Weeks[labels[j]].Start)
	})
	return labels
}

// Week returns the bucket for label.
func (r Result) Week(label string) (*Week, bool) {
	w, ok := r.Weeks[label]
	return w, ok
}

// Selected returns the default week, if any.
func (r Result) Selected() (*Week, bool) {
	if r.Default == "" {
		return nil, false
	}
	return r.Week(r.Default)
}

// WeekStart returns the Sunday on or before d, at midnight UTC.
func WeekStart(d time.Time) time.Time {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// Label formats a week as "M/D ~ M/D". The year is not part of the label, so
// weeks exactly a year apart can share one.
func Label(start time.Time) string {
	end := start.AddDate(0, 0, 6)
	return fmt.Sprintf("%d/%d ~ %d/%d", int(start.Month()), start.Day(), int(end.Month()), end.Day())
}

// Bucket groups samples into weeks and picks the latest week as default.
func Bucket(samples []Sample) Result {
	res := Result{Weeks: make(map[string]*Week)}

	for _, s := range samples {
		start := WeekStart(s.Date)
		label := Label(start)

		w, ok := res.Weeks[label]
		if !ok {
			w = &Week{
				Label: label,
				Start: start,
				End:   start.AddDate(0, 0, 6),
				Items: []DayCalories{},
			}
			res.Weeks[label] = w
		}

		w.Items = append(w.Items, DayCalories{
			Day:      DayNames[s.Date.Weekday()],
			Calories: int(math.Round(s.TotalKcal)),
		})
	}

	if labels := res.Labels(); len(labels) > 0 {
		res.Default = labels[len(labels)-1]
	}
	return res
}
