package weekly

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBucket_TwoWeeks(t *testing.T) {
	res := Bucket([]Sample{
		{Date: date(2024, 6, 10), TotalKcal: 1800},
		{Date: date(2024, 6, 16), TotalKcal: 2200},
	})

	require.Len(t, res.Weeks, 2)

	first, ok := res.Week("6/9 ~ 6/15")
	require.True(t, ok)
	assert.Equal(t, date(2024, 6, 9), first.Start)
	assert.Equal(t, date(2024, 6, 15), first.End)
	assert.Equal(t, []DayCalories{{Day: "월", Calories: 1800}}, first.Items)

	second, ok := res.Week("6/16 ~ 6/22")
	require.True(t, ok)
	assert.Equal(t, []DayCalories{{Day: "일", Calories: 2200}}, second.Items)

	assert.Equal(t, "6/16 ~ 6/22", res.Default)
	assert.Equal(t, []string{"6/9 ~ 6/15", "6/16 ~ 6/22"}, res.Labels())
}

func TestBucket_SameWeekKeepsInputOrder(t *testing.T) {
	res := Bucket([]Sample{
		{Date: date(2024, 6, 14), TotalKcal: 1500.4},
		{Date: date(2024, 6, 9), TotalKcal: 1999.5},
		{Date: date(2024, 6, 11), TotalKcal: 0},
	})

	require.Len(t, res.Weeks, 1)
	w, _ := res.Selected()
	assert.Equal(t, []DayCalories{
		{Day: "금", Calories: 1500},
		{Day: "일", Calories: 2000},
		{Day: "화", Calories: 0},
	}, w.Items)
}

func TestBucket_EveryItemMatchesItsWeek(t *testing.T) {
	var samples []Sample
	for d := 1; d <= 30; d++ {
		samples = append(samples, Sample{Date: date(2024, 9, d), TotalKcal: float64(d * 100)})
	}
	res := Bucket(samples)

	total := 0
	for label, w := range res.Weeks {
		assert.Equal(t, label, Label(w.Start))
		assert.Equal(t, time.Sunday, w.Start.Weekday())
		total += len(w.Items)
	}
	assert.Equal(t, len(samples), total)
	assert.Equal(t, "9/29 ~ 10/5", res.Default)
}

func TestBucket_DefaultIsLatestRegardlessOfInputOrder(t *testing.T) {
	res := Bucket([]Sample{
		{Date: date(2024, 12, 31), TotalKcal: 100},
		{Date: date(2024, 12, 2), TotalKcal: 100},
	})
	assert.Equal(t, "12/29 ~ 1/4", res.Default)
}

func TestBucket_Empty(t *testing.T) {
	res := Bucket(nil)
	assert.Empty(t, res.Weeks)
	assert.Equal(t, "", res.Default)
	assert.Empty(t, res.Labels())

	_, ok := res.Selected()
	assert.False(t, ok)
}

func TestBucket_LabelsCollideAcrossYears(t *testing.T) {
	// 2023-06-11 and 2028-06-11 are both Sundays.
	res := Bucket([]Sample{
		{Date: date(2023, 6, 12), TotalKcal: 1000},
		{Date: date(2028, 6, 12), TotalKcal: 3000},
	})
	require.Len(t, res.Weeks, 1)
	w, _ := res.Week("6/11 ~ 6/17")
	assert.Len(t, w.Items, 2)
}

func TestWeek_Mean(t *testing.T) {
	w := &Week{Items: []DayCalories{{Calories: 1800}, {Calories: 2200}}}
	assert.Equal(t, 2000.0, w.Mean())
	assert.Equal(t, 0.0, (&Week{}).Mean())

	var nilWeek *Week
	assert.Equal(t, 0.0, nilWeek.Mean())
}

func TestWeekStart_UsesCalendarDate(t *testing.T) {
	kst := time.FixedZone("KST", 9*3600)
	d := time.Date(2024, 6, 16, 1, 30, 0, 0, kst)
	assert.Equal(t, date(2024, 6, 16), WeekStart(d))
}

func TestRenderChart(t *testing.T) {
	res := Bucket([]Sample{
		{Date: date(2024, 6, 10), TotalKcal: 1800},
		{Date: date(2024, 6, 11), TotalKcal: 2600},
	})
	w, _ := res.Selected()

	var buf bytes.Buffer
	require.NoError(t, RenderChart(&buf, "주간 섭취량", w))
	assert.Contains(t, buf.String(), "주간 섭취량")
	assert.Contains(t, buf.String(), "echarts")

	assert.Error(t, RenderChart(&buf, "x", nil))
}
