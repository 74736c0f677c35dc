package record

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jbbaek/likelion-food/internal/weekly"
)

var (
	ErrMissingFields   = errors.New("food_id, record_date and meal_type are required")
	ErrInvalidMealType = errors.New("invalid meal_type")
	ErrInvalidDate     = errors.New("record_date must be YYYY-MM-DD")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrUnknownWeek     = errors.New("unknown week")
)

// summaryDays is how far back the weekly summary reaches.
const summaryDays = 7

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// AddInput is the body of an add request. Quantity defaults to 1.
type AddInput struct {
	FoodID     int64    `json:"food_id"`
	Quantity   *float64 `json:"quantity"`
	RecordDate string   `json:"record_date"`
	MealType   string   `json:"meal_type"`
}

func (s *Service) Add(ctx context.Context, userID int64, in AddInput) (*Record, error) {
	if in.FoodID <= 0 || strings.TrimSpace(in.RecordDate) == "" || strings.TrimSpace(in.MealType) == "" {
		return nil, ErrMissingFields
	}

	date, err := ParseDate(in.RecordDate)
	if err != nil {
		return nil, err
	}

	meal, ok := ParseMealType(in.MealType)
	if !ok {
		return nil, ErrInvalidMealType
	}

	qty := 1.0
	if in.Quantity != nil {
		qty = *in.Quantity
	}
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	rec := &Record{
		UserID:     userID,
		FoodID:     in.FoodID,
		Quantity:   qty,
		RecordDate: date,
		MealType:   meal,
	}
	if err := s.repo.Add(ctx, rec); err != nil {
		if errors.Is(err, ErrUnknownFood) {
			return nil, err
		}
		return nil, fmt.Errorf("adding record: %w", err)
	}
	return rec, nil
}

func (s *Service) List(ctx context.Context, userID int64, recordDate string) ([]Entry, error) {
	date, err := ParseDate(recordDate)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByDate(ctx, userID, date)
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	return s.repo.Delete(ctx, userID, id)
}

func (s *Service) Summary(ctx context.Context, userID int64, recordDate string) (Summary, error) {
	date, err := ParseDate(recordDate)
	if err != nil {
		return Summary{}, err
	}
	return s.repo.Summary(ctx, userID, date)
}

// WeeklySummary returns per-day totals for today and the seven days before.
func (s *Service) WeeklySummary(ctx context.Context, userID int64) ([]DailyTotal, error) {
	since := dateOnly(s.now()).AddDate(0, 0, -summaryDays)
	return s.repo.DailyTotals(ctx, userID, since)
}

// Chart is the weekly chart payload.
type Chart struct {
	Weeks       map[string][]weekly.DayCalories `json:"weeks"`
	Labels      []string                        `json:"labels"`
	Selected    *string                         `json:"selected"`
	Mean        float64                         `json:"mean"`
	Recommended int                             `json:"recommended"`

	week *weekly.Week
}

// Week is the selected bucket, nil when there is no data.
func (c *Chart) Week() *weekly.Week {
	return c.week
}

// WeeklyChart buckets the weekly summary by week. An empty label selects the
// latest week.
func (s *Service) WeeklyChart(ctx context.Context, userID int64, label string) (*Chart, error) {
	totals, err := s.WeeklySummary(ctx, userID)
	if err != nil {
		return nil, err
	}

	samples := make([]weekly.Sample, len(totals))
	for i, t := range totals {
		samples[i] = weekly.Sample{Date: t.Date, TotalKcal: t.TotalKcal}
	}
	res := weekly.Bucket(samples)

	chart := &Chart{
		Weeks:       make(map[string][]weekly.DayCalories, len(res.Weeks)),
		Labels:      res.Labels(),
		Recommended: weekly.RecommendedKcal,
	}
	for l, w := range res.Weeks {
		chart.Weeks[l] = w.Items
	}

	label = strings.TrimSpace(label)
	if label == "" {
		label = res.Default
	}
	if label == "" {
		return chart, nil
	}

	w, ok := res.Week(label)
	if !ok {
		return nil, ErrUnknownWeek
	}
	chart.Selected = &w.Label
	chart.Mean = w.Mean()
	chart.week = w
	return chart, nil
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}
