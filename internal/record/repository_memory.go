package record

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/jbbaek/likelion-food/internal/food"
)

// FoodLookup resolves the food a record points at.
type FoodLookup interface {
	Get(ctx context.Context, id int64) (*food.Food, error)
}

// InMemoryRepository joins records against foods the way the SQL store does.
type InMemoryRepository struct {
	mu      sync.RWMutex
	foods   FoodLookup
	records []Record
	nextID  int64
}

func NewInMemoryRepository(foods FoodLookup) *InMemoryRepository {
	return &InMemoryRepository{foods: foods, nextID: 1}
}

func (r *InMemoryRepository) Add(ctx context.Context, rec *Record) error {
	if _, err := r.foods.Get(ctx, rec.FoodID); err != nil {
		if errors.Is(err, food.ErrFoodNotFound) {
			return ErrUnknownFood
		}
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec.ID = r.nextID
	r.nextID++
	rec.CreatedAt = time.Now()
	r.records = append(r.records, *rec)
	return nil
}

func (r *InMemoryRepository) ListByDate(ctx context.Context, userID int64, date time.Time) ([]Entry, error) {
	out := []Entry{}
	for _, rec := range r.matching(userID, func(d time.Time) bool { return sameDay(d, date) }) {
		f, err := r.foods.Get(ctx, rec.FoodID)
		if err != nil {
			return nil, err
		}
		out = append(out, Entry{
			ID:         rec.ID,
			FoodID:     f.ID,
			FoodName:   f.FoodName,
			EnergyKcal: f.EnergyKcal,
			Quantity:   rec.Quantity,
			MealType:   MealLabel(rec.MealType),
		})
	}
	return out, nil
}

func (r *InMemoryRepository) Delete(_ context.Context, userID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, rec := range r.records {
		if rec.ID == id && rec.UserID == userID {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return ErrRecordNotFound
}

func (r *InMemoryRepository) Summary(ctx context.Context, userID int64, date time.Time) (Summary, error) {
	var s Summary
	for _, rec := range r.matching(userID, func(d time.Time) bool { return sameDay(d, date) }) {
		f, err := r.foods.Get(ctx, rec.FoodID)
		if err != nil {
			return Summary{}, err
		}
		s.TotalKcal += value(f.EnergyKcal) * rec.Quantity
		s.TotalCarbs += value(f.CarbohydrateG) * rec.Quantity
		s.TotalProtein += value(f.ProteinG) * rec.Quantity
		s.TotalFat += value(f.FatG) * rec.Quantity
	}
	return s, nil
}

func (r *InMemoryRepository) DailyTotals(ctx context.Context, userID int64, since time.Time) ([]DailyTotal, error) {
	sums := make(map[time.Time]float64)
	for _, rec := range r.matching(userID, func(d time.Time) bool { return !d.Before(dateOnly(since)) }) {
		f, err := r.foods.Get(ctx, rec.FoodID)
		if err != nil {
			return nil, err
		}
		sums[dateOnly(rec.RecordDate)] += value(f.EnergyKcal) * rec.Quantity
	}

	out := make([]DailyTotal, 0, len(sums))
	for d, kcal := range sums {
		out = append(out, DailyTotal{Date: d, TotalKcal: math.Round(kcal*100) / 100})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *InMemoryRepository) matching(userID int64, day func(time.Time) bool) []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Record
	for _, rec := range r.records {
		if rec.UserID == userID && day(dateOnly(rec.RecordDate)) {
			out = append(out, rec)
		}
	}
	return out
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return dateOnly(a).Equal(dateOnly(b))
}

func value(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
