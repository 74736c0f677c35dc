package food

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// InMemoryRepository backs tests and local runs without Postgres.
type InMemoryRepository struct {
	mu     sync.RWMutex
	foods  []Food
	nextID int64
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

// Add stores f with the next id and returns it.
func (r *InMemoryRepository) Add(f Food) Food {
	r.mu.Lock()
	defer r.mu.Unlock()

	f.ID = r.nextID
	r.nextID++
	r.foods = append(r.foods, f)
	return f
}

func (r *InMemoryRepository) List(_ context.Context, limit int) ([]FoodName, error) {
	return r.distinct(func(string) bool { return true }, limit), nil
}

func (r *InMemoryRepository) Search(_ context.Context, term string, limit int) ([]FoodName, error) {
	return r.distinct(func(name string) bool {
		return strings.Contains(name, term)
	}, limit), nil
}

func (r *InMemoryRepository) Autocomplete(_ context.Context, term string, limit int) ([]string, error) {
	rows := r.distinct(func(name string) bool {
		return strings.Contains(name, term)
	}, limit)

	names := make([]string, len(rows))
	for i, row := range rows {
		names[i] = row.FoodName
	}
	return names, nil
}

func (r *InMemoryRepository) ByPrefixes(_ context.Context, prefixes []string, limit int) ([]FoodName, error) {
	return r.distinct(func(name string) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(name, p) {
				return true
			}
		}
		return false
	}, limit), nil
}

func (r *InMemoryRepository) Get(_ context.Context, id int64) (*Food, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, f := range r.foods {
		if f.ID == id {
			found := f
			return &found, nil
		}
	}
	return nil, ErrFoodNotFound
}

// distinct groups matching names by their lowest id, ordered by name.
func (r *InMemoryRepository) distinct(match func(string) bool, limit int) []FoodName {
	r.mu.RLock()
	defer r.mu.RUnlock()

	minID := make(map[string]int64)
	for _, f := range r.foods {
		if !match(f.FoodName) {
			continue
		}
		if id, ok := minID[f.FoodName]; !ok || f.ID < id {
			minID[f.FoodName] = f.ID
		}
	}

	out := make([]FoodName, 0, len(minID))
	for name, id := range minID {
		out = append(out, FoodName{ID: id, FoodName: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FoodName < out[j].FoodName })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
