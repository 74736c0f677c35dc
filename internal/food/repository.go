package food

import (
	"context"
	"errors"
	"strings"
)

var ErrFoodNotFound = errors.New("food not found")

const (
	listLimit         = 100
	autocompleteLimit = 10
	initialLimit      = 500
)

type Repository interface {
	// List returns distinct names with their lowest id, ordered by name.
	List(ctx context.Context, limit int) ([]FoodName, error)
	// Search matches names containing term. limit <= 0 means no limit.
	Search(ctx context.Context, term string, limit int) ([]FoodName, error)
	Autocomplete(ctx context.Context, term string, limit int) ([]string, error)
	// ByPrefixes matches names starting with any of prefixes.
	ByPrefixes(ctx context.Context, prefixes []string, limit int) ([]FoodName, error)
	Get(ctx context.Context, id int64) (*Food, error)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike quotes LIKE metacharacters so s matches literally. Postgres
// uses backslash as the default LIKE escape.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
