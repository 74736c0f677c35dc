package food

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbbaek/likelion-food/internal/cache"
	"github.com/jbbaek/likelion-food/internal/hangul"
	"github.com/jbbaek/likelion-food/internal/logging"
)

func kcal(v float64) *float64 { return &v }

func seededRepo() *InMemoryRepository {
	repo := NewInMemoryRepository()
	for _, name := range []string{
		"김치찌개", "가지볶음", "김치찌개", "나물비빔밥", "된장찌개",
		"고등어구이", "꼬막무침", "하이라이스", "힘찬주스", "apple_pie",
	} {
		repo.Add(Food{FoodName: name, EnergyKcal: kcal(100)})
	}
	return repo
}

// countingRepo counts detail lookups that reach the store.
type countingRepo struct {
	Repository
	gets int
}

func (r *countingRepo) Get(ctx context.Context, id int64) (*Food, error) {
	r.gets++
	return r.Repository.Get(ctx, id)
}

func newService(repo Repository) *Service {
	return NewService(repo, cache.NewMemory(), logging.Discard())
}

func names(rows []FoodName) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.FoodName
	}
	return out
}

func TestList(t *testing.T) {
	s := newService(seededRepo())
	ctx := context.Background()

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 9, "duplicate names collapse")
	assert.Equal(t, "apple_pie", all[0].FoodName)

	// duplicate name keeps the lowest id
	for _, row := range all {
		if row.FoodName == "김치찌개" {
			assert.Equal(t, int64(1), row.ID)
		}
	}

	found, err := s.List(ctx, " 찌개 ")
	require.NoError(t, err)
	assert.Equal(t, []string{"김치찌개", "된장찌개"}, names(found))
}

func TestAutocomplete(t *testing.T) {
	s := newService(seededRepo())
	ctx := context.Background()

	empty, err := s.Autocomplete(ctx, "   ")
	require.NoError(t, err)
	assert.Equal(t, []string{}, empty)

	got, err := s.Autocomplete(ctx, "치")
	require.NoError(t, err)
	assert.Equal(t, []string{"김치찌개"}, got)
}

func TestByInitial(t *testing.T) {
	s := newService(seededRepo())
	ctx := context.Background()

	t.Run("simple consonant", func(t *testing.T) {
		rows, err := s.ByInitial(ctx, "ㄱ")
		require.NoError(t, err)
		// 꼬막무침 starts with the double consonant and is excluded
		assert.Equal(t, []string{"가지볶음", "고등어구이"}, names(rows))
	})

	t.Run("prefixes carry no final consonant", func(t *testing.T) {
		// 김 and 힘 have a final consonant, so they are not 기/히 prefixes
		rows, err := s.ByInitial(ctx, "ㅎ")
		require.NoError(t, err)
		assert.Equal(t, []string{"하이라이스"}, names(rows))
	})

	t.Run("no matches", func(t *testing.T) {
		rows, err := s.ByInitial(ctx, "ㅋ")
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := s.ByInitial(ctx, " ")
		assert.ErrorIs(t, err, ErrMissingInitial)
	})

	t.Run("double consonant rejected", func(t *testing.T) {
		_, err := s.ByInitial(ctx, "ㄲ")
		assert.ErrorIs(t, err, hangul.ErrUnsupportedConsonant)
	})
}

func TestGet_UsesCache(t *testing.T) {
	repo := &countingRepo{Repository: seededRepo()}
	s := newService(repo)
	ctx := context.Background()

	first, err := s.Get(ctx, 1)
	require.NoError(t, err)
	second, err := s.Get(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.gets)
	assert.InDelta(t, 100.0, *second.EnergyKcal, 0.001)
}

func TestGet_NotFound(t *testing.T) {
	s := newService(seededRepo())

	_, err := s.Get(context.Background(), 999)
	assert.ErrorIs(t, err, ErrFoodNotFound)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\d`, escapeLike(`c:\d`))
	assert.Equal(t, "김치", escapeLike("김치"))
}
