package food

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jbbaek/likelion-food/internal/cache"
	"github.com/jbbaek/likelion-food/internal/hangul"
)

var ErrMissingInitial = errors.New("initial is required")

const detailTTL = 10 * time.Minute

type Service struct {
	repo  Repository
	cache cache.Client
	log   logrus.FieldLogger
}

func NewService(repo Repository, c cache.Client, log logrus.FieldLogger) *Service {
	return &Service{
		repo:  repo,
		cache: c,
		log:   log.WithField("component", "food"),
	}
}

// List returns the first names alphabetically, or every match of search.
func (s *Service) List(ctx context.Context, search string) ([]FoodName, error) {
	search = strings.TrimSpace(search)
	if search == "" {
		return s.repo.List(ctx, listLimit)
	}
	return s.repo.Search(ctx, search, 0)
}

func (s *Service) Autocomplete(ctx context.Context, q string) ([]string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []string{}, nil
	}
	return s.repo.Autocomplete(ctx, q, autocompleteLimit)
}

// ByInitial lists foods whose name starts with a syllable carrying the given
// initial consonant.
func (s *Service) ByInitial(ctx context.Context, initial string) ([]FoodName, error) {
	initial = strings.TrimSpace(initial)
	if initial == "" {
		return nil, ErrMissingInitial
	}

	prefixes, err := hangul.Expand(initial)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ByPrefixes(ctx, prefixes, initialLimit)
	if err != nil {
		return nil, fmt.Errorf("searching by initial %q: %w", initial, err)
	}
	return rows, nil
}

// Get returns the nutrient detail, served from cache when possible.
func (s *Service) Get(ctx context.Context, id int64) (*Food, error) {
	key := "food:detail:" + strconv.FormatInt(id, 10)

	if raw, err := s.cache.Get(ctx, key); err == nil {
		var f Food
		if err := json.Unmarshal([]byte(raw), &f); err == nil {
			return &f, nil
		}
		s.log.WithField("key", key).Warn("dropping undecodable cache entry")
	} else if !errors.Is(err, cache.ErrMiss) {
		s.log.WithError(err).Warn("cache read failed")
	}

	f, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(f); err == nil {
		if err := s.cache.Set(ctx, key, string(raw), detailTTL); err != nil {
			s.log.WithError(err).Warn("cache write failed")
		}
	}
	return f, nil
}
