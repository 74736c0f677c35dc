package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{"RCP_SEQ": "31", "RCP_NM": "새우 두부 계란찜", "INFO_ENG": "220", "MANUAL01": "손질된 새우를 끓는 물에 데친다.", "MANUAL_IMG01": "http://img/1.png", "MANUAL02": "", "MANUAL_IMG02": "", "MANUAL03": "찜기에 찐다."}

not json at all
{"RCP_NM": "no sequence"}
{"RCP_SEQ": 40, "RCP_NM": "부추 콩가루 찜"}
{"RCP_SEQ": "31", "RCP_NM": "duplicate"}
`

func loadSample(t *testing.T) (*Catalogue, LoadStats) {
	t.Helper()
	cat, stats, err := Load(strings.NewReader(sample))
	require.NoError(t, err)
	return cat, stats
}

func TestLoad(t *testing.T) {
	cat, stats := loadSample(t)

	assert.Equal(t, LoadStats{Loaded: 2, Malformed: 1, NoSeq: 1}, stats)
	assert.Equal(t, 2, cat.Len())

	rec, ok := cat.Get("31")
	require.True(t, ok)
	assert.Equal(t, "새우 두부 계란찜", rec["RCP_NM"])

	numeric, ok := cat.Get(" 40 ")
	require.True(t, ok)
	assert.Equal(t, "부추 콩가루 찜", numeric["RCP_NM"])

	_, ok = cat.Get("999")
	assert.False(t, ok)
}

func TestSteps(t *testing.T) {
	cat, _ := loadSample(t)

	rec, _ := cat.Get("31")
	steps, ok := rec["MANUAL_STEPS"].([]Step)
	require.True(t, ok)
	assert.Equal(t, []Step{
		{Step: "01", Text: "손질된 새우를 끓는 물에 데친다.", Img: "http://img/1.png"},
		{Step: "03", Text: "찜기에 찐다."},
	}, steps)

	rec40, _ := cat.Get("40")
	assert.Equal(t, []Step{}, rec40["MANUAL_STEPS"])
}

func TestGetDoesNotMutateCatalogue(t *testing.T) {
	cat, _ := loadSample(t)

	rec, _ := cat.Get("31")
	rec["RCP_NM"] = "changed"

	again, _ := cat.Get("31")
	assert.Equal(t, "새우 두부 계란찜", again["RCP_NM"])
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	cat, _, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())

	_, _, err = LoadFile(filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.Error(t, err)
}

type fakeStore map[string]string

func (f fakeStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	body, ok := f[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

func TestLoadObject(t *testing.T) {
	store := fakeStore{"artifacts/recipes.jsonl": sample}

	cat, stats, err := LoadObject(context.Background(), store, "artifacts/recipes.jsonl")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Loaded)
	assert.Equal(t, 2, cat.Len())

	_, _, err = LoadObject(context.Background(), store, "other.jsonl")
	assert.Error(t, err)
}

func TestBySeqHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cat, _ := loadSample(t)

	r := gin.New()
	r.GET("/api/recipes/by-seq/:seq", NewHandler(cat).BySeq)

	req := httptest.NewRequest(http.MethodGet, "/api/recipes/by-seq/31", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "31", body["RCP_SEQ"])
	assert.Len(t, body["MANUAL_STEPS"], 2)

	req = httptest.NewRequest(http.MethodGet, "/api/recipes/by-seq/404", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBySeqHandler_NoCatalogue(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/api/recipes/by-seq/:seq", NewHandler(nil).BySeq)

	req := httptest.NewRequest(http.MethodGet, "/api/recipes/by-seq/31", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
