// Package recipe serves the recipe catalogue exported as JSON lines, one
// recipe object per line keyed by RCP_SEQ.
package recipe

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	maxSteps    = 20
	maxLineSize = 4 << 20
)

// Step is one cooking instruction.
type Step struct {
	Step string `json:"step"`
	Text string `json:"text"`
	Img  string `json:"img"`
}

// Recipe is a raw recipe object as exported.
type Recipe map[string]any

// Seq returns the trimmed RCP_SEQ.
func (r Recipe) Seq() string {
	return field(r, "RCP_SEQ")
}

// Steps collects MANUAL01..20 and MANUAL_IMG01..20, skipping steps with
// neither text nor image.
func (r Recipe) Steps() []Step {
	steps := []Step{}
	for i := 1; i <= maxSteps; i++ {
		n := fmt.Sprintf("%02d", i)
		text := field(r, "MANUAL"+n)
		img := field(r, "MANUAL_IMG"+n)
		if text == "" && img == "" {
			continue
		}
		steps = append(steps, Step{Step: n, Text: text, Img: img})
	}
	return steps
}

// WithSteps returns a copy of r carrying MANUAL_STEPS.
func (r Recipe) WithSteps() Recipe {
	out := make(Recipe, len(r)+1)
	for k, v := range r {
		out[k] = v
	}
	out["MANUAL_STEPS"] = r.Steps()
	return out
}

func field(r Recipe, key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// Catalogue is an immutable RCP_SEQ index.
type Catalogue struct {
	bySeq map[string]Recipe
}

// LoadStats reports what Load kept and skipped.
type LoadStats struct {
	Loaded    int
	Malformed int
	NoSeq     int
}

// Load reads JSON lines from r. Blank lines are ignored, malformed lines and
// objects without RCP_SEQ are counted and skipped. The first recipe for a
// sequence wins.
func Load(r io.Reader) (*Catalogue, LoadStats, error) {
	var stats LoadStats
	cat := &Catalogue{bySeq: make(map[string]Recipe)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		dec := json.NewDecoder(bytes.NewReader(line))
		dec.UseNumber()

		var rec Recipe
		if err := dec.Decode(&rec); err != nil || rec == nil {
			stats.Malformed++
			continue
		}

		seq := rec.Seq()
		if seq == "" {
			stats.NoSeq++
			continue
		}
		if _, dup := cat.bySeq[seq]; !dup {
			cat.bySeq[seq] = rec
			stats.Loaded++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("reading recipes: %w", err)
	}

	return cat, stats, nil
}

// LoadFile loads the catalogue from a local JSONL file.
func LoadFile(path string) (*Catalogue, LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, err
	}
	defer f.Close()

	return Load(f)
}

// ObjectOpener streams an object from a bucket.
type ObjectOpener interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// LoadObject loads the catalogue from an object store.
func LoadObject(ctx context.Context, store ObjectOpener, key string) (*Catalogue, LoadStats, error) {
	body, err := store.Open(ctx, key)
	if err != nil {
		return nil, LoadStats{}, err
	}
	defer body.Close()

	return Load(body)
}

// Get returns the recipe with seq plus its MANUAL_STEPS.
func (c *Catalogue) Get(seq string) (Recipe, bool) {
	rec, ok := c.bySeq[strings.TrimSpace(seq)]
	if !ok {
		return nil, false
	}
	return rec.WithSteps(), true
}

func (c *Catalogue) Len() int {
	return len(c.bySeq)
}
