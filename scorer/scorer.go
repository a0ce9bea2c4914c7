package scorer

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/teatak/wordlike/dictionary"
	"github.com/teatak/wordlike/frequency"
	"github.com/teatak/wordlike/ngram"
)

var (
	ErrNoTables      = errors.New("scorer needs at least one frequency table")
	ErrDuplicateSize = errors.New("duplicate gram length")
)

// Scorer ranks words by how closely their grams follow a corpus.
type Scorer struct {
	tables []*frequency.Table
}

// Component is the share of one gram length in a word's key.
type Component struct {
	Size    int    `json:"n"`
	Raw     uint64 `json:"raw"`
	Windows int    `json:"windows"`
}

// Ranked is a word with its composite key.
type Ranked struct {
	Word string  `json:"word"`
	Key  float64 `json:"key"`
}

// New creates a scorer over tables of distinct gram lengths.
func New(tables ...*frequency.Table) (*Scorer, error) {
	if len(tables) == 0 {
		return nil, ErrNoTables
	}
	seen := make(map[int]bool, len(tables))
	for _, t := range tables {
		if t == nil {
			return nil, errors.New("nil frequency table")
		}
		if seen[t.Size()] {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateSize, t.Size())
		}
		seen[t.Size()] = true
	}
	sorted := append([]*frequency.Table(nil), tables...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Size() < sorted[j].Size()
	})
	return &Scorer{tables: sorted}, nil
}

// FromCorpus builds one table per gram length and returns a scorer over them.
func FromCorpus(ctx context.Context, entries []dictionary.Entry, sizes []int, workers int) (*Scorer, error) {
	tables := make([]*frequency.Table, 0, len(sizes))
	for _, n := range sizes {
		if n < 1 {
			return nil, fmt.Errorf("invalid gram length %d", n)
		}
		t, err := frequency.BuildParallel(ctx, entries, n, workers)
		if err != nil {
			return nil, fmt.Errorf("build table n=%d: %w", n, err)
		}
		tables = append(tables, t)
	}
	return New(tables...)
}

// Sizes returns the gram lengths in ascending order.
func (s *Scorer) Sizes() []int {
	sizes := make([]int, len(s.tables))
	for i, t := range s.tables {
		sizes[i] = t.Size()
	}
	return sizes
}

// Table returns the table for gram length n.
func (s *Scorer) Table(n int) (*frequency.Table, bool) {
	for _, t := range s.tables {
		if t.Size() == n {
			return t, true
		}
	}
	return nil, false
}

// Breakdown returns the raw score and window count of word for every length.
func (s *Scorer) Breakdown(word string) []Component {
	out := make([]Component, len(s.tables))
	for i, t := range s.tables {
		out[i] = Component{
			Size:    t.Size(),
			Raw:     t.Score(word),
			Windows: ngram.Count(word, t.Size()),
		}
	}
	return out
}

// Key is the summed raw score over all lengths divided by the summed window
// count. A word with no windows at any length has key 0.
func (s *Scorer) Key(word string) float64 {
	return KeyOf(s.Breakdown(word))
}

// KeyOf combines an already computed breakdown into a key.
func KeyOf(components []Component) float64 {
	var raw float64
	var windows int
	for _, c := range components {
		raw += float64(c.Raw)
		windows += c.Windows
	}
	if windows == 0 {
		return 0
	}
	return raw / float64(windows)
}

// Rank orders words by key, highest first. Words with equal keys keep
// their input order.
func (s *Scorer) Rank(words []string) []Ranked {
	ranked := make([]Ranked, len(words))
	for i, w := range words {
		ranked[i] = Ranked{Word: w, Key: s.Key(w)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Key > ranked[j].Key
	})
	return ranked
}

// Words returns the words of a ranking in order.
func Words(ranked []Ranked) []string {
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.Word
	}
	return out
}
