package frequency

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/teatak/wordlike/dictionary"
	"github.com/teatak/wordlike/ngram"
)

// Table maps every gram of one length to the corpus weight accumulated for it.
// A Table is read-only once built and safe for concurrent readers.
type Table struct {
	size   int
	counts map[ngram.Gram]uint64
	total  uint64
}

// Pair is a gram with its accumulated weight.
type Pair struct {
	Gram   ngram.Gram
	Weight uint64
}

func newTable(size int) *Table {
	return &Table{
		size:   size,
		counts: make(map[ngram.Gram]uint64),
	}
}

// Build aggregates the grams of length n over all corpus entries.
// Every occurrence of a gram in a word adds that entry's weight once.
func Build(entries []dictionary.Entry, n int) *Table {
	t := newTable(n)
	for _, e := range entries {
		t.add(e)
	}
	return t
}

func (t *Table) add(e dictionary.Entry) {
	for g := range ngram.Grams(e.Word, t.size) {
		t.counts[g] += e.Weight
		t.total += e.Weight
	}
}

// merge folds other into t by summing weights per gram.
func (t *Table) merge(other *Table) {
	for g, w := range other.counts {
		t.counts[g] += w
	}
	t.total += other.total
}

// Size returns the gram length the table was built for.
func (t *Table) Size() int {
	return t.size
}

// Len returns the number of distinct grams.
func (t *Table) Len() int {
	return len(t.counts)
}

// Total returns the sum of all weights in the table.
func (t *Table) Total() uint64 {
	return t.total
}

// Get returns the weight of a gram.
func (t *Table) Get(g ngram.Gram) (uint64, bool) {
	w, ok := t.counts[g]
	return w, ok
}

// Score sums the table weights of the word's grams. Unseen grams add 0.
func (t *Table) Score(word string) uint64 {
	var sum uint64
	for g := range ngram.Grams(word, t.size) {
		sum += t.counts[g]
	}
	return sum
}

// Score is the free-function form of Table.Score. It returns 0 when n does
// not match the length the table was built for.
func Score(word string, n int, t *Table) uint64 {
	if t == nil || n != t.size {
		return 0
	}
	return t.Score(word)
}

// Top returns the k heaviest grams, heaviest first, ties ordered by gram.
// A k of zero or less returns every gram.
func (t *Table) Top(k int) []Pair {
	pairs := make([]Pair, 0, len(t.counts))
	for g, w := range t.counts {
		pairs = append(pairs, Pair{Gram: g, Weight: w})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Weight != pairs[j].Weight {
			return pairs[i].Weight > pairs[j].Weight
		}
		return pairs[i].Gram < pairs[j].Gram
	})
	if k > 0 && k < len(pairs) {
		pairs = pairs[:k]
	}
	return pairs
}

// WriteTop writes the result of Top(k) as "gram<TAB>weight" lines.
func (t *Table) WriteTop(w io.Writer, k int) error {
	writer := bufio.NewWriter(w)
	for _, p := range t.Top(k) {
		if _, err := fmt.Fprintf(writer, "%s\t%d\n", p.Gram, p.Weight); err != nil {
			return err
		}
	}
	return writer.Flush()
}
