package frequency

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teatak/wordlike/dictionary"
	"github.com/teatak/wordlike/ngram"
)

func testCorpus() []dictionary.Entry {
	return []dictionary.Entry{
		{Word: "the", Weight: 100},
		{Word: "then", Weight: 20},
		{Word: "tent", Weight: 5},
		{Word: "at", Weight: 7},
		{Word: "the", Weight: 1},
		{Word: "a", Weight: 3},
	}
}

func TestBuild_SingleWord(t *testing.T) {
	table := Build([]dictionary.Entry{{Word: "ab", Weight: 5}}, 2)

	require.Equal(t, 3, table.Len())
	for _, g := range []string{"^a", "ab", "b$"} {
		w, ok := table.Get(ngram.Gram(g))
		assert.True(t, ok, g)
		assert.Equal(t, uint64(5), w, g)
	}

	assert.Equal(t, uint64(15), table.Score("ab"))
	assert.Equal(t, uint64(0), table.Score("ba"))
	assert.Equal(t, uint64(15), Score("ab", 2, table))
}

func TestBuild_RepeatedGramCountsEachTime(t *testing.T) {
	// "aaa" at n=2 yields ^a, aa, aa, a$.
	table := Build([]dictionary.Entry{{Word: "aaa", Weight: 3}}, 2)
	w, _ := table.Get("aa")
	assert.Equal(t, uint64(6), w)
}

func TestBuild_DuplicateEntriesAccumulate(t *testing.T) {
	table := Build(testCorpus(), 3)
	w, _ := table.Get("^th")
	assert.Equal(t, uint64(121), w)
	w, _ = table.Get("he$")
	assert.Equal(t, uint64(101), w)
}

func TestBuild_TotalMatchesWindowCounts(t *testing.T) {
	entries := testCorpus()
	for n := 1; n <= 5; n++ {
		table := Build(entries, n)

		var want uint64
		for _, e := range entries {
			want += e.Weight * uint64(ngram.Count(e.Word, n))
		}
		var sum uint64
		for _, p := range table.Top(0) {
			sum += p.Weight
		}
		assert.Equal(t, want, sum, "n=%d", n)
		assert.Equal(t, want, table.Total(), "n=%d", n)
	}
}

func TestBuild_OrderIndependent(t *testing.T) {
	entries := testCorpus()
	reversed := make([]dictionary.Entry, len(entries))
	for i, e := range entries {
		reversed[len(entries)-1-i] = e
	}
	assert.Equal(t, Build(entries, 2).Top(0), Build(reversed, 2).Top(0))
}

func TestScore_ShortWord(t *testing.T) {
	table := Build(testCorpus(), 4)
	assert.Equal(t, uint64(0), table.Score("a"))
	assert.Equal(t, uint64(0), table.Score(""))
}

func TestScore_LengthMismatch(t *testing.T) {
	table := Build(testCorpus(), 2)
	assert.Equal(t, uint64(0), Score("the", 3, table))
	assert.Equal(t, uint64(0), Score("the", 2, nil))
}

func TestTop(t *testing.T) {
	table := Build([]dictionary.Entry{
		{Word: "ab", Weight: 5},
		{Word: "b", Weight: 2},
	}, 2)

	assert.Equal(t, []Pair{
		{"b$", 7},
		{"^a", 5},
		{"ab", 5},
	}, table.Top(3))
	assert.Len(t, table.Top(1), 1)
	assert.Len(t, table.Top(0), 4)
	assert.Len(t, table.Top(100), 4)
}

func TestWriteTop(t *testing.T) {
	table := Build([]dictionary.Entry{{Word: "ab", Weight: 5}, {Word: "b", Weight: 2}}, 2)
	var buf bytes.Buffer
	require.NoError(t, table.WriteTop(&buf, 2))
	assert.Equal(t, "b$\t7\n^a\t5\n", buf.String())
}

func TestBuildParallel_MatchesBuild(t *testing.T) {
	var entries []dictionary.Entry
	words := []string{"the", "of", "and", "to", "a", "in", "for", "is", "on", "that"}
	for i := range 500 {
		entries = append(entries, dictionary.Entry{
			Word:   fmt.Sprintf("%s%s", words[i%len(words)], words[(i*7)%len(words)]),
			Weight: uint64(i + 1),
		})
	}

	for _, workers := range []int{0, 1, 2, 3, 8, 1000} {
		for _, n := range []int{2, 3} {
			got, err := BuildParallel(context.Background(), entries, n, workers)
			require.NoError(t, err)
			want := Build(entries, n)
			assert.Equal(t, want.Top(0), got.Top(0), "workers=%d n=%d", workers, n)
			assert.Equal(t, want.Total(), got.Total())
			assert.Equal(t, n, got.Size())
		}
	}
}

func TestBuildParallel_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := BuildParallel(ctx, testCorpus(), 2, 4)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = BuildParallel(ctx, testCorpus(), 2, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
