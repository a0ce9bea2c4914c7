package extract

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/teatak/wordlike/util"
)

// WordCount is a word with the number of times it occurred.
type WordCount struct {
	Word  string
	Count uint64
}

// Count tallies the words of the text read from r, one line at a time.
func Count(r io.Reader, fold bool) (map[string]uint64, error) {
	counts := make(map[string]uint64)
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 1024*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		for _, w := range util.Tokens(scanner.Text(), fold) {
			counts[w]++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}
	return counts, nil
}

// Sorted returns the words occurring at least minCount times, most frequent
// first, ties ordered by word.
func Sorted(counts map[string]uint64, minCount uint64) []WordCount {
	var ss []WordCount
	for k, v := range counts {
		if v >= minCount {
			ss = append(ss, WordCount{k, v})
		}
	}
	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Count != ss[j].Count {
			return ss[i].Count > ss[j].Count
		}
		return ss[i].Word < ss[j].Word
	})
	return ss
}

// WriteCSV writes words as a "word,count" corpus that dictionary.FormatCSV reads.
func WriteCSV(w io.Writer, words []WordCount) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"word", "count"}); err != nil {
		return err
	}
	for _, item := range words {
		if err := cw.Write([]string{item.Word, strconv.FormatUint(item.Count, 10)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
