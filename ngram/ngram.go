package ngram

import (
	"iter"
	"slices"
	"unicode/utf8"
)

// Sentinels surrounding every word before windows are taken.
const (
	Start = '^'
	End   = '$'
)

// Gram is a fixed-length window of runes taken from a padded word.
// It is stored as the UTF-8 encoding of those runes so that grams can be
// compared and used as map keys by content.
type Gram string

// New builds a gram from its runes.
func New(runes ...rune) Gram {
	return Gram(string(runes))
}

// Runes returns the characters of the gram in order.
func (g Gram) Runes() []rune {
	return []rune(string(g))
}

// Len returns the number of characters in the gram.
func (g Gram) Len() int {
	return utf8.RuneCountInString(string(g))
}

func (g Gram) String() string {
	return string(g)
}

// Padded returns the word's runes surrounded by the Start and End sentinels.
func Padded(word string) []rune {
	padded := make([]rune, 0, PaddedLen(word))
	padded = append(padded, Start)
	for _, r := range word {
		padded = append(padded, r)
	}
	return append(padded, End)
}

// PaddedLen returns the rune count of the word plus the two sentinels.
func PaddedLen(word string) int {
	return utf8.RuneCountInString(word) + 2
}

// Count returns how many grams of length n Grams yields for word,
// without enumerating them.
func Count(word string, n int) int {
	if n < 1 {
		return 0
	}
	return max(PaddedLen(word)-n+1, 0)
}

// Grams returns the windows of length n over the padded word, in order of
// their start position. The sequence is empty when n is larger than the
// padded word or smaller than 1. Each iteration starts from the beginning.
func Grams(word string, n int) iter.Seq[Gram] {
	return func(yield func(Gram) bool) {
		if n < 1 {
			return
		}
		padded := Padded(word)
		for p := 0; p+n <= len(padded); p++ {
			if !yield(Gram(string(padded[p : p+n]))) {
				return
			}
		}
	}
}

// Collect returns all grams of length n for word as a slice.
func Collect(word string, n int) []Gram {
	return slices.Collect(Grams(word, n))
}
