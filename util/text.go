package util

import (
	"strings"
	"unicode"
)

// IsPunctuation checks if a string consists entirely of punctuation or special symbols.
func IsPunctuation(s string) bool {
	for _, r := range s {
		if !isPunct(r) {
			return false
		}
	}
	return true
}

func isPunct(r rune) bool {
	if unicode.IsPunct(r) || unicode.IsSymbol(r) {
		return true
	}
	// CJK Symbols and Punctuation
	if r >= 0x3000 && r <= 0x303F {
		return true
	}
	// Full-width forms
	if r >= 0xFF00 && r <= 0xFFEF {
		return true
	}
	return false
}

// Tokens splits free text into whitespace separated tokens with surrounding
// punctuation trimmed. Tokens without any letter are dropped. With fold set
// tokens are lowercased.
func Tokens(text string, fold bool) []string {
	var tokens []string
	for _, tok := range strings.Fields(text) {
		w := strings.TrimFunc(tok, isPunct)
		if w == "" || !hasLetter(w) {
			continue
		}
		if fold {
			w = strings.ToLower(w)
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// Words is Tokens with each word kept once, in order of first appearance.
func Words(text string, fold bool) []string {
	seen := make(map[string]bool)
	var words []string
	for _, w := range Tokens(text, fold) {
		if seen[w] {
			continue
		}
		seen[w] = true
		words = append(words, w)
	}
	return words
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
