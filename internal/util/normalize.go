package util

import (
	"strings"
	"unicode"
)

const zwnj = '\u200c'

// CleanText collapses runs of whitespace (including NBSP) to one space.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// CleanList trims every entry and drops the empty ones, keeping order.
func CleanList(xs []string) []string {
	if len(xs) == 0 {
		return nil
	}
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		if x = CleanText(x); x != "" {
			out = append(out, x)
		}
	}
	return out
}

var persianFolds = strings.NewReplacer(
	"ي", "ی", // arabic yeh -> farsi yeh
	"ى", "ی", // alef maksura
	"ك", "ک", // arabic kaf -> keheh
	"ة", "ه", // teh marbuta
	string(zwnj), "",
	"\u200f", "", // rlm
	"\u200e", "", // lrm
)

// Fold maps s to the form used for matching: lower-cased latin, persian
// letter variants unified, zero-width joiners removed.
func Fold(s string) string {
	s = persianFolds.Replace(CleanText(s))
	return strings.ToLower(s)
}

func isSeparator(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	switch r {
	case ',', '،', ';', '؛', '(', ')', '[', ']', '{', '}', '/', '|', '\\', '"', '\'', ':', '!', '?', '؟':
		return true
	}
	return false
}

// Tokens splits folded s on whitespace and punctuation. Characters that
// belong to skill names ("node.js", "c++", "c#") are kept.
func Tokens(s string) []string {
	return strings.FieldsFunc(Fold(s), isSeparator)
}

// ContainsFolded reports whether needle occurs in haystack after folding both.
func ContainsFolded(haystack, needle string) bool {
	n := Fold(needle)
	if n == "" {
		return true
	}
	return strings.Contains(Fold(haystack), n)
}
